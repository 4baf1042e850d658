package almanac

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMonthSpan(t *testing.T) {
	table := []struct {
		name   string
		text   string
		month  time.Month
		want   string
		absent bool
	}{{
		name:  "ends before next month",
		text:  "CAPA\nFEVEREIRO\n01 DOM 0512 1.9\nMARÇO\n01 SEG 0600 2.0\n",
		month: time.February,
		want:  "FEVEREIRO\n01 DOM 0512 1.9\n",
	}, {
		name:  "runs to end without next month",
		text:  "MARÇO\n01 SEG 0600 2.0\n",
		month: time.March,
		want:  "MARÇO\n01 SEG 0600 2.0\n",
	}, {
		name:  "december runs to end",
		text:  "DEZEMBRO\n31 QUI 0100 1.0\nJANEIRO\n",
		month: time.December,
		want:  "DEZEMBRO\n31 QUI 0100 1.0\nJANEIRO\n",
	}, {
		name:  "case and accents ignored",
		text:  "março\n01 0600 2.0\nABRIL",
		month: time.March,
		want:  "março\n01 0600 2.0\n",
	}, {
		name:  "unaccented anchor",
		text:  "MARCO\n01 0600 2.0\nABRIL",
		month: time.March,
		want:  "MARCO\n01 0600 2.0\n",
	}, {
		name:  "next month only counts after start",
		text:  "MARÇO\nFEVEREIRO\n01 0512 1.9\n",
		month: time.February,
		want:  "FEVEREIRO\n01 0512 1.9\n",
	}, {
		name:  "indices survive accents before the anchor",
		text:  "Tábua de Marés Ilhéus\nMarço\n01 0512 1.9\nAbril\n",
		month: time.March,
		want:  "Março\n01 0512 1.9\n",
	}, {
		name:   "missing month",
		text:   "JANEIRO\n01 0512 1.9\n",
		month:  time.April,
		absent: true,
	}, {
		name:   "empty text",
		text:   "",
		month:  time.January,
		absent: true,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			span, ok := MonthSpan(tc.text, tc.month, Portuguese)
			if ok == tc.absent {
				t.Fatalf("got ok=%v, wanted %v", ok, !tc.absent)
			}
			if tc.absent {
				return
			}
			if diff := cmp.Diff(span.Of(tc.text), tc.want); diff != "" {
				t.Errorf("wrong segment (-got,+want): %s", diff)
			}
		})
	}
}

func TestDocumentMonthLatin1(t *testing.T) {
	doc := NewDocument(latin1(ilheusTable), 0)

	span, ok := doc.Month(time.February, Portuguese)
	if !ok {
		t.Fatal("february not found")
	}
	seg := span.Of(doc.Text)
	if !strings.HasPrefix(seg, "FEVEREIRO\n") {
		t.Errorf("segment starts with %q", seg[:20])
	}
	if strings.Contains(seg, "MARÇO") {
		t.Errorf("segment leaks into march: %q", seg)
	}

	march, ok := doc.Month(time.March, Portuguese)
	if !ok {
		t.Fatal("march not found")
	}
	if march.Start != span.End {
		t.Errorf("march starts at %d, february ends at %d", march.Start, span.End)
	}
	if march.End != len(doc.Text) {
		t.Errorf("march ends at %d, wanted end of text %d", march.End, len(doc.Text))
	}
}
