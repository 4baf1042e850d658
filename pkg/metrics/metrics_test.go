package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLatencyHandlerRecordsStatus(t *testing.T) {
	h := LatencyHandler("/teapot", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.CollectAndCount(requestLatency)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("got status %d", rec.Code)
	}
	if after := testutil.CollectAndCount(requestLatency); after != before+1 {
		t.Errorf("got %d series, wanted %d", after, before+1)
	}
}

func TestObserveFetch(t *testing.T) {
	ObserveFetch("file", nil)
	ObserveFetch("file", errors.New("boom"))

	if got := testutil.ToFloat64(documentFetches.WithLabelValues("file", "success")); got < 1 {
		t.Errorf("success count %f", got)
	}
	if got := testutil.ToFloat64(documentFetches.WithLabelValues("file", "error")); got < 1 {
		t.Errorf("error count %f", got)
	}
}

func TestObserveEmptyDays(t *testing.T) {
	ObserveEmptyDays("nowhere", 0)
	ObserveEmptyDays("somewhere", 3)
	if got := testutil.ToFloat64(emptyDays.WithLabelValues("somewhere")); got != 3 {
		t.Errorf("got %f, wanted 3", got)
	}
}
