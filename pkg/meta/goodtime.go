package meta

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spencer-p/tidetable/pkg/timetricks"
)

const timeFmt = "15:04"

// GoodTime is a good time to go out to the reef.
type GoodTime struct {
	Time    time.Time `json:"time"`
	Reasons []string  `json:"reasons"`

	// PrettyTime is a human-readable version of the time, relative to the
	// current date. Optional.
	PrettyTime string `json:"pretty_time,omitempty"`
}

func (gt *GoodTime) String() string {
	return fmt.Sprintf("%s, %s",
		gt.prettyTime(),
		strings.Join(gt.Reasons, " and "))
}

func (gt *GoodTime) prettyTime() string {
	return fmt.Sprintf("%s at %s", timetricks.Day(gt.Time), gt.Clock())
}

// UpdatePrettyTime makes sure that the good time's pretty time is set.
func (gt *GoodTime) UpdatePrettyTime() {
	if gt.PrettyTime == "" {
		gt.PrettyTime = gt.prettyTime()
	}
}

// Clock is the wall clock time of the good time, PrettyTime without the date.
func (gt *GoodTime) Clock() string {
	return gt.Time.Format(timeFmt)
}

func (gt *GoodTime) MarshalJSON() ([]byte, error) {
	gt.UpdatePrettyTime()
	// plain has no methods, so this does not recurse.
	type plain GoodTime
	return json.Marshal((*plain)(gt))
}
