// Package countdown formats the time left until a fixed date.
package countdown

import (
	"fmt"
	"time"
)

// Arrived is shown once the target has passed.
const Arrived = "TODAY IS THE DAY!"

// Parts is a remaining duration split into whole days, hours and minutes.
type Parts struct {
	Days, Hours, Minutes int
}

// Remaining splits target-now by floor division. ok is false once the
// target is in the past.
func Remaining(now, target time.Time) (p Parts, ok bool) {
	d := target.Sub(now)
	if d < 0 {
		return Parts{}, false
	}
	day := 24 * time.Hour
	p.Days = int(d / day)
	p.Hours = int(d % day / time.Hour)
	p.Minutes = int(d % time.Hour / time.Minute)
	return p, true
}

func (p Parts) String() string {
	return fmt.Sprintf("%d Days %d Hours %d Mins", p.Days, p.Hours, p.Minutes)
}

// Format returns the countdown line for now.
func Format(now, target time.Time) string {
	p, ok := Remaining(now, target)
	if !ok {
		return Arrived
	}
	return p.String()
}

// Clock formats a duration as MM:SS.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
