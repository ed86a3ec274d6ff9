package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	target := time.Date(2026, time.February, 23, 0, 0, 0, 0, time.UTC)
	now := target.Add(-(12*24*time.Hour + 3*time.Hour + 4*time.Minute + 59*time.Second))

	p, ok := Remaining(now, target)
	assert.True(t, ok)
	assert.Equal(t, Parts{Days: 12, Hours: 3, Minutes: 4}, p)
	assert.Equal(t, "12 Days 3 Hours 4 Mins", Format(now, target))
}

func TestRemainingAtTarget(t *testing.T) {
	target := time.Date(2026, time.February, 23, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "0 Days 0 Hours 0 Mins", Format(target, target))
	assert.Equal(t, Arrived, Format(target.Add(time.Second), target))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "00:00", Clock(0))
	assert.Equal(t, "01:05", Clock(65*time.Second))
	assert.Equal(t, "61:01", Clock(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "00:00", Clock(-time.Second))
}
