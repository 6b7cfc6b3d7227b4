package scheduler

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

// Schedule decides when the next run starts
type Schedule interface {
	Next(now time.Time) time.Time
	String() string
}

// Daily runs once a day at a fixed wall-clock time
type Daily struct {
	hour   int
	minute int
	loc    *time.Location
}

// ParseDaily parses an "HH:MM" time of day. A nil loc means time.Local.
func ParseDaily(hhmm string, loc *time.Location) (*Daily, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid daily time, expected HH:MM",
			goerr.T(model.ErrTagConfig),
			goerr.V("value", hhmm))
	}
	if loc == nil {
		loc = time.Local
	}
	return &Daily{hour: t.Hour(), minute: t.Minute(), loc: loc}, nil
}

// Next returns the first occurrence of the time of day strictly after now
func (d *Daily) Next(now time.Time) time.Time {
	local := now.In(d.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.hour, d.minute, 0, 0, d.loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, d.hour, d.minute, 0, 0, d.loc)
	}
	return next
}

func (d *Daily) String() string {
	return fmt.Sprintf("daily at %02d:%02d %s", d.hour, d.minute, d.loc)
}

// Interval runs at a fixed period
type Interval struct {
	period time.Duration
}

// NewInterval creates an Interval schedule. The period must be positive.
func NewInterval(period time.Duration) (*Interval, error) {
	if period <= 0 {
		return nil, goerr.New("interval must be positive",
			goerr.T(model.ErrTagConfig),
			goerr.V("interval", period))
	}
	return &Interval{period: period}, nil
}

// Next returns now plus the period
func (i *Interval) Next(now time.Time) time.Time {
	return now.Add(i.period)
}

func (i *Interval) String() string {
	return "every " + i.period.String()
}
