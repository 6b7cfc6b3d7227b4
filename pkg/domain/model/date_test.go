package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	t.Run("Saturday belongs to the previous Sunday", func(t *testing.T) {
		gt.Equal(t, model.WeekStart(date(2024, 1, 6)), date(2023, 12, 31))
	})

	t.Run("Sunday is its own week start", func(t *testing.T) {
		gt.Equal(t, model.WeekStart(date(2024, 1, 7)), date(2024, 1, 7))
	})

	t.Run("mid week", func(t *testing.T) {
		gt.Equal(t, model.WeekStart(date(2024, 1, 10)), date(2024, 1, 7))
	})

	t.Run("across a month boundary", func(t *testing.T) {
		gt.Equal(t, model.WeekStart(date(2024, 3, 1)), date(2024, 2, 25))
	})
}

func TestParseDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		d, err := model.ParseDate("2024-02-29")
		gt.NoError(t, err)
		gt.Equal(t, d, date(2024, 2, 29))
	})

	t.Run("invalid calendar date", func(t *testing.T) {
		_, err := model.ParseDate("2023-02-29")
		gt.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := model.ParseDate("")
		gt.Error(t, err)
	})

	t.Run("round trip through FormatDate", func(t *testing.T) {
		d, err := model.ParseDate("2024-12-31")
		gt.NoError(t, err)
		gt.Equal(t, model.FormatDate(d), "2024-12-31")
	})
}
