package ledger

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"

	"github.com/printshop/backend/internal/domain/shared"
)

// DateRangePreset names a reporting window anchored on the Persian calendar.
// Weeks start on Saturday and month and year boundaries follow the Jalali
// calendar, not the Gregorian one.
type DateRangePreset string

const (
	PresetToday      DateRangePreset = "today"
	PresetThisWeek   DateRangePreset = "this_week"
	PresetLast7Days  DateRangePreset = "last_7_days"
	PresetThisMonth  DateRangePreset = "this_month"
	PresetLast30Days DateRangePreset = "last_30_days"
	PresetThisYear   DateRangePreset = "this_year"
)

// Resolve returns the [from, to] window the preset covers at the given
// moment. The rolling presets span exactly seven or thirty calendar days
// ending today. this_week covers the full Saturday-to-Friday week, so its
// upper bound can lie after the given moment.
func (p DateRangePreset) Resolve(now time.Time) (time.Time, time.Time, error) {
	pnow := ptime.New(now)

	switch p {
	case PresetToday:
		return beginningOfDay(pnow).Time(), now, nil
	case PresetThisWeek:
		from := pnow.BeginningOfWeek().Time()
		return from, from.AddDate(0, 0, 7).Add(-time.Nanosecond), nil
	case PresetLast7Days:
		return beginningOfDay(ptime.New(now.AddDate(0, 0, -6))).Time(), now, nil
	case PresetThisMonth:
		return pnow.BeginningOfMonth().Time(), now, nil
	case PresetLast30Days:
		return beginningOfDay(ptime.New(now.AddDate(0, 0, -29))).Time(), now, nil
	case PresetThisYear:
		return pnow.BeginningOfYear().Time(), now, nil
	default:
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE_RANGE",
			"Unknown date range preset: "+string(p))
	}
}

// beginningOfDay zeroes the clock on a copy of t.
func beginningOfDay(t ptime.Time) ptime.Time {
	t.At(0, 0, 0, 0)
	return t
}
