package rendering

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// JalaliDate formats a moment as a Jalali calendar date, yyyy/MM/dd.
func JalaliDate(t time.Time) string {
	return ptime.New(t).Format("yyyy/MM/dd")
}

// JalaliDateTime formats a moment as a Jalali date with wall-clock time.
func JalaliDateTime(t time.Time) string {
	return ptime.New(t).Format("yyyy/MM/dd HH:mm:ss")
}

// JalaliFileDate formats a moment for use inside generated filenames.
func JalaliFileDate(t time.Time) string {
	return ptime.New(t).Format("yyyy-MM-dd")
}
