// Package shiftclock converts the 12-hour wall-clock strings used for shift windows
// and punch times ("9:05 AM") into comparable minute-of-day values.
package shiftclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// ClockTime is a time of day expressed in minutes after midnight.
// The zero value is midnight; unparseable input is represented by Invalid.
type ClockTime int

// Invalid is returned for malformed or missing clock strings.
const Invalid ClockTime = -1

// New builds a ClockTime from a 24-hour hour and minute. Out of range values yield Invalid.
func New(hour, minute int) ClockTime {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Invalid
	}
	return ClockTime(hour*60 + minute)
}

// FromTime takes the time-of-day component of t in t's location.
func FromTime(t time.Time) ClockTime {
	return New(t.Hour(), t.Minute())
}

// Valid reports whether c holds a real time of day.
func (c ClockTime) Valid() bool {
	return c >= 0 && c < MinutesPerDay
}

// Hour returns the 24-hour hour, or -1 when c is invalid.
func (c ClockTime) Hour() int {
	if !c.Valid() {
		return -1
	}
	return int(c) / 60
}

// Minute returns the minute within the hour, or -1 when c is invalid.
func (c ClockTime) Minute() int {
	if !c.Valid() {
		return -1
	}
	return int(c) % 60
}

// Format24 renders c as "HH:MM". Invalid renders as "N/A".
func (c ClockTime) Format24() string {
	if !c.Valid() {
		return "N/A"
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Format12 renders c as "h:MM AM". Invalid renders as "N/A".
func (c ClockTime) Format12() string {
	if !c.Valid() {
		return "N/A"
	}
	hour := c.Hour()
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, c.Minute(), suffix)
}

func (c ClockTime) String() string {
	return c.Format12()
}

// On places c on the calendar day of date in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, loc)
}

// Sub returns c - other in minutes. Both values must be valid.
func (c ClockTime) Sub(other ClockTime) int {
	return int(c) - int(other)
}

// Parse converts a clock string to a ClockTime.
//
// Accepted forms are 12-hour ("9:05 AM", "09:05pm", "9:05:30 AM") and 24-hour
// ("21:05", "21:05:30"). 12 AM maps to 00:xx and 12 PM to 12:xx. Anything else,
// including "" and "N/A", yields Invalid.
func Parse(s string) ClockTime {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" || s == "N/A" {
		return Invalid
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
	}
	s = strings.TrimSuffix(s, meridiem)

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Invalid
	}

	hour, ok := parseDigits(parts[0], 1, 2)
	if !ok {
		return Invalid
	}
	minute, ok := parseDigits(parts[1], 2, 2)
	if !ok || minute > 59 {
		return Invalid
	}
	if len(parts) == 3 {
		second, ok := parseDigits(parts[2], 2, 2)
		if !ok || second > 59 {
			return Invalid
		}
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return Invalid
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return Invalid
		}
		if hour != 12 {
			hour += 12
		}
	}

	return New(hour, minute)
}

func parseDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Window is a shift window. End may precede Start for overnight shifts.
type Window struct {
	Start ClockTime
	End   ClockTime
}

// DefaultWindowText is the shift applied to employees without a configured window.
const DefaultWindowText = "9:00 AM - 6:00 PM"

// DefaultWindow is DefaultWindowText parsed.
var DefaultWindow = Window{Start: New(9, 0), End: New(18, 0)}

// ParseWindow parses "9:00 AM - 6:00 PM". It reports false when either side is invalid.
func ParseWindow(s string) (Window, bool) {
	start, end, found := strings.Cut(s, "-")
	if !found {
		return Window{}, false
	}
	w := Window{Start: Parse(start), End: Parse(end)}
	if !w.Valid() {
		return Window{}, false
	}
	return w, true
}

// WindowOrDefault builds a window from separate start/end strings, falling back to
// DefaultWindow when either side is unset or malformed.
func WindowOrDefault(start, end string) Window {
	w := Window{Start: Parse(start), End: Parse(end)}
	if !w.Valid() {
		return DefaultWindow
	}
	return w
}

// Valid reports whether both ends are valid times of day.
func (w Window) Valid() bool {
	return w.Start.Valid() && w.End.Valid()
}

// Minutes is the scheduled length of the window; overnight windows wrap past midnight.
func (w Window) Minutes() int {
	if !w.Valid() {
		return 0
	}
	d := w.End.Sub(w.Start)
	if d <= 0 {
		d += MinutesPerDay
	}
	return d
}

// Overnight reports whether the window ends on the following day.
func (w Window) Overnight() bool {
	return w.Valid() && w.End <= w.Start
}

func (w Window) String() string {
	return w.Start.Format12() + " - " + w.End.Format12()
}
