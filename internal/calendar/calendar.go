// Package calendar maps month names between calendar order (January first)
// and the fiscal year used by the dashboard (February first, January last).
package calendar

import (
	"fmt"
	"strings"
)

// Month is a calendar month, January = 1. The zero value is not a month.
type Month int

const (
	January Month = 1 + iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var names = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// CalendarMonths lists months January through December.
var CalendarMonths = [12]Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

// FiscalMonths lists months in fiscal order, February through January.
var FiscalMonths = [12]Month{
	February, March, April, May, June, July,
	August, September, October, November, December, January,
}

// Valid reports whether m is one of the twelve months.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return names[m-1]
}

// CalendarIndex is the position of m in January-first order, or -1.
func (m Month) CalendarIndex() int {
	if !m.Valid() {
		return -1
	}
	return int(m) - 1
}

// FiscalIndex is the position of m in February-first order, or -1.
func (m Month) FiscalIndex() int {
	if !m.Valid() {
		return -1
	}
	return (int(m) + 10) % 12
}

func (m Month) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid month %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown month %q", string(text))
	}
	*m = parsed
	return nil
}

// Parse resolves a full English month name. Matching ignores case and
// surrounding whitespace; abbreviations are not accepted.
func Parse(name string) (Month, bool) {
	name = strings.TrimSpace(name)
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Month(i + 1), true
		}
	}
	return 0, false
}

// ToFiscalIndex returns the fiscal position of the named month, or -1.
func ToFiscalIndex(name string) int {
	m, ok := Parse(name)
	if !ok {
		return -1
	}
	return m.FiscalIndex()
}

// ToCalendarIndex returns the calendar position of the named month, or -1.
func ToCalendarIndex(name string) int {
	m, ok := Parse(name)
	if !ok {
		return -1
	}
	return m.CalendarIndex()
}

// FiscalWindow returns the months from February through upto inclusive.
// An invalid month yields an empty window.
func FiscalWindow(upto Month) []Month {
	idx := upto.FiscalIndex()
	if idx < 0 {
		return nil
	}
	window := make([]Month, idx+1)
	copy(window, FiscalMonths[:idx+1])
	return window
}

// Previous returns the month before m in fiscal order. February opens the
// fiscal year and has none.
func Previous(m Month) (Month, bool) {
	idx := m.FiscalIndex()
	if idx <= 0 {
		return 0, false
	}
	return FiscalMonths[idx-1], true
}

// DisplayYear is the calendar year a fiscal month falls in, given the
// calendar year in which the fiscal year starts. January closes the fiscal
// year and so belongs to the following calendar year.
func DisplayYear(m Month, fiscalYear int) int {
	if m == January {
		return fiscalYear + 1
	}
	return fiscalYear
}
