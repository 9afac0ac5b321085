package domain

import (
	"strconv"
	"strings"
	"time"

	ierr "github.com/campworks/cycleplan/internal/errors"
	"gopkg.in/yaml.v3"
)

// MonthsPerYear bounds every cycle: a cycle never revisits a month.
const MonthsPerYear = 12

// Month is a calendar month numbered 1 (January) through 12 (December).
type Month int

// Validate fails with a validation error when m is outside 1..12.
func (m Month) Validate() error {
	if m < 1 || m > MonthsPerYear {
		return ierr.NewErrorf("month %d is out of range", int(m)).
			WithHint("months are numbered 1 (January) to 12 (December)").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Next returns the month after m, wrapping December to January.
func (m Month) Next() Month {
	return m%MonthsPerYear + 1
}

// Prev returns the month before m, wrapping January to December.
func (m Month) Prev() Month {
	return (m+MonthsPerYear-2)%MonthsPerYear + 1
}

func (m Month) String() string {
	if m.Validate() != nil {
		return "Month(" + strconv.Itoa(int(m)) + ")"
	}
	return time.Month(m).String()
}

// Short returns the three-letter month abbreviation.
func (m Month) Short() string {
	s := m.String()
	if len(s) < 3 || m.Validate() != nil {
		return s
	}
	return s[:3]
}

// ParseMonth accepts a month number ("3") or an English month name or
// abbreviation ("March", "mar").
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		m := Month(n)
		return m, m.Validate()
	}
	lower := strings.ToLower(s)
	if len(lower) >= 3 {
		for m := Month(1); m <= MonthsPerYear; m++ {
			name := strings.ToLower(time.Month(m).String())
			if name == lower || name[:3] == lower {
				return m, nil
			}
		}
	}
	return 0, ierr.NewErrorf("unrecognized month %q", s).
		WithHint("use a number from 1 to 12 or a month name").
		Mark(ierr.ErrValidation)
}

// UnmarshalYAML accepts either a month number or a month name. Numbers are
// stored as given so that range errors surface during validation.
func (m *Month) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		*m = Month(n)
		return nil
	}
	parsed, err := ParseMonth(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Add moves m by n months in either direction, wrapping around the year.
func (m Month) Add(n int) Month {
	offset := (int(m) - 1 + n) % MonthsPerYear
	if offset < 0 {
		offset += MonthsPerYear
	}
	return Month(offset + 1)
}
