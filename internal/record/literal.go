package record

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout    = "2006-01-02"
	altDateLayout = "02/01/2006"
	timeLayout    = "15:04"
	secTimeLayout = "15:04:05"
)

var ErrBadLiteral = errors.New("record: malformed literal")

var (
	isoDatePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	dmyDatePattern = regexp.MustCompile(`^[0-9]{2}/[0-9]{2}/[0-9]{4}$`)
	timePattern    = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}(:[0-9]{2})?$`)
	intPattern     = regexp.MustCompile(`^-?[0-9]+$`)
	realPattern    = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

// LooksLikeDate reports whether s has the shape of a date literal
// (YYYY-MM-DD or DD/MM/YYYY). It does not validate the calendar.
func LooksLikeDate(s string) bool {
	return isoDatePattern.MatchString(s) || dmyDatePattern.MatchString(s)
}

// LooksLikeTime reports whether s has the shape HH:MM or HH:MM:SS.
func LooksLikeTime(s string) bool {
	return timePattern.MatchString(s)
}

func ParseDate(s string) (Value, error) {
	layout := DateLayout
	if dmyDatePattern.MatchString(s) {
		layout = altDateLayout
	} else if !isoDatePattern.MatchString(s) {
		return Value{}, fmt.Errorf("%w: date %q", ErrBadLiteral, s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: date %q: %v", ErrBadLiteral, s, err)
	}
	return Date(t), nil
}

func ParseTime(s string) (Value, error) {
	if !timePattern.MatchString(s) {
		return Value{}, fmt.Errorf("%w: time %q", ErrBadLiteral, s)
	}
	layout := timeLayout
	if len(s) == len(secTimeLayout) {
		layout = secTimeLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: time %q: %v", ErrBadLiteral, s, err)
	}
	return TimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
}

func ParseInt(s string) (Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: integer %q: %v", ErrBadLiteral, s, err)
	}
	return Int(n), nil
}

func ParseReal(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: real %q: %v", ErrBadLiteral, s, err)
	}
	return Real(d), nil
}

// ParseLiteral classifies free-form cell text the way a loaded table is
// typed: integers, reals, dates and times are recognized by shape and
// everything else is kept as text. It never fails; a value that has a
// date or time shape but is not a valid one stays text.
func ParseLiteral(s string) Value {
	t := strings.TrimSpace(s)
	switch {
	case intPattern.MatchString(t):
		if v, err := ParseInt(t); err == nil {
			return v
		}
	case realPattern.MatchString(t):
		if v, err := ParseReal(t); err == nil {
			return v
		}
	case LooksLikeDate(t):
		if v, err := ParseDate(t); err == nil {
			return v
		}
	case LooksLikeTime(t):
		if v, err := ParseTime(t); err == nil {
			return v
		}
	}
	return Text(s)
}
