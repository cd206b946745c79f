package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindReal
	KindText
	KindDate
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindText:
		return "TEXT"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

var ErrIncomparable = errors.New("record: incomparable values")

const secondsPerDay = 24 * 60 * 60

// Value is a typed scalar stored in a tuple. The zero Value is Null.
//
// Payload layout by kind:
//   - Int:  n holds the integer
//   - Real: d holds the decimal
//   - Text: s holds the string
//   - Date: n holds days since 1970-01-01
//   - Time: n holds seconds since midnight
type Value struct {
	kind Kind
	n    int64
	d    decimal.Decimal
	s    string
}

// Null is the marker used to pad unmatched outer join rows.
func Null() Value { return Value{} }

func Int(n int64) Value { return Value{kind: KindInt, n: n} }

func Real(d decimal.Decimal) Value { return Value{kind: KindReal, d: d} }

func Text(s string) Value { return Value{kind: KindText, s: s} }

// Date keeps only the calendar day of t (in t's own location).
func Date(t time.Time) Value {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Value{kind: KindDate, n: floorDiv(day.Unix(), secondsPerDay)}
}

// TimeOfDay builds a Time value; out of range parts wrap around midnight.
func TimeOfDay(hour, minute, second int) Value {
	secs := int64(hour*3600+minute*60+second) % secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
	}
	return Value{kind: KindTime, n: secs}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsInt() (int64, bool) {
	return v.n, v.kind == KindInt
}

func (v Value) AsReal() (decimal.Decimal, bool) {
	return v.d, v.kind == KindReal
}

func (v Value) AsText() (string, bool) {
	return v.s, v.kind == KindText
}

func (v Value) AsDate() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return time.Unix(v.n*secondsPerDay, 0).UTC(), true
}

func (v Value) AsTime() (time.Duration, bool) {
	if v.kind != KindTime {
		return 0, false
	}
	return time.Duration(v.n) * time.Second, true
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	case KindReal:
		return v.d.String()
	case KindText:
		return v.s
	case KindDate:
		t, _ := v.AsDate()
		return t.Format(DateLayout)
	case KindTime:
		h, m, s := v.n/3600, (v.n/60)%60, v.n%60
		if s == 0 {
			return fmt.Sprintf("%02d:%02d", h, m)
		}
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	default:
		return "?"
	}
}

// Compare orders two values: numerically across Int and Real, lexically for
// Text, chronologically for Date and Time. Any other pairing, including one
// with a Null operand, fails with ErrIncomparable.
func Compare(a, b Value) (int, error) {
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		return cmpInt64(a.n, b.n), nil
	case a.isNumeric() && b.isNumeric():
		return a.decimal().Cmp(b.decimal()), nil
	case a.kind == KindText && b.kind == KindText:
		return strings.Compare(a.s, b.s), nil
	case a.kind == KindDate && b.kind == KindDate,
		a.kind == KindTime && b.kind == KindTime:
		return cmpInt64(a.n, b.n), nil
	}
	return 0, fmt.Errorf("%w: %s and %s", ErrIncomparable, a.kind, b.kind)
}

// Equal reports whether a and b compare equal. Null never equals anything.
func Equal(a, b Value) bool {
	c, err := Compare(a, b)
	return err == nil && c == 0
}

func (v Value) isNumeric() bool {
	return v.kind == KindInt || v.kind == KindReal
}

func (v Value) decimal() decimal.Decimal {
	if v.kind == KindInt {
		return decimal.NewFromInt(v.n)
	}
	return v.d
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
