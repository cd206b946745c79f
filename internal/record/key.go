package record

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/tuannm99/novarel/internal/alias/bx"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// ---- Key(tuple) -> string ----
// Format:
// [nullmap: ceil(N/8) bytes, bit=1 => NULL] | [kind field0?] [kind field1?] ...
// INTEGER/DATE/TIME: 8 bytes BE
// REAL: integral values in int64 range are written as INTEGER, others as
// canonical decimal text (trailing zeros trimmed), uvarint length + data
// TEXT: uvarint length + data
//
// Two tuples share a key iff they have the same arity and their values are
// Equal position by position, with Int 1 and Real 1.0 sharing a key. Nulls
// share a key with each other.
func Key(tuple []Value) string {
	return string(AppendKey(nil, tuple))
}

// AppendKey appends the key encoding of tuple to dst.
func AppendKey(dst []byte, tuple []Value) []byte {
	nc := len(tuple)
	nbBytes := (nc + 7) / 8

	dst = bx.AppendUvarint(dst, uint64(nc))
	dst, start := bx.AppendZeros(dst, nbBytes)

	for i, v := range tuple {
		if v.kind == KindNull {
			dst[start+i/8] |= 1 << (uint(i) & 7)
			continue
		}

		kind, n := v.kind, v.n
		if kind == KindReal {
			if whole, ok := integral(v.d); ok {
				kind, n = KindInt, whole
			}
		}

		dst = append(dst, byte(kind))
		switch kind {
		case KindInt, KindDate, KindTime:
			dst = bx.AppendU64BE(dst, uint64(n))
		case KindReal:
			dst = bx.AppendVar(dst, v.d.String())
		case KindText:
			dst = bx.AppendVar(dst, v.s)
		}
	}
	return dst
}

// integral reports the int64 value of d when d is a whole number in range.
func integral(d decimal.Decimal) (int64, bool) {
	if !d.IsInteger() || d.Cmp(minInt64) < 0 || d.Cmp(maxInt64) > 0 {
		return 0, false
	}
	return d.IntPart(), true
}
