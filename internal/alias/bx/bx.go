// stand for bytes helper
package bx

import "encoding/binary"

var BE = binary.BigEndian

// AppendU64BE appends v as 8 big-endian bytes.
func AppendU64BE(dst []byte, v uint64) []byte { return BE.AppendUint64(dst, v) }

// AppendUvarint appends v in unsigned varint form.
func AppendUvarint(dst []byte, v uint64) []byte { return binary.AppendUvarint(dst, v) }

// AppendVar appends s prefixed with its uvarint length.
func AppendVar(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// AppendZeros grows dst by n zero bytes and returns the offset of the first.
func AppendZeros(dst []byte, n int) ([]byte, int) {
	off := len(dst)
	for i := 0; i < n; i++ {
		dst = append(dst, 0)
	}
	return dst, off
}
