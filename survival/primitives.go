package survival

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Sizes, in bytes, of the fixed-width wire primitives. Mirrors the
// original SVByteSize/SVShortSize/SVIntegerSize/... constants.
const (
	byteSize    = 1
	boolSize    = 1
	shortSize   = 2
	intSize     = 4
	longSize    = 8
	floatSize   = 4
	doubleSize  = 8
	stringLenSz = 2
)

// ---- reads (panic-free only under the caller's Take(n) contract) ----

func (b *Buffer) ReadByte() int8 {
	return int8(b.Take(byteSize)[0])
}

func (b *Buffer) ReadUByte() uint8 {
	return b.Take(byteSize)[0]
}

func (b *Buffer) ReadBool() bool {
	return b.Take(boolSize)[0] != 0
}

func (b *Buffer) ReadShort() int16 {
	return int16(binary.BigEndian.Uint16(b.Take(shortSize)))
}

func (b *Buffer) ReadUShort() uint16 {
	return binary.BigEndian.Uint16(b.Take(shortSize))
}

func (b *Buffer) ReadInt() int32 {
	return int32(binary.BigEndian.Uint32(b.Take(intSize)))
}

func (b *Buffer) ReadLong() int64 {
	return int64(binary.BigEndian.Uint64(b.Take(longSize)))
}

func (b *Buffer) ReadFloat() float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b.Take(floatSize)))
}

func (b *Buffer) ReadDouble() float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b.Take(doubleSize)))
}

// ReadString reads a u16 length-prefix k followed by k UTF-16BE code
// units, returning the decoded Go string.
func (b *Buffer) ReadString() string {
	k := int(b.ReadUShort())
	raw := b.Take(k * 2)
	units := make([]uint16, k)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(raw[i*2 : i*2+2])
	}
	return string(utf16.Decode(units))
}

// ---- writes ----

func (b *Buffer) WriteByte(v int8) {
	b.Append([]byte{byte(v)})
}

func (b *Buffer) WriteUByte(v uint8) {
	b.Append([]byte{v})
}

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.Append([]byte{1})
	} else {
		b.Append([]byte{0})
	}
}

func (b *Buffer) WriteShort(v int16) {
	var p [shortSize]byte
	binary.BigEndian.PutUint16(p[:], uint16(v))
	b.Append(p[:])
}

func (b *Buffer) WriteUShort(v uint16) {
	var p [shortSize]byte
	binary.BigEndian.PutUint16(p[:], v)
	b.Append(p[:])
}

func (b *Buffer) WriteInt(v int32) {
	var p [intSize]byte
	binary.BigEndian.PutUint32(p[:], uint32(v))
	b.Append(p[:])
}

func (b *Buffer) WriteLong(v int64) {
	var p [longSize]byte
	binary.BigEndian.PutUint64(p[:], uint64(v))
	b.Append(p[:])
}

func (b *Buffer) WriteFloat(v float32) {
	var p [floatSize]byte
	binary.BigEndian.PutUint32(p[:], math.Float32bits(v))
	b.Append(p[:])
}

func (b *Buffer) WriteDouble(v float64) {
	var p [doubleSize]byte
	binary.BigEndian.PutUint64(p[:], math.Float64bits(v))
	b.Append(p[:])
}

// WriteString writes a u16 length prefix followed by the UTF-16BE
// encoding of s.
func (b *Buffer) WriteString(s string) {
	units := utf16.Encode([]rune(s))
	b.WriteUShort(uint16(len(units)))
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		binary.BigEndian.PutUint16(raw[i*2:i*2+2], u)
	}
	b.Append(raw)
}

// charsetAllowed is the fixed display charset: printable ASCII plus
// the section-sign color-code marker. Anything else is replaced with
// '?' by Sanitize.
func charsetAllowed(r rune) bool {
	if r == '§' { // '§', the color-escape marker
		return true
	}
	return r >= 0x20 && r <= 0x7E
}

// Sanitize restricts s to the wire display charset, replacing any
// out-of-charset code point with '?'. It leaves '§'+hex color-escape
// sequences untouched (the hex digit itself is plain ASCII and
// already passes the charset check). Sanitize is idempotent:
// sanitizing an already-sanitized string is a no-op.
func Sanitize(s string) string {
	runes := []rune(s)
	out := make([]rune, len(runes))
	changed := false
	for i, r := range runes {
		if charsetAllowed(r) {
			out[i] = r
		} else {
			out[i] = '?'
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(out)
}
