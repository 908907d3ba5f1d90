// Package wire implements the length-prefixed binary envelope carried
// between the controller and the node agent: a 4-byte big-endian
// frame length followed by a tagged message body, with every string
// and list field itself length-prefixed so decoding never has to
// guess where a field ends.
//
// Big-endian rather than the original implementation's native
// little-endian (bincode-style) framing: both ends of this wire are
// this package's own Encoder/Decoder, so byte order never needs to
// match anything outside this codebase, and a fixed, explicit order
// reads the same on every host regardless of its native endianness.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Encoder accumulates fields into a buffer using fixed-width,
// length-prefixed primitives.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Bytes returns the accumulated buffer contents.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Byte appends a single tag/flag byte.
func (e *Encoder) Byte(b byte) { e.buf.WriteByte(b) }

// Uint32 appends a fixed-width big-endian uint32.
func (e *Encoder) Uint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	e.buf.Write(tmp[:])
}

// Uint64 appends a fixed-width big-endian uint64.
func (e *Encoder) Uint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	e.buf.Write(tmp[:])
}

// Int64 appends a fixed-width big-endian int64.
func (e *Encoder) Int64(v int64) { e.Uint64(uint64(v)) }

// Bool appends a single byte, 1 for true.
func (e *Encoder) Bool(v bool) {
	if v {
		e.Byte(1)
		return
	}
	e.Byte(0)
}

// String appends a length-prefixed UTF-8 string.
func (e *Encoder) String(s string) {
	e.Uint32(uint32(len(s)))
	e.buf.WriteString(s)
}

// RawBytes appends a length-prefixed byte slice.
func (e *Encoder) RawBytes(b []byte) {
	e.Uint32(uint32(len(b)))
	e.buf.Write(b)
}

// StringList appends a count-prefixed list of length-prefixed strings.
func (e *Encoder) StringList(items []string) {
	e.Uint32(uint32(len(items)))
	for _, item := range items {
		e.String(item)
	}
}

// Decoder consumes fields from a buffer in the same order Encoder
// wrote them, returning an error the first time it runs past the end
// of the buffer rather than panicking.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder wraps data for sequential field reads.
func NewDecoder(data []byte) *Decoder { return &Decoder{data: data} }

// ErrShortBuffer is returned when a read would run past the end of
// the input.
var ErrShortBuffer = fmt.Errorf("wire: short buffer")

func (d *Decoder) need(n int) error {
	if d.pos+n > len(d.data) {
		return ErrShortBuffer
	}
	return nil
}

// Byte reads a single byte.
func (d *Decoder) Byte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

// Uint32 reads a fixed-width big-endian uint32.
func (d *Decoder) Uint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4
	return v, nil
}

// Uint64 reads a fixed-width big-endian uint64.
func (d *Decoder) Uint64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(d.data[d.pos : d.pos+8])
	d.pos += 8
	return v, nil
}

// Int64 reads a fixed-width big-endian int64.
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Bool reads a single byte as a boolean.
func (d *Decoder) Bool() (bool, error) {
	b, err := d.Byte()
	return b == 1, err
}

// String reads a length-prefixed UTF-8 string.
func (d *Decoder) String() (string, error) {
	n, err := d.Uint32()
	if err != nil {
		return "", err
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	s := string(d.data[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

// RawBytes reads a length-prefixed byte slice.
func (d *Decoder) RawBytes() ([]byte, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	if err := d.need(int(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, d.data[d.pos:d.pos+int(n)])
	d.pos += int(n)
	return out, nil
}

// StringList reads a count-prefixed list of length-prefixed strings.
func (d *Decoder) StringList() ([]string, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := d.String()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Remaining reports whether unread bytes remain.
func (d *Decoder) Remaining() int { return len(d.data) - d.pos }
