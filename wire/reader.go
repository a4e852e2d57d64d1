// Package wire implements the small subset of the protobuf wire format needed
// to decode vehicle position feeds without generated code or reflection.
// A Reader is a forward-only cursor; every read reports failure through a
// boolean instead of an error so callers can stop decoding the enclosing
// message and keep whatever was already decoded.
package wire

import "encoding/binary"

// Type is the 3-bit wire type carried in every field tag.
type Type int

const (
	TypeVarint  Type = 0
	TypeFixed64 Type = 1
	TypeBytes   Type = 2
	TypeFixed32 Type = 5
)

// Reader is a cursor over a byte buffer. The zero value is an empty reader.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// ReadVarint reads one base-128 varint. It fails when the buffer ends
// mid-varint or the encoding would need more than 64 bits.
func (r *Reader) ReadVarint() (uint64, bool) {
	var v uint64
	var shift uint
	for r.pos < len(r.buf) {
		if shift >= 64 {
			return 0, false
		}
		b := r.buf[r.pos]
		r.pos++
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, true
		}
		shift += 7
	}
	return 0, false
}

// ReadFixed32 reads a 32-bit little-endian word.
func (r *Reader) ReadFixed32() (uint32, bool) {
	if r.Remaining() < 4 {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, true
}

// ReadBytes reads a varint length prefix followed by that many bytes. The
// declared length is checked against the remaining buffer, so a crafted
// length can never read out of bounds.
func (r *Reader) ReadBytes() ([]byte, bool) {
	n, ok := r.ReadVarint()
	if !ok || n > uint64(r.Remaining()) {
		return nil, false
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, true
}

// ReadKey decodes a field tag into its field number and wire type.
// Field number zero is reserved and treated as a decode failure.
func (r *Reader) ReadKey() (int, Type, bool) {
	tag, ok := r.ReadVarint()
	if !ok || tag>>3 == 0 {
		return 0, 0, false
	}
	return int(tag >> 3), Type(tag & 0x7), true
}

// SkipField advances past the payload of a field with the given wire type.
// An unrecognized wire type is unskippable and returns false.
func (r *Reader) SkipField(typ Type) bool {
	switch typ {
	case TypeVarint:
		_, ok := r.ReadVarint()
		return ok
	case TypeFixed64:
		if r.Remaining() < 8 {
			return false
		}
		r.pos += 8
		return true
	case TypeBytes:
		_, ok := r.ReadBytes()
		return ok
	case TypeFixed32:
		if r.Remaining() < 4 {
			return false
		}
		r.pos += 4
		return true
	}
	return false
}
