package wire

import (
	"bytes"
	"testing"
)

func TestReadVarint(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		want   uint64
		wantOK bool
	}{
		{
			name:   "single byte",
			input:  []byte{0x05},
			want:   5,
			wantOK: true,
		},
		{
			name:   "two bytes",
			input:  []byte{0xac, 0x02}, // 300
			want:   300,
			wantOK: true,
		},
		{
			name:   "max uint64",
			input:  []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
			want:   ^uint64(0),
			wantOK: true,
		},
		{
			name:   "empty buffer",
			input:  nil,
			wantOK: false,
		},
		{
			name:   "truncated mid-varint",
			input:  []byte{0x80},
			wantOK: false,
		},
		{
			name:   "overlong encoding",
			input:  []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewReader(tt.input).ReadVarint()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadFixed32(t *testing.T) {
	r := NewReader([]byte{0x78, 0x56, 0x34, 0x12})
	got, ok := r.ReadFixed32()
	if !ok || got != 0x12345678 {
		t.Errorf("got %#x ok=%v, want 0x12345678 ok=true", got, ok)
	}
	if _, ok := NewReader([]byte{1, 2, 3}).ReadFixed32(); ok {
		t.Error("expected failure with fewer than 4 bytes")
	}
}

func TestReadBytes(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		want   []byte
		wantOK bool
	}{
		{
			name:   "normal payload",
			input:  []byte{0x03, 'a', 'b', 'c'},
			want:   []byte("abc"),
			wantOK: true,
		},
		{
			name:   "empty payload",
			input:  []byte{0x00},
			want:   []byte{},
			wantOK: true,
		},
		{
			name:   "declared length exceeds buffer",
			input:  []byte{0x05, 'a', 'b'},
			wantOK: false,
		},
		{
			name:   "crafted huge length",
			input:  []byte{0xff, 0xff, 0xff, 0xff, 0x0f, 'a'},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewReader(tt.input).ReadBytes()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !bytes.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadKey(t *testing.T) {
	// field 4, wire type 2: (4<<3)|2 = 0x22
	field, typ, ok := NewReader([]byte{0x22}).ReadKey()
	if !ok || field != 4 || typ != TypeBytes {
		t.Errorf("got field=%d typ=%d ok=%v, want 4/TypeBytes/true", field, typ, ok)
	}
	// field 0 is reserved
	if _, _, ok := NewReader([]byte{0x02}).ReadKey(); ok {
		t.Error("expected failure for field number 0")
	}
	if _, _, ok := NewReader(nil).ReadKey(); ok {
		t.Error("expected failure on empty buffer")
	}
}

func TestSkipField(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		typ    Type
		wantOK bool
		after  int // remaining bytes after a successful skip
	}{
		{name: "varint", input: []byte{0xac, 0x02, 0xff}, typ: TypeVarint, wantOK: true, after: 1},
		{name: "fixed64", input: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, typ: TypeFixed64, wantOK: true, after: 1},
		{name: "bytes", input: []byte{0x02, 'h', 'i', 0xff}, typ: TypeBytes, wantOK: true, after: 1},
		{name: "fixed32", input: []byte{1, 2, 3, 4, 5}, typ: TypeFixed32, wantOK: true, after: 1},
		{name: "truncated fixed64", input: []byte{1, 2, 3}, typ: TypeFixed64, wantOK: false},
		{name: "unrecognized wire type", input: []byte{1, 2, 3}, typ: Type(3), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.input)
			ok := r.SkipField(tt.typ)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && r.Remaining() != tt.after {
				t.Errorf("remaining = %d, want %d", r.Remaining(), tt.after)
			}
		})
	}
}
