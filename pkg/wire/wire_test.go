package wire

import (
	"math"
	"testing"
)

func TestBitRoundTrip(t *testing.T) {
	w := &Writer{}
	w.WriteBits(0b101, 3)
	w.WriteBool(true)
	w.WriteBits(0x3FF, 10)
	w.WriteUint8(200)
	w.WriteUint32(0xDEADBEEF)

	r := NewReader(w.Bytes())
	if got := r.ReadBits(3); got != 0b101 {
		t.Errorf("ReadBits(3) = %b, want 101", got)
	}
	if !r.ReadBool() {
		t.Error("ReadBool = false, want true")
	}
	if got := r.ReadBits(10); got != 0x3FF {
		t.Errorf("ReadBits(10) = %x, want 3FF", got)
	}
	if got := r.ReadUint8(); got != 200 {
		t.Errorf("ReadUint8 = %d, want 200", got)
	}
	if got := r.ReadUint32(); got != 0xDEADBEEF {
		t.Errorf("ReadUint32 = %x, want DEADBEEF", got)
	}
	if r.Err() != nil {
		t.Errorf("unexpected error: %v", r.Err())
	}
}

func TestAlignedIntsAreLittleEndian(t *testing.T) {
	// Выровненные значения должны ложиться как обычный little-endian,
	// чтобы внешние инструменты могли читать заголовки без бит-ридера.
	w := &Writer{}
	w.WriteUint16(0x1234)

	buf := w.Bytes()
	if len(buf) != 2 || buf[0] != 0x34 || buf[1] != 0x12 {
		t.Errorf("uint16 layout = %x, want [34 12]", buf)
	}
}

func TestAlignPadsToByte(t *testing.T) {
	w := &Writer{}
	w.WriteBits(1, 1)
	w.Align()
	w.WriteUint8(0xAB)

	r := NewReader(w.Bytes())
	r.ReadBits(1)
	r.Align()
	if got := r.ReadUint8(); got != 0xAB {
		t.Errorf("value after align = %x, want AB", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	w := &Writer{}
	w.WriteBits(1, 3) // строка начинается не с границы байта
	w.WriteString("surviv")
	w.WriteString("")

	r := NewReader(w.Bytes())
	r.ReadBits(3)
	if got := r.ReadString(); got != "surviv" {
		t.Errorf("ReadString = %q, want surviv", got)
	}
	if got := r.ReadString(); got != "" {
		t.Errorf("ReadString = %q, want empty", got)
	}
}

func TestStringTruncatedAt255(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}

	w := &Writer{}
	w.WriteString(string(long))

	r := NewReader(w.Bytes())
	if got := r.ReadString(); len(got) != 255 {
		t.Errorf("string length = %d, want 255", len(got))
	}
}

func TestFloatQuantization(t *testing.T) {
	tests := []struct {
		v, min, max float64
		bits        uint
	}{
		{0, 0, 1024, 16},
		{512.37, 0, 1024, 16},
		{1024, 0, 1024, 16},
		{-1, -1, 1, 8},
		{0.25, -1, 1, 8},
		{100, 0, 100, 8},
	}

	for _, tt := range tests {
		w := &Writer{}
		w.WriteFloat(tt.v, tt.min, tt.max, tt.bits)

		r := NewReader(w.Bytes())
		got := r.ReadFloat(tt.min, tt.max, tt.bits)

		// Ошибка не больше половины шага квантования
		step := (tt.max - tt.min) / float64(uint64(1)<<tt.bits-1)
		if math.Abs(got-tt.v) > step/2+1e-9 {
			t.Errorf("WriteFloat(%v, [%v,%v], %d bits): got %v, max error %v",
				tt.v, tt.min, tt.max, tt.bits, got, step/2)
		}
	}
}

func TestFloatClampsOutOfRange(t *testing.T) {
	w := &Writer{}
	w.WriteFloat(2000, 0, 1024, 16)
	w.WriteFloat(-5, 0, 1024, 16)

	r := NewReader(w.Bytes())
	if got := r.ReadFloat(0, 1024, 16); got != 1024 {
		t.Errorf("overflow clamped to %v, want 1024", got)
	}
	if got := r.ReadFloat(0, 1024, 16); got != 0 {
		t.Errorf("underflow clamped to %v, want 0", got)
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{0xFF})
	r.ReadUint8()

	if got := r.ReadUint8(); got != 0 {
		t.Errorf("read past end = %d, want 0", got)
	}
	if r.Err() != ErrShortBuffer {
		t.Errorf("Err = %v, want ErrShortBuffer", r.Err())
	}
}

func TestRemaining(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if r.Remaining() != 3 {
		t.Errorf("Remaining = %d, want 3", r.Remaining())
	}
	r.ReadUint8()
	if r.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", r.Remaining())
	}
	r.ReadBits(3)
	if r.Remaining() != 1 {
		t.Errorf("Remaining after partial byte = %d, want 1", r.Remaining())
	}
}
