package wire

import "errors"

// ErrShortBuffer возвращается при чтении за концом буфера.
var ErrShortBuffer = errors.New("wire: short buffer")

// Reader - зеркало Writer. Держит собственную позицию; буфер не копируется.
type Reader struct {
	buf    []byte
	byteAt int
	bitPos uint
	err    error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Err возвращает первую ошибку чтения (дальнейшие чтения дают нули).
func (r *Reader) Err() error {
	return r.err
}

// ReadBits читает n бит (n <= 32), LSB-first.
func (r *Reader) ReadBits(n uint) uint32 {
	var out uint32
	var got uint
	for n > 0 {
		if r.byteAt >= len(r.buf) {
			r.err = ErrShortBuffer
			return 0
		}
		free := 8 - r.bitPos
		take := n
		if take > free {
			take = free
		}
		mask := uint32(1)<<take - 1
		bits := (uint32(r.buf[r.byteAt]) >> r.bitPos) & mask
		out |= bits << got
		got += take
		n -= take
		r.bitPos += take
		if r.bitPos == 8 {
			r.bitPos = 0
			r.byteAt++
		}
	}
	return out
}

func (r *Reader) ReadBool() bool {
	return r.ReadBits(1) == 1
}

// Align пропускает остаток текущего байта.
func (r *Reader) Align() {
	if r.bitPos != 0 {
		r.bitPos = 0
		r.byteAt++
	}
}

func (r *Reader) ReadUint8() uint8   { return uint8(r.ReadBits(8)) }
func (r *Reader) ReadUint16() uint16 { return uint16(r.ReadBits(16)) }
func (r *Reader) ReadUint32() uint32 { return r.ReadBits(32) }

func (r *Reader) ReadBytes(n int) []byte {
	r.Align()
	if r.byteAt+n > len(r.buf) {
		r.err = ErrShortBuffer
		return nil
	}
	out := r.buf[r.byteAt : r.byteAt+n]
	r.byteAt += n
	return out
}

func (r *Reader) ReadString() string {
	n := int(r.ReadUint8())
	return string(r.ReadBytes(n))
}

// ReadFloat - обратная квантизация WriteFloat.
func (r *Reader) ReadFloat(min, max float64, bits uint) float64 {
	steps := float64(uint64(1)<<bits - 1)
	q := float64(r.ReadBits(bits))
	return min + q/steps*(max-min)
}

// Remaining - сколько целых байт осталось.
func (r *Reader) Remaining() int {
	n := len(r.buf) - r.byteAt
	if r.bitPos != 0 {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}
