// Package wire - бинарный кодек исходящего протокола.
//
// Все числовые и позиционные поля пишутся с фиксированной квантизацией:
// float зажимается в [min, max] и кодируется заданным числом бит.
// Биты пишутся LSB-first, поэтому выровненные 8/16/32-битные значения
// ложатся в буфер как обычный little-endian.
package wire

import "math"

// Writer - битовый писатель. Нулевое значение готово к использованию.
type Writer struct {
	buf    []byte
	bitPos uint // занятые биты в последнем байте (0..7); 0 = байт полон/пуст
}

// WriteBits пишет n младших бит значения v (n <= 32).
func (w *Writer) WriteBits(v uint32, n uint) {
	for n > 0 {
		if w.bitPos == 0 {
			w.buf = append(w.buf, 0)
		}
		free := 8 - w.bitPos
		take := n
		if take > free {
			take = free
		}
		mask := uint32(1)<<take - 1
		w.buf[len(w.buf)-1] |= byte(v&mask) << w.bitPos
		v >>= take
		n -= take
		w.bitPos = (w.bitPos + take) % 8
	}
}

func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteBits(1, 1)
	} else {
		w.WriteBits(0, 1)
	}
}

// Align дописывает нули до границы байта.
// Каждое сообщение протокола начинается с выровненного байта типа.
func (w *Writer) Align() {
	w.bitPos = 0
}

func (w *Writer) WriteUint8(v uint8)   { w.WriteBits(uint32(v), 8) }
func (w *Writer) WriteUint16(v uint16) { w.WriteBits(uint32(v), 16) }
func (w *Writer) WriteUint32(v uint32) { w.WriteBits(v, 32) }

// WriteBytes пишет сырые байты, предварительно выравнивая буфер.
func (w *Writer) WriteBytes(b []byte) {
	w.Align()
	w.buf = append(w.buf, b...)
}

// WriteString пишет строку с длиной-префиксом (uint8).
// Строки длиннее 255 байт протоколом не предусмотрены.
func (w *Writer) WriteString(s string) {
	if len(s) > 255 {
		s = s[:255]
	}
	w.WriteUint8(uint8(len(s)))
	w.WriteBytes([]byte(s))
}

// WriteFloat квантует v в диапазоне [min, max] заданным числом бит.
func (w *Writer) WriteFloat(v, min, max float64, bits uint) {
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	steps := float64(uint64(1)<<bits - 1)
	q := math.Round((v - min) / (max - min) * steps)
	w.WriteBits(uint32(q), bits)
}

// Bytes возвращает накопленный буфер (с паддингом до байта).
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len - длина буфера в байтах.
func (w *Writer) Len() int {
	return len(w.buf)
}
