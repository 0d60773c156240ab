// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"errors"
	"io"
)

// minRead is the smallest spare capacity ReadFrom hands to a Read call.
const minRead = 512

var (
	errInvalidWrite = errors.New("minivec: Buffer.WriteTo: invalid Write count")
	errNegativeRead = errors.New("minivec: Buffer.ReadFrom: reader returned negative count")
)

// Buffer is a bytes.Buffer-like struct backed by a Vec[byte].
// It implements io.Writer, io.Reader, io.ByteReader, io.WriterTo and
// io.ReaderFrom. All memory comes from the process-wide Allocator, so a
// Buffer works with an ArenaAllocator as well.
//
// The zero Buffer is empty and ready to use. Call Release when done with it.
type Buffer struct {
	vec Vec[byte]
	off int // read offset
}

// NewBuffer creates a Buffer with room for size bytes.
func NewBuffer(size int) *Buffer {
	return &Buffer{vec: WithCapacity[byte](size)}
}

// Write implements io.Writer interface.
// It appends len(p) bytes from p to the buffer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.vec.ExtendFromSlice(p)
	return len(p), nil
}

// WriteByte appends a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	b.vec.Push(c)
	return nil
}

// WriteString appends a string to the buffer.
func (b *Buffer) WriteString(s string) (n int, err error) {
	if len(s) == 0 {
		return 0, nil
	}
	l := b.vec.Len()
	b.vec.mustReserve("write", len(s))
	copy(b.vec.slots(l + len(s))[l:], s)
	b.vec.setLen(l + len(s))
	return len(s), nil
}

// WriteTo writes the unread portion of the buffer to w until it is drained
// or an error occurs.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	if b.Len() == 0 {
		return 0, nil
	}
	unread := b.Bytes()
	m, err := w.Write(unread)
	if m > len(unread) {
		panic(errInvalidWrite)
	}
	b.advance(m)
	n = int64(m)
	if err != nil {
		return n, err
	}
	if m != len(unread) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Read reads up to len(p) bytes from the buffer into p.
// It returns io.EOF once the buffer has no unread bytes left.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.Len() == 0 {
		b.Reset()
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n = copy(p, b.Bytes())
	b.advance(n)
	return n, nil
}

// ReadByte reads and returns the next byte from the buffer.
// If no byte is available, it returns io.EOF.
func (b *Buffer) ReadByte() (byte, error) {
	if b.Len() == 0 {
		b.Reset()
		return 0, io.EOF
	}
	c := b.vec.Get(b.off)
	b.advance(1)
	return c, nil
}

// Next returns a slice containing the next n bytes from the buffer,
// advancing the buffer as if the bytes had been returned by Read.
// The slice is only valid until the next buffer modification.
func (b *Buffer) Next(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	n = min(n, b.Len())
	data := b.Bytes()[:n:n]
	b.off += n
	return data
}

// ReadFrom implements io.ReaderFrom interface.
// It reads data from r until EOF or error, reading straight into the spare
// capacity of the underlying vector.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	for {
		if len(b.vec.SpareCapacity()) < minRead {
			b.vec.Reserve(minRead)
		}
		l := b.vec.Len()
		m, er := r.Read(b.vec.SpareCapacity())
		if m < 0 {
			panic(errNegativeRead)
		}
		b.vec.SetLen(l + m)
		n += int64(m)
		if er != nil {
			if errors.Is(er, io.EOF) {
				return n, nil
			}
			return n, er
		}
	}
}

// Bytes returns a slice of length b.Len() holding the unread portion of the buffer.
// The slice is valid for use only until the next buffer modification.
func (b *Buffer) Bytes() []byte {
	if b.Len() == 0 {
		return []byte{}
	}
	return b.vec.Slice()[b.off:]
}

// String returns the contents of the unread portion of the buffer as a string.
func (b *Buffer) String() string {
	if b == nil {
		return "<nil>"
	}
	return string(b.Bytes())
}

// Len returns the number of bytes of the unread portion of the buffer.
func (b *Buffer) Len() int {
	return b.vec.Len() - b.off
}

// Cap returns the capacity of the buffer's underlying vector.
func (b *Buffer) Cap() int {
	return b.vec.Cap()
}

// Reset resets the buffer to be empty but keeps its capacity.
func (b *Buffer) Reset() {
	b.vec.setLen(0)
	b.off = 0
}

// Truncate discards all but the first n unread bytes from the buffer.
// It panics with a *RangeError if n is negative or greater than the length of the buffer.
func (b *Buffer) Truncate(n int) {
	if n == 0 {
		b.Reset()
		return
	}
	checkRange("truncate", 0, n, b.Len())
	b.vec.setLen(b.off + n)
}

// Release gives the buffer's memory back to the allocator. The buffer is
// empty afterwards and may be reused.
func (b *Buffer) Release() {
	b.vec.Release()
	b.off = 0
}

// advance consumes n unread bytes. A fully read buffer rewinds so the space
// is reused by later writes.
func (b *Buffer) advance(n int) {
	b.off += n
	if b.off == b.vec.Len() {
		b.Reset()
	}
}
