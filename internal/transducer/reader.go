package transducer

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// cursor is a forward-only reader over an in-memory transducer image. All
// multi-byte fields in the OL format are little-endian on disk; reading
// them with encoding/binary.LittleEndian is correct on every host
// regardless of its native byte order, so no separate big-endian flip pass
// is needed the way the original C implementation required one.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) peek(n int) ([]byte, bool) {
	if c.remaining() < n {
		return nil, false
	}
	return c.data[c.pos : c.pos+n], true
}

func (c *cursor) skip(n int) {
	c.pos += n
}

func (c *cursor) readByte() (byte, error) {
	if c.remaining() < 1 {
		return 0, errors.New("unexpected end of transducer data")
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readUint16() (uint16, error) {
	if c.remaining() < 2 {
		return 0, errors.New("unexpected end of transducer data reading uint16")
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) readUint32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, errors.New("unexpected end of transducer data reading uint32")
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) readFloat32() (float32, error) {
	bits, err := c.readUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (c *cursor) readBool32() (bool, error) {
	v, err := c.readUint32()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// readCString reads bytes up to and including the next NUL, returning the
// string without the terminator.
func (c *cursor) readCString() (string, error) {
	start := c.pos
	for c.pos < len(c.data) {
		if c.data[c.pos] == 0 {
			s := string(c.data[start:c.pos])
			c.pos++
			return s, nil
		}
		c.pos++
	}
	return "", errors.Errorf("unterminated string starting at offset %d", start)
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, errors.Errorf("wanted %d bytes, have %d", n, c.remaining())
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
