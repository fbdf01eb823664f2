package meta

import (
	"bytes"
	"io"

	"github.com/mewkiz/pkg/readerutil"
	"github.com/pkg/errors"
)

// A Cursor reads fixed-width big-endian integers and byte runs from an
// underlying io.Reader, tracking how many bytes it has consumed. Every
// sub-decoder in this package is built on top of a Cursor instead of calling
// binary.Read and bit masks inline, so the "what am I computing" and "how
// does the read position move" concerns stay separate.
type Cursor struct {
	r       io.Reader
	n       int64 // bytes consumed so far
	scratch [8]byte
}

// NewCursor returns a Cursor reading from r.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: r}
}

// Pos returns the number of bytes consumed from the underlying reader.
func (c *Cursor) Pos() int64 {
	return c.n
}

func (c *Cursor) fill(n int) ([]byte, error) {
	buf := c.scratch[:n]
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return nil, errors.Wrap(err, "meta: short read")
	}
	c.n += int64(n)
	return buf, nil
}

// ReadU8 reads a single byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := readerutil.ReadByte(c.r)
	if err != nil {
		return 0, errors.Wrap(err, "meta: short read")
	}
	c.n++
	return b, nil
}

// ReadU16BE reads a big-endian uint16.
func (c *Cursor) ReadU16BE() (uint16, error) {
	buf, err := c.fill(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadU24BE reads a big-endian 24-bit unsigned integer into a uint32.
func (c *Cursor) ReadU24BE() (uint32, error) {
	buf, err := c.fill(3)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]), nil
}

// ReadU32BE reads a big-endian uint32.
func (c *Cursor) ReadU32BE() (uint32, error) {
	buf, err := c.fill(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadU32LE reads a little-endian uint32. Vorbis comment lengths are the only
// little-endian fields in an otherwise big-endian format.
func (c *Cursor) ReadU32LE() (uint32, error) {
	buf, err := c.fill(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// ReadU64BE reads a big-endian uint64.
func (c *Cursor) ReadU64BE() (uint64, error) {
	buf, err := c.fill(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// ReadBytes reads exactly n bytes and returns a freshly allocated copy (never
// aliasing the Cursor's internal scratch buffer), so the caller owns the
// result.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return nil, errors.Wrap(err, "meta: short read")
	}
	c.n += int64(n)
	return buf, nil
}

// ReadCString reads n bytes and returns the string up to (but excluding) the
// first NUL byte, trimming any trailing padding. Used for fixed-width
// NUL-padded ASCII fields: CUESHEET's MCN and per-track ISRC.
func (c *Cursor) ReadCString(n int) (string, error) {
	buf, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i != -1 {
		buf = buf[:i]
	}
	return string(buf), nil
}
