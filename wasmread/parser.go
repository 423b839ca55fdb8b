package wasmread

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/bvisness/wasm-read/utils"
	"github.com/jcalabro/leb128"
)

// parser is a cursor over an in-memory module. All reads are bounded by end,
// which is the end of the whole buffer or of the section currently being
// decoded.
type parser struct {
	buf []byte
	cur int
	end int

	// Set when any read ran into end. The leb128 decoders treat io.EOF as the
	// end of the value, so this is how truncation is detected.
	eof bool
}

var (
	_ io.Reader     = &parser{}
	_ io.ByteReader = &parser{}
)

func newParser(b []byte) parser {
	return parser{
		buf: b,
		cur: 0,
		end: len(b),
	}
}

func (p *parser) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if p.cur >= p.end {
		p.eof = true
		return 0, io.EOF
	}
	n := copy(b, p.buf[p.cur:p.end])
	p.cur += n
	return n, nil
}

func (p *parser) ReadByte() (byte, error) {
	if p.cur >= p.end {
		p.eof = true
		return 0, io.EOF
	}
	b := p.buf[p.cur]
	p.cur++
	return b, nil
}

func (p *parser) AtEnd() bool {
	return p.cur >= p.end
}

// Limit bounds all reads to [cur, end) and returns the previous bound.
func (p *parser) Limit(end int) int {
	prev := p.end
	p.end = end
	return prev
}

// Seek moves the cursor to an absolute offset. It is only used to realign
// after a section, so the offset is always within the buffer.
func (p *parser) Seek(at int) {
	p.cur = at
}

func (p *parser) ReadN(thing string, n int) ([]byte, error) {
	at := p.cur
	if n < 0 || n > p.end-p.cur {
		return nil, fmt.Errorf("%s at offset %d: need %d bytes, have %d: %w", thing, at, n, p.end-p.cur, ErrUnexpectedEndOfInput)
	}
	bytes := p.buf[p.cur : p.cur+n]
	p.cur += n
	return bytes, nil
}

func (p *parser) ReadU8(thing string) (byte, error) {
	at := p.cur
	b, err := p.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%s at offset %d: %w", thing, at, ErrUnexpectedEndOfInput)
	}
	return b, nil
}

func (p *parser) ReadFixedU32(thing string) (uint32, error) {
	bytes, err := p.ReadN(thing, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bytes), nil
}

// A 32-bit LEB128 value never needs more than this many bytes.
const maxVarint32Len = 5

func (p *parser) ReadU32(thing string) (uint32, error) {
	at := p.cur
	p.eof = false
	v, err := leb128.DecodeU64(p)
	n := p.cur - at
	if p.eof || n == 0 {
		return 0, fmt.Errorf("%s at offset %d: %w", thing, at, ErrUnexpectedEndOfInput)
	}
	if err != nil {
		return 0, fmt.Errorf("%s at offset %d: %w: %v", thing, at, ErrOverflow, err)
	}
	if n > maxVarint32Len || v > math.MaxUint32 {
		return 0, fmt.Errorf("%s at offset %d: %w: unsigned value exceeds 32 bits", thing, at, ErrOverflow)
	}
	return uint32(v), nil
}

func (p *parser) ReadS32(thing string) (int32, error) {
	at := p.cur
	p.eof = false
	v, err := leb128.DecodeS64(p)
	n := p.cur - at
	if p.eof || n == 0 {
		return 0, fmt.Errorf("%s at offset %d: %w", thing, at, ErrUnexpectedEndOfInput)
	}
	if err != nil {
		return 0, fmt.Errorf("%s at offset %d: %w: %v", thing, at, ErrOverflow, err)
	}
	if n > maxVarint32Len || !utils.InRange(v, math.MinInt32, math.MaxInt32) {
		return 0, fmt.Errorf("%s at offset %d: %w: signed value exceeds 32 bits", thing, at, ErrOverflow)
	}
	return int32(v), nil
}

// ReadName reads a length-prefixed UTF-8 string. Malformed sequences are
// replaced with U+FFFD unless strict is set.
func (p *parser) ReadName(thing string, strict bool) (string, error) {
	n, err := p.ReadU32(thing)
	if err != nil {
		return "", err
	}
	at := p.cur
	raw, err := p.ReadN(thing, int(n))
	if err != nil {
		return "", err
	}
	s, bad := decodeUTF8(raw)
	if strict && bad >= 0 {
		return "", fmt.Errorf("%s at offset %d: %w", thing, at+bad, ErrInvalidUTF8)
	}
	return s, nil
}

func (p *parser) ReadValType(thing string) (ValType, error) {
	at := p.cur
	tag, err := p.ReadS32(thing)
	if err != nil {
		return 0, err
	}
	vt, ok := valTypeOf(tag)
	if !ok {
		return 0, fmt.Errorf("%s at offset %d: %w %d", thing, at, ErrUnknownValueType, tag)
	}
	return vt, nil
}

func (p *parser) ReadLimits(thing string) (initial uint32, maximum *uint32, err error) {
	flags, err := p.ReadU8(fmt.Sprintf("limits flags for %s", thing))
	if err != nil {
		return 0, nil, err
	}
	initial, err = p.ReadU32(fmt.Sprintf("limits initial for %s", thing))
	if err != nil {
		return 0, nil, err
	}
	if flags == 1 {
		max, err := p.ReadU32(fmt.Sprintf("limits maximum for %s", thing))
		if err != nil {
			return 0, nil, err
		}
		maximum = &max
	}
	return initial, maximum, nil
}

func (p *parser) Expect(thing string, want uint32, mismatch error) error {
	at := p.cur
	actual, err := p.ReadFixedU32(thing)
	if err != nil {
		return err
	}
	if actual != want {
		return fmt.Errorf("%s at offset %d: expected %#08x but got %#08x: %w", thing, at, want, actual, mismatch)
	}
	return nil
}
