package wasmread_test

import (
	"github.com/bvisness/wasm-read/wasmread"
	"github.com/jcalabro/leb128"
)

// moduleBuilder assembles module bytes for tests.
type moduleBuilder struct {
	buf []byte
}

func newModule() *moduleBuilder {
	return &moduleBuilder{buf: []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}}
}

// section appends a section whose declared size matches its payload.
func (b *moduleBuilder) section(id wasmread.SectionID, payload ...[]byte) *moduleBuilder {
	body := cat(payload...)
	return b.rawSection(id, uint32(len(body)), body)
}

func (b *moduleBuilder) rawSection(id wasmread.SectionID, size uint32, body []byte) *moduleBuilder {
	b.buf = append(b.buf, u32(uint32(id))...)
	b.buf = append(b.buf, u32(size)...)
	b.buf = append(b.buf, body...)
	return b
}

func (b *moduleBuilder) bytes() []byte {
	return b.buf
}

func u32(v uint32) []byte {
	return leb128.EncodeU64(uint64(v))
}

func s32(v int32) []byte {
	return leb128.EncodeS64(int64(v))
}

func vt(v wasmread.ValType) []byte {
	return s32(int32(v))
}

func name(s string) []byte {
	return cat(u32(uint32(len(s))), []byte(s))
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func funcType(params []wasmread.ValType, results ...wasmread.ValType) []byte {
	out := cat(vt(wasmread.ValFunc), u32(uint32(len(params))))
	for _, p := range params {
		out = append(out, vt(p)...)
	}
	out = append(out, u32(uint32(len(results)))...)
	for _, r := range results {
		out = append(out, vt(r)...)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
