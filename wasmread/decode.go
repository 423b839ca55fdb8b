package wasmread

import (
	"fmt"

	"go.uber.org/zap"
)

// Decode reads the type, import, function and export sections of a binary
// module. All other sections are skipped. On failure no Module is returned.
func Decode(b []byte, opts ...Option) (*Module, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxSize > 0 && len(b) > o.maxSize {
		return nil, fmt.Errorf("module of %d bytes exceeds limit of %d: %w", len(b), o.maxSize, ErrInputTooLarge)
	}

	d := decoder{
		p:    newParser(b),
		opts: o,
		m: &Module{
			Signatures: []Signature{},
			Imports:    []Import{},
			Functions:  []uint32{},
			Exports:    []Export{},
		},
	}

	if err := d.p.Expect("magic number", Magic, ErrBadMagic); err != nil {
		return nil, err
	}
	if err := d.p.Expect("version number", Version, ErrUnsupportedVersion); err != nil {
		return nil, err
	}

	for !d.p.AtEnd() {
		if err := d.section(); err != nil {
			return nil, err
		}
	}

	return d.m, nil
}

type decoder struct {
	p    parser
	opts options
	m    *Module
}

func (d *decoder) section() error {
	p := &d.p
	at := p.cur

	rawID, err := p.ReadU32("section id")
	if err != nil {
		return err
	}
	id := SectionID(rawID)
	size, err := p.ReadU32(fmt.Sprintf("size of %s section", id))
	if err != nil {
		return err
	}

	start := p.cur
	if uint64(size) > uint64(len(p.buf)-start) {
		return fmt.Errorf("%s section at offset %d: declared size %d but only %d bytes remain: %w",
			id, at, size, len(p.buf)-start, ErrTruncatedSection)
	}
	end := start + int(size)

	d.opts.log.Debug("section",
		zap.Stringer("id", id),
		zap.Int("offset", at),
		zap.Uint32("size", size),
	)

	prev := p.Limit(end)
	known := true
	switch id {
	case SectionType:
		err = d.typeSection()
	case SectionImport:
		err = d.importSection()
	case SectionFunction:
		err = d.functionSection()
	case SectionExport:
		err = d.exportSection()
	default:
		known = false
		d.opts.log.Debug("skipping section", zap.Stringer("id", id), zap.Uint32("size", size))
	}
	if err != nil {
		return fmt.Errorf("%s section: %w", id, err)
	}

	if known && p.cur != end {
		d.opts.log.Debug("section not fully consumed",
			zap.Stringer("id", id),
			zap.Int("unread", end-p.cur),
		)
	}
	p.Limit(prev)
	p.Seek(end)
	return nil
}

func (d *decoder) typeSection() error {
	p := &d.p
	count, err := p.ReadU32("num types")
	if err != nil {
		return err
	}
	for i := range count {
		sig, err := d.signature(i)
		if err != nil {
			return err
		}
		d.m.Signatures = append(d.m.Signatures, sig)
	}
	return nil
}

func (d *decoder) signature(i uint32) (Signature, error) {
	p := &d.p

	at := p.cur
	form, err := p.ReadS32(fmt.Sprintf("form of type %d", i))
	if err != nil {
		return Signature{}, err
	}
	if ValType(form) != ValFunc {
		return Signature{}, fmt.Errorf("type %d at offset %d: got form %d: %w", i, at, form, ErrMalformedTypeEntry)
	}

	numParams, err := p.ReadU32(fmt.Sprintf("num params of type %d", i))
	if err != nil {
		return Signature{}, err
	}
	sig := Signature{
		Params: []ValType{},
		Return: ValVoid,
	}
	for j := range numParams {
		vt, err := p.ReadValType(fmt.Sprintf("param %d of type %d", j, i))
		if err != nil {
			return Signature{}, err
		}
		sig.Params = append(sig.Params, vt)
	}

	at = p.cur
	numResults, err := p.ReadU32(fmt.Sprintf("num results of type %d", i))
	if err != nil {
		return Signature{}, err
	}
	switch numResults {
	case 0:
	case 1:
		sig.Return, err = p.ReadValType(fmt.Sprintf("result of type %d", i))
		if err != nil {
			return Signature{}, err
		}
	default:
		return Signature{}, fmt.Errorf("type %d at offset %d: %d results: %w", i, at, numResults, ErrUnsupportedMultiValue)
	}

	return sig, nil
}

func (d *decoder) importSection() error {
	p := &d.p
	count, err := p.ReadU32("num imports")
	if err != nil {
		return err
	}
	for i := range count {
		imp, err := d.importEntry(i)
		if err != nil {
			return err
		}
		d.m.Imports = append(d.m.Imports, imp)
	}
	return nil
}

func (d *decoder) importEntry(i uint32) (Import, error) {
	p := &d.p

	mod, err := p.ReadName(fmt.Sprintf("module name of import %d", i), d.opts.strictUTF8)
	if err != nil {
		return nil, err
	}
	name, err := p.ReadName(fmt.Sprintf("name of import %d", i), d.opts.strictUTF8)
	if err != nil {
		return nil, err
	}
	thing := fmt.Sprintf("import %s.%s", mod, name)

	at := p.cur
	b, err := p.ReadU8(fmt.Sprintf("kind of %s", thing))
	if err != nil {
		return nil, err
	}
	kind, ok := externalKindOf(b)
	if !ok {
		return nil, fmt.Errorf("%s at offset %d: %w %d", thing, at, ErrUnknownImportKind, b)
	}

	switch kind {
	case KindFunction:
		sig, err := p.ReadU32(fmt.Sprintf("signature of %s", thing))
		if err != nil {
			return nil, err
		}
		return &FunctionImport{Module: mod, Name: name, Signature: sig}, nil
	case KindGlobal:
		vt, err := p.ReadValType(fmt.Sprintf("type of %s", thing))
		if err != nil {
			return nil, err
		}
		mut, err := p.ReadU8(fmt.Sprintf("mutability of %s", thing))
		if err != nil {
			return nil, err
		}
		return &GlobalImport{Module: mod, Name: name, Type: vt, Mutable: mut == 1}, nil
	case KindTable:
		at := p.cur
		et, err := p.ReadS32(fmt.Sprintf("element type of %s", thing))
		if err != nil {
			return nil, err
		}
		if ValType(et) != ValAnyfunc {
			return nil, fmt.Errorf("%s at offset %d: got element type %d: %w", thing, at, et, ErrUnsupportedTableElementType)
		}
		initial, max, err := p.ReadLimits(thing)
		if err != nil {
			return nil, err
		}
		return &TableImport{Module: mod, Name: name, Initial: initial, Maximum: max}, nil
	case KindMemory:
		initial, max, err := p.ReadLimits(thing)
		if err != nil {
			return nil, err
		}
		return &MemoryImport{Module: mod, Name: name, Initial: initial, Maximum: max}, nil
	}
	panic(fmt.Sprintf("unhandled external kind %v", kind))
}

func (d *decoder) functionSection() error {
	p := &d.p
	count, err := p.ReadU32("num funcs")
	if err != nil {
		return err
	}
	for i := range count {
		typeIdx, err := p.ReadU32(fmt.Sprintf("type of func %d", i))
		if err != nil {
			return err
		}
		d.m.Functions = append(d.m.Functions, typeIdx)
	}
	return nil
}

func (d *decoder) exportSection() error {
	p := &d.p
	count, err := p.ReadU32("num exports")
	if err != nil {
		return err
	}
	for i := range count {
		name, err := p.ReadName(fmt.Sprintf("name of export %d", i), d.opts.strictUTF8)
		if err != nil {
			return err
		}
		at := p.cur
		b, err := p.ReadU8(fmt.Sprintf("kind of export %q", name))
		if err != nil {
			return err
		}
		kind, ok := externalKindOf(b)
		if !ok {
			return fmt.Errorf("export %q at offset %d: %w %d", name, at, ErrUnknownExportKind, b)
		}
		idx, err := p.ReadU32(fmt.Sprintf("index of export %q", name))
		if err != nil {
			return err
		}
		d.m.Exports = append(d.m.Exports, Export{Name: name, Kind: kind, Index: idx})
	}
	return nil
}
