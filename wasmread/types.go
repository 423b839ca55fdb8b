package wasmread

import "fmt"

const (
	Magic   uint32 = 0x6d736100 // "\0asm"
	Version uint32 = 1
)

type ValType int32

const (
	// The hex bytes in here refer to the number's encoding in SLEB128.
	ValI32     ValType = -0x01 // 0x7F
	ValI64     ValType = -0x02 // 0x7E
	ValF32     ValType = -0x03 // 0x7D
	ValF64     ValType = -0x04 // 0x7C
	ValAnyfunc ValType = -0x10 // 0x70
	ValFunc    ValType = -0x20 // 0x60
	ValVoid    ValType = -0x40 // 0x40
)

func valTypeOf(tag int32) (ValType, bool) {
	switch vt := ValType(tag); vt {
	case ValI32, ValI64, ValF32, ValF64, ValAnyfunc, ValFunc, ValVoid:
		return vt, true
	default:
		return 0, false
	}
}

func (vt ValType) String() string {
	switch vt {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValAnyfunc:
		return "anyfunc"
	case ValFunc:
		return "func"
	case ValVoid:
		return "void"
	default:
		return fmt.Sprintf("ValType(%d)", int32(vt))
	}
}

type ExternalKind byte

const (
	KindFunction ExternalKind = 0
	KindTable    ExternalKind = 1
	KindMemory   ExternalKind = 2
	KindGlobal   ExternalKind = 3
)

func externalKindOf(b byte) (ExternalKind, bool) {
	switch k := ExternalKind(b); k {
	case KindFunction, KindTable, KindMemory, KindGlobal:
		return k, true
	default:
		return 0, false
	}
}

func (k ExternalKind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindTable:
		return "Table"
	case KindMemory:
		return "Memory"
	case KindGlobal:
		return "Global"
	default:
		return fmt.Sprintf("ExternalKind(%d)", byte(k))
	}
}

type SectionID uint32

const (
	SectionCustom   SectionID = 0
	SectionType     SectionID = 1
	SectionImport   SectionID = 2
	SectionFunction SectionID = 3
	SectionTable    SectionID = 4
	SectionMemory   SectionID = 5
	SectionGlobal   SectionID = 6
	SectionExport   SectionID = 7
	SectionStart    SectionID = 8
	SectionElement  SectionID = 9
	SectionCode     SectionID = 10
	SectionData     SectionID = 11
)

func (id SectionID) String() string {
	switch id {
	case SectionCustom:
		return "custom"
	case SectionType:
		return "type"
	case SectionImport:
		return "import"
	case SectionFunction:
		return "function"
	case SectionTable:
		return "table"
	case SectionMemory:
		return "memory"
	case SectionGlobal:
		return "global"
	case SectionExport:
		return "export"
	case SectionStart:
		return "start"
	case SectionElement:
		return "element"
	case SectionCode:
		return "code"
	case SectionData:
		return "data"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(id))
	}
}

// Signature is a function type. Return is ValVoid when the function has no
// result.
type Signature struct {
	Params []ValType
	Return ValType
}

// Import is one of *FunctionImport, *TableImport, *MemoryImport or
// *GlobalImport.
type Import interface {
	ModuleName() string
	EntityName() string
	Kind() ExternalKind

	isImport()
}

type FunctionImport struct {
	Module string
	Name   string
	// Index into Module.Signatures.
	Signature uint32
}

type TableImport struct {
	Module  string
	Name    string
	Initial uint32
	Maximum *uint32 // nil when the import has no maximum
}

type MemoryImport struct {
	Module  string
	Name    string
	Initial uint32
	Maximum *uint32 // nil when the import has no maximum
}

type GlobalImport struct {
	Module  string
	Name    string
	Type    ValType
	Mutable bool
}

func (i *FunctionImport) ModuleName() string { return i.Module }
func (i *FunctionImport) EntityName() string { return i.Name }
func (i *FunctionImport) Kind() ExternalKind { return KindFunction }
func (i *FunctionImport) isImport()          {}

func (i *TableImport) ModuleName() string { return i.Module }
func (i *TableImport) EntityName() string { return i.Name }
func (i *TableImport) Kind() ExternalKind { return KindTable }
func (i *TableImport) isImport()          {}

func (i *MemoryImport) ModuleName() string { return i.Module }
func (i *MemoryImport) EntityName() string { return i.Name }
func (i *MemoryImport) Kind() ExternalKind { return KindMemory }
func (i *MemoryImport) isImport()          {}

func (i *GlobalImport) ModuleName() string { return i.Module }
func (i *GlobalImport) EntityName() string { return i.Name }
func (i *GlobalImport) Kind() ExternalKind { return KindGlobal }
func (i *GlobalImport) isImport()          {}

type Export struct {
	Name  string
	Kind  ExternalKind
	Index uint32
}

// Module is the decoded structure of a binary module. Indices stored in it
// are not checked against each other.
type Module struct {
	Signatures []Signature
	Imports    []Import
	// The signature index of each locally defined function, in order. Imported
	// functions are not included.
	Functions []uint32
	Exports   []Export
}
