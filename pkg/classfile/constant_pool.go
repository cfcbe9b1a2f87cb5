package classfile

import (
	"fmt"

	"github.com/daimatz/jvmgo/internal/binreader"
	"github.com/daimatz/jvmgo/internal/vmerrors"
)

// Constant pool tags (JVMS 4.4).
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// ConstantPoolEntry is implemented by every concrete constant pool shape.
type ConstantPoolEntry interface {
	Tag() uint8
}

type ConstantUtf8 struct{ Value string }

func (c *ConstantUtf8) Tag() uint8 { return TagUtf8 }

type ConstantInteger struct{ Value int32 }

func (c *ConstantInteger) Tag() uint8 { return TagInteger }

type ConstantFloat struct{ Value float32 }

func (c *ConstantFloat) Tag() uint8 { return TagFloat }

type ConstantLong struct{ Value int64 }

func (c *ConstantLong) Tag() uint8 { return TagLong }

type ConstantDouble struct{ Value float64 }

func (c *ConstantDouble) Tag() uint8 { return TagDouble }

type ConstantClass struct{ NameIndex uint16 }

func (c *ConstantClass) Tag() uint8 { return TagClass }

type ConstantString struct{ StringIndex uint16 }

func (c *ConstantString) Tag() uint8 { return TagString }

type ConstantFieldref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldref) Tag() uint8 { return TagFieldref }

type ConstantMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodref) Tag() uint8 { return TagMethodref }

type ConstantInterfaceMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodref) Tag() uint8 { return TagInterfaceMethodref }

type ConstantNameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndType) Tag() uint8 { return TagNameAndType }

// ConstantMethodHandle is CONSTANT_MethodHandle_info (JVMS 4.4.8).
type ConstantMethodHandle struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (c *ConstantMethodHandle) Tag() uint8 { return TagMethodHandle }

type ConstantMethodType struct{ DescriptorIndex uint16 }

func (c *ConstantMethodType) Tag() uint8 { return TagMethodType }

// ConstantDynamic is CONSTANT_Dynamic_info, resolved via a BootstrapMethods
// entry; out of scope for execution (spec §3/§9) but decoded so the
// constant pool stays complete and index-stable.
type ConstantDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamic) Tag() uint8 { return TagDynamic }

type ConstantInvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamic) Tag() uint8 { return TagInvokeDynamic }

type ConstantModule struct{ NameIndex uint16 }

func (c *ConstantModule) Tag() uint8 { return TagModule }

type ConstantPackage struct{ NameIndex uint16 }

func (c *ConstantPackage) Tag() uint8 { return TagPackage }

// constantPadding occupies the slot immediately following a Long or
// Double entry (JVMS 4.4.5: "the constant pool index n+1 must be valid
// but is considered unusable"). It is a distinct type from an unresolved
// tag so callers can tell "deliberately unused" from "parser bug".
type constantPadding struct{}

func (c *constantPadding) Tag() uint8 { return 0 }

func parseConstantPool(r *binreader.Reader, count uint16) ([]ConstantPoolEntry, error) {
	pool := make([]ConstantPoolEntry, count)

	for i := uint16(1); i < count; i++ {
		tag, err := r.U8()
		if err != nil {
			return nil, malformed("reading constant pool tag at index %d: %v", i, err)
		}

		switch tag {
		case TagUtf8:
			length, err := r.U16()
			if err != nil {
				return nil, malformed("reading Utf8 length at index %d: %v", i, err)
			}
			bytes, err := r.Bytes(int(length))
			if err != nil {
				return nil, malformed("reading Utf8 bytes at index %d: %v", i, err)
			}
			pool[i] = &ConstantUtf8{Value: string(bytes)}

		case TagInteger:
			val, err := r.I32()
			if err != nil {
				return nil, malformed("reading Integer at index %d: %v", i, err)
			}
			pool[i] = &ConstantInteger{Value: val}

		case TagFloat:
			val, err := r.F32()
			if err != nil {
				return nil, malformed("reading Float at index %d: %v", i, err)
			}
			pool[i] = &ConstantFloat{Value: val}

		case TagLong:
			val, err := r.I64()
			if err != nil {
				return nil, malformed("reading Long at index %d: %v", i, err)
			}
			pool[i] = &ConstantLong{Value: val}
			i++
			if int(i) < len(pool) {
				pool[i] = &constantPadding{}
			}

		case TagDouble:
			val, err := r.F64()
			if err != nil {
				return nil, malformed("reading Double at index %d: %v", i, err)
			}
			pool[i] = &ConstantDouble{Value: val}
			i++
			if int(i) < len(pool) {
				pool[i] = &constantPadding{}
			}

		case TagClass:
			nameIndex, err := r.U16()
			if err != nil {
				return nil, malformed("reading Class at index %d: %v", i, err)
			}
			pool[i] = &ConstantClass{NameIndex: nameIndex}

		case TagString:
			stringIndex, err := r.U16()
			if err != nil {
				return nil, malformed("reading String at index %d: %v", i, err)
			}
			pool[i] = &ConstantString{StringIndex: stringIndex}

		case TagFieldref:
			classIndex, natIndex, err := readRef(r)
			if err != nil {
				return nil, malformed("reading Fieldref at index %d: %v", i, err)
			}
			pool[i] = &ConstantFieldref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}

		case TagMethodref:
			classIndex, natIndex, err := readRef(r)
			if err != nil {
				return nil, malformed("reading Methodref at index %d: %v", i, err)
			}
			pool[i] = &ConstantMethodref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}

		case TagInterfaceMethodref:
			classIndex, natIndex, err := readRef(r)
			if err != nil {
				return nil, malformed("reading InterfaceMethodref at index %d: %v", i, err)
			}
			pool[i] = &ConstantInterfaceMethodref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}

		case TagNameAndType:
			nameIndex, descIndex, err := readRef(r)
			if err != nil {
				return nil, malformed("reading NameAndType at index %d: %v", i, err)
			}
			pool[i] = &ConstantNameAndType{NameIndex: nameIndex, DescriptorIndex: descIndex}

		case TagMethodHandle:
			kind, err := r.U8()
			if err != nil {
				return nil, malformed("reading MethodHandle reference_kind at index %d: %v", i, err)
			}
			refIndex, err := r.U16()
			if err != nil {
				return nil, malformed("reading MethodHandle reference_index at index %d: %v", i, err)
			}
			pool[i] = &ConstantMethodHandle{ReferenceKind: kind, ReferenceIndex: refIndex}

		case TagMethodType:
			descIndex, err := r.U16()
			if err != nil {
				return nil, malformed("reading MethodType at index %d: %v", i, err)
			}
			pool[i] = &ConstantMethodType{DescriptorIndex: descIndex}

		case TagDynamic:
			bsmIndex, natIndex, err := readRef(r)
			if err != nil {
				return nil, malformed("reading Dynamic at index %d: %v", i, err)
			}
			pool[i] = &ConstantDynamic{BootstrapMethodAttrIndex: bsmIndex, NameAndTypeIndex: natIndex}

		case TagInvokeDynamic:
			bsmIndex, natIndex, err := readRef(r)
			if err != nil {
				return nil, malformed("reading InvokeDynamic at index %d: %v", i, err)
			}
			pool[i] = &ConstantInvokeDynamic{BootstrapMethodAttrIndex: bsmIndex, NameAndTypeIndex: natIndex}

		case TagModule:
			nameIndex, err := r.U16()
			if err != nil {
				return nil, malformed("reading Module at index %d: %v", i, err)
			}
			pool[i] = &ConstantModule{NameIndex: nameIndex}

		case TagPackage:
			nameIndex, err := r.U16()
			if err != nil {
				return nil, malformed("reading Package at index %d: %v", i, err)
			}
			pool[i] = &ConstantPackage{NameIndex: nameIndex}

		default:
			return nil, malformed("unknown constant pool tag %d at index %d", tag, i)
		}
	}

	return pool, nil
}

func readRef(r *binreader.Reader) (uint16, uint16, error) {
	a, err := r.U16()
	if err != nil {
		return 0, 0, err
	}
	b, err := r.U16()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func malformed(format string, args ...any) error {
	return &vmerrors.MalformedClassFile{Reason: fmt.Sprintf(format, args...)}
}

// GetUtf8 returns the Utf8 string at the given constant pool index.
func GetUtf8(pool []ConstantPoolEntry, index uint16) (string, error) {
	entry, err := lookup(pool, index)
	if err != nil {
		return "", err
	}
	utf8, ok := entry.(*ConstantUtf8)
	if !ok {
		return "", malformed("constant pool index %d is not Utf8 (tag=%d)", index, entry.Tag())
	}
	return utf8.Value, nil
}

// GetClassName returns the class name referenced by a CONSTANT_Class entry.
func GetClassName(pool []ConstantPoolEntry, classIndex uint16) (string, error) {
	entry, err := lookup(pool, classIndex)
	if err != nil {
		return "", err
	}
	class, ok := entry.(*ConstantClass)
	if !ok {
		return "", malformed("constant pool index %d is not Class", classIndex)
	}
	return GetUtf8(pool, class.NameIndex)
}

func lookup(pool []ConstantPoolEntry, index uint16) (ConstantPoolEntry, error) {
	if int(index) >= len(pool) || pool[index] == nil {
		return nil, malformed("invalid constant pool index %d", index)
	}
	return pool[index], nil
}

func nameAndType(pool []ConstantPoolEntry, index uint16) (name, descriptor string, err error) {
	entry, err := lookup(pool, index)
	if err != nil {
		return "", "", err
	}
	nat, ok := entry.(*ConstantNameAndType)
	if !ok {
		return "", "", malformed("constant pool index %d is not NameAndType", index)
	}
	name, err = GetUtf8(pool, nat.NameIndex)
	if err != nil {
		return "", "", err
	}
	descriptor, err = GetUtf8(pool, nat.DescriptorIndex)
	if err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// MethodRefInfo holds a resolved method reference.
type MethodRefInfo struct {
	ClassName  string
	MethodName string
	Descriptor string
}

// ResolveMethodref resolves a CONSTANT_Methodref entry.
func ResolveMethodref(pool []ConstantPoolEntry, index uint16) (*MethodRefInfo, error) {
	entry, err := lookup(pool, index)
	if err != nil {
		return nil, err
	}
	mref, ok := entry.(*ConstantMethodref)
	if !ok {
		return nil, malformed("constant pool index %d is not Methodref", index)
	}
	return resolveMemberRef(pool, mref.ClassIndex, mref.NameAndTypeIndex)
}

// ResolveInterfaceMethodref resolves a CONSTANT_InterfaceMethodref entry.
func ResolveInterfaceMethodref(pool []ConstantPoolEntry, index uint16) (*MethodRefInfo, error) {
	entry, err := lookup(pool, index)
	if err != nil {
		return nil, err
	}
	mref, ok := entry.(*ConstantInterfaceMethodref)
	if !ok {
		return nil, malformed("constant pool index %d is not InterfaceMethodref", index)
	}
	return resolveMemberRef(pool, mref.ClassIndex, mref.NameAndTypeIndex)
}

func resolveMemberRef(pool []ConstantPoolEntry, classIndex, natIndex uint16) (*MethodRefInfo, error) {
	className, err := GetClassName(pool, classIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving ref class: %w", err)
	}
	name, descriptor, err := nameAndType(pool, natIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving ref name/type: %w", err)
	}
	return &MethodRefInfo{ClassName: className, MethodName: name, Descriptor: descriptor}, nil
}

// FieldRefInfo holds a resolved field reference.
type FieldRefInfo struct {
	ClassName  string
	FieldName  string
	Descriptor string
}

// ResolveFieldref resolves a CONSTANT_Fieldref entry.
func ResolveFieldref(pool []ConstantPoolEntry, index uint16) (*FieldRefInfo, error) {
	entry, err := lookup(pool, index)
	if err != nil {
		return nil, err
	}
	fref, ok := entry.(*ConstantFieldref)
	if !ok {
		return nil, malformed("constant pool index %d is not Fieldref", index)
	}
	className, err := GetClassName(pool, fref.ClassIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving Fieldref class: %w", err)
	}
	name, descriptor, err := nameAndType(pool, fref.NameAndTypeIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving Fieldref name/type: %w", err)
	}
	return &FieldRefInfo{ClassName: className, FieldName: name, Descriptor: descriptor}, nil
}
