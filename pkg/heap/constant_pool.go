// Package heap holds the linked runtime representation the class loader
// builds from a decoded classfile.ClassFile: Class, Field, Method, the
// runtime ConstantPool with its lazily resolved symbolic references, and
// the heap Object records a running program allocates.
package heap

import (
	"fmt"

	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/classfile"
)

// RuntimeConstant is one live entry of a class's runtime constant pool.
// Unlike classfile.ConstantPoolEntry, a symbolic reference entry here
// carries a resolution cache so repeated getstatic/invokevirtual/etc.
// against the same constant-pool index only pay resolution cost once.
type RuntimeConstant interface {
	isRuntimeConstant()
}

type (
	IntegerConstant struct{ Value int32 }
	FloatConstant   struct{ Value float32 }
	LongConstant    struct{ Value int64 }
	DoubleConstant  struct{ Value float64 }
	StringConstant  struct{ Value string }
	Utf8Constant    struct{ Value string }
	PaddingConstant struct{} // occupies the slot after a Long/Double entry
)

// ClassRef is a symbolic reference to a class, resolved to *Class on
// first use (spec 4.5) and cached thereafter.
type ClassRef struct {
	Name     string
	Resolved *Class
}

// MemberRef is a symbolic reference shared by FieldRef/MethodRef/
// InterfaceMethodRef: a class reference plus a name-and-type.
type MemberRef struct {
	ClassName  string
	Name       string
	Descriptor string

	ResolvedField  *Field
	ResolvedMethod *Method
}

type (
	FieldRefConstant          struct{ Ref *MemberRef }
	MethodRefConstant         struct{ Ref *MemberRef }
	InterfaceMethodRefConstant struct{ Ref *MemberRef }
)

type NameAndTypeConstant struct {
	Name       string
	Descriptor string
}

type MethodTypeConstant struct{ Descriptor string }

type MethodHandleConstant struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

type (
	ModuleConstant  struct{ Name string }
	PackageConstant struct{ Name string }
)

func (*IntegerConstant) isRuntimeConstant()            {}
func (*FloatConstant) isRuntimeConstant()              {}
func (*LongConstant) isRuntimeConstant()               {}
func (*DoubleConstant) isRuntimeConstant()             {}
func (*StringConstant) isRuntimeConstant()             {}
func (*Utf8Constant) isRuntimeConstant()               {}
func (*PaddingConstant) isRuntimeConstant()            {}
func (*ClassRef) isRuntimeConstant()                   {}
func (*FieldRefConstant) isRuntimeConstant()           {}
func (*MethodRefConstant) isRuntimeConstant()          {}
func (*InterfaceMethodRefConstant) isRuntimeConstant() {}
func (*NameAndTypeConstant) isRuntimeConstant()        {}
func (*MethodTypeConstant) isRuntimeConstant()         {}
func (*MethodHandleConstant) isRuntimeConstant()       {}
func (*ModuleConstant) isRuntimeConstant()             {}
func (*PackageConstant) isRuntimeConstant()            {}

// ConstantPool is the runtime constant pool built once, at class-load
// time, from a classfile.ClassFile's transient ConstantPool (spec 4.2).
// It is 1-indexed like the on-disk pool it came from.
type ConstantPool struct {
	entries []RuntimeConstant
}

func newConstantPool(cf *classfile.ClassFile) (*ConstantPool, error) {
	pool := &ConstantPool{entries: make([]RuntimeConstant, len(cf.ConstantPool))}
	for i, entry := range cf.ConstantPool {
		rc, err := buildRuntimeConstant(cf.ConstantPool, uint16(i), entry)
		if err != nil {
			return nil, err
		}
		pool.entries[i] = rc
	}
	return pool, nil
}

func buildRuntimeConstant(raw []classfile.ConstantPoolEntry, index uint16, entry classfile.ConstantPoolEntry) (RuntimeConstant, error) {
	switch e := entry.(type) {
	case nil:
		return nil, nil
	case *classfile.ConstantInteger:
		return &IntegerConstant{Value: e.Value}, nil
	case *classfile.ConstantFloat:
		return &FloatConstant{Value: e.Value}, nil
	case *classfile.ConstantLong:
		return &LongConstant{Value: e.Value}, nil
	case *classfile.ConstantDouble:
		return &DoubleConstant{Value: e.Value}, nil
	case *classfile.ConstantUtf8:
		return &Utf8Constant{Value: e.Value}, nil
	case *classfile.ConstantString:
		s, err := classfile.GetUtf8(raw, e.StringIndex)
		if err != nil {
			return nil, err
		}
		return &StringConstant{Value: s}, nil
	case *classfile.ConstantClass:
		name, err := classfile.GetClassName(raw, index)
		if err != nil {
			return nil, err
		}
		return &ClassRef{Name: name}, nil
	case *classfile.ConstantFieldref:
		ref, err := classfile.ResolveFieldref(raw, index)
		if err != nil {
			return nil, err
		}
		return &FieldRefConstant{Ref: &MemberRef{ClassName: ref.ClassName, Name: ref.FieldName, Descriptor: ref.Descriptor}}, nil
	case *classfile.ConstantMethodref:
		ref, err := classfile.ResolveMethodref(raw, index)
		if err != nil {
			return nil, err
		}
		return &MethodRefConstant{Ref: &MemberRef{ClassName: ref.ClassName, Name: ref.MethodName, Descriptor: ref.Descriptor}}, nil
	case *classfile.ConstantInterfaceMethodref:
		ref, err := classfile.ResolveInterfaceMethodref(raw, index)
		if err != nil {
			return nil, err
		}
		return &InterfaceMethodRefConstant{Ref: &MemberRef{ClassName: ref.ClassName, Name: ref.MethodName, Descriptor: ref.Descriptor}}, nil
	case *classfile.ConstantNameAndType:
		name, err := classfile.GetUtf8(raw, e.NameIndex)
		if err != nil {
			return nil, err
		}
		desc, err := classfile.GetUtf8(raw, e.DescriptorIndex)
		if err != nil {
			return nil, err
		}
		return &NameAndTypeConstant{Name: name, Descriptor: desc}, nil
	case *classfile.ConstantMethodType:
		desc, err := classfile.GetUtf8(raw, e.DescriptorIndex)
		if err != nil {
			return nil, err
		}
		return &MethodTypeConstant{Descriptor: desc}, nil
	case *classfile.ConstantMethodHandle:
		return &MethodHandleConstant{ReferenceKind: e.ReferenceKind, ReferenceIndex: e.ReferenceIndex}, nil
	case *classfile.ConstantModule:
		name, err := classfile.GetUtf8(raw, e.NameIndex)
		if err != nil {
			return nil, err
		}
		return &ModuleConstant{Name: name}, nil
	case *classfile.ConstantPackage:
		name, err := classfile.GetUtf8(raw, e.NameIndex)
		if err != nil {
			return nil, err
		}
		return &PackageConstant{Name: name}, nil
	case *classfile.ConstantDynamic, *classfile.ConstantInvokeDynamic:
		// Nothing resolves Dynamic/InvokeDynamic constants (invokedynamic
		// is not implemented); carry a padding-style placeholder here
		// since nothing in the resolution paths below reads this slot
		// directly.
		return &PaddingConstant{}, nil
	default:
		if entry.Tag() == 0 { // classfile's padding entry after a Long/Double
			return &PaddingConstant{}, nil
		}
		return nil, &vmerrors.MalformedClassFile{Reason: fmt.Sprintf("unsupported constant pool entry %T", entry)}
	}
}

// At returns the entry at a 1-based constant pool index.
func (cp *ConstantPool) At(index uint16) (RuntimeConstant, error) {
	if int(index) >= len(cp.entries) || cp.entries[index] == nil {
		return nil, &vmerrors.MalformedClassFile{Reason: fmt.Sprintf("constant pool index %d out of range or unusable", index)}
	}
	return cp.entries[index], nil
}

// ClassRefAt returns the ClassRef at index, resolving it against the
// given loader and caching the result on the entry itself. accessing is
// the class whose constant pool this is, checked against the resolved
// class's accessibility (spec 4.5: public, or same package).
func (cp *ConstantPool) ClassRefAt(index uint16, loader *ClassLoader, accessing *Class) (*Class, error) {
	entry, err := cp.At(index)
	if err != nil {
		return nil, err
	}
	ref, ok := entry.(*ClassRef)
	if !ok {
		return nil, &vmerrors.MalformedClassFile{Reason: fmt.Sprintf("constant pool index %d is not a class reference", index)}
	}
	if ref.Resolved != nil {
		return ref.Resolved, nil
	}
	class, err := loader.LoadClass(ref.Name)
	if err != nil {
		return nil, err
	}
	if !class.IsPublic() && class.PackageName() != accessing.PackageName() {
		return nil, &vmerrors.LinkageError{Kind: vmerrors.IllegalAccess, Detail: fmt.Sprintf("%s not accessible from %s", class.Name, accessing.Name)}
	}
	ref.Resolved = class
	return class, nil
}
