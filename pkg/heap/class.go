package heap

import "github.com/daimatz/jvmgo/pkg/classfile"

// Class is the linked, resolved record a ClassLoader builds from a
// decoded classfile.ClassFile (spec 4.3). Unlike the transient
// classfile.ClassFile, a Class carries live pointers to its superclass,
// its interfaces, and the loader that defined it, plus the computed
// instance/static slot layout Prepare assigns.
type Class struct {
	AccessFlags uint16
	Name        string // internal form, e.g. "java/lang/Object"

	SuperClassName string
	SuperClass     *Class

	InterfaceNames []string
	Interfaces     []*Class

	ConstantPool *ConstantPool
	Fields       []*Field
	Methods      []*Method

	Loader *ClassLoader

	InstanceSlotCount uint32
	StaticSlotCount   uint32
	StaticVars        *StaticVars
}

func (c *Class) IsPublic() bool     { return c.AccessFlags&classfile.AccPublic != 0 }
func (c *Class) IsFinal() bool      { return c.AccessFlags&classfile.AccFinal != 0 }
func (c *Class) IsSuper() bool      { return c.AccessFlags&classfile.AccSuper != 0 }
func (c *Class) IsInterface() bool  { return c.AccessFlags&classfile.AccInterface != 0 }
func (c *Class) IsAbstract() bool   { return c.AccessFlags&classfile.AccAbstract != 0 }
func (c *Class) IsSynthetic() bool  { return c.AccessFlags&classfile.AccSynthetic != 0 }
func (c *Class) IsAnnotation() bool { return c.AccessFlags&classfile.AccAnnotation != 0 }
func (c *Class) IsEnum() bool       { return c.AccessFlags&classfile.AccEnum != 0 }

// PackageName is the internal-form package prefix of an internal class
// name ("a/b/C" -> "a/b"), used by the package-private access check
// (JVMS 5.4.4).
func (c *Class) PackageName() string {
	return packageOf(c.Name)
}

func packageOf(internalName string) string {
	for i := len(internalName) - 1; i >= 0; i-- {
		if internalName[i] == '/' {
			return internalName[:i]
		}
	}
	return ""
}

// IsSubClassOf reports whether c is a (possibly indirect) strict
// subclass of target, walking c's superclass chain upward; c itself
// does not count. The walk does not guard against a cyclic chain.
func (c *Class) IsSubClassOf(target *Class) bool {
	for child := c.SuperClass; child != nil; child = child.SuperClass {
		if child == target {
			return true
		}
	}
	return false
}

// IsSuperClassOf is the inverse of IsSubClassOf.
func (c *Class) IsSuperClassOf(target *Class) bool {
	return target.IsSubClassOf(c)
}

// IsImplements reports whether c implements iface directly or through
// any superinterface, or through any class in its superclass chain.
func (c *Class) IsImplements(iface *Class) bool {
	for class := c; class != nil; class = class.SuperClass {
		for _, i := range class.Interfaces {
			if i == iface || i.isSubInterfaceOf(iface) {
				return true
			}
		}
	}
	return false
}

func (c *Class) isSubInterfaceOf(iface *Class) bool {
	for _, super := range c.Interfaces {
		if super == iface || super.isSubInterfaceOf(iface) {
			return true
		}
	}
	return false
}

// IsAssignableFrom reports whether a value of class other can be
// assigned to a variable of class c: identity, subclass, or interface
// implementation, mirroring JVMS instanceof semantics for reference
// types (spec 4.6's is_instance_of, generalized to class-to-class).
func (c *Class) IsAssignableFrom(other *Class) bool {
	if c == other {
		return true
	}
	if c.IsInterface() {
		return other.IsImplements(c)
	}
	return other.IsSubClassOf(c)
}

// GetField finds a field by exact (name, descriptor) declared directly
// on this class, not walking superclasses.
func (c *Class) GetField(name, descriptor string) *Field {
	for _, f := range c.Fields {
		if f.Name == name && f.Descriptor == descriptor {
			return f
		}
	}
	return nil
}

// GetMethod finds a method by exact (name, descriptor) declared
// directly on this class, not walking superclasses.
func (c *Class) GetMethod(name, descriptor string) *Method {
	for _, m := range c.Methods {
		if m.Name == name && m.Descriptor == descriptor {
			return m
		}
	}
	return nil
}

// Field is a linked field_info: the decoded classfile.FieldInfo plus the
// owning Class and the slot index Prepare assigned it.
type Field struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Class       *Class

	SlotID uint32

	// ConstantValueIndex is the constant pool index of this field's
	// ConstantValue attribute, or 0 if it has none (spec 4.3).
	ConstantValueIndex uint16
}

func (f *Field) IsPublic() bool    { return f.AccessFlags&classfile.AccPublic != 0 }
func (f *Field) IsPrivate() bool   { return f.AccessFlags&classfile.AccPrivate != 0 }
func (f *Field) IsProtected() bool { return f.AccessFlags&classfile.AccProtected != 0 }
func (f *Field) IsStatic() bool    { return f.AccessFlags&classfile.AccStatic != 0 }
func (f *Field) IsFinal() bool     { return f.AccessFlags&classfile.AccFinal != 0 }

func (f *Field) isLongOrDouble() bool {
	return f.Descriptor == "J" || f.Descriptor == "D"
}

// Method is a linked method_info: decoded code, the owning Class, and
// the max_stack/max_locals the Code attribute declared.
type Method struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Class       *Class

	MaxStack  uint16
	MaxLocals uint16
	Code      []byte

	ExceptionHandlers []classfile.ExceptionHandler
}

func (m *Method) IsPublic() bool       { return m.AccessFlags&classfile.AccPublic != 0 }
func (m *Method) IsPrivate() bool      { return m.AccessFlags&classfile.AccPrivate != 0 }
func (m *Method) IsProtected() bool    { return m.AccessFlags&classfile.AccProtected != 0 }
func (m *Method) IsStatic() bool       { return m.AccessFlags&classfile.AccStatic != 0 }
func (m *Method) IsFinal() bool        { return m.AccessFlags&classfile.AccFinal != 0 }
func (m *Method) IsAbstract() bool     { return m.AccessFlags&classfile.AccAbstract != 0 }
func (m *Method) IsNative() bool       { return m.AccessFlags&classfile.AccNative != 0 }
func (m *Method) IsSynchronized() bool { return m.AccessFlags&0x0020 != 0 }

// accessCheck implements the JVMS 5.4.4 access-control rule shared by
// field and method resolution: public members are visible everywhere,
// protected members only from the declaring package or a subclass,
// package-private members only from the declaring package, private
// members only from the declaring class itself.
func accessCheck(accessFlags uint16, declaring, accessing *Class) bool {
	switch {
	case accessFlags&classfile.AccPublic != 0:
		return true
	case accessFlags&classfile.AccPrivate != 0:
		return declaring == accessing
	case accessFlags&classfile.AccProtected != 0:
		return declaring.PackageName() == accessing.PackageName() || accessing.IsSubClassOf(declaring)
	default: // package-private
		return declaring.PackageName() == accessing.PackageName()
	}
}
