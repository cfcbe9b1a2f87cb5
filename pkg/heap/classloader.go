package heap

import (
	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/classfile"
)

// ClassBytesSource supplies the raw bytes of one class file, read from a
// classpath (pkg/classpath.Entry satisfies this directly).
type ClassBytesSource interface {
	ReadClass(name string) ([]byte, error)
}

// ClassLoader loads, links and caches Class records, the runtime
// counterpart of classfile.Parse (spec 4.4). load_class is idempotent:
// calling it twice with the same name returns the identical *Class
// pointer, which is what makes pointer equality a valid instanceof test.
type ClassLoader struct {
	source  ClassBytesSource
	classes map[string]*Class
	strings map[string]*Object

	// Parent is consulted before source, letting a bootstrap loader sit
	// in front of an application loader the way JmodClassLoader sat in
	// front of UserClassLoader in the teacher's design.
	Parent *ClassLoader
}

func NewClassLoader(source ClassBytesSource) *ClassLoader {
	return &ClassLoader{source: source, classes: make(map[string]*Class), strings: make(map[string]*Object)}
}

// InternString returns the canonical java/lang/String instance for
// value, allocating it on first request and reusing it on every
// subsequent one the way the JVM's string pool backs ldc and
// String.intern() (JVMS 5.1).
func (cl *ClassLoader) InternString(value string) (*Object, error) {
	if s, ok := cl.strings[value]; ok {
		return s, nil
	}
	s, err := NewString(cl, value)
	if err != nil {
		return nil, err
	}
	cl.strings[value] = s
	return s, nil
}

// LoadClass returns the Class named name, loading and linking it on
// first request. A name already in the cache (even mid-load, to break
// loading cycles through superclass/interface references) is returned
// immediately.
func (cl *ClassLoader) LoadClass(name string) (*Class, error) {
	if cl.Parent != nil {
		if c, err := cl.Parent.LoadClass(name); err == nil {
			return c, nil
		}
	}
	if c, ok := cl.classes[name]; ok {
		return c, nil
	}

	data, err := cl.source.ReadClass(name)
	if err != nil {
		return nil, &vmerrors.ClassNotFound{Name: name}
	}

	cf, err := classfile.Parse(data)
	if err != nil {
		return nil, err
	}

	className, err := cf.ClassName()
	if err != nil {
		return nil, err
	}

	class, err := cl.defineClass(cf)
	if err != nil {
		return nil, err
	}

	// Insert before linking so a cycle through super/interfaces resolves
	// back to this same pointer instead of recursing forever.
	cl.classes[className] = class

	if err := cl.resolveSupertypes(class, cf); err != nil {
		delete(cl.classes, className)
		return nil, err
	}

	link(class)

	return class, nil
}

func (cl *ClassLoader) defineClass(cf *classfile.ClassFile) (*Class, error) {
	pool, err := newConstantPool(cf)
	if err != nil {
		return nil, err
	}
	className, err := cf.ClassName()
	if err != nil {
		return nil, err
	}
	superName, err := cf.SuperClassName()
	if err != nil {
		return nil, err
	}
	interfaceNames, err := cf.InterfaceNames()
	if err != nil {
		return nil, err
	}

	class := &Class{
		AccessFlags:    cf.AccessFlags,
		Name:           className,
		SuperClassName: superName,
		InterfaceNames: interfaceNames,
		ConstantPool:   pool,
		Loader:         cl,
	}

	for _, fi := range cf.Fields {
		class.Fields = append(class.Fields, &Field{
			AccessFlags:        fi.AccessFlags,
			Name:               fi.Name,
			Descriptor:         fi.Descriptor,
			Class:              class,
			ConstantValueIndex: fi.ConstantValueIndex,
		})
	}

	for _, mi := range cf.Methods {
		method := &Method{
			AccessFlags: mi.AccessFlags,
			Name:        mi.Name,
			Descriptor:  mi.Descriptor,
			Class:       class,
		}
		if mi.Code != nil {
			method.MaxStack = mi.Code.MaxStack
			method.MaxLocals = mi.Code.MaxLocals
			method.Code = mi.Code.Code
			method.ExceptionHandlers = mi.Code.ExceptionHandlers
		}
		class.Methods = append(class.Methods, method)
	}

	return class, nil
}

// resolveSupertypes loads a class's superclass and interfaces, unless it
// is java/lang/Object (super_class == 0) which terminates the chain.
func (cl *ClassLoader) resolveSupertypes(class *Class, cf *classfile.ClassFile) error {
	if class.SuperClassName != "" {
		super, err := cl.LoadClass(class.SuperClassName)
		if err != nil {
			return &vmerrors.LinkageError{Kind: vmerrors.IncompatibleClassChange, Detail: "loading superclass " + class.SuperClassName}
		}
		if super.IsFinal() {
			return &vmerrors.LinkageError{Kind: vmerrors.IncompatibleClassChange, Detail: class.SuperClassName + " is final"}
		}
		class.SuperClass = super
	}
	for _, name := range class.InterfaceNames {
		iface, err := cl.LoadClass(name)
		if err != nil {
			return &vmerrors.LinkageError{Kind: vmerrors.IncompatibleClassChange, Detail: "loading interface " + name}
		}
		class.Interfaces = append(class.Interfaces, iface)
	}
	return nil
}

// link runs the Verify (no-op placeholder, per spec 4.4's scope) and
// Prepare steps: Prepare computes instance and static field layout and
// allocates+initializes static storage.
func link(class *Class) {
	verify(class)
	prepare(class)
}

func verify(class *Class) {
	// Bytecode verification is out of scope; the interpreter trusts its
	// input the way the teacher's VM did.
}

func prepare(class *Class) {
	instanceSlot := uint32(0)
	if class.SuperClass != nil {
		instanceSlot = class.SuperClass.InstanceSlotCount
	}
	staticSlot := uint32(0)

	for _, f := range class.Fields {
		if f.IsStatic() {
			f.SlotID = staticSlot
			staticSlot++
			if f.isLongOrDouble() {
				staticSlot++
			}
		} else {
			f.SlotID = instanceSlot
			instanceSlot++
			if f.isLongOrDouble() {
				instanceSlot++
			}
		}
	}

	class.InstanceSlotCount = instanceSlot
	class.StaticSlotCount = staticSlot
	class.StaticVars = NewStaticVars(staticSlot)

	initializeStaticFinalVars(class)
}

// initializeStaticFinalVars assigns constant values to static final
// fields with a ConstantValue attribute directly, without running any
// bytecode: <clinit>, if present, runs later and may overwrite these
// (spec's static-final scenario: K=7 must be visible before <clinit> runs).
func initializeStaticFinalVars(class *Class) {
	for _, f := range class.Fields {
		if !f.IsStatic() || f.ConstantValueIndex == 0 {
			continue
		}
		constant, err := class.ConstantPool.At(f.ConstantValueIndex)
		if err != nil {
			continue
		}
		switch c := constant.(type) {
		case *IntegerConstant:
			class.StaticVars.Slots.SetInt(f.SlotID, c.Value)
		case *FloatConstant:
			class.StaticVars.Slots.SetFloat(f.SlotID, c.Value)
		case *LongConstant:
			class.StaticVars.Slots.SetLong(f.SlotID, c.Value)
		case *DoubleConstant:
			class.StaticVars.Slots.SetDouble(f.SlotID, c.Value)
		case *StringConstant:
			// String constants need a heap-allocated java/lang/String
			// instance; left to the interpreter's ldc handling, since
			// Prepare must not allocate objects of classes not yet linked.
		}
	}
}
