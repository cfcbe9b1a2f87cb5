// Package classfile decodes the JVMS 4 binary class-file format into
// typed, transient in-memory records (spec section 4.1). ClassFile
// records are consumed once by pkg/heap's loader and then discarded.
package classfile

// Access flags shared by classes, fields, methods and inner-class entries.
const (
	AccPublic     = 0x0001
	AccPrivate    = 0x0002
	AccProtected  = 0x0004
	AccStatic     = 0x0008
	AccFinal      = 0x0010
	AccSuper      = 0x0020
	AccBridge     = 0x0040
	AccVolatile   = 0x0040
	AccTransient  = 0x0080
	AccVarargs    = 0x0080
	AccNative     = 0x0100
	AccInterface  = 0x0200
	AccAbstract   = 0x0400
	AccStrict     = 0x0800
	AccSynthetic  = 0x1000
	AccAnnotation = 0x2000
	AccEnum       = 0x4000
	AccModule     = 0x8000
)

const Magic = 0xCAFEBABE

// ClassFile is the verbatim parse of one .class file, 1:1 with JVMS 4.1.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool []ConstantPoolEntry // 1-indexed; index 0 is nil, the slot after a long/double holds a padding entry
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo

	BootstrapMethods []BootstrapMethod
}

// ClassName resolves this_class to its internal-form name.
func (cf *ClassFile) ClassName() (string, error) {
	return GetClassName(cf.ConstantPool, cf.ThisClass)
}

// SuperClassName resolves super_class, returning "" for java/lang/Object
// (super_class == 0).
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	return GetClassName(cf.ConstantPool, cf.SuperClass)
}

// InterfaceNames resolves every entry of the interfaces table.
func (cf *ClassFile) InterfaceNames() ([]string, error) {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		name, err := GetClassName(cf.ConstantPool, idx)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// FindMethod finds a method by exact (name, descriptor).
func (cf *ClassFile) FindMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name && cf.Methods[i].Descriptor == descriptor {
			return &cf.Methods[i]
		}
	}
	return nil
}

// FieldInfo is a decoded field_info structure (JVMS 4.5).
type FieldInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []AttributeInfo

	// ConstantValueIndex is the constant-pool index carried by a
	// ConstantValue attribute, or 0 if the field has none (spec 4.3).
	ConstantValueIndex uint16
}

// MethodInfo is a decoded method_info structure (JVMS 4.6).
type MethodInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []AttributeInfo
	Code        *CodeAttribute
}

// AttributeInfo is a raw, name-resolved attribute: decoded sub-structures
// (Code, StackMapTable, BootstrapMethods, ...) are parsed out of Data by
// dedicated functions; attributes outside the closed set JVMS defines are
// kept only as Name+Data, matching spec 4.1's "unknown attributes are
// skipped by consuming exactly length bytes".
type AttributeInfo struct {
	Name string
	Data []byte
}

// ExceptionHandler is one entry of a Code attribute's exception table.
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 means catch-all (finally)
}

// LineNumberEntry maps a bytecode offset to a source line (LineNumberTable).
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LocalVariableEntry is one row of a LocalVariableTable/LocalVariableTypeTable.
type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	Name            string
	DescriptorOrSig string
	Index           uint16
}

// CodeAttribute is the decoded Code attribute (JVMS 4.7.3).
type CodeAttribute struct {
	MaxStack          uint16
	MaxLocals         uint16
	Code              []byte
	ExceptionHandlers []ExceptionHandler
	Attributes        []AttributeInfo

	StackMapTable      []StackMapFrame
	LineNumbers        []LineNumberEntry
	LocalVariables     []LocalVariableEntry
	LocalVariableTypes []LocalVariableEntry
}

// BootstrapMethod is one entry of the class-level BootstrapMethods
// attribute (JVMS 4.7.23), used to resolve Dynamic/InvokeDynamic
// constant-pool entries.
type BootstrapMethod struct {
	MethodRef          uint16
	BootstrapArguments []uint16
}
