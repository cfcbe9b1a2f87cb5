package classfile

import "github.com/daimatz/jvmgo/internal/binreader"

// The closed attribute-name set JVMS 4.7 defines. Names outside this set
// are not an error: they are skipped by consuming exactly the declared
// length, the same way the teacher's original parser treated every
// attribute before this rewrite. parseAttribute does not consult this
// set: every attribute, listed here or not, is read the same way.
var knownAttributes = map[string]bool{
	"ConstantValue":                         true,
	"Code":                                  true,
	"StackMapTable":                         true,
	"Exceptions":                            true,
	"InnerClasses":                          true,
	"EnclosingMethod":                       true,
	"Synthetic":                             true,
	"Signature":                             true,
	"SourceFile":                            true,
	"SourceDebugExtension":                  true,
	"LineNumberTable":                       true,
	"LocalVariableTable":                    true,
	"LocalVariableTypeTable":                true,
	"Deprecated":                            true,
	"RuntimeVisibleAnnotations":             true,
	"RuntimeInvisibleAnnotations":           true,
	"RuntimeVisibleParameterAnnotations":    true,
	"RuntimeInvisibleParameterAnnotations":  true,
	"RuntimeVisibleTypeAnnotations":         true,
	"RuntimeInvisibleTypeAnnotations":       true,
	"AnnotationDefault":                     true,
	"BootstrapMethods":                      true,
	"MethodParameters":                      true,
	"Module":                                true,
	"ModulePackages":                        true,
	"ModuleMainClass":                       true,
	"NestHost":                              true,
	"NestMembers":                           true,
	"Record":                                true,
	"PermittedSubclasses":                   true,
}

// InnerClassEntry is one entry of an InnerClasses attribute.
type InnerClassEntry struct {
	InnerClassInfoIndex uint16
	OuterClassInfoIndex uint16
	InnerNameIndex      uint16
	InnerAccessFlags    uint16
}

// RecordComponent is one entry of a Record attribute (JVMS 4.7.30), a
// Java 16+ feature not in the Java 8 baseline this core targets but kept
// since the attribute still decodes to a well-defined shape.
type RecordComponent struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

// parseAttribute reads one attribute_info as its resolved name plus the
// raw Data bytes, whatever the name is. Decoding happens later, in the
// caller, which re-parses Data through a parseXxx helper for the
// attributes it looks for (Code, ConstantValue, StackMapTable,
// LineNumberTable, LocalVariableTable/LocalVariableTypeTable,
// BootstrapMethods); every other attribute stays as raw Name/Data. This
// mirrors the teacher's original "capture raw, decode known shapes on
// demand" split.
func parseAttribute(r *binreader.Reader, pool []ConstantPoolEntry) (AttributeInfo, error) {
	nameIndex, err := r.U16()
	if err != nil {
		return AttributeInfo{}, malformed("reading attribute_name_index: %v", err)
	}
	length, err := r.U32()
	if err != nil {
		return AttributeInfo{}, malformed("reading attribute_length: %v", err)
	}
	name, err := GetUtf8(pool, nameIndex)
	if err != nil {
		return AttributeInfo{}, err
	}
	data, err := r.Bytes(int(length))
	if err != nil {
		return AttributeInfo{}, malformed("reading attribute %q data (length %d): %v", name, length, err)
	}
	return AttributeInfo{Name: name, Data: data}, nil
}

func parseAttributeList(r *binreader.Reader, pool []ConstantPoolEntry) ([]AttributeInfo, error) {
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading attributes_count: %v", err)
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		attrs[i], err = parseAttribute(r, pool)
		if err != nil {
			return nil, err
		}
	}
	return attrs, nil
}

// findConstantValueIndex scans a field's attributes for ConstantValue.
func findConstantValueIndex(attrs []AttributeInfo) (uint16, error) {
	for _, a := range attrs {
		if a.Name != "ConstantValue" {
			continue
		}
		r := binreader.New(a.Data)
		return r.U16()
	}
	return 0, nil
}

// findCodeAttribute scans a method's attributes for Code and decodes it.
func findCodeAttribute(attrs []AttributeInfo, pool []ConstantPoolEntry) (*CodeAttribute, error) {
	for _, a := range attrs {
		if a.Name != "Code" {
			continue
		}
		code, err := parseCodeAttributeBody(a.Data, pool)
		if err != nil {
			return nil, err
		}
		return code, nil
	}
	return nil, nil
}

func parseCodeAttributeBody(data []byte, pool []ConstantPoolEntry) (*CodeAttribute, error) {
	r := binreader.New(data)
	maxStack, err := r.U16()
	if err != nil {
		return nil, malformed("reading Code max_stack: %v", err)
	}
	maxLocals, err := r.U16()
	if err != nil {
		return nil, malformed("reading Code max_locals: %v", err)
	}
	codeLength, err := r.U32()
	if err != nil {
		return nil, malformed("reading Code code_length: %v", err)
	}
	code, err := r.Bytes(int(codeLength))
	if err != nil {
		return nil, malformed("reading Code bytes (declared length %d): %v", codeLength, err)
	}

	exceptionCount, err := r.U16()
	if err != nil {
		return nil, malformed("reading Code exception_table_length: %v", err)
	}
	handlers := make([]ExceptionHandler, exceptionCount)
	for i := range handlers {
		startPC, err := r.U16()
		if err != nil {
			return nil, malformed("reading exception start_pc: %v", err)
		}
		endPC, err := r.U16()
		if err != nil {
			return nil, malformed("reading exception end_pc: %v", err)
		}
		handlerPC, err := r.U16()
		if err != nil {
			return nil, malformed("reading exception handler_pc: %v", err)
		}
		catchType, err := r.U16()
		if err != nil {
			return nil, malformed("reading exception catch_type: %v", err)
		}
		handlers[i] = ExceptionHandler{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrs, err := parseAttributeList(r, pool)
	if err != nil {
		return nil, err
	}

	if r.Remaining() != 0 {
		return nil, malformed("Code attribute has %d trailing bytes after declared sub-attributes", r.Remaining())
	}

	ca := &CodeAttribute{
		MaxStack:          maxStack,
		MaxLocals:         maxLocals,
		Code:              code,
		ExceptionHandlers: handlers,
		Attributes:        attrs,
	}

	for _, a := range attrs {
		switch a.Name {
		case "StackMapTable":
			frames, err := parseStackMapTable(binreader.New(a.Data))
			if err != nil {
				return nil, err
			}
			ca.StackMapTable = frames
		case "LineNumberTable":
			entries, err := parseLineNumberTable(a.Data)
			if err != nil {
				return nil, err
			}
			ca.LineNumbers = entries
		case "LocalVariableTable":
			entries, err := parseLocalVariableTable(a.Data, pool, false)
			if err != nil {
				return nil, err
			}
			ca.LocalVariables = entries
		case "LocalVariableTypeTable":
			entries, err := parseLocalVariableTable(a.Data, pool, true)
			if err != nil {
				return nil, err
			}
			ca.LocalVariableTypes = entries
		}
	}

	return ca, nil
}

func parseLineNumberTable(data []byte) ([]LineNumberEntry, error) {
	r := binreader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading LineNumberTable length: %v", err)
	}
	entries := make([]LineNumberEntry, count)
	for i := range entries {
		startPC, err := r.U16()
		if err != nil {
			return nil, malformed("reading LineNumberTable start_pc: %v", err)
		}
		lineNumber, err := r.U16()
		if err != nil {
			return nil, malformed("reading LineNumberTable line_number: %v", err)
		}
		entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: lineNumber}
	}
	return entries, nil
}

// parseLocalVariableTable parses both LocalVariableTable and
// LocalVariableTypeTable: they share shape, differing only in whether
// the fourth u16 names a descriptor or a signature.
func parseLocalVariableTable(data []byte, pool []ConstantPoolEntry, isTypeTable bool) ([]LocalVariableEntry, error) {
	r := binreader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading local variable table length: %v", err)
	}
	entries := make([]LocalVariableEntry, count)
	for i := range entries {
		startPC, err := r.U16()
		if err != nil {
			return nil, malformed("reading local variable start_pc: %v", err)
		}
		length, err := r.U16()
		if err != nil {
			return nil, malformed("reading local variable length: %v", err)
		}
		nameIndex, err := r.U16()
		if err != nil {
			return nil, malformed("reading local variable name_index: %v", err)
		}
		descOrSigIndex, err := r.U16()
		if err != nil {
			return nil, malformed("reading local variable descriptor/signature index: %v", err)
		}
		index, err := r.U16()
		if err != nil {
			return nil, malformed("reading local variable index: %v", err)
		}
		name, err := GetUtf8(pool, nameIndex)
		if err != nil {
			return nil, err
		}
		descOrSig, err := GetUtf8(pool, descOrSigIndex)
		if err != nil {
			return nil, err
		}
		_ = isTypeTable
		entries[i] = LocalVariableEntry{
			StartPC:         startPC,
			Length:          length,
			Name:            name,
			DescriptorOrSig: descOrSig,
			Index:           index,
		}
	}
	return entries, nil
}

func parseBootstrapMethods(data []byte) ([]BootstrapMethod, error) {
	r := binreader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading BootstrapMethods num_bootstrap_methods: %v", err)
	}
	methods := make([]BootstrapMethod, count)
	for i := range methods {
		methodRef, err := r.U16()
		if err != nil {
			return nil, malformed("reading bootstrap_method_ref: %v", err)
		}
		argCount, err := r.U16()
		if err != nil {
			return nil, malformed("reading num_bootstrap_arguments: %v", err)
		}
		args := make([]uint16, argCount)
		for j := range args {
			args[j], err = r.U16()
			if err != nil {
				return nil, malformed("reading bootstrap_argument: %v", err)
			}
		}
		methods[i] = BootstrapMethod{MethodRef: methodRef, BootstrapArguments: args}
	}
	if r.Remaining() != 0 {
		return nil, malformed("BootstrapMethods attribute has %d trailing bytes", r.Remaining())
	}
	return methods, nil
}

func parseInnerClasses(data []byte) ([]InnerClassEntry, error) {
	r := binreader.New(data)
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading InnerClasses number_of_classes: %v", err)
	}
	classes := make([]InnerClassEntry, count)
	for i := range classes {
		innerInfo, err := r.U16()
		if err != nil {
			return nil, malformed("reading inner_class_info_index: %v", err)
		}
		outerInfo, err := r.U16()
		if err != nil {
			return nil, malformed("reading outer_class_info_index: %v", err)
		}
		innerName, err := r.U16()
		if err != nil {
			return nil, malformed("reading inner_name_index: %v", err)
		}
		flags, err := r.U16()
		if err != nil {
			return nil, malformed("reading inner_class_access_flags: %v", err)
		}
		classes[i] = InnerClassEntry{
			InnerClassInfoIndex: innerInfo,
			OuterClassInfoIndex: outerInfo,
			InnerNameIndex:      innerName,
			InnerAccessFlags:    flags,
		}
	}
	return classes, nil
}
