package classfile

import (
	"os"

	"github.com/daimatz/jvmgo/internal/binreader"
)

// ParseFile reads and parses a single .class file from disk.
func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a complete class file from an in-memory byte slice,
// per JVMS 4.1.
func Parse(data []byte) (*ClassFile, error) {
	r := binreader.New(data)

	magic, err := r.U32()
	if err != nil {
		return nil, malformed("reading magic: %v", err)
	}
	if magic != Magic {
		return nil, malformed("bad magic 0x%08X, want 0x%08X", magic, uint32(Magic))
	}

	minor, err := r.U16()
	if err != nil {
		return nil, malformed("reading minor_version: %v", err)
	}
	major, err := r.U16()
	if err != nil {
		return nil, malformed("reading major_version: %v", err)
	}

	poolCount, err := r.U16()
	if err != nil {
		return nil, malformed("reading constant_pool_count: %v", err)
	}
	pool, err := parseConstantPool(r, poolCount)
	if err != nil {
		return nil, err
	}

	accessFlags, err := r.U16()
	if err != nil {
		return nil, malformed("reading access_flags: %v", err)
	}
	thisClass, err := r.U16()
	if err != nil {
		return nil, malformed("reading this_class: %v", err)
	}
	superClass, err := r.U16()
	if err != nil {
		return nil, malformed("reading super_class: %v", err)
	}

	interfacesCount, err := r.U16()
	if err != nil {
		return nil, malformed("reading interfaces_count: %v", err)
	}
	interfaces := make([]uint16, interfacesCount)
	for i := range interfaces {
		interfaces[i], err = r.U16()
		if err != nil {
			return nil, malformed("reading interface index %d: %v", i, err)
		}
	}

	fields, err := parseFields(r, pool)
	if err != nil {
		return nil, err
	}

	methods, err := parseMethods(r, pool)
	if err != nil {
		return nil, err
	}

	classAttrs, err := parseAttributeList(r, pool)
	if err != nil {
		return nil, err
	}

	if r.Remaining() != 0 {
		return nil, malformed("%d trailing bytes after class file body", r.Remaining())
	}

	cf := &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: pool,
		AccessFlags:  accessFlags,
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   classAttrs,
	}

	for _, a := range classAttrs {
		if a.Name == "BootstrapMethods" {
			bms, err := parseBootstrapMethods(a.Data)
			if err != nil {
				return nil, err
			}
			cf.BootstrapMethods = bms
		}
	}

	return cf, nil
}

func parseFields(r *binreader.Reader, pool []ConstantPoolEntry) ([]FieldInfo, error) {
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading fields_count: %v", err)
	}
	fields := make([]FieldInfo, count)
	for i := range fields {
		accessFlags, err := r.U16()
		if err != nil {
			return nil, malformed("reading field access_flags: %v", err)
		}
		nameIndex, err := r.U16()
		if err != nil {
			return nil, malformed("reading field name_index: %v", err)
		}
		descIndex, err := r.U16()
		if err != nil {
			return nil, malformed("reading field descriptor_index: %v", err)
		}
		name, err := GetUtf8(pool, nameIndex)
		if err != nil {
			return nil, err
		}
		descriptor, err := GetUtf8(pool, descIndex)
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributeList(r, pool)
		if err != nil {
			return nil, err
		}
		constValueIndex, err := findConstantValueIndex(attrs)
		if err != nil {
			return nil, err
		}
		fields[i] = FieldInfo{
			AccessFlags:        accessFlags,
			Name:               name,
			Descriptor:         descriptor,
			Attributes:         attrs,
			ConstantValueIndex: constValueIndex,
		}
	}
	return fields, nil
}

func parseMethods(r *binreader.Reader, pool []ConstantPoolEntry) ([]MethodInfo, error) {
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading methods_count: %v", err)
	}
	methods := make([]MethodInfo, count)
	for i := range methods {
		accessFlags, err := r.U16()
		if err != nil {
			return nil, malformed("reading method access_flags: %v", err)
		}
		nameIndex, err := r.U16()
		if err != nil {
			return nil, malformed("reading method name_index: %v", err)
		}
		descIndex, err := r.U16()
		if err != nil {
			return nil, malformed("reading method descriptor_index: %v", err)
		}
		name, err := GetUtf8(pool, nameIndex)
		if err != nil {
			return nil, err
		}
		descriptor, err := GetUtf8(pool, descIndex)
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributeList(r, pool)
		if err != nil {
			return nil, err
		}
		code, err := findCodeAttribute(attrs, pool)
		if err != nil {
			return nil, err
		}
		methods[i] = MethodInfo{
			AccessFlags: accessFlags,
			Name:        name,
			Descriptor:  descriptor,
			Attributes:  attrs,
			Code:        code,
		}
	}
	return methods, nil
}

// FindMethodByName finds a method by name only, returning the first match.
func (cf *ClassFile) FindMethodByName(name string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			return &cf.Methods[i]
		}
	}
	return nil
}
