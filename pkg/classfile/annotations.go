package classfile

import "github.com/daimatz/jvmgo/internal/binreader"

// ElementValuePair is one (element_name_index, value) pair of an annotation.
type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// Annotation is a decoded annotation structure (JVMS 4.7.16).
type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

// ElementValue tags (JVMS 4.7.16.1).
const (
	ElemByte              = 'B'
	ElemChar              = 'C'
	ElemDouble            = 'D'
	ElemFloat             = 'F'
	ElemInt               = 'I'
	ElemLong              = 'J'
	ElemShort             = 'S'
	ElemBoolean           = 'Z'
	ElemString            = 's'
	ElemEnumClass         = 'e'
	ElemClass             = 'c'
	ElemAnnotation        = '@'
	ElemArray             = '['
)

// ElementValue is a tagged union over the element_value shapes: a
// constant-pool index, an enum pair, a nested annotation, or an array of
// further element values.
type ElementValue struct {
	Tag uint8

	ConstValueIndex  uint16 // const tags and 's'
	TypeNameIndex    uint16 // 'e'
	ConstNameIndex   uint16 // 'e'
	ClassInfoIndex   uint16 // 'c'
	NestedAnnotation *Annotation
	ArrayValues      []ElementValue
}

func parseElementValuePairs(r *binreader.Reader) ([]ElementValuePair, error) {
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading element_value_pairs count: %v", err)
	}
	pairs := make([]ElementValuePair, count)
	for i := range pairs {
		nameIndex, err := r.U16()
		if err != nil {
			return nil, malformed("reading element_name_index: %v", err)
		}
		value, err := parseElementValue(r)
		if err != nil {
			return nil, err
		}
		pairs[i] = ElementValuePair{ElementNameIndex: nameIndex, Value: value}
	}
	return pairs, nil
}

func parseAnnotation(r *binreader.Reader) (Annotation, error) {
	typeIndex, err := r.U16()
	if err != nil {
		return Annotation{}, malformed("reading annotation type_index: %v", err)
	}
	pairs, err := parseElementValuePairs(r)
	if err != nil {
		return Annotation{}, err
	}
	return Annotation{TypeIndex: typeIndex, ElementValuePairs: pairs}, nil
}

func parseElementValue(r *binreader.Reader) (ElementValue, error) {
	tag, err := r.U8()
	if err != nil {
		return ElementValue{}, malformed("reading element_value tag: %v", err)
	}
	switch tag {
	case ElemByte, ElemChar, ElemDouble, ElemFloat, ElemInt, ElemLong, ElemShort, ElemBoolean, ElemString:
		idx, err := r.U16()
		if err != nil {
			return ElementValue{}, malformed("reading const_value_index: %v", err)
		}
		return ElementValue{Tag: tag, ConstValueIndex: idx}, nil

	case ElemEnumClass:
		typeNameIndex, err := r.U16()
		if err != nil {
			return ElementValue{}, malformed("reading enum type_name_index: %v", err)
		}
		constNameIndex, err := r.U16()
		if err != nil {
			return ElementValue{}, malformed("reading enum const_name_index: %v", err)
		}
		return ElementValue{Tag: tag, TypeNameIndex: typeNameIndex, ConstNameIndex: constNameIndex}, nil

	case ElemClass:
		idx, err := r.U16()
		if err != nil {
			return ElementValue{}, malformed("reading class_info_index: %v", err)
		}
		return ElementValue{Tag: tag, ClassInfoIndex: idx}, nil

	case ElemAnnotation:
		nested, err := parseAnnotation(r)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, NestedAnnotation: &nested}, nil

	case ElemArray:
		count, err := r.U16()
		if err != nil {
			return ElementValue{}, malformed("reading array_value count: %v", err)
		}
		values := make([]ElementValue, count)
		for i := range values {
			values[i], err = parseElementValue(r)
			if err != nil {
				return ElementValue{}, err
			}
		}
		return ElementValue{Tag: tag, ArrayValues: values}, nil

	default:
		return ElementValue{}, malformed("invalid element_value tag %q", tag)
	}
}

// ParameterAnnotation is one entry of a RuntimeVisible/InvisibleParameterAnnotations attribute.
type ParameterAnnotation struct {
	Annotations []Annotation
}

func parseParameterAnnotation(r *binreader.Reader) (ParameterAnnotation, error) {
	count, err := r.U16()
	if err != nil {
		return ParameterAnnotation{}, malformed("reading parameter annotation count: %v", err)
	}
	annotations := make([]Annotation, count)
	for i := range annotations {
		annotations[i], err = parseAnnotation(r)
		if err != nil {
			return ParameterAnnotation{}, err
		}
	}
	return ParameterAnnotation{Annotations: annotations}, nil
}

// TypePathEntry is one (type_path_kind, type_argument_index) pair (JVMS 4.7.20.2).
type TypePathEntry struct {
	TypePathKind     uint8
	TypeArgumentIndex uint8
}

func parseTypePath(r *binreader.Reader) ([]TypePathEntry, error) {
	count, err := r.U8()
	if err != nil {
		return nil, malformed("reading type_path length: %v", err)
	}
	path := make([]TypePathEntry, count)
	for i := range path {
		kind, err := r.U8()
		if err != nil {
			return nil, malformed("reading type_path_kind: %v", err)
		}
		argIndex, err := r.U8()
		if err != nil {
			return nil, malformed("reading type_argument_index: %v", err)
		}
		path[i] = TypePathEntry{TypePathKind: kind, TypeArgumentIndex: argIndex}
	}
	return path, nil
}

// TargetInfo carries the target_type-dependent payload of a TypeAnnotation
// (JVMS 4.7.20.1). Only the fields relevant to TargetType are populated.
type TargetInfo struct {
	TypeParameterIndex  uint8
	SupertypeIndex      uint16
	BoundIndex          uint8
	FormalParameterIndex uint8
	ThrowsTypeIndex     uint16
	LocalVars           []LocalVarTarget
	ExceptionTableIndex uint16
	Offset              uint16
	TypeArgumentIndex   uint8
}

// LocalVarTarget is one entry of a localvar_target (used by target_type 0x40/0x41).
type LocalVarTarget struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// TypeAnnotation is a decoded type_annotation structure (JVMS 4.7.20),
// used by RuntimeVisible/InvisibleTypeAnnotations. Resolution against
// specific bytecode offsets is left to a consumer; the decoder's job is
// only to preserve every field losslessly.
type TypeAnnotation struct {
	TargetType        uint8
	TargetInfo        TargetInfo
	TypePath          []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

func parseTypeAnnotation(r *binreader.Reader) (TypeAnnotation, error) {
	targetType, err := r.U8()
	if err != nil {
		return TypeAnnotation{}, malformed("reading type_annotation target_type: %v", err)
	}
	info, err := parseTargetInfo(r, targetType)
	if err != nil {
		return TypeAnnotation{}, err
	}
	path, err := parseTypePath(r)
	if err != nil {
		return TypeAnnotation{}, err
	}
	typeIndex, err := r.U16()
	if err != nil {
		return TypeAnnotation{}, malformed("reading type_annotation type_index: %v", err)
	}
	pairs, err := parseElementValuePairs(r)
	if err != nil {
		return TypeAnnotation{}, err
	}
	return TypeAnnotation{
		TargetType:        targetType,
		TargetInfo:        info,
		TypePath:          path,
		TypeIndex:         typeIndex,
		ElementValuePairs: pairs,
	}, nil
}

func parseTargetInfo(r *binreader.Reader, targetType uint8) (TargetInfo, error) {
	switch targetType {
	case 0x00, 0x01:
		v, err := r.U8()
		if err != nil {
			return TargetInfo{}, malformed("reading type_parameter_target: %v", err)
		}
		return TargetInfo{TypeParameterIndex: v}, nil

	case 0x10:
		v, err := r.U16()
		if err != nil {
			return TargetInfo{}, malformed("reading supertype_target: %v", err)
		}
		return TargetInfo{SupertypeIndex: v}, nil

	case 0x11, 0x12:
		paramIdx, err := r.U8()
		if err != nil {
			return TargetInfo{}, malformed("reading type_parameter_bound_target parameter index: %v", err)
		}
		bound, err := r.U8()
		if err != nil {
			return TargetInfo{}, malformed("reading type_parameter_bound_target bound index: %v", err)
		}
		return TargetInfo{TypeParameterIndex: paramIdx, BoundIndex: bound}, nil

	case 0x13, 0x14, 0x15:
		return TargetInfo{}, nil

	case 0x16:
		v, err := r.U8()
		if err != nil {
			return TargetInfo{}, malformed("reading formal_parameter_target: %v", err)
		}
		return TargetInfo{FormalParameterIndex: v}, nil

	case 0x17:
		v, err := r.U16()
		if err != nil {
			return TargetInfo{}, malformed("reading throws_target: %v", err)
		}
		return TargetInfo{ThrowsTypeIndex: v}, nil

	case 0x40, 0x41:
		count, err := r.U16()
		if err != nil {
			return TargetInfo{}, malformed("reading localvar_target table_length: %v", err)
		}
		vars := make([]LocalVarTarget, count)
		for i := range vars {
			startPC, err := r.U16()
			if err != nil {
				return TargetInfo{}, malformed("reading localvar_target start_pc: %v", err)
			}
			length, err := r.U16()
			if err != nil {
				return TargetInfo{}, malformed("reading localvar_target length: %v", err)
			}
			index, err := r.U16()
			if err != nil {
				return TargetInfo{}, malformed("reading localvar_target index: %v", err)
			}
			vars[i] = LocalVarTarget{StartPC: startPC, Length: length, Index: index}
		}
		return TargetInfo{LocalVars: vars}, nil

	case 0x42:
		v, err := r.U16()
		if err != nil {
			return TargetInfo{}, malformed("reading catch_target: %v", err)
		}
		return TargetInfo{ExceptionTableIndex: v}, nil

	case 0x43, 0x44, 0x45, 0x46:
		v, err := r.U16()
		if err != nil {
			return TargetInfo{}, malformed("reading offset_target: %v", err)
		}
		return TargetInfo{Offset: v}, nil

	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		offset, err := r.U16()
		if err != nil {
			return TargetInfo{}, malformed("reading type_argument_target offset: %v", err)
		}
		argIndex, err := r.U8()
		if err != nil {
			return TargetInfo{}, malformed("reading type_argument_target type_argument_index: %v", err)
		}
		return TargetInfo{Offset: offset, TypeArgumentIndex: argIndex}, nil

	default:
		return TargetInfo{}, malformed("invalid type_annotation target_type 0x%02x", targetType)
	}
}
