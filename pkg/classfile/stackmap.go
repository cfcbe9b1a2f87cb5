package classfile

import "github.com/daimatz/jvmgo/internal/binreader"

// VerificationTypeInfo tags (JVMS 4.7.4).
const (
	VerifyTop = iota
	VerifyInteger
	VerifyFloat
	VerifyDouble
	VerifyLong
	VerifyNull
	VerifyUninitializedThis
	VerifyObject
	VerifyUninitialized
)

// VerificationTypeInfo describes the type of one local or stack slot at a
// StackMapTable frame. Object/Uninitialized carry an extra operand; the
// rest are singleton tags.
type VerificationTypeInfo struct {
	Tag        uint8
	CpoolIndex uint16 // valid when Tag == VerifyObject
	Offset     uint16 // valid when Tag == VerifyUninitialized
}

func parseVerificationTypeInfo(r *binreader.Reader) (VerificationTypeInfo, error) {
	tag, err := r.U8()
	if err != nil {
		return VerificationTypeInfo{}, malformed("reading verification_type_info tag: %v", err)
	}
	switch tag {
	case VerifyTop, VerifyInteger, VerifyFloat, VerifyDouble, VerifyLong, VerifyNull, VerifyUninitializedThis:
		return VerificationTypeInfo{Tag: tag}, nil
	case VerifyObject:
		idx, err := r.U16()
		if err != nil {
			return VerificationTypeInfo{}, malformed("reading Object verification cpool_index: %v", err)
		}
		return VerificationTypeInfo{Tag: tag, CpoolIndex: idx}, nil
	case VerifyUninitialized:
		offset, err := r.U16()
		if err != nil {
			return VerificationTypeInfo{}, malformed("reading Uninitialized verification offset: %v", err)
		}
		return VerificationTypeInfo{Tag: tag, Offset: offset}, nil
	default:
		return VerificationTypeInfo{}, malformed("invalid verification_type_info tag %d", tag)
	}
}

// StackMapFrame kinds, named after the frame_type ranges of JVMS 4.7.4.
type StackMapFrameKind int

const (
	FrameSame StackMapFrameKind = iota
	FrameSameLocals1StackItem
	FrameSameLocals1StackItemExtended
	FrameChop
	FrameSameExtended
	FrameAppend
	FrameFull
)

// StackMapFrame is one decoded entry of a StackMapTable attribute.
type StackMapFrame struct {
	Kind        StackMapFrameKind
	FrameType   uint8
	OffsetDelta uint16
	ChopCount   int // FrameChop: number of locals removed (251 - frame_type)
	Stack       []VerificationTypeInfo
	Locals      []VerificationTypeInfo
}

// parseStackMapFrame decodes one StackMapTable entry. frame_type 128-246 is
// reserved for future JVM versions; the decoder rejects it as malformed
// rather than silently skipping it.
func parseStackMapFrame(r *binreader.Reader) (StackMapFrame, error) {
	frameType, err := r.U8()
	if err != nil {
		return StackMapFrame{}, malformed("reading stack_map_frame frame_type: %v", err)
	}

	switch {
	case frameType <= 63:
		return StackMapFrame{Kind: FrameSame, FrameType: frameType, OffsetDelta: uint16(frameType)}, nil

	case frameType <= 127:
		stack, err := parseVerificationTypeInfo(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItem,
			FrameType:   frameType,
			OffsetDelta: uint16(frameType) - 64,
			Stack:       []VerificationTypeInfo{stack},
		}, nil

	case frameType >= 128 && frameType <= 246:
		return StackMapFrame{}, malformed("reserved stack_map_frame frame_type %d", frameType)

	case frameType == 247:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, malformed("reading same_locals_1_stack_item_frame_extended offset_delta: %v", err)
		}
		stack, err := parseVerificationTypeInfo(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItemExtended,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Stack:       []VerificationTypeInfo{stack},
		}, nil

	case frameType >= 248 && frameType <= 250:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, malformed("reading chop_frame offset_delta: %v", err)
		}
		return StackMapFrame{
			Kind:        FrameChop,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			ChopCount:   251 - int(frameType),
		}, nil

	case frameType == 251:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, malformed("reading same_frame_extended offset_delta: %v", err)
		}
		return StackMapFrame{Kind: FrameSameExtended, FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType >= 252 && frameType <= 254:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, malformed("reading append_frame offset_delta: %v", err)
		}
		n := int(frameType) - 251
		locals := make([]VerificationTypeInfo, n)
		for i := 0; i < n; i++ {
			locals[i], err = parseVerificationTypeInfo(r)
			if err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{Kind: FrameAppend, FrameType: frameType, OffsetDelta: offsetDelta, Locals: locals}, nil

	case frameType == 255:
		offsetDelta, err := r.U16()
		if err != nil {
			return StackMapFrame{}, malformed("reading full_frame offset_delta: %v", err)
		}
		numLocals, err := r.U16()
		if err != nil {
			return StackMapFrame{}, malformed("reading full_frame number_of_locals: %v", err)
		}
		locals := make([]VerificationTypeInfo, numLocals)
		for i := range locals {
			locals[i], err = parseVerificationTypeInfo(r)
			if err != nil {
				return StackMapFrame{}, err
			}
		}
		numStack, err := r.U16()
		if err != nil {
			return StackMapFrame{}, malformed("reading full_frame number_of_stack_items: %v", err)
		}
		stack := make([]VerificationTypeInfo, numStack)
		for i := range stack {
			stack[i], err = parseVerificationTypeInfo(r)
			if err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{Kind: FrameFull, FrameType: frameType, OffsetDelta: offsetDelta, Locals: locals, Stack: stack}, nil

	default:
		return StackMapFrame{}, malformed("invalid stack_map_frame frame_type %d", frameType)
	}
}

func parseStackMapTable(r *binreader.Reader) ([]StackMapFrame, error) {
	count, err := r.U16()
	if err != nil {
		return nil, malformed("reading StackMapTable number_of_entries: %v", err)
	}
	frames := make([]StackMapFrame, count)
	for i := range frames {
		frames[i], err = parseStackMapFrame(r)
		if err != nil {
			return nil, err
		}
	}
	return frames, nil
}
