package classfile

import (
	"testing"

	"github.com/daimatz/jvmgo/internal/binreader"
)

func TestParseStackMapFrameSame(t *testing.T) {
	r := binreader.New([]byte{10})
	f, err := parseStackMapFrame(r)
	if err != nil {
		t.Fatalf("parseStackMapFrame: %v", err)
	}
	if f.Kind != FrameSame || f.OffsetDelta != 10 {
		t.Errorf("got %+v, want SameFrame offset 10", f)
	}
}

func TestParseStackMapFrameChop(t *testing.T) {
	r := binreader.New([]byte{249, 0, 5}) // frame_type 249 -> chop 2 locals
	f, err := parseStackMapFrame(r)
	if err != nil {
		t.Fatalf("parseStackMapFrame: %v", err)
	}
	if f.Kind != FrameChop || f.ChopCount != 2 || f.OffsetDelta != 5 {
		t.Errorf("got %+v, want ChopFrame count=2 offset=5", f)
	}
}

func TestParseStackMapFrameReserved(t *testing.T) {
	r := binreader.New([]byte{200})
	if _, err := parseStackMapFrame(r); err == nil {
		t.Error("frame_type 200 is reserved, expected MalformedClassFile")
	}
}

func TestParseStackMapFrameFull(t *testing.T) {
	// full_frame: offset_delta=1, 1 local (Integer), 1 stack item (Object #7)
	data := []byte{255, 0, 1, 0, 1, VerifyInteger, 0, 1, VerifyObject, 0, 7}
	r := binreader.New(data)
	f, err := parseStackMapFrame(r)
	if err != nil {
		t.Fatalf("parseStackMapFrame: %v", err)
	}
	if f.Kind != FrameFull {
		t.Fatalf("Kind: got %v, want FrameFull", f.Kind)
	}
	if len(f.Locals) != 1 || f.Locals[0].Tag != VerifyInteger {
		t.Errorf("Locals: got %+v", f.Locals)
	}
	if len(f.Stack) != 1 || f.Stack[0].Tag != VerifyObject || f.Stack[0].CpoolIndex != 7 {
		t.Errorf("Stack: got %+v", f.Stack)
	}
}
