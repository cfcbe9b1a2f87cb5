package classfile

import (
	"testing"

	"github.com/daimatz/jvmgo/internal/binreader"
)

func TestParseElementValueConst(t *testing.T) {
	r := binreader.New([]byte{ElemInt, 0, 9})
	ev, err := parseElementValue(r)
	if err != nil {
		t.Fatalf("parseElementValue: %v", err)
	}
	if ev.Tag != ElemInt || ev.ConstValueIndex != 9 {
		t.Errorf("got %+v", ev)
	}
}

func TestParseElementValueArray(t *testing.T) {
	// array of 2 ints
	data := []byte{ElemArray, 0, 2, ElemInt, 0, 1, ElemInt, 0, 2}
	r := binreader.New(data)
	ev, err := parseElementValue(r)
	if err != nil {
		t.Fatalf("parseElementValue: %v", err)
	}
	if ev.Tag != ElemArray || len(ev.ArrayValues) != 2 {
		t.Fatalf("got %+v", ev)
	}
	if ev.ArrayValues[0].ConstValueIndex != 1 || ev.ArrayValues[1].ConstValueIndex != 2 {
		t.Errorf("array values: got %+v", ev.ArrayValues)
	}
}

func TestParseAnnotation(t *testing.T) {
	// type_index=3, one pair: element_name_index=4, value=int const #5
	data := []byte{0, 3, 0, 1, 0, 4, ElemInt, 0, 5}
	r := binreader.New(data)
	a, err := parseAnnotation(r)
	if err != nil {
		t.Fatalf("parseAnnotation: %v", err)
	}
	if a.TypeIndex != 3 || len(a.ElementValuePairs) != 1 {
		t.Fatalf("got %+v", a)
	}
	pair := a.ElementValuePairs[0]
	if pair.ElementNameIndex != 4 || pair.Value.ConstValueIndex != 5 {
		t.Errorf("got %+v", pair)
	}
}

func TestParseTargetInfoOffsetTarget(t *testing.T) {
	// target_type 0x43 (instanceof), offset=0x0102
	data := []byte{0x43, 0x01, 0x02}
	r := binreader.New(data)
	targetType, err := r.U8()
	if err != nil {
		t.Fatal(err)
	}
	info, err := parseTargetInfo(r, targetType)
	if err != nil {
		t.Fatalf("parseTargetInfo: %v", err)
	}
	if info.Offset != 0x0102 {
		t.Errorf("Offset: got %d, want %d", info.Offset, 0x0102)
	}
}
