package classfile

import (
	"testing"

	"github.com/daimatz/jvmgo/internal/binreader"
)

func TestParseConstantPoolLongDoublePadding(t *testing.T) {
	b := newClassBuilder()
	// count = 4: index 1 is Long (occupies 1 and 2), index 3 is Utf8.
	b.u8(TagLong)
	b.u32(0)
	b.u32(1) // int64(1) split across two u32 writes, big-endian
	writeUtf8(b, "x")

	pool, err := parseConstantPool(binreader.New(b.buf), 4)
	if err != nil {
		t.Fatalf("parseConstantPool: %v", err)
	}

	long, ok := pool[1].(*ConstantLong)
	if !ok {
		t.Fatalf("pool[1] = %T, want *ConstantLong", pool[1])
	}
	if long.Value != 1 {
		t.Errorf("Long value: got %d, want 1", long.Value)
	}

	if _, ok := pool[2].(*constantPadding); !ok {
		t.Errorf("pool[2] = %T, want padding slot after Long", pool[2])
	}

	utf8, ok := pool[3].(*ConstantUtf8)
	if !ok {
		t.Fatalf("pool[3] = %T, want *ConstantUtf8", pool[3])
	}
	if utf8.Value != "x" {
		t.Errorf("pool[3] value: got %q, want %q", utf8.Value, "x")
	}
}

func TestParseConstantPoolMethodHandle(t *testing.T) {
	b := newClassBuilder()
	b.u8(TagMethodHandle)
	b.u8(6) // REF_invokeStatic
	b.u16(42)

	pool, err := parseConstantPool(binreader.New(b.buf), 2)
	if err != nil {
		t.Fatalf("parseConstantPool: %v", err)
	}

	mh, ok := pool[1].(*ConstantMethodHandle)
	if !ok {
		t.Fatalf("pool[1] = %T, want *ConstantMethodHandle", pool[1])
	}
	if mh.ReferenceKind != 6 || mh.ReferenceIndex != 42 {
		t.Errorf("MethodHandle: got kind=%d index=%d, want kind=6 index=42", mh.ReferenceKind, mh.ReferenceIndex)
	}
}

func TestParseConstantPoolUnknownTag(t *testing.T) {
	b := newClassBuilder()
	b.u8(0xFF)

	_, err := parseConstantPool(binreader.New(b.buf), 2)
	if err == nil {
		t.Error("expected error for unknown tag, got nil")
	}
}

func TestResolveMethodref(t *testing.T) {
	b := newClassBuilder()
	// 1: Utf8 "Add", 2: Class #1, 3: Utf8 "add", 4: Utf8 "(II)I",
	// 5: NameAndType #3 #4, 6: Methodref #2 #5
	writeUtf8(b, "Add")
	writeClass(b, 1)
	writeUtf8(b, "add")
	writeUtf8(b, "(II)I")
	b.u8(TagNameAndType)
	b.u16(3)
	b.u16(4)
	b.u8(TagMethodref)
	b.u16(2)
	b.u16(5)

	pool, err := parseConstantPool(binreader.New(b.buf), 7)
	if err != nil {
		t.Fatalf("parseConstantPool: %v", err)
	}

	ref, err := ResolveMethodref(pool, 6)
	if err != nil {
		t.Fatalf("ResolveMethodref: %v", err)
	}
	if ref.ClassName != "Add" || ref.MethodName != "add" || ref.Descriptor != "(II)I" {
		t.Errorf("ResolveMethodref: got %+v", ref)
	}
}
