package classfile

import (
	"encoding/binary"
	"testing"
)

// classBuilder assembles a minimal but well-formed class file byte by
// byte, since no real javac output ships with this repo. buildAddClass
// uses it for a one-method class: "Add" extends java/lang/Object, with a
// single method add(II)I whose Code is fixed (iload_0, iload_1, iadd,
// ireturn).
type classBuilder struct {
	buf  []byte
	pool []string // constant pool entries already interned, by rendered key
}

func newClassBuilder() *classBuilder {
	return &classBuilder{}
}

func (b *classBuilder) u8(v uint8)   { b.buf = append(b.buf, v) }
func (b *classBuilder) u16(v uint16) { b.buf = append(b.buf, byte(v>>8), byte(v)) }
func (b *classBuilder) u32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *classBuilder) bytes(v []byte) { b.buf = append(b.buf, v...) }

// buildAddClass returns the raw bytes of a class file equivalent to:
//
//	class Add {
//	    static int add(int a, int b) { return a + b; }
//	}
func buildAddClass(t *testing.T) []byte {
	t.Helper()
	b := newClassBuilder()

	b.u32(Magic)
	b.u16(0) // minor
	b.u16(52) // major: Java 8

	// Constant pool (1-indexed, 7 entries -> count = 8).
	// 1: Utf8 "Add"
	// 2: Class #1
	// 3: Utf8 "java/lang/Object"
	// 4: Class #3
	// 5: Utf8 "add"
	// 6: Utf8 "(II)I"
	// 7: Utf8 "Code"
	b.u16(8)
	writeUtf8(b, "Add")
	writeClass(b, 1)
	writeUtf8(b, "java/lang/Object")
	writeClass(b, 3)
	writeUtf8(b, "add")
	writeUtf8(b, "(II)I")
	writeUtf8(b, "Code")

	b.u16(AccPublic | AccSuper) // access_flags
	b.u16(2)                    // this_class -> Add
	b.u16(4)                    // super_class -> java/lang/Object
	b.u16(0)                    // interfaces_count

	b.u16(0) // fields_count

	b.u16(1)                         // methods_count
	b.u16(AccPublic | AccStatic)     // access_flags
	b.u16(5)                         // name_index -> "add"
	b.u16(6)                         // descriptor_index -> "(II)I"
	b.u16(1)                         // attributes_count
	b.u16(7)                         // attribute_name_index -> "Code"

	code := []byte{
		0x1A,       // iload_0
		0x1B,       // iload_1
		0x60,       // iadd
		0xAC,       // ireturn
	}

	var codeBody []byte
	codeBody = appendU16(codeBody, 2) // max_stack
	codeBody = appendU16(codeBody, 2) // max_locals
	codeBody = appendU32(codeBody, uint32(len(code)))
	codeBody = append(codeBody, code...)
	codeBody = appendU16(codeBody, 0) // exception_table_length
	codeBody = appendU16(codeBody, 0) // attributes_count

	b.u32(uint32(len(codeBody))) // attribute_length
	b.bytes(codeBody)

	b.u16(0) // class attributes_count

	return b.buf
}

func writeUtf8(b *classBuilder, s string) {
	b.u8(TagUtf8)
	b.u16(uint16(len(s)))
	b.bytes([]byte(s))
}

func writeClass(b *classBuilder, nameIndex uint16) {
	b.u8(TagClass)
	b.u16(nameIndex)
}

func appendU16(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func TestParseAddClass(t *testing.T) {
	data := buildAddClass(t)

	cf, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	className, err := cf.ClassName()
	if err != nil {
		t.Fatalf("ClassName: %v", err)
	}
	if className != "Add" {
		t.Errorf("ClassName: got %q, want %q", className, "Add")
	}

	superName, err := cf.SuperClassName()
	if err != nil {
		t.Fatalf("SuperClassName: %v", err)
	}
	if superName != "java/lang/Object" {
		t.Errorf("SuperClassName: got %q, want %q", superName, "java/lang/Object")
	}

	addMethod := cf.FindMethod("add", "(II)I")
	if addMethod == nil {
		t.Fatal("add(II)I method not found")
	}
	if addMethod.Code == nil {
		t.Fatal("add method has no Code attribute")
	}
	if addMethod.Code.MaxStack != 2 {
		t.Errorf("MaxStack: got %d, want 2", addMethod.Code.MaxStack)
	}
	if addMethod.Code.MaxLocals != 2 {
		t.Errorf("MaxLocals: got %d, want 2", addMethod.Code.MaxLocals)
	}
	wantCode := []byte{0x1A, 0x1B, 0x60, 0xAC}
	if string(addMethod.Code.Code) != string(wantCode) {
		t.Errorf("Code: got %x, want %x", addMethod.Code.Code, wantCode)
	}
}

func TestParseInvalidMagic(t *testing.T) {
	_, err := Parse([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	if err == nil {
		t.Error("expected error for invalid magic number, got nil")
	}
}

func TestParseTruncated(t *testing.T) {
	data := buildAddClass(t)
	_, err := Parse(data[:len(data)-5])
	if err == nil {
		t.Error("expected error for truncated class file, got nil")
	}
}

func TestSupportedVersion(t *testing.T) {
	cf := &ClassFile{MajorVersion: 52, MinorVersion: 0}
	if !cf.SupportedVersion() {
		t.Error("Java 8 (major=52) should be supported")
	}

	tooOld := &ClassFile{MajorVersion: 45, MinorVersion: 3}
	if tooOld.SupportedVersion() {
		t.Error("major=45 (pre-Java-8) should not be supported")
	}

	tooNew := &ClassFile{MajorVersion: 99, MinorVersion: 0}
	if tooNew.SupportedVersion() {
		t.Error("major=99 should not be supported")
	}
}
