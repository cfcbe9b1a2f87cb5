package interpreter

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/daimatz/jvmgo/pkg/classfile"
	"github.com/daimatz/jvmgo/pkg/gfunction"
	"github.com/daimatz/jvmgo/pkg/heap"
	"github.com/daimatz/jvmgo/pkg/rtda"
)

// cb is a minimal big-endian class-file byte builder, the same shape
// pkg/heap's own loader tests use to avoid depending on a real .class
// file on disk.
type cb struct{ buf []byte }

func (b *cb) u8(v uint8)   { b.buf = append(b.buf, v) }
func (b *cb) u16(v uint16) { b.buf = append(b.buf, byte(v>>8), byte(v)) }
func (b *cb) u32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *cb) bytes(v []byte) { b.buf = append(b.buf, v...) }

func (b *cb) utf8(s string) {
	b.u8(classfile.TagUtf8)
	b.u16(uint16(len(s)))
	b.bytes([]byte(s))
}
func (b *cb) class(nameIdx uint16) { b.u8(classfile.TagClass); b.u16(nameIdx) }
func (b *cb) str(utf8Idx uint16)   { b.u8(classfile.TagString); b.u16(utf8Idx) }
func (b *cb) integer(v int32)      { b.u8(classfile.TagInteger); b.u32(uint32(v)) }
func (b *cb) nameAndType(n, d uint16) {
	b.u8(classfile.TagNameAndType)
	b.u16(n)
	b.u16(d)
}
func (b *cb) fieldref(class, nt uint16) {
	b.u8(classfile.TagFieldref)
	b.u16(class)
	b.u16(nt)
}
func (b *cb) methodref(class, nt uint16) {
	b.u8(classfile.TagMethodref)
	b.u16(class)
	b.u16(nt)
}

// codeAttrNameIndex is the constant pool index every test's pool
// reserves for the Utf8 "Code" entry.
const codeAttrNameIndex = 1

// buildClass assembles a minimal one-method class file: poolBytes is
// the already-encoded constant pool body (codeAttrNameIndex must point
// at a Utf8 "Code" entry within it), thisClass/superClass index the
// This/Object class entries, and the single static method gets a Code
// attribute with no sub-attributes of its own.
func buildClass(poolCount, thisClass, superClass, nameIdx, descIdx uint16, poolBytes, code []byte) []byte {
	b := &cb{}
	b.u32(classfile.Magic)
	b.u16(0)
	b.u16(52)
	b.u16(poolCount)
	b.bytes(poolBytes)
	b.u16(classfile.AccPublic | classfile.AccSuper)
	b.u16(thisClass)
	b.u16(superClass)
	b.u16(0) // interfaces
	b.u16(0) // fields

	b.u16(1) // methods_count
	b.u16(classfile.AccStatic | classfile.AccPublic)
	b.u16(nameIdx)
	b.u16(descIdx)
	b.u16(1) // attributes_count: Code only

	codeBody := &cb{}
	codeBody.u16(4) // max_stack
	codeBody.u16(2) // max_locals
	codeBody.u32(uint32(len(code)))
	codeBody.bytes(code)
	codeBody.u16(0) // exception_table_length
	codeBody.u16(0) // attributes_count

	b.u16(codeAttrNameIndex)
	b.u32(uint32(len(codeBody.buf)))
	b.bytes(codeBody.buf)

	b.u16(0) // class attributes
	return b.buf
}

type fakeSource struct{ classes map[string][]byte }

func (s *fakeSource) ReadClass(name string) ([]byte, error) {
	data, ok := s.classes[name]
	if !ok {
		return nil, &classNotFoundErr{name}
	}
	return data, nil
}

type classNotFoundErr struct{ name string }

func (e *classNotFoundErr) Error() string { return "class not found: " + e.name }

func objectClassBytes() []byte {
	b := &cb{}
	b.u32(classfile.Magic)
	b.u16(0)
	b.u16(52)
	b.u16(4)
	b.utf8("Code")
	b.utf8("java/lang/Object")
	b.class(2)
	b.u16(classfile.AccPublic | classfile.AccSuper)
	b.u16(3)
	b.u16(0)
	b.u16(0)
	b.u16(0)
	b.u16(0)
	b.u16(0)
	return b.buf
}

func loadMainMethod(t *testing.T, classBytes []byte) *heap.Method {
	t.Helper()
	loader := heap.NewClassLoader(&fakeSource{classes: map[string][]byte{
		"java/lang/Object": objectClassBytes(),
		"Main":             classBytes,
	}})
	class, err := loader.LoadClass("Main")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	if len(class.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(class.Methods))
	}
	return class.Methods[0]
}

// TestLdcStringInterning builds a class whose method ldc's the same
// string constant twice and returns the second, confirming execLdc routes
// a String constant through ClassLoader.InternString (the returned
// reference is the loader's pooled object) rather than allocating a
// fresh object per ldc.
func TestLdcStringInterning(t *testing.T) {
	pool := &cb{}
	pool.utf8("Code")             // 1
	pool.utf8("java/lang/Object") // 2
	pool.class(2)                 // 3
	pool.utf8("Main")             // 4
	pool.class(4)                 // 5
	pool.utf8("test")             // 6
	pool.utf8("()Ljava/lang/String;") // 7
	pool.utf8("hello")            // 8
	pool.str(8)                   // 9

	code := []byte{
		0x12, 0x09, // ldc #9
		0x57, // pop
		0x12, 0x09, // ldc #9
		0xB0, // areturn
	}

	classBytes := buildClass(10, 5, 3, 6, 7, pool.buf, code)
	method := loadMainMethod(t, classBytes)

	thread := rtda.NewThread()
	frame := rtda.NewFrame(method)
	if err := thread.PushFrame(frame); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}
	if err := Run(thread); err != nil {
		t.Fatalf("Run: %v", err)
	}

	str, err := method.Class.Loader.InternString("hello")
	if err != nil {
		t.Fatalf("InternString: %v", err)
	}
	if !str.HasStr || str.Str != "hello" {
		t.Errorf("interned string: got %+v", str)
	}
	if got := frame.ReturnValue[0].Ref; got != str {
		t.Errorf("ldc pushed %p, want the interned string %p", got, str)
	}
}

// TestInvokestaticShimRoutesBeforeResolution builds a class that calls
// java/lang/Integer.valueOf(I)Ljava/lang/Integer; through invokestatic,
// confirming tryShim intercepts it without Integer ever needing to be
// on the classpath.
func TestInvokestaticShimRoutesBeforeResolution(t *testing.T) {
	pool := &cb{}
	pool.utf8("Code")                   // 1
	pool.utf8("java/lang/Object")       // 2
	pool.class(2)                       // 3
	pool.utf8("Main")                   // 4
	pool.class(4)                       // 5
	pool.utf8("test")                   // 6
	pool.utf8("()V")                    // 7
	pool.utf8("java/lang/Integer")      // 8
	pool.class(8)                       // 9
	pool.utf8("valueOf")                // 10
	pool.utf8("(I)Ljava/lang/Integer;") // 11
	pool.nameAndType(10, 11)            // 12
	pool.methodref(9, 12)               // 13

	code := []byte{
		0x10, 0x07, // bipush 7
		0xB8, 0x00, 0x0D, // invokestatic #13
		0x57, // pop
		0xB1, // return
	}

	classBytes := buildClass(14, 5, 3, 6, 7, pool.buf, code)
	method := loadMainMethod(t, classBytes)

	thread := rtda.NewThread()
	if err := thread.PushFrame(rtda.NewFrame(method)); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}
	if err := Run(thread); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

// TestGetstaticSystemOutShim confirms System.out/println route through
// gfunction without java/lang/System or java/io/PrintStream ever being
// resolved, and that output lands on the writer gfunction.Configure set.
func TestGetstaticSystemOutShim(t *testing.T) {
	var out bytes.Buffer
	gfunction.Configure(&out, &out)
	defer gfunction.Configure(os.Stdout, os.Stderr)

	pool := &cb{}
	pool.utf8("Code")                  // 1
	pool.utf8("java/lang/Object")      // 2
	pool.class(2)                      // 3
	pool.utf8("Main")                  // 4
	pool.class(4)                      // 5
	pool.utf8("test")                  // 6
	pool.utf8("()V")                   // 7
	pool.utf8("java/lang/System")      // 8
	pool.class(8)                      // 9
	pool.utf8("out")                   // 10
	pool.utf8("Ljava/io/PrintStream;") // 11
	pool.nameAndType(10, 11)           // 12
	pool.fieldref(9, 12)               // 13
	pool.utf8("java/io/PrintStream")   // 14
	pool.class(14)                     // 15
	pool.utf8("println")               // 16
	pool.utf8("(I)V")                  // 17
	pool.nameAndType(16, 17)           // 18
	pool.methodref(15, 18)             // 19

	code := []byte{
		0xB2, 0x00, 0x0D, // getstatic #13 (System.out)
		0x10, 0x05, // bipush 5
		0xB6, 0x00, 0x13, // invokevirtual #19 (println(I))
		0xB1, // return
	}

	classBytes := buildClass(20, 5, 3, 6, 7, pool.buf, code)
	method := loadMainMethod(t, classBytes)

	thread := rtda.NewThread()
	if err := thread.PushFrame(rtda.NewFrame(method)); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}
	if err := Run(thread); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := out.String(); got != "5\n" {
		t.Errorf("println(5): got %q, want %q", got, "5\n")
	}
}
