package heap

import (
	"encoding/binary"
	"testing"

	"github.com/daimatz/jvmgo/pkg/classfile"
)

// fakeSource serves pre-built class bytes out of a map, standing in for
// a real classpath entry.
type fakeSource struct {
	classes map[string][]byte
}

func (s *fakeSource) ReadClass(name string) ([]byte, error) {
	data, ok := s.classes[name]
	if !ok {
		return nil, errNotFound
	}
	return data, nil
}

var errNotFound = &notFoundErr{}

type notFoundErr struct{}

func (*notFoundErr) Error() string { return "not found" }

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

func (b *cb) class(nameIdx uint16) {
	b.u8(classfile.TagClass)
	b.u16(nameIdx)
}

// buildObjectClass returns the bytes of a minimal java/lang/Object: no
// superclass, no fields, no methods.
func buildObjectClass() []byte {
	b := &cb{}
	b.u32(classfile.Magic)
	b.u16(0)
	b.u16(52)
	b.u16(3) // pool count
	b.utf8("java/lang/Object")
	b.class(1)
	b.u16(classfile.AccPublic | classfile.AccSuper)
	b.u16(2) // this_class
	b.u16(0) // super_class: none
	b.u16(0) // interfaces
	b.u16(0) // fields
	b.u16(0) // methods
	b.u16(0) // attributes
	return b.buf
}

// buildUserClass returns the bytes of:
//
//	class User extends java/lang/Object {
//	    int age;
//	    static final int K = 7;
//	}
func buildUserClass() []byte {
	b := &cb{}
	b.u32(classfile.Magic)
	b.u16(0)
	b.u16(52)

	// 1: Utf8 "User" 2: Class#1 3: Utf8 "java/lang/Object" 4: Class#3
	// 5: Utf8 "age" 6: Utf8 "I" 7: Utf8 "K" 8: Utf8 "ConstantValue"
	// 9: Integer 7
	b.u16(10)
	b.utf8("User")
	b.class(1)
	b.utf8("java/lang/Object")
	b.class(3)
	b.utf8("age")
	b.utf8("I")
	b.utf8("K")
	b.utf8("ConstantValue")
	b.u8(classfile.TagInteger)
	b.u32(7)

	b.u16(classfile.AccPublic | classfile.AccSuper)
	b.u16(2) // this_class
	b.u16(4) // super_class
	b.u16(0) // interfaces

	b.u16(2) // fields_count
	// age: int instance field, no attributes
	b.u16(classfile.AccPublic)
	b.u16(5) // name "age"
	b.u16(6) // descriptor "I"
	b.u16(0) // attributes_count
	// K: static final int with ConstantValue
	b.u16(classfile.AccPublic | classfile.AccStatic | classfile.AccFinal)
	b.u16(7) // name "K"
	b.u16(6) // descriptor "I"
	b.u16(1) // attributes_count
	b.u16(8) // "ConstantValue"
	b.u32(2) // attribute_length
	b.u16(9) // constantvalue_index -> Integer 7

	b.u16(0) // methods
	b.u16(0) // class attributes

	return b.buf
}

func newTestLoader() *ClassLoader {
	return NewClassLoader(&fakeSource{classes: map[string][]byte{
		"java/lang/Object": buildObjectClass(),
		"User":             buildUserClass(),
	}})
}

func TestLoadClassIdempotent(t *testing.T) {
	cl := newTestLoader()
	c1, err := cl.LoadClass("User")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	c2, err := cl.LoadClass("User")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	if c1 != c2 {
		t.Error("LoadClass should return the identical pointer on repeat calls")
	}
}

func TestLoadClassLinksSuperclass(t *testing.T) {
	cl := newTestLoader()
	user, err := cl.LoadClass("User")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	if user.SuperClass == nil || user.SuperClass.Name != "java/lang/Object" {
		t.Fatalf("SuperClass: got %+v", user.SuperClass)
	}
}

func TestPrepareLayoutAndStaticFinalInit(t *testing.T) {
	cl := newTestLoader()
	user, err := cl.LoadClass("User")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}

	ageField := user.GetField("age", "I")
	if ageField == nil {
		t.Fatal("age field not found")
	}
	if user.InstanceSlotCount != 1 {
		t.Errorf("InstanceSlotCount: got %d, want 1", user.InstanceSlotCount)
	}

	kField := user.GetField("K", "I")
	if kField == nil {
		t.Fatal("K field not found")
	}
	if got := user.StaticVars.Slots.GetInt(kField.SlotID); got != 7 {
		t.Errorf("K should be 7 without running any bytecode, got %d", got)
	}
}

func TestIsSubClassOf(t *testing.T) {
	cl := newTestLoader()
	user, err := cl.LoadClass("User")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	object, err := cl.LoadClass("java/lang/Object")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	if !user.IsSubClassOf(object) {
		t.Error("User should be a subclass of java/lang/Object")
	}
	if user.IsSubClassOf(user) {
		t.Error("IsSubClassOf should be strict, a class is not a subclass of itself")
	}
}

func TestObjectIsInstanceOf(t *testing.T) {
	cl := newTestLoader()
	user, err := cl.LoadClass("User")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	object, err := cl.LoadClass("java/lang/Object")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}

	instance := NewObject(user)
	if !instance.IsInstanceOf(user) {
		t.Error("instance should be instance of its own class")
	}
	if !instance.IsInstanceOf(object) {
		t.Error("instance should be instance of java/lang/Object through superclass")
	}
}

func TestFieldRoundTrip(t *testing.T) {
	cl := newTestLoader()
	user, err := cl.LoadClass("User")
	if err != nil {
		t.Fatalf("LoadClass: %v", err)
	}
	ageField := user.GetField("age", "I")
	instance := NewObject(user)

	instance.SetFieldValue(ageField, Slot{Num: 42})
	if got := instance.GetFieldValue(ageField).Num; got != 42 {
		t.Errorf("field round trip: got %d, want 42", got)
	}
}
