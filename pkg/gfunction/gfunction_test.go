package gfunction

import (
	"bytes"
	"os"
	"testing"

	"github.com/daimatz/jvmgo/pkg/heap"
)

// emptySource never supplies any class bytes; tests that don't care
// about a shim's best-effort Class population pass a loader built on
// this so NewBoxed/NewString still have a non-nil *ClassLoader to call.
type emptySource struct{}

func (emptySource) ReadClass(name string) ([]byte, error) {
	return nil, &notFoundErr{name}
}

type notFoundErr struct{ name string }

func (e *notFoundErr) Error() string { return "no class: " + e.name }

func testLoader() *heap.ClassLoader {
	return heap.NewClassLoader(emptySource{})
}

func TestPrintlnAndPrintRouteToConfiguredStream(t *testing.T) {
	var out bytes.Buffer
	Configure(&out, &out)
	defer Configure(os.Stdout, os.Stderr)

	fn, ok := Lookup("java/io/PrintStream", "println", "(I)V")
	if !ok {
		t.Fatal("println(I) shim not registered")
	}
	stream := streamObject("out")
	if _, err := fn(testLoader(), heap.Slots{{Ref: stream}, {Num: 5}}); err != nil {
		t.Fatalf("println: %v", err)
	}

	fn, ok = Lookup("java/io/PrintStream", "print", "(Ljava/lang/String;)V")
	if !ok {
		t.Fatal("print(String) shim not registered")
	}
	loader := testLoader()
	str, err := loader.InternString("hi")
	if err != nil {
		t.Fatalf("InternString: %v", err)
	}
	if _, err := fn(loader, heap.Slots{{Ref: stream}, {Ref: str}}); err != nil {
		t.Fatalf("print: %v", err)
	}

	if want, got := "5\nhi", out.String(); got != want {
		t.Errorf("combined output: got %q, want %q", got, want)
	}
}

func TestPrintlnErrRoutesToStderrWriter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	Configure(&stdout, &stderr)
	defer Configure(os.Stdout, os.Stderr)

	fn, _ := Lookup("java/io/PrintStream", "println", "(Ljava/lang/String;)V")
	loader := testLoader()
	str, _ := loader.InternString("oops")
	if _, err := fn(loader, heap.Slots{{Ref: streamObject("err")}, {Ref: str}}); err != nil {
		t.Fatalf("println: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should stay empty, got %q", stdout.String())
	}
	if got := stderr.String(); got != "oops\n" {
		t.Errorf("stderr: got %q, want %q", got, "oops\n")
	}
}

func TestStaticFieldSystemOutAndErr(t *testing.T) {
	out, ok := StaticField("java/lang/System", "out")
	if !ok || out.Str != "out" {
		t.Errorf("System.out: got %+v, ok=%v", out, ok)
	}
	err, ok := StaticField("java/lang/System", "err")
	if !ok || err.Str != "err" {
		t.Errorf("System.err: got %+v, ok=%v", err, ok)
	}
	if _, ok := StaticField("java/lang/System", "in"); ok {
		t.Error("System.in should not be shimmed")
	}
}

func TestBoxedValueOfAndAccessorRoundTrip(t *testing.T) {
	loader := testLoader()

	valueOf, ok := Lookup("java/lang/Integer", "valueOf", "(I)Ljava/lang/Integer;")
	if !ok {
		t.Fatal("Integer.valueOf shim not registered")
	}
	ret, err := valueOf(loader, heap.Slots{{Num: 42}})
	if err != nil {
		t.Fatalf("valueOf: %v", err)
	}
	boxed := ret[0].Ref
	if boxed.PrimKind != "I" || int32(boxed.Prim) != 42 {
		t.Errorf("boxed Integer: got %+v", boxed)
	}

	intValue, ok := Lookup("java/lang/Integer", "intValue", "()I")
	if !ok {
		t.Fatal("Integer.intValue shim not registered")
	}
	ret, err = intValue(loader, heap.Slots{{Ref: boxed}})
	if err != nil {
		t.Fatalf("intValue: %v", err)
	}
	if ret[0].Num != 42 {
		t.Errorf("intValue: got %d, want 42", ret[0].Num)
	}

	toString, ok := Lookup("java/lang/Integer", "toString", "()Ljava/lang/String;")
	if !ok {
		t.Fatal("Integer.toString shim not registered")
	}
	ret, err = toString(loader, heap.Slots{{Ref: boxed}})
	if err != nil {
		t.Fatalf("toString: %v", err)
	}
	if got := ret[0].Ref.Str; got != "42" {
		t.Errorf("toString: got %q, want %q", got, "42")
	}
}

func TestBoxedLongRoundTripsWideSlots(t *testing.T) {
	loader := testLoader()

	valueOf, ok := Lookup("java/lang/Long", "valueOf", "(J)Ljava/lang/Long;")
	if !ok {
		t.Fatal("Long.valueOf shim not registered")
	}
	args := heap.NewSlots(2)
	args.SetLong(0, 1<<40)
	ret, err := valueOf(loader, args)
	if err != nil {
		t.Fatalf("valueOf: %v", err)
	}
	boxed := ret[0].Ref
	if boxed.PrimKind != "J" || boxed.Prim != 1<<40 {
		t.Errorf("boxed Long: got %+v", boxed)
	}

	longValue, ok := Lookup("java/lang/Long", "longValue", "()J")
	if !ok {
		t.Fatal("Long.longValue shim not registered")
	}
	ret, err = longValue(loader, heap.Slots{{Ref: boxed}})
	if err != nil {
		t.Fatalf("longValue: %v", err)
	}
	if got := ret.GetLong(0); got != 1<<40 {
		t.Errorf("longValue: got %d, want %d", got, int64(1<<40))
	}
}

func TestStringBuilderAppendChainingAndToString(t *testing.T) {
	loader := testLoader()
	self := &heap.Object{}

	init, _ := Lookup("java/lang/StringBuilder", "<init>", "()V")
	if _, err := init(loader, heap.Slots{{Ref: self}}); err != nil {
		t.Fatalf("<init>: %v", err)
	}

	appendStr, _ := Lookup("java/lang/StringBuilder", "append", "(Ljava/lang/String;)Ljava/lang/StringBuilder;")
	greeting, _ := loader.InternString("count: ")
	ret, err := appendStr(loader, heap.Slots{{Ref: self}, {Ref: greeting}})
	if err != nil {
		t.Fatalf("append(String): %v", err)
	}
	if ret[0].Ref != self {
		t.Error("append should return the same receiver for chaining")
	}

	appendInt, _ := Lookup("java/lang/StringBuilder", "append", "(I)Ljava/lang/StringBuilder;")
	if _, err := appendInt(loader, heap.Slots{{Ref: self}, {Num: 7}}); err != nil {
		t.Fatalf("append(I): %v", err)
	}

	toString, _ := Lookup("java/lang/StringBuilder", "toString", "()Ljava/lang/String;")
	ret, err = toString(loader, heap.Slots{{Ref: self}})
	if err != nil {
		t.Fatalf("toString: %v", err)
	}
	if got := ret[0].Ref.Str; got != "count: 7" {
		t.Errorf("StringBuilder result: got %q, want %q", got, "count: 7")
	}
}

func TestStringInstanceMethods(t *testing.T) {
	loader := testLoader()
	str, err := loader.InternString("Hello")
	if err != nil {
		t.Fatalf("InternString: %v", err)
	}

	length, _ := Lookup("java/lang/String", "length", "()I")
	ret, err := length(loader, heap.Slots{{Ref: str}})
	if err != nil || ret[0].Num != 5 {
		t.Errorf("length: got %v, err=%v", ret, err)
	}

	charAt, _ := Lookup("java/lang/String", "charAt", "(I)C")
	ret, err = charAt(loader, heap.Slots{{Ref: str}, {Num: 1}})
	if err != nil || rune(ret[0].Num) != 'e' {
		t.Errorf("charAt(1): got %v, err=%v", ret, err)
	}

	upper, _ := Lookup("java/lang/String", "toUpperCase", "()Ljava/lang/String;")
	ret, err = upper(loader, heap.Slots{{Ref: str}})
	if err != nil || ret[0].Ref.Str != "HELLO" {
		t.Errorf("toUpperCase: got %v, err=%v", ret, err)
	}

	equals, _ := Lookup("java/lang/String", "equals", "(Ljava/lang/Object;)Z")
	other, _ := loader.InternString("Hello")
	ret, err = equals(loader, heap.Slots{{Ref: str}, {Ref: other}})
	if err != nil || ret[0].Num != 1 {
		t.Errorf("equals(identical content): got %v, err=%v", ret, err)
	}

	substring, _ := Lookup("java/lang/String", "substring", "(II)Ljava/lang/String;")
	ret, err = substring(loader, heap.Slots{{Ref: str}, {Num: 1}, {Num: 3}})
	if err != nil || ret[0].Ref.Str != "el" {
		t.Errorf("substring(1,3): got %v, err=%v", ret, err)
	}
}

func TestStringValueOfOverloads(t *testing.T) {
	loader := testLoader()

	valueOfInt, _ := Lookup("java/lang/String", "valueOf", "(I)Ljava/lang/String;")
	ret, err := valueOfInt(loader, heap.Slots{{Num: -3}})
	if err != nil || ret[0].Ref.Str != "-3" {
		t.Errorf("valueOf(int): got %v, err=%v", ret, err)
	}

	valueOfBool, _ := Lookup("java/lang/String", "valueOf", "(Z)Ljava/lang/String;")
	ret, err = valueOfBool(loader, heap.Slots{{Num: 1}})
	if err != nil || ret[0].Ref.Str != "true" {
		t.Errorf("valueOf(boolean): got %v, err=%v", ret, err)
	}
}
