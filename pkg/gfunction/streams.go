package gfunction

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/daimatz/jvmgo/pkg/heap"
)

func init() {
	registerStaticField("java/lang/System", "out", func() *heap.Object { return streamObject("out") })
	registerStaticField("java/lang/System", "err", func() *heap.Object { return streamObject("err") })

	register("java/io/PrintStream", "println", "()V", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		fmt.Fprintln(writerOf(args[0].Ref))
		return nil, nil
	})
	register("java/io/PrintStream", "println", "(I)V", printlnInt)
	register("java/io/PrintStream", "println", "(J)V", printlnLong)
	register("java/io/PrintStream", "println", "(D)V", printlnDouble)
	register("java/io/PrintStream", "println", "(F)V", printlnFloat)
	register("java/io/PrintStream", "println", "(C)V", printlnChar)
	register("java/io/PrintStream", "println", "(Z)V", printlnBoolean)
	register("java/io/PrintStream", "println", "(Ljava/lang/String;)V", printlnString)
	register("java/io/PrintStream", "println", "(Ljava/lang/Object;)V", printlnObject)

	register("java/io/PrintStream", "print", "(I)V", printInt)
	register("java/io/PrintStream", "print", "(J)V", printLong)
	register("java/io/PrintStream", "print", "(D)V", printDouble)
	register("java/io/PrintStream", "print", "(F)V", printFloat)
	register("java/io/PrintStream", "print", "(C)V", printChar)
	register("java/io/PrintStream", "print", "(Z)V", printBoolean)
	register("java/io/PrintStream", "print", "(Ljava/lang/String;)V", printString)
	register("java/io/PrintStream", "print", "(Ljava/lang/Object;)V", printObject)
}

// streamObject is the receiver println/print shims see for
// java/lang/System.out and .err: a bare sentinel carrying which stream
// it stands for, never a real java/io/PrintStream instance.
func streamObject(name string) *heap.Object {
	return &heap.Object{Str: name, HasStr: true}
}

// writerOf picks the configured stdout/stderr writer a streamObject
// sentinel stands for.
func writerOf(stream *heap.Object) io.Writer {
	if stream != nil && stream.Str == "err" {
		return Stderr
	}
	return Stdout
}

func printlnInt(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), args[1].Num)
	return nil, nil
}

func printlnLong(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), args.GetLong(1))
	return nil, nil
}

func printlnDouble(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), formatDouble(args.GetDouble(1)))
	return nil, nil
}

func printlnFloat(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), args.GetFloat(1))
	return nil, nil
}

func printlnChar(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), string(rune(args[1].Num)))
	return nil, nil
}

func printlnBoolean(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), args[1].Num != 0)
	return nil, nil
}

func printlnString(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), javaToString(args[1].Ref))
	return nil, nil
}

func printlnObject(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprintln(writerOf(args[0].Ref), javaToString(args[1].Ref))
	return nil, nil
}

func printInt(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), args[1].Num)
	return nil, nil
}

func printLong(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), args.GetLong(1))
	return nil, nil
}

func printDouble(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), formatDouble(args.GetDouble(1)))
	return nil, nil
}

func printFloat(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), args.GetFloat(1))
	return nil, nil
}

func printChar(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), string(rune(args[1].Num)))
	return nil, nil
}

func printBoolean(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), args[1].Num != 0)
	return nil, nil
}

func printString(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), javaToString(args[1].Ref))
	return nil, nil
}

func printObject(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
	fmt.Fprint(writerOf(args[0].Ref), javaToString(args[1].Ref))
	return nil, nil
}

// formatDouble mirrors java.lang.Double.toString's habit of always
// showing a fractional part, "1.0" rather than Go's bare "1".
func formatDouble(d float64) string {
	if d == math.Trunc(d) && !math.IsInf(d, 0) {
		return strconv.FormatFloat(d, 'f', 1, 64)
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// javaToString renders a reference the way println's (Object) overload
// would after calling toString(): "null" for a null reference, the
// interned content for a String, the formatted scalar for a boxed
// wrapper, and a best-effort class name fallback for anything else
// (real toString dispatch is out of scope for this trimmed slice).
func javaToString(obj *heap.Object) string {
	switch {
	case obj == nil:
		return "null"
	case obj.HasStr:
		return obj.Str
	case obj.PrimKind != "":
		return boxedToString(obj)
	case obj.Class != nil:
		return obj.Class.Name
	default:
		return fmt.Sprintf("%v", obj)
	}
}
