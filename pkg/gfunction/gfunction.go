// Package gfunction holds native-method shims for the slice of java.base
// this core needs in order to run a program past its first print
// statement: System.out/err, PrintStream, StringBuilder, the boxed
// numeric wrapper types, and a handful of java/lang/String instance
// methods. None of it is reached through invokedynamic or
// LambdaMetafactory/StringConcatFactory bootstrap handling, both of
// which stay out of scope.
//
// These classes are shimmed by name rather than by loading the real
// java.base class files and running their bytecode, the same
// simplification the teacher's executeNativeMethod/handlePrintStream/
// handleStringBuilder/handleBoxedType made: a method lookup here is
// tried before the interpreter attempts to resolve and load the
// symbolic reference's declaring class at all, so none of these shimmed
// classes need to exist on the classpath being run.
package gfunction

import (
	"io"
	"os"

	"github.com/daimatz/jvmgo/pkg/heap"
)

// NativeMethod is the calling convention every shim implements: args
// holds the receiver (for an instance method, prepended by the caller)
// followed by the method's declared parameters, each already popped off
// the operand stack in descriptor order. loader is the calling frame's
// own class loader, passed through so a shim that allocates an object
// (a boxed wrapper, a String) can resolve that object's Class the same
// way the rest of the interpreter does. The returned Slots is empty for
// a void method.
type NativeMethod func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error)

type key struct {
	class, name, descriptor string
}

var registry = make(map[key]NativeMethod)

func register(class, name, descriptor string, fn NativeMethod) {
	registry[key{class, name, descriptor}] = fn
}

// Lookup returns the shim for a fully qualified method, if one is
// registered. invoke* dispatch tries this before resolving and loading
// the symbolic reference's declaring class.
func Lookup(class, name, descriptor string) (NativeMethod, bool) {
	fn, ok := registry[key{class, name, descriptor}]
	return fn, ok
}

type staticKey struct {
	class, name string
}

var staticFields = make(map[staticKey]func() *heap.Object)

func registerStaticField(class, name string, fn func() *heap.Object) {
	staticFields[staticKey{class, name}] = fn
}

// StaticField returns the shimmed value of a static field read, if one
// is registered (java/lang/System.out and .err). getstatic tries this
// before resolving the declaring class, the same way invoke* dispatch
// tries Lookup.
func StaticField(class, name string) (*heap.Object, bool) {
	fn, ok := staticFields[staticKey{class, name}]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Stdout and Stderr back java/lang/System.out and .err; Configure points
// them at something other than the process's own standard streams, the
// way the teacher threads VM.Stdout through from its caller instead of
// hardcoding os.Stdout.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Configure points the shimmed System.out/err streams at the given
// writers; cmd/jvmgo calls this once before running a program.
func Configure(stdout, stderr io.Writer) {
	Stdout = stdout
	Stderr = stderr
}
