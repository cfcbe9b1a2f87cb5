package gfunction

import (
	"strconv"

	"github.com/daimatz/jvmgo/pkg/heap"
)

const stringBuilder = "java/lang/StringBuilder"

func init() {
	register(stringBuilder, "<init>", "()V", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		self := args[0].Ref
		self.HasStr = true
		return nil, nil
	})
	register(stringBuilder, "<init>", "(I)V", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		args[0].Ref.HasStr = true
		return nil, nil
	})
	register(stringBuilder, "<init>", "(Ljava/lang/String;)V", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		self := args[0].Ref
		self.HasStr = true
		self.Str = javaToString(args[1].Ref)
		return nil, nil
	})

	register(stringBuilder, "append", "(Ljava/lang/String;)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return javaToString(args[1].Ref) }))
	register(stringBuilder, "append", "(Ljava/lang/Object;)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return javaToString(args[1].Ref) }))
	register(stringBuilder, "append", "(I)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return strconv.Itoa(int(args[1].Num)) }))
	register(stringBuilder, "append", "(J)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return strconv.FormatInt(args.GetLong(1), 10) }))
	register(stringBuilder, "append", "(D)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return formatDouble(args.GetDouble(1)) }))
	register(stringBuilder, "append", "(F)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return strconv.FormatFloat(float64(args.GetFloat(1)), 'g', -1, 32) }))
	register(stringBuilder, "append", "(C)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return string(rune(args[1].Num)) }))
	register(stringBuilder, "append", "(Z)Ljava/lang/StringBuilder;", appendBuilder(func(args heap.Slots) string { return strconv.FormatBool(args[1].Num != 0) }))

	register(stringBuilder, "toString", "()Ljava/lang/String;", func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		str, err := loader.InternString(args[0].Ref.Str)
		if err != nil {
			return nil, err
		}
		return heap.Slots{{Ref: str}}, nil
	})

	register(stringBuilder, "length", "()I", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: int32(len(args[0].Ref.Str))}}, nil
	})
}

// appendBuilder builds a StringBuilder.append shim for one overload:
// render renders that overload's single argument, then mutates the
// receiver's buffer and hands the same receiver back, the way append
// returns `this` to support call chaining.
func appendBuilder(render func(args heap.Slots) string) NativeMethod {
	return func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		self := args[0].Ref
		self.Str += render(args)
		self.HasStr = true
		return heap.Slots{{Ref: self}}, nil
	}
}
