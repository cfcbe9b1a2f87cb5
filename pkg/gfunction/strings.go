package gfunction

import (
	"strconv"
	"strings"

	"github.com/daimatz/jvmgo/internal/vmerrors"
	"github.com/daimatz/jvmgo/pkg/heap"
)

const javaString = "java/lang/String"

func init() {
	register(javaString, "length", "()I", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: int32(len(args[0].Ref.Str))}}, nil
	})
	register(javaString, "isEmpty", "()Z", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: boolToInt(len(args[0].Ref.Str) == 0)}}, nil
	})
	register(javaString, "charAt", "(I)C", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		str := args[0].Ref.Str
		idx := int(args[1].Num)
		if idx < 0 || idx >= len(str) {
			return nil, &vmerrors.RuntimeError{Kind: vmerrors.StringIndexOutOfBounds, Detail: "String.charAt: index out of range"}
		}
		return heap.Slots{{Num: int32(str[idx])}}, nil
	})
	register(javaString, "equals", "(Ljava/lang/Object;)Z", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		other := args[1].Ref
		equal := other != nil && other.HasStr && other.Str == args[0].Ref.Str
		return heap.Slots{{Num: boolToInt(equal)}}, nil
	})
	register(javaString, "hashCode", "()I", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		var h int32
		for _, c := range args[0].Ref.Str {
			h = 31*h + int32(c)
		}
		return heap.Slots{{Num: h}}, nil
	})
	register(javaString, "toString", "()Ljava/lang/String;", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Ref: args[0].Ref}}, nil
	})
	register(javaString, "concat", "(Ljava/lang/String;)Ljava/lang/String;", func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		str, err := loader.InternString(args[0].Ref.Str + javaToString(args[1].Ref))
		if err != nil {
			return nil, err
		}
		return heap.Slots{{Ref: str}}, nil
	})
	register(javaString, "substring", "(I)Ljava/lang/String;", func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		str := args[0].Ref.Str
		begin := int(args[1].Num)
		if begin < 0 || begin > len(str) {
			return nil, &vmerrors.RuntimeError{Kind: vmerrors.StringIndexOutOfBounds, Detail: "String.substring: index out of range"}
		}
		out, err := loader.InternString(str[begin:])
		if err != nil {
			return nil, err
		}
		return heap.Slots{{Ref: out}}, nil
	})
	register(javaString, "substring", "(II)Ljava/lang/String;", func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		str := args[0].Ref.Str
		begin, end := int(args[1].Num), int(args[2].Num)
		if begin < 0 || end > len(str) || begin > end {
			return nil, &vmerrors.RuntimeError{Kind: vmerrors.StringIndexOutOfBounds, Detail: "String.substring: index out of range"}
		}
		out, err := loader.InternString(str[begin:end])
		if err != nil {
			return nil, err
		}
		return heap.Slots{{Ref: out}}, nil
	})
	register(javaString, "indexOf", "(Ljava/lang/String;)I", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: int32(strings.Index(args[0].Ref.Str, args[1].Ref.Str))}}, nil
	})
	register(javaString, "contains", "(Ljava/lang/CharSequence;)Z", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: boolToInt(strings.Contains(args[0].Ref.Str, args[1].Ref.Str))}}, nil
	})
	register(javaString, "toUpperCase", "()Ljava/lang/String;", stringTransform(strings.ToUpper))
	register(javaString, "toLowerCase", "()Ljava/lang/String;", stringTransform(strings.ToLower))
	register(javaString, "trim", "()Ljava/lang/String;", stringTransform(strings.TrimSpace))
	register(javaString, "startsWith", "(Ljava/lang/String;)Z", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: boolToInt(strings.HasPrefix(args[0].Ref.Str, args[1].Ref.Str))}}, nil
	})
	register(javaString, "endsWith", "(Ljava/lang/String;)Z", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: boolToInt(strings.HasSuffix(args[0].Ref.Str, args[1].Ref.Str))}}, nil
	})
	register(javaString, "compareTo", "(Ljava/lang/String;)I", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return heap.Slots{{Num: int32(strings.Compare(args[0].Ref.Str, args[1].Ref.Str))}}, nil
	})
	register(javaString, "intern", "()Ljava/lang/String;", func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		str, err := loader.InternString(args[0].Ref.Str)
		if err != nil {
			return nil, err
		}
		return heap.Slots{{Ref: str}}, nil
	})

	register(javaString, "valueOf", "(I)Ljava/lang/String;", valueOfFunc(func(args heap.Slots) string { return strconv.Itoa(int(args[0].Num)) }))
	register(javaString, "valueOf", "(J)Ljava/lang/String;", valueOfFunc(func(args heap.Slots) string { return strconv.FormatInt(args.GetLong(0), 10) }))
	register(javaString, "valueOf", "(D)Ljava/lang/String;", valueOfFunc(func(args heap.Slots) string { return formatDouble(args.GetDouble(0)) }))
	register(javaString, "valueOf", "(Z)Ljava/lang/String;", valueOfFunc(func(args heap.Slots) string { return strconv.FormatBool(args[0].Num != 0) }))
	register(javaString, "valueOf", "(C)Ljava/lang/String;", valueOfFunc(func(args heap.Slots) string { return string(rune(args[0].Num)) }))
	register(javaString, "valueOf", "(Ljava/lang/Object;)Ljava/lang/String;", valueOfFunc(func(args heap.Slots) string { return javaToString(args[0].Ref) }))
}

func stringTransform(f func(string) string) NativeMethod {
	return func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		out, err := loader.InternString(f(args[0].Ref.Str))
		if err != nil {
			return nil, err
		}
		return heap.Slots{{Ref: out}}, nil
	}
}

// valueOfFunc builds a java/lang/String.valueOf static shim: render
// turns one overload's single argument into Go text, then the result
// is interned the way every other String-producing shim is.
func valueOfFunc(render func(args heap.Slots) string) NativeMethod {
	return func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		out, err := loader.InternString(render(args))
		if err != nil {
			return nil, err
		}
		return heap.Slots{{Ref: out}}, nil
	}
}
