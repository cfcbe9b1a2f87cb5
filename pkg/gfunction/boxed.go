package gfunction

import (
	"math"
	"strconv"

	"github.com/daimatz/jvmgo/pkg/heap"
)

// boxedSpec describes one wrapper class's autoboxing shim: its
// primitive descriptor code and how wide its value is on the operand
// stack (1 slot for everything but long/double).
type boxedSpec struct {
	class string
	kind  string
	wide  bool
}

var boxedSpecs = []boxedSpec{
	{"java/lang/Integer", "I", false},
	{"java/lang/Long", "J", true},
	{"java/lang/Double", "D", true},
	{"java/lang/Float", "F", false},
	{"java/lang/Boolean", "Z", false},
	{"java/lang/Character", "C", false},
}

func init() {
	for _, spec := range boxedSpecs {
		spec := spec
		desc := "(" + spec.kind + ")L" + spec.class + ";"
		register(spec.class, "valueOf", desc, func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
			var prim int64
			if spec.wide {
				prim = args.GetLong(0)
			} else {
				prim = int64(args[0].Num)
			}
			obj := heap.NewBoxed(loader, spec.class, spec.kind, prim)
			return heap.Slots{{Ref: obj}}, nil
		})

		initDesc := "(" + spec.kind + ")V"
		register(spec.class, "<init>", initDesc, func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
			self := args[0].Ref
			if spec.wide {
				self.Prim = args.GetLong(1)
			} else {
				self.Prim = int64(args[1].Num)
			}
			self.PrimKind = spec.kind
			return nil, nil
		})

		register(spec.class, valueAccessor(spec.kind), "()"+spec.kind, func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
			return primSlots(spec, args[0].Ref.Prim), nil
		})

		register(spec.class, "toString", "()Ljava/lang/String;", func(loader *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
			str, err := loader.InternString(boxedToString(args[0].Ref))
			if err != nil {
				return nil, err
			}
			return heap.Slots{{Ref: str}}, nil
		})

		register(spec.class, "hashCode", "()I", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
			return heap.Slots{{Num: boxedHashCode(args[0].Ref)}}, nil
		})

		register(spec.class, "equals", "(Ljava/lang/Object;)Z", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
			other := args[1].Ref
			equal := other != nil && other.PrimKind == spec.kind && other.Prim == args[0].Ref.Prim
			return heap.Slots{{Num: boolToInt(equal)}}, nil
		})

		register(spec.class, "compareTo", "(L"+spec.class+";)I", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
			return heap.Slots{{Num: compareBoxed(args[0].Ref, args[1].Ref)}}, nil
		})
	}

	// Unboxing conversions exposed across wrapper types (Integer.longValue,
	// Long.intValue, ...) beyond each type's own natural accessor.
	register("java/lang/Integer", "longValue", "()J", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return slotsForLong(int64(int32(args[0].Ref.Prim))), nil
	})
	register("java/lang/Integer", "doubleValue", "()D", func(_ *heap.ClassLoader, args heap.Slots) (heap.Slots, error) {
		return slotsForDouble(float64(int32(args[0].Ref.Prim))), nil
	})
}

func valueAccessor(kind string) string {
	switch kind {
	case "I":
		return "intValue"
	case "J":
		return "longValue"
	case "D":
		return "doubleValue"
	case "F":
		return "floatValue"
	case "Z":
		return "booleanValue"
	case "C":
		return "charValue"
	}
	return ""
}

func primSlots(spec boxedSpec, prim int64) heap.Slots {
	switch spec.kind {
	case "J":
		return slotsForLong(prim)
	case "D":
		return slotsForDouble(math.Float64frombits(uint64(prim)))
	case "F":
		return heap.Slots{{Num: int32(prim)}}
	default:
		return heap.Slots{{Num: int32(prim)}}
	}
}

func slotsForLong(v int64) heap.Slots {
	s := heap.NewSlots(2)
	s.SetLong(0, v)
	return s
}

func slotsForDouble(v float64) heap.Slots {
	s := heap.NewSlots(2)
	s.SetDouble(0, v)
	return s
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// boxedToString renders a boxed wrapper's content the way its own
// toString would.
func boxedToString(obj *heap.Object) string {
	switch obj.PrimKind {
	case "J":
		return strconv.FormatInt(obj.Prim, 10)
	case "D":
		return formatDouble(math.Float64frombits(uint64(obj.Prim)))
	case "F":
		f := float64(math.Float32frombits(uint32(obj.Prim)))
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'f', 1, 32)
		}
		return strconv.FormatFloat(f, 'f', -1, 32)
	case "Z":
		return strconv.FormatBool(obj.Prim != 0)
	case "C":
		return string(rune(obj.Prim))
	default:
		return strconv.FormatInt(int64(int32(obj.Prim)), 10)
	}
}

func boxedHashCode(obj *heap.Object) int32 {
	switch obj.PrimKind {
	case "J":
		return int32(obj.Prim) ^ int32(obj.Prim>>32)
	case "D":
		bits := obj.Prim
		return int32(bits) ^ int32(bits>>32)
	default:
		return int32(obj.Prim)
	}
}

func compareBoxed(a, b *heap.Object) int32 {
	switch a.PrimKind {
	case "J":
		switch {
		case a.Prim < b.Prim:
			return -1
		case a.Prim > b.Prim:
			return 1
		default:
			return 0
		}
	case "D":
		av := math.Float64frombits(uint64(a.Prim))
		bv := math.Float64frombits(uint64(b.Prim))
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		av, bv := int32(a.Prim), int32(b.Prim)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
}
