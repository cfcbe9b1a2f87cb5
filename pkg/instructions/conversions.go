package instructions

import "github.com/daimatz/jvmgo/pkg/rtda"

func execI2l(frame *rtda.Frame) error {
	frame.OperandStack.PushLong(int64(frame.OperandStack.PopInt()))
	return nil
}

func execI2f(frame *rtda.Frame) error {
	frame.OperandStack.PushFloat(float32(frame.OperandStack.PopInt()))
	return nil
}

func execI2d(frame *rtda.Frame) error {
	frame.OperandStack.PushDouble(float64(frame.OperandStack.PopInt()))
	return nil
}

func execL2i(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(int32(frame.OperandStack.PopLong()))
	return nil
}

func execL2f(frame *rtda.Frame) error {
	frame.OperandStack.PushFloat(float32(frame.OperandStack.PopLong()))
	return nil
}

func execL2d(frame *rtda.Frame) error {
	frame.OperandStack.PushDouble(float64(frame.OperandStack.PopLong()))
	return nil
}

func execF2i(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(floatToInt32(frame.OperandStack.PopFloat()))
	return nil
}

func execF2l(frame *rtda.Frame) error {
	frame.OperandStack.PushLong(floatToInt64(frame.OperandStack.PopFloat()))
	return nil
}

func execF2d(frame *rtda.Frame) error {
	frame.OperandStack.PushDouble(float64(frame.OperandStack.PopFloat()))
	return nil
}

func execD2i(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(doubleToInt32(frame.OperandStack.PopDouble()))
	return nil
}

func execD2l(frame *rtda.Frame) error {
	frame.OperandStack.PushLong(doubleToInt64(frame.OperandStack.PopDouble()))
	return nil
}

func execD2f(frame *rtda.Frame) error {
	frame.OperandStack.PushFloat(float32(frame.OperandStack.PopDouble()))
	return nil
}

func execI2b(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(int32(int8(frame.OperandStack.PopInt())))
	return nil
}

func execI2c(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(int32(uint16(frame.OperandStack.PopInt())))
	return nil
}

func execI2s(frame *rtda.Frame) error {
	frame.OperandStack.PushInt(int32(int16(frame.OperandStack.PopInt())))
	return nil
}

// floatToInt32/floatToInt64/doubleToInt32/doubleToInt64 implement JVMS
// 2.8.3's narrowing conversion: NaN becomes 0, out-of-range values
// saturate to the target type's min/max rather than wrapping, which is
// what Go's own float-to-int conversion does NOT do (it is undefined
// for out-of-range values), so these cannot be a bare type conversion.

func floatToInt32(v float32) int32 {
	if v != v { // NaN
		return 0
	}
	if v >= 2147483647.0 {
		return 2147483647
	}
	if v <= -2147483648.0 {
		return -2147483648
	}
	return int32(v)
}

func floatToInt64(v float32) int64 {
	if v != v {
		return 0
	}
	if v >= 9223372036854775807.0 {
		return 9223372036854775807
	}
	if v <= -9223372036854775808.0 {
		return -9223372036854775808
	}
	return int64(v)
}

func doubleToInt32(v float64) int32 {
	if v != v {
		return 0
	}
	if v >= 2147483647.0 {
		return 2147483647
	}
	if v <= -2147483648.0 {
		return -2147483648
	}
	return int32(v)
}

func doubleToInt64(v float64) int64 {
	if v != v {
		return 0
	}
	if v >= 9223372036854775807.0 {
		return 9223372036854775807
	}
	if v <= -9223372036854775808.0 {
		return -9223372036854775808
	}
	return int64(v)
}
