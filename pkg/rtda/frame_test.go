package rtda

import (
	"testing"

	"github.com/daimatz/jvmgo/pkg/heap"
)

func TestOperandStackLIFO(t *testing.T) {
	t.Run("LIFO order", func(t *testing.T) {
		os := NewOperandStack(10)
		os.PushInt(10)
		os.PushInt(20)
		os.PushInt(30)

		if v := os.PopInt(); v != 30 {
			t.Errorf("first Pop: got %d, want 30", v)
		}
		if v := os.PopInt(); v != 20 {
			t.Errorf("second Pop: got %d, want 20", v)
		}
		if v := os.PopInt(); v != 10 {
			t.Errorf("third Pop: got %d, want 10", v)
		}
	})

	t.Run("push after pop reuses space", func(t *testing.T) {
		os := NewOperandStack(10)
		os.PushInt(1)
		os.PushInt(2)
		os.PopInt()
		os.PushInt(3)

		if v := os.PopInt(); v != 3 {
			t.Errorf("got %d, want 3", v)
		}
		if v := os.PopInt(); v != 1 {
			t.Errorf("got %d, want 1", v)
		}
	})

	t.Run("overflow panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on overflow")
			}
		}()
		os := NewOperandStack(1)
		os.PushInt(1)
		os.PushInt(2)
	})

	t.Run("underflow panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on underflow")
			}
		}()
		os := NewOperandStack(1)
		os.PopInt()
	})
}

func TestOperandStackLongDoubleSpanTwoSlots(t *testing.T) {
	os := NewOperandStack(4)
	os.PushLong(1234567890123)
	if got := os.PopLong(); got != 1234567890123 {
		t.Errorf("PopLong: got %d, want 1234567890123", got)
	}

	os.PushDouble(3.14159)
	if got := os.PopDouble(); got != 3.14159 {
		t.Errorf("PopDouble: got %v, want 3.14159", got)
	}
}

func TestOperandStackRef(t *testing.T) {
	class := &heap.Class{Name: "Example"}
	obj := heap.NewObject(class)

	os := NewOperandStack(2)
	os.PushRef(obj)
	if got := os.PopRef(); got != obj {
		t.Error("PopRef should return the identical object pointer")
	}
}

func TestLocalVarsRoundTrip(t *testing.T) {
	t.Run("basic set and get", func(t *testing.T) {
		lv := NewLocalVars(4)
		lv.SetInt(0, 10)
		lv.SetInt(1, 20)
		lv.SetInt(2, 30)
		lv.SetInt(3, 40)

		if v := lv.GetInt(0); v != 10 {
			t.Errorf("GetInt(0): got %d, want 10", v)
		}
		if v := lv.GetInt(3); v != 40 {
			t.Errorf("GetInt(3): got %d, want 40", v)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		lv := NewLocalVars(4)
		lv.SetInt(0, 10)
		lv.SetInt(0, 99)
		if v := lv.GetInt(0); v != 99 {
			t.Errorf("got %d, want 99", v)
		}
	})

	t.Run("long occupies two slots", func(t *testing.T) {
		lv := NewLocalVars(4)
		lv.SetLong(0, 42)
		lv.SetInt(3, 7) // must not be clobbered by the long's padding slot
		if v := lv.GetLong(0); v != 42 {
			t.Errorf("GetLong(0): got %d, want 42", v)
		}
		if v := lv.GetInt(3); v != 7 {
			t.Errorf("GetInt(3): got %d, want 7", v)
		}
	})
}

func TestFrameIsolation(t *testing.T) {
	method1 := &heap.Method{MaxLocals: 2, MaxStack: 2}
	method2 := &heap.Method{MaxLocals: 2, MaxStack: 2}

	f1 := NewFrame(method1)
	f2 := NewFrame(method2)

	f1.LocalVars.SetInt(0, 111)
	f2.LocalVars.SetInt(0, 222)

	if f1.LocalVars.GetInt(0) != 111 {
		t.Error("frame 1's locals were clobbered by frame 2")
	}
	if f2.LocalVars.GetInt(0) != 222 {
		t.Error("frame 2's locals were clobbered by frame 1")
	}
}
