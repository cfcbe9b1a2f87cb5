package heap

// Object is a heap-allocated instance: a non-owning pointer to the Class
// that describes its layout plus one Slots array sized to
// Class.InstanceSlotCount, all zero on construction (spec 4.6). Array
// objects are out of scope (pkg/instructions/deferred.go); Object carries
// no array representation until the array opcode family lands.
type Object struct {
	Class  *Class
	Fields Slots

	// Str holds a string payload directly, rather than through a char[]
	// value field the way a real java/lang/String lays itself out. Used
	// for java/lang/String instances and the java/lang/Class stand-in a
	// class literal evaluates to. Class is still populated whenever the
	// loader can resolve it (NewString loads java/lang/String
	// best-effort), so instanceof/getClass keep working wherever a real
	// classpath backs them; only reflection into the object's own
	// declared fields would notice the shortcut, and nothing in this core
	// does.
	Str    string
	HasStr bool

	// Prim and PrimKind hold a boxed primitive wrapper's payload
	// directly (Integer, Long, Double, Float, Boolean, Character):
	// PrimKind is the wrapped type's descriptor code ("I", "J", "D",
	// "F", "Z", "C") and Prim carries its bits, int32/int64 as-is and
	// float32/float64 through math.Float32bits/Float64bits. This avoids
	// needing java.lang's wrapper classes loaded with a declared "value"
	// field just to hold one scalar; Class is still populated whenever
	// the loader can resolve it, so instanceof/getClass keep working
	// wherever a real classpath backs them.
	Prim     int64
	PrimKind string
}

// NewString allocates a java/lang/String instance wrapping value. Like
// NewBoxed, it loads java/lang/String best-effort: when loader can
// supply it the returned Object's Class is the real one, otherwise Class
// is nil and the Str payload alone carries the value. The error result
// is always nil.
func NewString(loader *ClassLoader, value string) (*Object, error) {
	class, _ := loader.LoadClass("java/lang/String")
	var fields Slots
	if class != nil {
		fields = NewSlots(class.InstanceSlotCount)
	}
	return &Object{Class: class, Fields: fields, Str: value, HasStr: true}, nil
}

// NewBoxed allocates a boxed primitive wrapper instance of className
// ("java/lang/Integer", ...) carrying prim interpreted as kind ("I",
// "J", "D", "F", "Z", "C"). The class is loaded best-effort: a
// classpath that cannot supply it still yields a usable boxed value,
// just one instanceof/getClass cannot see, since PrimKind alone is
// enough for every shim that reads it back.
func NewBoxed(loader *ClassLoader, className, kind string, prim int64) *Object {
	class, _ := loader.LoadClass(className)
	var fields Slots
	if class != nil {
		fields = NewSlots(class.InstanceSlotCount)
	}
	return &Object{Class: class, Fields: fields, Prim: prim, PrimKind: kind}
}

// NewObject allocates a zeroed instance of class c.
func NewObject(c *Class) *Object {
	return &Object{Class: c, Fields: NewSlots(c.InstanceSlotCount)}
}

// IsInstanceOf reports whether o is an instance of target, per JVMS
// instanceof semantics: identical class, subclass, or interface
// implementation. An object whose Class could not be loaded is an
// instance of nothing.
func (o *Object) IsInstanceOf(target *Class) bool {
	if o == nil || target == nil || o.Class == nil {
		return false
	}
	return target.IsAssignableFrom(o.Class)
}

// GetFieldValue returns the slot at a field's assigned index.
func (o *Object) GetFieldValue(f *Field) Slot {
	return o.Fields[f.SlotID]
}

// SetFieldValue writes the slot at a field's assigned index.
func (o *Object) SetFieldValue(f *Field, s Slot) {
	o.Fields[f.SlotID] = s
}
