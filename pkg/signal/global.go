package signal

// Default is the process-wide registry used by the package level functions.
var Default = New[string]()

// On registers fn for signal on the Default registry.
func On(signal string, fn Func) (*Receiver[string], error) {
	return Default.On(signal, fn)
}

// Once registers fn to run on the next emit of signal on the Default registry.
func Once(signal string, fn Func) (*Receiver[string], error) {
	return Default.Once(signal, fn)
}

// MustOn works like On, but panics if fn is nil.
func MustOn(signal string, fn Func) *Receiver[string] {
	return Default.MustOn(signal, fn)
}

// MustOnce works like Once, but panics if fn is nil.
func MustOnce(signal string, fn Func) *Receiver[string] {
	return Default.MustOnce(signal, fn)
}

// Disconnect removes rec from signal on the Default registry.
func Disconnect(signal string, rec *Receiver[string]) {
	Default.Disconnect(signal, rec)
}

// Clear removes every receiver for signal on the Default registry.
func Clear(signal string) {
	Default.Clear(signal)
}

// ClearAll resets the Default registry.
func ClearAll() {
	Default.ClearAll()
}

// Emit calls the receivers of signal on the Default registry.
func Emit(signal string, args ...interface{}) error {
	return Default.Emit(signal, args...)
}

// EmitWith calls the receivers of signal on the Default registry with
// positional and keyword arguments.
func EmitWith(signal string, args []interface{}, kwargs Kwargs) error {
	return Default.EmitWith(signal, args, kwargs)
}

// Receivers returns a copy of the receivers for signal on the Default registry.
func Receivers(signal string) []*Receiver[string] {
	return Default.Receivers(signal)
}
