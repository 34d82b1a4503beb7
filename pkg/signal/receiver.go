package signal

import "sync/atomic"

// Kwargs holds the keyword arguments passed through Emit.
type Kwargs map[string]interface{}

// Func is the callback invoked when a signal is emitted. args and kwargs
// are exactly what the emitter supplied.
type Func func(args []interface{}, kwargs Kwargs) error

// Receiver is a registered callback. Handles are compared by pointer.
type Receiver[K comparable] struct {
	signal   K
	fn       Func
	once     bool
	fired    atomic.Bool
	registry *Registry[K]
}

// Signal returns the signal the receiver was registered for.
func (r *Receiver[K]) Signal() K {
	return r.signal
}

// IsOnce reports whether the receiver was registered with Once.
func (r *Receiver[K]) IsOnce() bool {
	return r.once
}

// Fired reports whether a once receiver has already been invoked. It is
// always false for receivers registered with On.
func (r *Receiver[K]) Fired() bool {
	return r.fired.Load()
}

// Call invokes the receiver. A once receiver detaches itself from its
// registry before the wrapped function runs, and later calls are no-ops.
func (r *Receiver[K]) Call(args []interface{}, kwargs Kwargs) error {
	if r.once {
		if !r.fired.CompareAndSwap(false, true) {
			return nil
		}
		r.registry.Disconnect(r.signal, r)
	}
	return r.fn(args, kwargs)
}

// Disconnect removes the receiver from its registry.
func (r *Receiver[K]) Disconnect() {
	r.registry.Disconnect(r.signal, r)
}
