package signal

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/logging"
	"github.com/rs/zerolog"
)

// Registry maps signal names to the ordered receivers registered for them.
// It is safe for concurrent use. A signal with no receivers and a signal
// that was never registered are indistinguishable.
type Registry[K comparable] struct {
	mu        sync.RWMutex
	receivers map[K][]*Receiver[K]
	logger    *zerolog.Logger
}

// New creates an empty registry.
func New[K comparable]() *Registry[K] {
	return &Registry[K]{
		receivers: make(map[K][]*Receiver[K]),
	}
}

// SetLogger replaces the component logger used for debug output.
func (r *Registry[K]) SetLogger(logger zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger = &logger
}

func (r *Registry[K]) log() zerolog.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.logger != nil {
		return *r.logger
	}
	return logging.GetLogger("signal")
}

// On appends fn to the receivers of signal and returns its handle.
func (r *Registry[K]) On(signal K, fn Func) (*Receiver[K], error) {
	return r.add(signal, fn, false)
}

// Once registers fn to run on the next emit of signal only. The returned
// handle is the registered entry and is what Disconnect expects.
func (r *Registry[K]) Once(signal K, fn Func) (*Receiver[K], error) {
	return r.add(signal, fn, true)
}

// MustOn works like On, but panics if fn is nil.
func (r *Registry[K]) MustOn(signal K, fn Func) *Receiver[K] {
	rec, err := r.On(signal, fn)
	if err != nil {
		panic(err)
	}
	return rec
}

// MustOnce works like Once, but panics if fn is nil.
func (r *Registry[K]) MustOnce(signal K, fn Func) *Receiver[K] {
	rec, err := r.Once(signal, fn)
	if err != nil {
		panic(err)
	}
	return rec
}

func (r *Registry[K]) add(signal K, fn Func, once bool) (*Receiver[K], error) {
	if fn == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "receiver for signal %v must be callable", signal).
			WithDetail("signal", fmt.Sprint(signal))
	}

	rec := &Receiver[K]{
		signal:   signal,
		fn:       fn,
		once:     once,
		registry: r,
	}

	r.mu.Lock()
	r.receivers[signal] = append(r.receivers[signal], rec)
	count := len(r.receivers[signal])
	r.mu.Unlock()

	logger := r.log()
	logger.Trace().
		Interface("signal", signal).
		Bool("once", once).
		Int("receivers", count).
		Msg("Receiver registered")

	return rec, nil
}

// Disconnect removes the first occurrence of rec from the receivers of
// signal. Unknown receivers and signals are ignored.
func (r *Registry[K]) Disconnect(signal K, rec *Receiver[K]) {
	if rec == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ref := r.receivers[signal]
	for ii, v := range ref {
		if v == rec {
			copy(ref[ii:], ref[ii+1:])
			ref[len(ref)-1] = nil
			ref = ref[:len(ref)-1]
			break
		}
	}
	if len(ref) == 0 {
		delete(r.receivers, signal)
	} else {
		r.receivers[signal] = ref
	}
}

// Clear removes every receiver registered for signal.
func (r *Registry[K]) Clear(signal K) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.receivers, signal)
}

// ClearAll returns the registry to its initial, empty state.
func (r *Registry[K]) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.receivers = make(map[K][]*Receiver[K])
}

// Receivers returns a copy of the receivers registered for signal, in
// registration order. The result is empty for unknown signals.
func (r *Registry[K]) Receivers(signal K) []*Receiver[K] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref := r.receivers[signal]
	cpy := make([]*Receiver[K], len(ref))
	copy(cpy, ref)
	return cpy
}

// Count returns the number of receivers registered for signal.
func (r *Registry[K]) Count(signal K) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.receivers[signal])
}

// Signals returns every signal with at least one receiver, in no
// particular order.
func (r *Registry[K]) Signals() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]K, 0, len(r.receivers))
	for name := range r.receivers {
		names = append(names, name)
	}
	return names
}

// Emit calls every receiver of signal with the given positional arguments.
func (r *Registry[K]) Emit(signal K, args ...interface{}) error {
	return r.EmitWith(signal, args, nil)
}

// EmitWith calls every receiver of signal, in registration order, with args
// and kwargs. Receivers see the registry as it was when EmitWith was
// called: receivers added during the fan-out are not invoked and receivers
// removed during it still are, unless they are once receivers that
// already fired. The first error returned by a receiver stops the fan-out
// and is returned as is.
func (r *Registry[K]) EmitWith(signal K, args []interface{}, kwargs Kwargs) error {
	snapshot := r.Receivers(signal)

	logger := r.log()
	logger.Debug().
		Interface("signal", signal).
		Int("receivers", len(snapshot)).
		Int("args", len(args)).
		Int("kwargs", len(kwargs)).
		Msg("Emitting signal")

	for ii, rec := range snapshot {
		if err := rec.Call(args, kwargs); err != nil {
			logger.Debug().
				Err(err).
				Interface("signal", signal).
				Int("index", ii).
				Msg("Receiver failed, aborting emit")
			return err
		}
	}
	return nil
}
