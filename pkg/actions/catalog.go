package actions

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/signal"
	"github.com/rs/zerolog"
)

// Env is what an action can reach when it runs.
type Env struct {
	Registry *signal.Registry[string]
	Out      io.Writer
	Logger   zerolog.Logger
	Counters *Counters
}

// Factory builds a receiver function for signalName from options.
type Factory func(env Env, signalName string, options map[string]interface{}) (signal.Func, error)

// Catalog is a thread-safe set of factories keyed by action name.
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name.
func (c *Catalog) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "action name cannot be empty")
	}
	if factory == nil {
		return errors.Newf(errors.ErrInvalidInput, "action '%s' has no factory", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "action '%s' is already registered", name)
	}

	c.factories[name] = factory
	return nil
}

// MustRegister registers a factory and panics if registration fails.
// Registration errors in init() are programming errors.
func (c *Catalog) MustRegister(name string, factory Factory) {
	if err := c.Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register action %s: %v", name, err))
	}
}

// Get retrieves the factory for name.
func (c *Catalog) Get(name string) (Factory, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	factory, exists := c.factories[name]
	if !exists {
		return nil, errors.Newf(errors.ErrActionNotFound, "action '%s' not found", name).
			WithDetail("action", name)
	}
	return factory, nil
}

// Has checks if an action is registered
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.factories[name]
	return exists
}

// List returns all registered action names in sorted order
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Build looks up name and runs its factory.
func (c *Catalog) Build(name string, env Env, signalName string, options map[string]interface{}) (signal.Func, error) {
	factory, err := c.Get(name)
	if err != nil {
		return nil, err
	}

	fn, err := factory(env, signalName, options)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return nil, errors.Wrapf(err, errors.ErrActionInvalid, "cannot build action '%s'", name)
		}
		return nil, err
	}
	return fn, nil
}

// Builtin holds the actions shipped with smokesignal.
var Builtin = NewCatalog()
