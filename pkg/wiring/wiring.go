// Package wiring registers the receivers declared in a config on a
// signal registry.
package wiring

import (
	"sort"
	"strings"

	"github.com/arthur-debert/smokesignal/pkg/actions"
	"github.com/arthur-debert/smokesignal/pkg/config"
	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/logging"
	"github.com/arthur-debert/smokesignal/pkg/output"
	"github.com/arthur-debert/smokesignal/pkg/signal"
)

// Binding ties a registered receiver back to the config entry it came from.
type Binding struct {
	Config   config.ReceiverConfig
	Receiver *signal.Receiver[string]
}

// Apply builds every receiver in order and registers it on env.Registry.
// Registration is all or nothing: if any entry fails, the receivers added
// by this call are disconnected again.
func Apply(catalog *actions.Catalog, env actions.Env, receivers []config.ReceiverConfig) ([]Binding, error) {
	if env.Registry == nil {
		return nil, errors.New(errors.ErrInvalidInput, "wiring needs a registry")
	}

	if cycle := emitCycle(receivers); cycle != nil {
		return nil, errors.Newf(errors.ErrConfigValid, "emit receivers form a cycle: %s", strings.Join(cycle, " -> ")).
			WithDetail("cycle", cycle)
	}

	logger := logging.GetLogger("wiring")
	done := logging.LogOperationStart(logger, "apply")
	defer done()

	bindings := make([]Binding, 0, len(receivers))
	rollback := func() {
		for _, b := range bindings {
			b.Receiver.Disconnect()
		}
	}

	for i, rc := range receivers {
		fn, err := catalog.Build(rc.Action, env, rc.Signal, rc.Options)
		if err != nil {
			rollback()
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "receiver %d (%s)", i, rc.Signal).
				WithDetail("index", i).
				WithDetail("action", rc.Action)
		}

		var rec *signal.Receiver[string]
		if rc.Once {
			rec, err = env.Registry.Once(rc.Signal, fn)
		} else {
			rec, err = env.Registry.On(rc.Signal, fn)
		}
		if err != nil {
			rollback()
			return nil, err
		}

		logger.Debug().
			Str("signal", rc.Signal).
			Str("action", rc.Action).
			Bool("once", rc.Once).
			Msg("Receiver wired")
		bindings = append(bindings, Binding{Config: rc, Receiver: rec})
	}

	return bindings, nil
}

// emitCycle returns the first cycle formed by emit receivers, as the
// signal path starting and ending at the same name, or nil. Self loops
// are left to the emit action, which rejects them on its own.
func emitCycle(receivers []config.ReceiverConfig) []string {
	edges := make(map[string][]string)
	var order []string
	for _, rc := range receivers {
		if rc.Action != actions.ActionEmit {
			continue
		}
		target, ok := rc.Options["signal"].(string)
		if !ok || target == "" || target == rc.Signal {
			continue
		}
		if _, seen := edges[rc.Signal]; !seen {
			order = append(order, rc.Signal)
		}
		edges[rc.Signal] = append(edges[rc.Signal], target)
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int)
	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = visiting
		path = append(path, name)
		for _, next := range edges[name] {
			switch state[next] {
			case visiting:
				for i, p := range path {
					if p == next {
						return append(append([]string{}, path[i:]...), next)
					}
				}
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		path = path[:len(path)-1]
		state[name] = visited
		return nil
	}

	for _, name := range order {
		if state[name] == unvisited {
			if cycle := visit(name); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Snapshot describes the current receivers of reg, sorted by signal name.
// Receivers that were not registered through bindings show up with the
// action name "func".
func Snapshot(reg *signal.Registry[string], bindings []Binding) output.Snapshot {
	actionOf := make(map[*signal.Receiver[string]]string, len(bindings))
	for _, b := range bindings {
		actionOf[b.Receiver] = b.Config.Action
	}

	names := reg.Signals()
	sort.Strings(names)

	snap := output.Snapshot{Signals: make([]output.SignalSummary, 0, len(names))}
	for _, name := range names {
		recs := reg.Receivers(name)
		if len(recs) == 0 {
			continue
		}
		summary := output.SignalSummary{Signal: name}
		for i, rec := range recs {
			action, ok := actionOf[rec]
			if !ok {
				action = "func"
			}
			summary.Receivers = append(summary.Receivers, output.ReceiverSummary{
				Position: i + 1,
				Action:   action,
				Once:     rec.IsOnce(),
			})
		}
		snap.Signals = append(snap.Signals, summary)
	}
	return snap
}
