package actions

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/logging"
	"github.com/arthur-debert/smokesignal/pkg/signal"
)

// Names of the built-in actions.
const (
	ActionPrint = "print"
	ActionLog   = "log"
	ActionCount = "count"
	ActionEmit  = "emit"
	ActionFail  = "fail"
)

// MaxEmitDepth bounds how deeply one emit action may re-enter itself
// through a chain of signals before it fails instead of recursing.
const MaxEmitDepth = 32

func init() {
	Builtin.MustRegister(ActionPrint, newPrint)
	Builtin.MustRegister(ActionLog, newLog)
	Builtin.MustRegister(ActionCount, newCount)
	Builtin.MustRegister(ActionEmit, newEmit)
	Builtin.MustRegister(ActionFail, newFail)
}

func newPrint(env Env, signalName string, options map[string]interface{}) (signal.Func, error) {
	if env.Out == nil {
		return nil, errors.New(errors.ErrActionInvalid, "print action needs an output writer")
	}
	prefix, err := stringOption(options, "prefix", "")
	if err != nil {
		return nil, err
	}

	return func(args []interface{}, kwargs signal.Kwargs) error {
		line := FormatInvocation(signalName, args, kwargs)
		if prefix != "" {
			line = prefix + " " + line
		}
		_, err := fmt.Fprintln(env.Out, line)
		return err
	}, nil
}

func newLog(env Env, signalName string, options map[string]interface{}) (signal.Func, error) {
	levelName, err := stringOption(options, "level", "info")
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrActionInvalid, "log action").
			WithDetail("option", "level")
	}
	message, err := stringOption(options, "message", "Signal received")
	if err != nil {
		return nil, err
	}

	logger := env.Logger
	return func(args []interface{}, kwargs signal.Kwargs) error {
		logger.WithLevel(level).
			Str("signal", signalName).
			Interface("args", args).
			Interface("kwargs", kwargs).
			Msg(message)
		return nil
	}, nil
}

func newCount(env Env, signalName string, options map[string]interface{}) (signal.Func, error) {
	if env.Counters == nil {
		return nil, errors.New(errors.ErrActionInvalid, "count action needs a counter set")
	}
	name, err := stringOption(options, "name", signalName)
	if err != nil {
		return nil, err
	}

	return func([]interface{}, signal.Kwargs) error {
		env.Counters.Inc(name)
		return nil
	}, nil
}

func newEmit(env Env, signalName string, options map[string]interface{}) (signal.Func, error) {
	if env.Registry == nil {
		return nil, errors.New(errors.ErrActionInvalid, "emit action needs a registry")
	}
	target, err := stringOption(options, "signal", "")
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, errors.New(errors.ErrActionInvalid, "emit action requires the 'signal' option")
	}
	if target == signalName {
		return nil, errors.Newf(errors.ErrActionInvalid, "emit action on %q cannot re-emit itself", signalName)
	}

	reg := env.Registry
	var depth atomic.Int32
	return func(args []interface{}, kwargs signal.Kwargs) error {
		if depth.Add(1) > MaxEmitDepth {
			depth.Add(-1)
			return errors.Newf(errors.ErrActionFailed,
				"emit from %q to %q exceeded depth %d, signals form a cycle", signalName, target, MaxEmitDepth).
				WithDetail("signal", signalName).
				WithDetail("target", target)
		}
		defer depth.Add(-1)
		return reg.EmitWith(target, args, kwargs)
	}, nil
}

func newFail(_ Env, signalName string, options map[string]interface{}) (signal.Func, error) {
	message, err := stringOption(options, "message", "receiver failed")
	if err != nil {
		return nil, err
	}

	return func([]interface{}, signal.Kwargs) error {
		return errors.New(errors.ErrActionFailed, message).WithDetail("signal", signalName)
	}, nil
}

// FormatInvocation renders a signal call as "name arg1 arg2 k1=v1 k2=v2",
// with keyword arguments sorted by key.
func FormatInvocation(signalName string, args []interface{}, kwargs signal.Kwargs) string {
	parts := make([]string, 0, 1+len(args)+len(kwargs))
	parts = append(parts, signalName)
	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}

	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, kwargs[k]))
	}

	return strings.Join(parts, " ")
}

func stringOption(options map[string]interface{}, key, def string) (string, error) {
	raw, ok := options[key]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrActionInvalid, "option '%s' must be a string, got %T", key, raw).
			WithDetail("option", key)
	}
	return s, nil
}
