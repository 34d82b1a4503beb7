package actions

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/signal"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(out *bytes.Buffer, logs *bytes.Buffer) Env {
	return Env{
		Registry: signal.New[string](),
		Out:      out,
		Logger:   zerolog.New(logs).Level(zerolog.TraceLevel),
		Counters: NewCounters(),
	}
}

func TestFormatInvocation(t *testing.T) {
	tests := []struct {
		name   string
		args   []interface{}
		kwargs signal.Kwargs
		want   string
	}{
		{"bare", nil, nil, "foo"},
		{"positional", []interface{}{1, "two", 3.5}, nil, "foo 1 two 3.5"},
		{"sorted kwargs", []interface{}{1}, signal.Kwargs{"z": 1, "a": "b"}, "foo 1 a=b z=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatInvocation("foo", tt.args, tt.kwargs))
		})
	}
}

func TestPrintAction(t *testing.T) {
	var out, logs bytes.Buffer
	env := testEnv(&out, &logs)

	fn, err := Builtin.Build(ActionPrint, env, "deploy", map[string]interface{}{"prefix": ">>"})
	require.NoError(t, err)

	require.NoError(t, fn([]interface{}{"web"}, signal.Kwargs{"env": "prod"}))
	assert.Equal(t, ">> deploy web env=prod\n", out.String())

	t.Run("rejects non-string prefix", func(t *testing.T) {
		_, err := Builtin.Build(ActionPrint, env, "deploy", map[string]interface{}{"prefix": 3})
		assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid), "got %v", err)
	})

	t.Run("needs a writer", func(t *testing.T) {
		_, err := Builtin.Build(ActionPrint, Env{}, "deploy", nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid), "got %v", err)
	})
}

func TestLogAction(t *testing.T) {
	var out, logs bytes.Buffer
	env := testEnv(&out, &logs)

	fn, err := Builtin.Build(ActionLog, env, "deploy", map[string]interface{}{"level": "warn", "message": "deploying"})
	require.NoError(t, err)
	require.NoError(t, fn([]interface{}{"web"}, signal.Kwargs{"env": "prod"}))

	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"signal":"deploy"`)
	assert.Contains(t, logs.String(), `"message":"deploying"`)
	assert.Contains(t, logs.String(), `"env":"prod"`)

	_, err = Builtin.Build(ActionLog, env, "deploy", map[string]interface{}{"level": "loud"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid), "got %v", err)
}

func TestCountAction(t *testing.T) {
	var out, logs bytes.Buffer
	env := testEnv(&out, &logs)

	byDefault, err := Builtin.Build(ActionCount, env, "deploy", nil)
	require.NoError(t, err)
	named, err := Builtin.Build(ActionCount, env, "deploy", map[string]interface{}{"name": "deploys"})
	require.NoError(t, err)

	require.NoError(t, byDefault(nil, nil))
	require.NoError(t, byDefault(nil, nil))
	require.NoError(t, named(nil, nil))

	assert.Equal(t, 2, env.Counters.Get("deploy"))
	assert.Equal(t, 1, env.Counters.Get("deploys"))

	_, err = Builtin.Build(ActionCount, Env{}, "deploy", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid), "got %v", err)
}

func TestEmitAction(t *testing.T) {
	var out, logs bytes.Buffer
	env := testEnv(&out, &logs)

	var got []interface{}
	env.Registry.MustOn("downstream", func(args []interface{}, kw signal.Kwargs) error {
		got = args
		return nil
	})

	fn, err := Builtin.Build(ActionEmit, env, "upstream", map[string]interface{}{"signal": "downstream"})
	require.NoError(t, err)
	require.NoError(t, fn([]interface{}{42}, nil))
	assert.Equal(t, []interface{}{42}, got)

	t.Run("requires target", func(t *testing.T) {
		_, err := Builtin.Build(ActionEmit, env, "upstream", nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid), "got %v", err)
	})

	t.Run("rejects self loop", func(t *testing.T) {
		_, err := Builtin.Build(ActionEmit, env, "upstream", map[string]interface{}{"signal": "upstream"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid), "got %v", err)
	})

	t.Run("needs a registry", func(t *testing.T) {
		_, err := Builtin.Build(ActionEmit, Env{}, "upstream", map[string]interface{}{"signal": "downstream"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid), "got %v", err)
	})
}

func TestEmitActionCycle(t *testing.T) {
	var out, logs bytes.Buffer
	env := testEnv(&out, &logs)

	toB, err := Builtin.Build(ActionEmit, env, "a", map[string]interface{}{"signal": "b"})
	require.NoError(t, err)
	toA, err := Builtin.Build(ActionEmit, env, "b", map[string]interface{}{"signal": "a"})
	require.NoError(t, err)
	env.Registry.MustOn("a", toB)
	back := env.Registry.MustOn("b", toA)

	err = env.Registry.Emit("a")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionFailed), "got %v", err)
	assert.Contains(t, err.Error(), "cycle")

	t.Run("depth is released after failing", func(t *testing.T) {
		back.Disconnect()
		calls := 0
		env.Registry.MustOn("b", func([]interface{}, signal.Kwargs) error {
			calls++
			return nil
		})

		require.NoError(t, env.Registry.Emit("a"))
		assert.Equal(t, 1, calls)
	})
}

func TestEmitActionChainWithinDepth(t *testing.T) {
	var out, logs bytes.Buffer
	env := testEnv(&out, &logs)

	chain := []string{"s0", "s1", "s2", "s3", "s4"}
	for i := 0; i < len(chain)-1; i++ {
		fn, err := Builtin.Build(ActionEmit, env, chain[i], map[string]interface{}{"signal": chain[i+1]})
		require.NoError(t, err)
		env.Registry.MustOn(chain[i], fn)
	}
	var got []interface{}
	env.Registry.MustOn("s4", func(args []interface{}, _ signal.Kwargs) error {
		got = args
		return nil
	})

	require.NoError(t, env.Registry.Emit("s0", "payload"))
	assert.Equal(t, []interface{}{"payload"}, got)
}

func TestFailAction(t *testing.T) {
	fn, err := Builtin.Build(ActionFail, Env{}, "deploy", map[string]interface{}{"message": "no capacity"})
	require.NoError(t, err)

	err = fn(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionFailed))
	assert.Contains(t, err.Error(), "no capacity")
	assert.Equal(t, "deploy", errors.GetErrorDetails(err)["signal"])
}
