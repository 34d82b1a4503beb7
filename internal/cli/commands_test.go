package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/output"
	"github.com/arthur-debert/smokesignal/pkg/signal"
)

const wiringTOML = `
[[receivers]]
signal = "deploy"
action = "print"
[receivers.options]
prefix = ">>"

[[receivers]]
signal = "deploy"
action = "count"
once = true

[[receivers]]
signal = "deploy"
action = "count"
[receivers.options]
name = "every"

[[receivers]]
signal = "explode"
action = "fail"
[receivers.options]
message = "no capacity"

[[receivers]]
signal = "explode"
action = "count"
`

func setup(t *testing.T) (configPath, logPath string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Cleanup(signal.ClearAll)

	configPath = filepath.Join(dir, "wiring.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(wiringTOML), 0644))
	return configPath, filepath.Join(dir, "smokesignal.log")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	_, logPath := setup(t)

	out, err := run(t, "version", "--log-file", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "smokesignal version dev")
}

func TestEmitCmd(t *testing.T) {
	cfgPath, logPath := setup(t)

	out, err := run(t, "emit", "deploy", "web", "--kw", "env=prod",
		"--repeat", "2", "-c", cfgPath, "--log-file", logPath)
	require.NoError(t, err)

	assert.Equal(t,
		">> deploy web env=prod\n"+
			">> deploy web env=prod\n"+
			"emitted deploy 2 times of 2\n"+
			"counters:\n"+
			"  deploy 1\n"+
			"  every 2\n",
		out)
	assert.Empty(t, signal.Receivers("deploy"), "default registry is reset after the command")
}

func TestEmitCmdReceiverFailure(t *testing.T) {
	cfgPath, logPath := setup(t)

	out, err := run(t, "emit", "explode", "-n", "3", "-c", cfgPath, "--log-file", logPath)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionFailed), "got %v", err)
	assert.Contains(t, out, "emitted explode 0 times of 3")
	assert.Contains(t, out, "error: [ACTION_FAILED] no capacity")
	assert.NotContains(t, out, "counters:", "receivers after the failing one never ran")
}

func TestEmitCmdJSON(t *testing.T) {
	cfgPath, logPath := setup(t)

	out, err := run(t, "emit", "unknown-signal", "-f", "json", "-c", cfgPath, "--log-file", logPath)
	require.NoError(t, err)

	var rep output.EmitReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "unknown-signal", rep.Signal)
	assert.Equal(t, 1, rep.Emitted)
	assert.Empty(t, rep.Counters)
}

func TestEmitCmdValidation(t *testing.T) {
	cfgPath, logPath := setup(t)

	_, err := run(t, "emit", "deploy", "--repeat", "0", "-c", cfgPath, "--log-file", logPath)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)

	_, err = run(t, "emit", "-c", cfgPath, "--log-file", logPath)
	assert.Error(t, err, "signal name is required")

	_, err = run(t, "emit", "deploy", "-f", "xml", "-c", cfgPath, "--log-file", logPath)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
}

func TestInspectCmd(t *testing.T) {
	cfgPath, logPath := setup(t)

	out, err := run(t, "inspect", "-c", cfgPath, "--log-file", logPath)
	require.NoError(t, err)

	assert.Equal(t,
		"deploy 3 receivers\n"+
			"  1. print\n"+
			"  2. count once\n"+
			"  3. count\n"+
			"explode 2 receivers\n"+
			"  1. fail\n"+
			"  2. count\n",
		out)
}

func TestInspectCmdWithoutConfig(t *testing.T) {
	_, logPath := setup(t)

	out, err := run(t, "inspect", "--log-file", logPath)
	require.NoError(t, err)
	assert.Equal(t, "no receivers registered\n", out)
}

func TestInspectCmdBadWiring(t *testing.T) {
	_, logPath := setup(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("receivers:\n  - signal: deploy\n    action: teleport\n"), 0644))

	_, err := run(t, "inspect", "-c", path, "--log-file", logPath)
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionNotFound), "got %v", err)
	assert.Empty(t, signal.Receivers("deploy"))
}
