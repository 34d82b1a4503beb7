package commands

// Short messages (one-liners)
const (
	MsgRootShort    = "Wire and fire in-process signals"
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
	MsgEmitShort    = "Emit a signal through the configured receivers"
	MsgInspectShort = "Show the receivers registered for each signal"
)

// Long descriptions
const (
	MsgRootLong = `smokesignal loads a wiring file that attaches built-in actions to named
signals, then emits signals through a process-local registry. Receivers run
synchronously, in registration order, and the first failing receiver stops
the emit.`

	MsgEmitLong = `Emit loads the wiring file, registers its receivers and emits SIGNAL with
the remaining arguments as positional arguments. Keyword arguments are
passed with --kw key=value. With --repeat the signal is emitted several
times, which shows receivers declared with once = true firing a single time.`

	MsgInspectLong = `Inspect loads the wiring file, registers its receivers and prints the
resulting registry, one signal at a time in registration order.`
)

// Flag descriptions
const (
	FlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	FlagConfig  = "Wiring file (default $XDG_CONFIG_HOME/smokesignal/wiring.toml)"
	FlagFormat  = "Output format: text, json, yaml or toml"
	FlagNoColor = "Disable colored output"
	FlagLogFile = "Log file path (default under $XDG_STATE_HOME/smokesignal)"
	FlagKw      = "Keyword argument as key=value (repeatable)"
	FlagRepeat  = "Number of times to emit the signal"
)
