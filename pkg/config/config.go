package config

// Config is the decoded wiring file.
type Config struct {
	Output    OutputConfig     `koanf:"output"`
	Log       LogConfig        `koanf:"log"`
	Receivers []ReceiverConfig `koanf:"receivers"`
}

// OutputConfig controls how the CLI renders results.
type OutputConfig struct {
	Format string `koanf:"format"`
	Color  bool   `koanf:"color"`
}

// LogConfig controls log file placement. An empty File means the XDG
// state directory.
type LogConfig struct {
	File string `koanf:"file"`
}

// ReceiverConfig declares one receiver: the signal it listens on, the
// action that handles it and the action's options.
type ReceiverConfig struct {
	Signal  string                 `koanf:"signal"`
	Action  string                 `koanf:"action"`
	Once    bool                   `koanf:"once"`
	Options map[string]interface{} `koanf:"options"`
}
