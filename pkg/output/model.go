package output

// ReceiverSummary describes one registered receiver. Position is 1-based
// and follows registration order.
type ReceiverSummary struct {
	Position int    `json:"position" yaml:"position" toml:"position"`
	Action   string `json:"action" yaml:"action" toml:"action"`
	Once     bool   `json:"once" yaml:"once" toml:"once"`
}

// SignalSummary lists the receivers of one signal.
type SignalSummary struct {
	Signal    string            `json:"signal" yaml:"signal" toml:"signal"`
	Receivers []ReceiverSummary `json:"receivers" yaml:"receivers" toml:"receivers"`
}

// Snapshot is the registry state at one point in time.
type Snapshot struct {
	Signals []SignalSummary `json:"signals" yaml:"signals" toml:"signals"`
}

// EmitReport is the result of the emit command.
type EmitReport struct {
	Signal   string            `json:"signal" yaml:"signal" toml:"signal"`
	Args     []string          `json:"args" yaml:"args" toml:"args"`
	Kwargs   map[string]string `json:"kwargs" yaml:"kwargs" toml:"kwargs"`
	Repeat   int               `json:"repeat" yaml:"repeat" toml:"repeat"`
	Emitted  int               `json:"emitted" yaml:"emitted" toml:"emitted"`
	Counters map[string]int    `json:"counters" yaml:"counters" toml:"counters"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}
