package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/smokesignal/internal/commands"
	"github.com/arthur-debert/smokesignal/internal/version"
	"github.com/arthur-debert/smokesignal/pkg/actions"
	"github.com/arthur-debert/smokesignal/pkg/config"
	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/logging"
	"github.com/arthur-debert/smokesignal/pkg/output"
	"github.com/arthur-debert/smokesignal/pkg/signal"
	"github.com/arthur-debert/smokesignal/pkg/wiring"
)

const annotationSkipConfig = "smokesignal/skip-config"

// globalOptions holds the persistent flags and the config they resolve to.
type globalOptions struct {
	verbosity  int
	configPath string
	format     string
	noColor    bool
	logFile    string

	cfg *config.Config
}

func (o *globalOptions) overrides() map[string]interface{} {
	overrides := make(map[string]interface{})
	if o.format != "" {
		overrides["output.format"] = o.format
	}
	if o.noColor {
		overrides["output.color"] = false
	}
	if o.logFile != "" {
		overrides["log.file"] = o.logFile
	}
	return overrides
}

func (o *globalOptions) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := output.ParseFormat(o.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), format, o.cfg.Output.Color), nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "smokesignal",
		Short:   commands.MsgRootShort,
		Long:    commands.MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationSkipConfig] == "true" {
				logging.SetupLogger(opts.verbosity, opts.logFile)
				return nil
			}

			cfg, err := config.Load(opts.configPath, opts.overrides())
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logging.SetupLogger(opts.verbosity, cfg.Log.File)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", commands.FlagVerbose)
	flags.StringVarP(&opts.configPath, "config", "c", "", commands.FlagConfig)
	flags.StringVarP(&opts.format, "format", "f", "", commands.FlagFormat)
	flags.BoolVar(&opts.noColor, "no-color", false, commands.FlagNoColor)
	flags.StringVar(&opts.logFile, "log-file", "", commands.FlagLogFile)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newEmitCmd(opts))
	rootCmd.AddCommand(newInspectCmd(opts))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       commands.MsgVersionShort,
		Long:        commands.MsgVersionLong,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "smokesignal version %s\n", version.Version)
			fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			fmt.Fprintf(out, "Built:  %s\n", version.Date)
		},
	}
}

// wire registers the configured receivers on the default registry. The
// returned cleanup resets the registry.
func wire(cmd *cobra.Command, opts *globalOptions) (actions.Env, []wiring.Binding, func(), error) {
	env := actions.Env{
		Registry: signal.Default,
		Out:      cmd.OutOrStdout(),
		Logger:   logging.GetLogger("action"),
		Counters: actions.NewCounters(),
	}

	bindings, err := wiring.Apply(actions.Builtin, env, opts.cfg.Receivers)
	if err != nil {
		return env, nil, func() {}, err
	}
	return env, bindings, signal.ClearAll, nil
}

func newEmitCmd(opts *globalOptions) *cobra.Command {
	var (
		kwargs map[string]string
		repeat int
	)

	cmd := &cobra.Command{
		Use:   "emit SIGNAL [ARGS...]",
		Short: commands.MsgEmitShort,
		Long:  commands.MsgEmitLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if repeat < 1 {
				return errors.Newf(errors.ErrInvalidInput, "--repeat must be at least 1, got %d", repeat)
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			env, _, cleanup, err := wire(cmd, opts)
			defer cleanup()
			if err != nil {
				return err
			}

			signalName := args[0]
			positional := make([]interface{}, 0, len(args)-1)
			for _, a := range args[1:] {
				positional = append(positional, a)
			}
			kw := make(signal.Kwargs, len(kwargs))
			for k, v := range kwargs {
				kw[k] = v
			}

			report := output.EmitReport{
				Signal: signalName,
				Args:   args[1:],
				Kwargs: kwargs,
				Repeat: repeat,
			}

			logger := logging.GetLogger("cli")
			done := logging.LogOperationStart(logger, "emit")
			var emitErr error
			for i := 0; i < repeat; i++ {
				if emitErr = env.Registry.EmitWith(signalName, positional, kw); emitErr != nil {
					report.Error = emitErr.Error()
					break
				}
				report.Emitted++
			}
			done()
			report.Counters = env.Counters.Snapshot()

			if err := renderer.RenderReport(report); err != nil {
				return err
			}
			return emitErr
		},
	}

	cmd.Flags().StringToStringVar(&kwargs, "kw", nil, commands.FlagKw)
	cmd.Flags().IntVarP(&repeat, "repeat", "n", 1, commands.FlagRepeat)

	return cmd
}

func newInspectCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: commands.MsgInspectShort,
		Long:  commands.MsgInspectLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			env, bindings, cleanup, err := wire(cmd, opts)
			defer cleanup()
			if err != nil {
				return err
			}

			return renderer.RenderSnapshot(wiring.Snapshot(env.Registry, bindings))
		},
	}
}
