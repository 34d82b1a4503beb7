package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/smokesignal/pkg/errors"
	"github.com/arthur-debert/smokesignal/pkg/logging"
)

// Renderer writes snapshots and reports in one format.
type Renderer struct {
	w      io.Writer
	format Format
	styles styles
}

type styles struct {
	signal lipgloss.Style
	action lipgloss.Style
	once   lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
}

// NewRenderer creates a Renderer. Colors are used only when color is true
// and w is a terminal.
func NewRenderer(w io.Writer, format Format, color bool) *Renderer {
	useColor := color && isTerminal(w)

	lg := lipgloss.NewRenderer(w)
	if !useColor {
		lg.SetColorProfile(termenv.Ascii)
	}

	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", string(format)).
		Bool("color", useColor).
		Msg("Renderer created")

	return &Renderer{
		w:      w,
		format: format,
		styles: styles{
			signal: lg.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A31F4", Dark: "#B8A4FF"}),
			action: lg.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0B7A75", Dark: "#5FD7D2"}),
			once:   lg.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#A66300", Dark: "#FFB454"}),
			muted:  lg.NewStyle().Faint(true),
			err:    lg.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#C1121F", Dark: "#FF6B6B"}),
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderSnapshot writes the registry snapshot.
func (r *Renderer) RenderSnapshot(s Snapshot) error {
	if r.format == FormatText {
		return r.snapshotText(s)
	}
	return r.encode(s)
}

// RenderReport writes an emit report.
func (r *Renderer) RenderReport(rep EmitReport) error {
	if r.format == FormatText {
		return r.reportText(rep)
	}
	return r.encode(rep)
}

func (r *Renderer) encode(v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch r.format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(v)
	case FormatTOML:
		data, err = toml.Marshal(v)
	default:
		return errors.Newf(errors.ErrOutputFormat, "unknown output format %q", r.format)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrOutputFormat, "failed to encode %s", r.format)
	}
	_, err = r.w.Write(data)
	return err
}

func (r *Renderer) snapshotText(s Snapshot) error {
	if len(s.Signals) == 0 {
		_, err := fmt.Fprintln(r.w, r.styles.muted.Render("no receivers registered"))
		return err
	}

	var b strings.Builder
	for _, sig := range s.Signals {
		fmt.Fprintf(&b, "%s %s\n",
			r.styles.signal.Render(sig.Signal),
			r.styles.muted.Render(plural(len(sig.Receivers), "receiver")))
		for _, rec := range sig.Receivers {
			line := fmt.Sprintf("  %d. %s", rec.Position, r.styles.action.Render(rec.Action))
			if rec.Once {
				line += " " + r.styles.once.Render("once")
			}
			b.WriteString(line + "\n")
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) reportText(rep EmitReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "emitted %s %s of %d\n",
		r.styles.signal.Render(rep.Signal),
		plural(rep.Emitted, "time"),
		rep.Repeat)

	if len(rep.Counters) > 0 {
		names := make([]string, 0, len(rep.Counters))
		for name := range rep.Counters {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString(r.styles.muted.Render("counters:") + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "  %s %d\n", r.styles.action.Render(name), rep.Counters[name])
		}
	}

	if rep.Error != "" {
		b.WriteString(r.styles.err.Render("error: "+rep.Error) + "\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
