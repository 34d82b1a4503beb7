package cli

import (
	"io"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/smokesignal/internal/version"
	"github.com/arthur-debert/smokesignal/pkg/errors"
)

// Shells lists the shells GenerateCompletion supports.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// GenerateCompletion writes the completion script for shell.
func GenerateCompletion(w io.Writer, shell string) error {
	rootCmd := NewRootCmd()

	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q", shell).
			WithDetail("supported", Shells)
	}
}

// GenerateManPage writes the smokesignal(1) man page.
func GenerateManPage(w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "SMOKESIGNAL",
		Section: "1",
		Source:  "smokesignal " + version.Version,
		Manual:  "smokesignal manual",
	}
	return doc.GenMan(NewRootCmd(), header, w)
}
