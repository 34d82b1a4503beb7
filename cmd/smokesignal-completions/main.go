package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/smokesignal/internal/cli"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <%s>\n", os.Args[0], strings.Join(cli.Shells, "|"))
		os.Exit(1)
	}

	shell := os.Args[1]
	if err := cli.GenerateCompletion(os.Stdout, shell); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", shell, err)
		os.Exit(1)
	}
}
