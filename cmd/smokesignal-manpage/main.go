package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/smokesignal/internal/cli"
)

func main() {
	if err := cli.GenerateManPage(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
