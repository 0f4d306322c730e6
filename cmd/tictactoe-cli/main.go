package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/rocketscienceinc/tictactoe-history/internal/console"
)

type options struct {
	noColor bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	flags := pflag.NewFlagSet("tictactoe-cli", pflag.ContinueOnError)
	flags.BoolVar(&opts.noColor, "no-color", false, "print the board without colours")

	if err := flags.Parse(args); err != nil {
		return options{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if opts.noColor {
		profile = termenv.Ascii
	}

	if err = console.New(os.Stdin, os.Stdout, profile).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
