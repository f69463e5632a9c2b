package cmd

import (
	"fmt"

	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/style"
)

func init() {
	RegisterCommand(&Command{
		Name:  "style",
		Short: "Validate stylesheets",
		Long: `Load one or more YAML or TOML stylesheets and list the styles they define.

The format follows the file extension (.yaml, .yml or .toml). A stylesheet
must declare a version with major version 1. Colours are hex values or SVG
colour names; brushes may be prefixed with "outline:". Every file is
checked; failures are reported one per line on stderr.`,
		Usage: "retain style <file>...",
		Run:   runStyle,
	})
}

func runStyle(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("stylesheet path is required\n\nUsage: retain style <file>...")
	}
	failed := 0
	for _, path := range args {
		ss, err := style.Load(path)
		if err != nil {
			report("cmd.style", errors.KindStyle, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "%s: version %s, %d styles\n", path, ss.Version, len(ss.Names()))
		for _, name := range ss.Names() {
			fmt.Fprintf(stdout, "  %s\n", name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d stylesheets failed to load", failed, len(args))
	}
	return nil
}
