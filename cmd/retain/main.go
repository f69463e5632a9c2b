// Command retain renders and inspects retained widget trees.
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/go-drift/retain/cmd/retain/cmd"
	"github.com/go-drift/retain/pkg/errors"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		// Structured errors were already written by the error handler.
		var re *errors.RetainError
		if !stderrors.As(err, &re) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
