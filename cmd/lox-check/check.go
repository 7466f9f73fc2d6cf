package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/spicery/lox-resolver/pkg/parser"
	"github.com/spicery/lox-resolver/pkg/resolver"
)

// checkFiles checks each file in turn. The returned error holds every
// problem found across all of them, or is nil when they are all clean.
func checkFiles(paths []string, w io.Writer) error {
	var result *multierror.Error
	for _, path := range paths {
		if err := checkFile(path, w); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// summarize gives a one-line count of the problems in an error returned by
// checkFiles.
func summarize(err error) string {
	n := 1
	if merr, ok := err.(*multierror.Error); ok {
		n = merr.Len()
	}
	if n == 1 {
		return "1 problem found"
	}
	return fmt.Sprintf("%d problems found", n)
}

func checkFile(path string, w io.Writer) error {
	src, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified input files
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return err
	}

	program, err := parser.ParseString(string(src))
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return fmt.Errorf("%s: %w", path, err)
	}

	_, diags := resolver.Resolve(program)
	if err := diags.Err(); err != nil {
		fmt.Fprintf(w, "%s:\n", path)
		diags.Print(w)
		return err
	}
	fmt.Fprintf(w, "%s: ok\n", path)
	return nil
}
