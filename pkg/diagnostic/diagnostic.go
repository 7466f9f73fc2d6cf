// Package diagnostic collects compile-time errors without halting the pass
// that reports them.
package diagnostic

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/spicery/lox-resolver/pkg/common"
)

// Diagnostic is a single compile-time error.
type Diagnostic struct {
	Span    common.Span
	Where   string // lexeme the error is reported at
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", d.Span.StartLine, d.Where, d.Message)
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// Collector is an append-only Sink.
type Collector struct {
	list common.List[Diagnostic]
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.list.Add(d)
}

func (c *Collector) Diagnostics() []Diagnostic {
	return c.list.Items()
}

func (c *Collector) HasErrors() bool {
	return c.list.Len() > 0
}

// Err returns every diagnostic as one error, or nil when there are none.
func (c *Collector) Err() error {
	var result *multierror.Error
	for _, d := range c.list.Items() {
		result = multierror.Append(result, d)
	}
	return result.ErrorOrNil()
}

// Print lists the diagnostics in the order they were reported.
func (c *Collector) Print(w io.Writer) {
	if !c.HasErrors() {
		return
	}
	fmt.Fprintln(w, "Errors found in the source code:")
	for i, d := range c.list.Items() {
		fmt.Fprintf(w, "  [%d]. %s, at line %d, column %d\n", i+1, d.Message, d.Span.StartLine, d.Span.StartColumn)
	}
}
