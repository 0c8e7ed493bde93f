// Package transfer holds the snapshot export and import runners.
package transfer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/store"
)

// Export writes a snapshot document to Path, or to Out when Path is empty.
type Export struct {
	Path string
	// Format overrides the encoding picked from the file extension.
	Format store.Format
	Out    io.Writer

	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	f := n.Format
	if f == "" {
		f = store.FormatForPath(n.Path)
	}
	data, err := store.EncodeSnapshot(n.Service.Export(), f)
	if err != nil {
		return err
	}
	if n.Path == "" {
		out := n.Out
		if out == nil {
			out = os.Stdout
		}
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(n.Path, data, 0o644); err != nil {
		return fmt.Errorf("transfer: write %s: %w", n.Path, err)
	}
	return nil
}

// Import reads a snapshot document from Path, or from In when Path is "-".
type Import struct {
	Path   string
	Format store.Format
	Merge  bool
	In     io.Reader
	Out    io.Writer

	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	var (
		data []byte
		err  error
	)
	if n.Path == "-" {
		in := n.In
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(n.Path)
	}
	if err != nil {
		return fmt.Errorf("transfer: read %s: %w", n.Path, err)
	}
	f := n.Format
	if f == "" {
		f = store.FormatForPath(n.Path)
	}
	doc, err := store.DecodeSnapshot(data, f)
	if err != nil {
		return err
	}
	mode := app.ImportReplace
	if n.Merge {
		mode = app.ImportMerge
	}
	sum, err := n.Service.Import(doc, mode)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	verb := "Replaced with"
	if n.Merge {
		verb = "Merged"
	}
	_, _ = fmt.Fprintf(out, "%s %d projects, %d events", verb, sum.Projects, sum.Events)
	if sum.Areas > 0 {
		_, _ = fmt.Fprintf(out, " and %d areas", sum.Areas)
	}
	_, _ = fmt.Fprintln(out, ".")
	_, _ = color.New(color.Faint).Fprintln(out, "Run `roadmap undo` to restore the previous projects and events.")
	return nil
}
