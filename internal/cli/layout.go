package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/host"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/sink"
	"github.com/matzehuels/tilegrid/pkg/window"
)

// Output formats of the layout and scroll commands.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatSVG   = "svg"
)

// layoutFlags are the viewport flags shared by layout, scroll and view.
type layoutFlags struct {
	width  int
	height int
	aspect float64
	items  int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	d := config.Defaults().Layout
	cmd.Flags().IntVar(&f.width, "width", d.Width, "viewport width")
	cmd.Flags().IntVar(&f.height, "height", d.Height, "viewport height")
	cmd.Flags().Float64Var(&f.aspect, "aspect", d.Aspect, "big tile edge as a fraction of the width")
	cmd.Flags().IntVarP(&f.items, "items", "n", d.Items, "number of items")
}

// resolve returns base overridden by the flags the user set.
func (f *layoutFlags) resolve(cmd *cobra.Command, base config.Layout) config.Layout {
	if cmd.Flags().Changed("width") {
		base.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		base.Height = f.height
	}
	if cmd.Flags().Changed("aspect") {
		base.Aspect = f.aspect
	}
	if cmd.Flags().Changed("items") {
		base.Items = f.items
	}
	return base
}

// newManager builds a reference host and a manager for l.
func (c *CLI) newManager(l config.Layout) (*layout.Manager, *host.Viewport, *host.Pool) {
	v := host.NewViewport(l.Width, l.Height, l.Items)
	p := host.NewPool(v)
	m := layout.New(v, p, layout.WithAspect(l.Aspect), layout.WithLogger(c.Logger))
	return m, v, p
}

// layoutCommand creates the layout command for printing a single layout pass.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags       layoutFlags
		format      string
		output      string
		anchorIndex int
		anchorTop   int
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute one layout pass and print the attached tiles",
		Long: `Compute one layout pass and print the attached tiles.

Without --anchor the list is laid out from the first item. With --anchor the
item at that index is placed with its top edge at --anchor-top, the way a
restored session would be.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := flags.resolve(cmd, c.cfg.Layout)
			var anchor *window.Anchor
			if cmd.Flags().Changed("anchor") {
				anchor = &window.Anchor{Index: anchorIndex, Top: anchorTop}
			}
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), l, anchor, format, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json, svg")
	completeValues(cmd, "format", formatValues)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&anchorIndex, "anchor", 0, "index of the item to anchor")
	cmd.Flags().IntVar(&anchorTop, "anchor-top", 0, "top edge of the anchored item")

	return cmd
}

// runLayout lays out l and writes the view in format.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, l config.Layout, anchor *window.Anchor, format, output string) error {
	m, _, _ := c.newManager(l)

	var err error
	if anchor != nil {
		err = m.ScrollToAnchor(ctx, *anchor)
	} else {
		err = m.ComputeLayout(ctx)
	}
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	return writeView(w, m.View(), format, output)
}

// writeView renders v in format to output, or to w when output is empty.
func writeView(w io.Writer, v layout.View, format, output string) error {
	var data []byte
	switch format {
	case formatTable:
		if output != "" {
			return fmt.Errorf("format %q cannot be written to a file", format)
		}
		printViewSummary(w, v)
		fmt.Fprintln(w, tileTable(v))
		return nil
	case formatJSON:
		b, err := sink.RenderJSON(v)
		if err != nil {
			return fmt.Errorf("render json: %w", err)
		}
		data = append(b, '\n')
	case formatSVG:
		data = sink.RenderSVG(v)
	default:
		return fmt.Errorf("unknown format %q (want table, json or svg)", format)
	}

	if output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess(w, "Wrote %s", format)
	printFile(w, output)
	return nil
}
