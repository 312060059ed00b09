package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/session"
	"github.com/matzehuels/tilegrid/pkg/window"
)

// maxScrollSteps bounds a scroll run without --steps.
const maxScrollSteps = 10000

type scrollOptions struct {
	by      int
	steps   int
	session string
	save    bool
	format  string
	output  string
}

// scrollStep is one row of the scroll trace.
type scrollStep struct {
	dy, applied int
	lo, hi      int
	anchor      string
}

// scrollCommand creates the scroll command for simulating a scroll gesture.
func (c *CLI) scrollCommand() *cobra.Command {
	var (
		flags layoutFlags
		opts  scrollOptions
	)

	cmd := &cobra.Command{
		Use:   "scroll",
		Short: "Scroll a layout step by step and trace the clamped deltas",
		Long: `Scroll a layout step by step and trace the clamped deltas.

Each step requests --by units (negative scrolls towards the first item). Without
--steps the command keeps scrolling until the content edge stops it.

With --session the layout is restored from a stored snapshot; --save stores the
final state so a later run can continue from it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScroll(cmd.Context(), cmd.OutOrStdout(), flags.resolve(cmd, c.cfg.Layout), opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&opts.by, "by", 30, "scroll delta per step")
	cmd.Flags().IntVar(&opts.steps, "steps", 0, "number of steps (default: until clamped)")
	cmd.Flags().StringVarP(&opts.session, "session", "s", "", "restore the layout from this session id")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the final layout as a session")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "format of the final view: table, json, svg")
	completeValues(cmd, "format", formatValues)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file for the final view (default: stdout)")

	return cmd
}

func (c *CLI) runScroll(ctx context.Context, w io.Writer, l config.Layout, opts scrollOptions) error {
	logger := loggerFromContext(ctx)

	var (
		store session.Store
		snap  *session.Snapshot
	)
	if opts.session != "" || opts.save {
		var err error
		if store, err = c.openCLIStore(ctx); err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		defer store.Close()
	}
	if opts.session != "" {
		var err error
		if snap, err = store.Get(ctx, opts.session); err != nil {
			return fmt.Errorf("load session %s: %w", opts.session, err)
		}
		if snap == nil {
			return session.NotFound(opts.session)
		}
		l = config.Layout{Width: snap.Viewport.Width, Height: snap.Viewport.Height, Aspect: snap.Aspect, Items: snap.ItemCount}
	}

	m, _, pool := c.newManager(l)
	if a, ok := snapAnchor(snap); ok {
		if err := m.ScrollToAnchor(ctx, a); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
	} else if err := m.ComputeLayout(ctx); err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	prog := newProgress(logger)
	trace, err := scrollSteps(ctx, m, opts.by, opts.steps)
	if err != nil {
		return err
	}
	total := 0
	for _, s := range trace {
		total += s.applied
	}
	prog.done(fmt.Sprintf("Scrolled %d steps, %d units", len(trace), total))

	if opts.format == formatTable {
		fmt.Fprintln(w, traceTable(trace))
	}
	if err := writeView(w, m.View(), opts.format, opts.output); err != nil {
		return err
	}
	st := pool.Stats()
	printInfo(w, "pool: %d created, %d recycled, %d live", st.Created, st.Recycled, st.Live)

	if opts.save {
		if snap == nil {
			snap = session.New(session.Viewport{Width: l.Width, Height: l.Height}, m.Aspect(), l.Items, c.cfg.Store.TTL.Duration)
		}
		snap.SetAnchor(m.Anchor())
		snap.Touch(c.cfg.Store.TTL.Duration)
		if err := store.Set(ctx, snap); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		printSuccess(w, "Saved session %s", StyleNumber.Render(snap.ID))
		printNextStep(w, "Continue", fmt.Sprintf("%s scroll --session %s", appName, snap.ID))
	}
	return nil
}

func snapAnchor(snap *session.Snapshot) (a window.Anchor, ok bool) {
	if snap == nil {
		return a, false
	}
	return snap.LayoutAnchor()
}

// scrollSteps applies by repeatedly, steps times or until a step is fully
// clamped when steps is zero.
func scrollSteps(ctx context.Context, m *layout.Manager, by, steps int) ([]scrollStep, error) {
	limit := steps
	if limit <= 0 {
		limit = maxScrollSteps
	}
	var trace []scrollStep
	for i := 0; i < limit; i++ {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		dt, err := m.ApplyScroll(ctx, by)
		if err != nil {
			return trace, fmt.Errorf("scroll step %d: %w", i+1, err)
		}
		win := m.Window()
		anchor := "-"
		if a, ok := m.Anchor(); ok {
			anchor = fmt.Sprintf("%d@%d", a.Index, a.Top)
		}
		trace = append(trace, scrollStep{dy: by, applied: dt, lo: win.Lo, hi: win.Hi, anchor: anchor})
		if steps <= 0 && dt == 0 {
			break
		}
	}
	return trace, nil
}

func traceTable(trace []scrollStep) string {
	rows := make([][]string, 0, len(trace))
	for i, s := range trace {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.dy),
			strconv.Itoa(s.applied),
			fmt.Sprintf("%d..%d", s.lo, s.hi),
			s.anchor,
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Step", "Requested", "Applied", "Window", "Anchor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 && row < len(trace) && trace[row].applied != trace[row].dy {
				return base.Foreground(colorYellow)
			}
			return base
		}).
		Render()
}
