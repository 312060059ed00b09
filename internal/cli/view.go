package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/host"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

// chromeLines is the number of terminal lines used by the header and footer.
const chromeLines = 3

// maxJumpSteps bounds the scroll loop of the jump-to-end key.
const maxJumpSteps = 1000

var (
	viewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// viewCommand creates the view command for browsing a layout in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a tile layout interactively in the terminal",
		Long: `Browse a tile layout interactively in the terminal.

The terminal is the viewport: one cell is one layout unit. Keys:

  j/↓ k/↑      scroll one line
  space/pgdn   scroll one page down
  b/pgup       scroll one page up
  g G          jump to the first or last item
  i d          insert or remove an item at the top of the window
  r            reset
  q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := flags.resolve(cmd, c.cfg.Layout)
			model := c.newViewModel(cmd.Context(), l)
			_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// viewModel is the bubbletea model hosting a layout manager.
type viewModel struct {
	ctx      context.Context
	manager  *layout.Manager
	viewport *host.Viewport
	pool     *host.Pool

	status string
	err    error
}

func (c *CLI) newViewModel(ctx context.Context, l config.Layout) *viewModel {
	m, v, p := c.newManager(l)
	return &viewModel{ctx: ctx, manager: m, viewport: v, pool: p}
}

func (m *viewModel) Init() tea.Cmd {
	m.err = m.manager.ComputeLayout(m.ctx)
	return nil
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Resize(msg.Width, max(0, msg.Height-chromeLines))
		m.err = m.manager.ComputeLayout(m.ctx)
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *viewModel) handleKey(key string) tea.Cmd {
	_, page := m.viewport.ViewportSize()
	m.err = nil
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "j", "down":
		m.scroll(1)
	case "k", "up":
		m.scroll(-1)
	case " ", "pgdown":
		m.scroll(page)
	case "b", "pgup":
		m.scroll(-page)
	case "g", "home":
		m.jump(-1)
	case "G", "end":
		m.jump(1)
	case "i":
		m.insert()
	case "d":
		m.remove()
	case "r":
		m.err = m.manager.Reset(m.ctx)
		m.status = "reset"
	}
	return nil
}

func (m *viewModel) scroll(dy int) {
	dt, err := m.manager.ApplyScroll(m.ctx, dy)
	m.err = err
	m.status = fmt.Sprintf("scroll %d → %d", dy, dt)
}

// jump scrolls a page at a time in direction dir until clamped.
func (m *viewModel) jump(dir int) {
	_, page := m.viewport.ViewportSize()
	step := dir * max(page, 1)
	total := 0
	for i := 0; i < maxJumpSteps; i++ {
		dt, err := m.manager.ApplyScroll(m.ctx, step)
		if err != nil {
			m.err = err
			return
		}
		total += dt
		if dt == 0 {
			break
		}
	}
	m.status = fmt.Sprintf("jumped %d", total)
}

// insert adds one item before the first attached item.
func (m *viewModel) insert() {
	at := max(m.manager.Window().Lo, 0)
	if err := m.viewport.Insert(at, 1); err != nil {
		m.err = err
		return
	}
	m.err = m.manager.ItemsInserted(m.ctx, at, 1)
	m.status = fmt.Sprintf("inserted at %d", at)
}

// remove deletes the first attached item.
func (m *viewModel) remove() {
	if m.viewport.ItemCount() == 0 {
		m.status = "nothing to remove"
		return
	}
	at := max(m.manager.Window().Lo, 0)
	if err := m.viewport.Remove(at, 1); err != nil {
		m.err = err
		return
	}
	m.err = m.manager.ItemsRemoved(m.ctx, at, 1)
	m.status = fmt.Sprintf("removed %d", at)
}

func (m *viewModel) View() string {
	v := m.manager.View()

	var b strings.Builder
	header := fmt.Sprintf("%s  %s items  window %d..%d  big %d",
		StyleTitle.Render(appName), strconv.Itoa(v.ItemCount), v.Lo, v.Hi, v.BigEdge)
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(renderCells(v))

	st := m.pool.Stats()
	footer := viewStatusStyle.Render(fmt.Sprintf("%s  pool %d live %d free", m.status, st.Live, st.Free))
	if m.err != nil {
		footer = viewErrorStyle.Render(m.err.Error())
	}
	b.WriteString("\n")
	b.WriteString(footer)
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("j/k scroll  space/b page  g/G ends  i/d insert/remove  r reset  q quit"))
	return b.String()
}

// cell is one terminal cell of the rendered viewport.
type cell struct {
	r    rune
	role int // -1 for background
}

// renderCells draws every tile of v as a box clipped to the viewport.
func renderCells(v layout.View) string {
	if v.Width <= 0 || v.Height <= 0 {
		return ""
	}
	cells := make([][]cell, v.Height)
	for y := range cells {
		cells[y] = make([]cell, v.Width)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' ', role: -1}
		}
	}
	for _, t := range v.Tiles {
		drawTile(cells, t)
	}

	lines := make([]string, v.Height)
	for y, row := range cells {
		lines[y] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func drawTile(cells [][]cell, t layout.Tile) {
	role := int(grid.SlotOf(t.Index))
	set := func(x, y int, r rune) {
		if y < 0 || y >= len(cells) || x < 0 || x >= len(cells[y]) {
			return
		}
		cells[y][x] = cell{r: r, role: role}
	}

	right, bottom := t.Right-1, t.Bottom-1
	for y := t.Top; y <= bottom; y++ {
		for x := t.Left; x <= right; x++ {
			set(x, y, ' ')
		}
	}
	for x := t.Left; x <= right; x++ {
		set(x, t.Top, '─')
		set(x, bottom, '─')
	}
	for y := t.Top; y <= bottom; y++ {
		set(t.Left, y, '│')
		set(right, y, '│')
	}
	set(t.Left, t.Top, '╭')
	set(right, t.Top, '╮')
	set(t.Left, bottom, '╰')
	set(right, bottom, '╯')

	label := []rune(strconv.Itoa(t.Index))
	x0 := t.Left + (t.Right-t.Left-len(label))/2
	y0 := t.Top + (t.Bottom-t.Top)/2
	for i, r := range label {
		if x := x0 + i; x > t.Left && x < right {
			set(x, y0, r)
		}
	}
}

// renderRow styles runs of cells that share a role.
func renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].role == row[start].role {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.r)
		}
		if role := row[start].role; role >= 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(roleColors[role]).Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		start = i
	}
	return b.String()
}
