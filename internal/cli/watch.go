package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sbusard/graphlayout/pkg/graph"
	"github.com/sbusard/graphlayout/pkg/layout"
)

// stepsPerFrame is how many engine iterations run between redraws. One
// iteration per frame makes convergence painfully slow to watch.
const stepsPerFrame = 5

// frameInterval is the delay between redraws.
const frameInterval = 50 * time.Millisecond

// watchCommand creates the watch command for observing a layout converge.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "watch [graph.json]",
		Short: "Watch a layout converge step by step in the terminal",
		Long: `Watch a layout converge step by step in the terminal.

Nodes are drawn on a character grid that rescales as they move. The status
line shows the iteration count and the mean force; the run stops once the
mean force drops below the convergence threshold.

Keys: space pauses, r restarts from the initial positions, q quits.
With --output, the final positions are written on quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadForceConfig(cmd, configPath)
			if err != nil {
				return err
			}
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			eng, err := layout.New(cfg)
			if err != nil {
				return err
			}
			in, err := g.LayoutInput()
			if err != nil {
				return err
			}

			model := newWatchModel(g, in, eng)
			prog := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			final, err := prog.Run()
			if err != nil {
				return err
			}

			if output != "" {
				m := final.(watchModel)
				laid := g.WithPositions(m.in.Positions)
				if err := graph.WriteFile(laid, output); err != nil {
					return fmt.Errorf("write output %s: %w", output, err)
				}
				printSuccess("Positions written")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write final positions to this file on quit")
	cmd.Flags().StringVar(&configPath, "config", "", "engine config file (default: XDG config dir)")
	addConfigFlags(cmd)

	return cmd
}

// =============================================================================
// WatchModel - bubbletea model for the convergence view
// =============================================================================

// tickMsg advances the simulation by one frame.
type tickMsg time.Time

var (
	watchNodeStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	watchFixedStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	watchStatusStyle = lipgloss.NewStyle().Foreground(colorDim)
	watchDoneStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

// watchModel steps the layout engine and draws node positions on a grid.
type watchModel struct {
	graph   graph.Graph
	initial layout.Input
	in      layout.Input
	engine  *layout.Engine

	iter      int
	meanForce float64
	converged bool
	paused    bool
	err       error

	width  int
	height int
}

func newWatchModel(g graph.Graph, in layout.Input, eng *layout.Engine) watchModel {
	return watchModel{
		graph:   g,
		initial: in,
		in:      in,
		engine:  eng,
		width:   80,
		height:  24,
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.converged {
				return m, tick()
			}
			return m, nil
		case "r":
			m.in = m.initial
			m.iter = 0
			m.meanForce = 0
			m.converged = false
			if !m.paused {
				return m, tick()
			}
			return m, nil
		}
		return m, nil

	case tickMsg:
		if m.paused || m.converged || m.err != nil {
			return m, nil
		}
		cfg := m.engine.Config()
		for range stepsPerFrame {
			if m.iter >= cfg.MaxIterations {
				break
			}
			res, err := m.engine.Step(m.in)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.in.Positions = res.Positions
			m.meanForce = res.MeanForce
			m.iter++
			if m.meanForce < cfg.Threshold {
				m.converged = true
				break
			}
		}
		if m.converged || m.iter >= cfg.MaxIterations {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return printableError(m.err)
	}

	title := StyleTitle.Render(appName + " watch")

	gridH := max(m.height-3, 4)
	grid := m.renderGrid(max(m.width, 20), gridH)

	status := watchStatusStyle.Render("iteration ") + StyleNumber.Render(fmt.Sprintf("%d", m.iter)) +
		watchStatusStyle.Render(" · mean force ") + StyleNumber.Render(fmt.Sprintf("%.4f", m.meanForce))
	switch {
	case m.converged:
		status = watchDoneStyle.Render("✓ settled") + watchStatusStyle.Render(" · ") + status
	case m.paused:
		status = watchStatusStyle.Render("paused · ") + status
	}
	help := watchStatusStyle.Render("space pause · r restart · q quit")

	return title + "\n" + grid + "\n" + status + "  " + help
}

// renderGrid projects node centers onto a w×h character grid.
func (m watchModel) renderGrid(w, h int) string {
	minX, minY := 0.0, 0.0
	maxX, maxY := 1.0, 1.0
	first := true
	for _, p := range m.in.Positions {
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			continue
		}
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	spanX := max(maxX-minX, 1)
	spanY := max(maxY-minY, 1)

	cells := make([][]string, h)
	for i := range cells {
		cells[i] = make([]string, w)
		for j := range cells[i] {
			cells[i][j] = " "
		}
	}

	for _, n := range m.graph.Nodes {
		p, ok := m.in.Positions[n.ID]
		if !ok {
			continue
		}
		col := int((p.X - minX) / spanX * float64(w-1))
		row := int((p.Y - minY) / spanY * float64(h-1))
		style := watchNodeStyle
		if m.in.Fixed[n.ID] {
			style = watchFixedStyle
		}
		cells[row][col] = style.Render("●")
		// Place the label to the right when it fits.
		label := n.DisplayLabel()
		for i, r := range []rune(label) {
			c := col + 1 + i
			if c >= w {
				break
			}
			cells[row][c] = watchStatusStyle.Render(string(r))
		}
	}

	lines := make([]string, h)
	for i, row := range cells {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// printableError formats an error for the TUI view.
func printableError(err error) string {
	return styleIconError.Render(iconError) + " " + err.Error()
}
