package termcanvas

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/observability"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

// zoomLimiter is implemented by charts that expose their zoom limits.
type zoomLimiter interface {
	ZoomLimits() zoom.Limits
}

// externalZoomer is implemented by charts whose zoom may be fixed by the
// application.
type externalZoomer interface {
	ExternalZoom() (zoom.Zoom, bool)
}

type ModelParams struct {
	Chart graph.Chart
	Theme graph.Theme
	Title string

	// Zoom is the initial zoom.
	Zoom zoom.Zoom
	// Samples is the initial sample count shown in the header.
	Samples int

	// Messages, if set, is read for ReloadMsg and ErrorMsg values sent
	// by background producers such as a file watcher.
	Messages chan tea.Msg

	Logger *observability.CoreLogger
}

// Model hosts one chart in a terminal program.
//
// It owns the chart's State and the last known cursor, translates mouse
// input into chart events and shows notifications in a status bar.
type Model struct {
	chart graph.Chart
	state graph.State
	theme graph.Theme
	title string

	// cursor is the last known mouse position in frame coordinates.
	cursor graph.Cursor

	width  int
	height int

	samples int
	status  string
	err     error

	zm *zone.Manager
	// zoneID marks the chart area in the rendered view.
	zoneID string

	// msgChan receives messages from background producers.
	msgChan chan tea.Msg

	logger *observability.CoreLogger
}

func NewModel(params ModelParams) *Model {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	logger.Info(fmt.Sprintf("model: creating new model: %s", params.Title))

	zm := zone.New()
	m := &Model{
		chart:   params.Chart,
		theme:   params.Theme,
		title:   params.Title,
		samples: params.Samples,
		zm:      zm,
		zoneID:  zm.NewPrefix() + "chart",
		msgChan: params.Messages,
		logger:  logger,
	}
	m.state = graph.NewState(params.Zoom.Clamp(m.zoomLimits()))
	return m
}

// Close stops the zone manager. Call it after the program exits.
func (m *Model) Close() {
	m.zm.Close()
}

// State returns the chart's current interaction state.
func (m *Model) State() graph.State { return m.state }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("model: Init called")
	return tea.Batch(
		tea.SetWindowTitle(m.windowTitle()),
		m.waitForSourceMsg(),
	)
}

func (m *Model) windowTitle() string {
	if m.title == "" {
		return "graphkit"
	}
	return "graphkit: " + m.title
}

// waitForSourceMsg returns a command that waits for a background message.
func (m *Model) waitForSourceMsg() tea.Cmd {
	if m.msgChan == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-m.msgChan
		if !ok {
			return nil
		}
		m.logger.Debug(fmt.Sprintf("model: received source message: %T", msg))
		return msg
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		origin := OriginOf(m.zm.Get(m.zoneID), Origin{X: 0, Y: HeaderHeight})
		var cmds []tea.Cmd
		for _, ev := range TranslateMouse(msg, origin) {
			cmds = append(cmds, m.apply(ev))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case ReloadMsg:
		m.logger.Debug(fmt.Sprintf("model: ReloadMsg received with %d samples", msg.Count))
		if msg.Apply != nil {
			msg.Apply()
		}
		m.chart.Invalidate()
		m.samples = msg.Count
		m.err = nil
		return m, tea.Batch(m.rehover(), m.waitForSourceMsg())

	case ErrorMsg:
		m.logger.CaptureError(fmt.Errorf("model: %v", msg.Err))
		m.err = msg.Err
		return m, m.waitForSourceMsg()

	case NotificationMsg:
		m.status = describeNotification(msg.Notification)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.logger.Debug("model: quit requested")
		return m, tea.Quit
	case "+", "=":
		return m, m.setZoom(m.state.Zoom.Increment(m.zoomLimits()))
	case "-", "_":
		return m, m.setZoom(m.state.Zoom.Decrement(m.zoomLimits()))
	case "0":
		return m, m.setZoom(zoom.Default())
	case "f":
		return m, m.setZoom(zoom.Full())
	}
	return m, nil
}

func (m *Model) zoomLimits() zoom.Limits {
	if zl, ok := m.chart.(zoomLimiter); ok {
		return zl.ZoomLimits()
	}
	return zoom.DefaultLimits()
}

// externalZoom returns the zoom fixed by the application, if any.
func (m *Model) externalZoom() (zoom.Zoom, bool) {
	if ez, ok := m.chart.(externalZoomer); ok {
		return ez.ExternalZoom()
	}
	return zoom.Zoom{}, false
}

// shownZoom is the zoom the chart is drawn at.
func (m *Model) shownZoom() zoom.Zoom {
	if z, ok := m.externalZoom(); ok {
		return z
	}
	return m.state.Zoom
}

// setZoom changes the zoom from the keyboard. Charts with an external
// zoom ignore it.
func (m *Model) setZoom(z zoom.Zoom) tea.Cmd {
	if _, ok := m.externalZoom(); ok {
		return nil
	}
	if z.Equal(m.state.Zoom) {
		return nil
	}
	m.logger.Debug(fmt.Sprintf("model: zoom %s -> %s", m.state.Zoom, z))
	m.state.Zoom = z
	m.chart.Invalidate()
	return tea.Batch(
		notify(&graph.Notification{Kind: graph.ZoomChanged, Zoom: z}),
		m.rehover(),
	)
}

// rehover resolves the hover again after the data or zoom changed.
func (m *Model) rehover() tea.Cmd {
	if !m.cursor.Available {
		m.state = m.state.WithoutHover()
		return nil
	}
	return m.apply(graph.CursorMoved{Position: m.cursor.Position})
}

// apply delivers one event to the chart.
func (m *Model) apply(ev graph.Event) tea.Cmd {
	switch ev := ev.(type) {
	case graph.CursorMoved:
		m.cursor = graph.CursorAt(ev.Position)
	case graph.CursorLeft:
		m.cursor = graph.Cursor{}
	}

	state, out := m.chart.Update(m.state, ev, m.bounds(), m.cursor)
	m.state = state
	return notify(out.Notification)
}

func notify(n *graph.Notification) tea.Cmd {
	if n == nil {
		return nil
	}
	msg := NotificationMsg{Notification: *n}
	return func() tea.Msg { return msg }
}

func (m *Model) chartSize() (cols, rows int) {
	return max(m.width, 0), max(m.height-HeaderHeight-StatusBarHeight, 0)
}

// bounds is the chart area in frame coordinates.
func (m *Model) bounds() geom.Rect {
	return geom.RectOf(FrameSize(m.chartSize()))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	cols, rows := m.chartSize()
	g := m.chart.Draw(m.state, m.theme, m.bounds())
	c := Rasterize(g, cols, rows, m.theme.Background)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.zm.Mark(m.zoneID, c.View()),
		m.renderStatusBar(),
	)
	return m.zm.Scan(view)
}

func (m *Model) renderHeader() string {
	title := headerStyle.Render(m.title)
	info := headerInfoStyle.Render(fmt.Sprintf(" %d samples, zoom %s", m.samples, m.shownZoom()))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(title + info)
}

func (m *Model) renderStatusBar() string {
	if m.err != nil {
		return errorStyle.Width(m.width).MaxHeight(1).Render("Error: " + m.err.Error())
	}

	text := "+/- zoom • 0 reset • f full • q quit"
	if m.status != "" {
		text = m.status + " • " + text
	}
	return statusBarStyle.Width(m.width).MaxHeight(1).Render(text)
}

func describeNotification(n graph.Notification) string {
	switch n.Kind {
	case graph.ItemHovered:
		return fmt.Sprintf("hovered #%d", n.Index)
	case graph.ItemClicked:
		return fmt.Sprintf("clicked #%d", n.Index)
	case graph.ZoomChanged:
		return fmt.Sprintf("zoom %s", n.Zoom)
	}
	return n.Kind.String()
}
