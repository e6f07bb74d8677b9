package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"github.com/StendArts/Astronomic-Objects/internal/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FullTrail draws every elapsed sample. A zero trail draws none.
const FullTrail = -1

const (
	defaultWidth  = 80
	defaultHeight = 30
	panelWidth    = 46
	maxSpeed      = 64
	markerMin     = 1
	markerMax     = 3
	// Trails longer than this many segments per body are subsampled.
	maxTrailSegments = 400
)

// PlayerConfig controls playback of a recorded History.
type PlayerConfig struct {
	Title   string
	Center  string  // body to fix at the origin, "" for none
	Trail   float64 // fraction of elapsed samples drawn behind each body; FullTrail for all
	Seconds float64 // wall-clock length of one pass
	FPS     float64
	Theme   string
	Width   int // canvas size in terminal cells
	Height  int
}

type tickMsg time.Time

// Player is a bubbletea model animating a History from above.
type Player struct {
	cfg     PlayerConfig
	source  *dynamo.History
	hist    *dynamo.History
	frames  []int
	frame   int
	speed   int
	paused  bool
	center  int // index into source.Order, -1 for none
	theme   int
	canvas  *Canvas
	camera  *Camera
	markers []int
	colors  []lipgloss.Color
	styles  styles
}

func NewPlayer(h *dynamo.History, cfg PlayerConfig) (*Player, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("viz: empty history")
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Seconds <= 0 {
		cfg.Seconds = 10
	}
	if cfg.Trail < 0 {
		cfg.Trail = 1
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}

	p := &Player{
		cfg:    cfg,
		source: h,
		frames: view.Frames(h.Len(), cfg.Seconds, cfg.FPS),
		speed:  1,
		center: -1,
		canvas: NewCanvas(cfg.Width, cfg.Height),
	}
	if len(p.frames) == 0 {
		p.frames = []int{h.Len() - 1}
	}
	for i, t := range Themes {
		if t.Name == cfg.Theme {
			p.theme = i
		}
	}
	p.styles = newStyles(Themes[p.theme])

	for _, size := range view.MarkerSizes(view.HistoryRadii(h), markerMin, markerMax) {
		p.markers = append(p.markers, int(size+0.5))
	}
	for _, name := range h.Order {
		p.colors = append(p.colors, BodyColor(h.Colors[name]))
	}

	if cfg.Center != "" {
		for i, name := range h.Order {
			if name == cfg.Center {
				p.center = i
			}
		}
		if p.center < 0 {
			return nil, fmt.Errorf("viz: center %q: %w", cfg.Center, dynamo.ErrUnknownBody)
		}
	}
	if err := p.recenter(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) recenter() error {
	p.hist = p.source
	if p.center >= 0 {
		h, err := view.Recenter(p.source, p.source.Order[p.center])
		if err != nil {
			return err
		}
		p.hist = h
	}
	tilt, zoom := 0.0, 1.0
	if p.camera != nil {
		tilt, zoom = p.camera.Tilt, p.camera.Zoom
	}
	p.camera = NewCamera(view.Bounds(p.hist))
	p.camera.Tilt, p.camera.Zoom = tilt, zoom
	return nil
}

// Index is the history sample shown in the current frame.
func (p *Player) Index() int { return p.frames[p.frame] }

func (p *Player) tick() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/p.cfg.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (p *Player) Init() tea.Cmd { return p.tick() }

func (p *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ":
			p.paused = !p.paused
		case "+", "=":
			p.speed = min(maxSpeed, p.speed*2)
		case "-", "_":
			p.speed = max(1, p.speed/2)
		case "c":
			p.cycleCenter()
		case "t":
			p.camera.TiltBy(15)
		case "T":
			p.camera.TiltBy(-15)
		case "z":
			p.camera.ZoomIn()
		case "Z":
			p.camera.ZoomOut()
		case "[":
			p.seek(-p.speed)
		case "]":
			p.seek(p.speed)
		case "home":
			p.frame = 0
		case "p":
			p.theme = (p.theme + 1) % len(Themes)
			p.styles = newStyles(Themes[p.theme])
		}
	case tea.WindowSizeMsg:
		w := max(10, msg.Width-panelWidth-2)
		h := max(5, msg.Height-2)
		p.canvas = NewCanvas(w, h)
	case tickMsg:
		if !p.paused {
			p.advance()
		}
		return p, p.tick()
	}
	return p, nil
}

// advance moves speed frames forward and wraps at the end.
func (p *Player) advance() {
	p.frame = (p.frame + p.speed) % len(p.frames)
}

func (p *Player) seek(delta int) {
	p.frame = max(0, min(len(p.frames)-1, p.frame+delta))
}

func (p *Player) cycleCenter() {
	p.center++
	if p.center >= len(p.source.Order) {
		p.center = -1
	}
	// Every index is a known body, so recentering cannot fail here.
	_ = p.recenter()
}

// Draw renders the current frame into the canvas.
func (p *Player) Draw() {
	c := p.canvas
	c.Clear()
	w, h := c.SubWidth(), c.SubHeight()
	idx := p.Index()
	start := view.TrailWindow(idx, p.cfg.Trail)
	stride := max(1, (idx-start)/maxTrailSegments)

	for i, name := range p.hist.Order {
		ps := p.hist.Positions(name)
		col := p.colors[i]

		px, py, pin := p.camera.Project(ps[start], w, h)
		for k := start + stride; k < idx+stride; k += stride {
			k = min(k, idx)
			x, y, in := p.camera.Project(ps[k], w, h)
			if in || pin {
				c.DrawLine(px, py, x, y, col)
			}
			px, py, pin = x, y, in
		}

		if x, y, in := p.camera.Project(ps[idx], w, h); in {
			c.Disc(x, y, p.markers[i], col)
		}
	}
}

func (p *Player) View() string {
	p.Draw()
	return lipgloss.JoinHorizontal(lipgloss.Top, p.canvas.Render(), p.panel())
}

func (p *Player) panel() string {
	st := p.styles
	idx := p.Index()
	var s strings.Builder

	title := p.cfg.Title
	if title == "" {
		title = "astrosim"
	}
	s.WriteString(st.header.Render(strings.ToUpper(title)) + "\n\n")

	if p.paused {
		s.WriteString(st.paused.Render("PAUSED"))
	} else {
		s.WriteString(st.playing.Render("PLAYING"))
	}
	s.WriteString(fmt.Sprintf("  x%d\n\n", p.speed))

	s.WriteString(st.label.Render("Time") + st.value.Render(formatTime(p.hist.Times[idx])) + "\n")
	center := "none"
	if p.center >= 0 {
		center = p.source.Order[p.center]
	}
	s.WriteString(st.label.Render("Center") + st.value.Render(center) + "\n")
	s.WriteString(st.label.Render("Tilt") + st.value.Render(fmt.Sprintf("%.0f°", p.camera.Tilt)) + "\n")
	s.WriteString(st.bar.Render(ProgressBar(float64(idx+1)/float64(p.hist.Len()), 30)) + "\n\n")

	for i, name := range p.hist.Order {
		dot := lipgloss.NewStyle().Foreground(p.colors[i]).Render("●")
		temp := p.hist.Temperatures(name)[idx] - physics.KelvinOffset
		s.WriteString(fmt.Sprintf("%s %-14s %9.1f °C\n", dot, name, temp))
	}

	s.WriteString(st.hint.Render("\nSP:Pause +/-:Speed C:Center\nT/t:Tilt Z/z:Zoom [ ]:Seek\nP:Theme Q:Quit"))
	return st.panel.Render(s.String())
}

func formatTime(t float64) string {
	if t >= 2*physics.SecondsPerYear {
		return fmt.Sprintf("%.2f yr", t/physics.SecondsPerYear)
	}
	return fmt.Sprintf("%.1f d", t/physics.SecondsPerDay)
}

// Play runs the player full screen until the user quits.
func Play(h *dynamo.History, cfg PlayerConfig) error {
	p, err := NewPlayer(h, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
