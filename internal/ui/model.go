package ui

import (
	"errors"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/backend"
	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/data/dispatcher"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/overlay"
	"github.com/atomicstack/menukit/internal/state"
	"github.com/atomicstack/menukit/internal/theme"
	"github.com/atomicstack/menukit/internal/ui/command"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	menuHeaderSeparator = " → "
)

var styles = theme.Default()

var ErrMissingBuilder = errors.New("ui: missing scene builder")

type msgHandler func(tea.Msg) tea.Cmd

// Scene is the menu graph a Builder produces for one definition.
type Scene struct {
	Title   string
	Bar     *menu.MenuBar
	Context []*menu.ContextMenuTrigger
}

// Destroy closes the scene's menus and releases their overlays.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	for _, area := range s.Context {
		area.Destroy()
	}
	if s.Bar != nil {
		s.Bar.Destroy()
	}
}

// Builder turns a definition into a Scene inside env. Item actions are
// handed to dispatch.
type Builder func(env *menu.Env, def config.MenuDefinition, dispatch func(command.Request)) (*Scene, error)

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	Direction  geometry.Direction
	ShowFooter bool
	DisableAim bool
	// Scheduler replaces the tea.Tick scheduler, e.g. with an
	// aim.ManualScheduler in tests.
	Scheduler aim.Scheduler
	Watcher   *backend.Watcher
}

// Model implements the Bubble Tea model hosting a menu graph.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	showHelp    bool
	errMsg      string
	infoMsg     string

	overlays *overlay.Manager
	env      *menu.Env
	ticks    *tickScheduler
	scene    *Scene
	build    Builder
	keys     keyMap
	pressed  tea.MouseButton

	handlers map[reflect.Type]msgHandler

	bus        *command.Bus
	pending    []tea.Cmd
	backend    *backend.Watcher
	menus      state.MenuStore
	dispatcher *dispatcher.Dispatcher
}

// NewModel builds the initial scene from def and returns a ready model.
func NewModel(def config.MenuDefinition, build Builder, opts Options) (*Model, error) {
	if build == nil {
		return nil, ErrMissingBuilder
	}
	menus := state.NewMenuStore(def)
	m := &Model{
		showFooter: opts.ShowFooter,
		overlays:   overlay.NewManager(),
		build:      build,
		keys:       defaultKeyMap(),
		bus:        command.New(),
		backend:    opts.Watcher,
		menus:      menus,
		dispatcher: dispatcher.New(menus),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	dir := opts.Direction
	if dir == "" {
		dir = geometry.LTR
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		m.ticks = newTickScheduler()
		scheduler = m.ticks
	}
	env, err := menu.NewEnv(menu.Config{
		Overlays:       menu.Overlays(m.overlays),
		Direction:      menu.FixedDirection(dir),
		Scheduler:      scheduler,
		Renderer:       newStyledRenderer(styles),
		DisableMenuAim: opts.DisableAim,
	})
	if err != nil {
		return nil, err
	}
	m.env = env
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	m.registerHandlers()
	return m, nil
}

// Env exposes the menu environment driven by the model.
func (m *Model) Env() *menu.Env { return m.env }

// Scene exposes the menu graph currently shown.
func (m *Model) Scene() *Scene { return m.scene }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return listenMenuFile(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):         m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(timerMsg{}):             m.handleTimerMsg,
		reflect.TypeOf(command.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(menuFileMsg{}):          m.handleMenuFileMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate collects the commands queued by menu callbacks and timers
// during this update.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	if m.ticks != nil {
		cmds = append(cmds, m.ticks.drain()...)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// dispatch queues an item action; it runs once the current update returns.
func (m *Model) dispatch(req command.Request) {
	events.UI.Action(req.ID, req.Label)
	m.pending = append(m.pending, m.bus.Execute(req))
}

// rebuild replaces the scene with one built from the stored definition. The
// old scene stays in place when the build fails.
func (m *Model) rebuild() error {
	def := m.menus.Definition()
	scene, err := m.build(m.env, def, m.dispatch)
	if err != nil {
		return err
	}
	m.scene.Destroy()
	m.scene = scene
	m.layout()
	events.UI.Rebuild(scene.Title, def.Count())
	return nil
}

func (m *Model) viewport() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// statusRows is the number of rows below the body.
func (m *Model) statusRows() int {
	if m.showFooter {
		return 2
	}
	return 1
}

// bodyBounds is the area between the bar and the status rows; context menus
// open from anywhere inside it.
func (m *Model) bodyBounds() geometry.Rect {
	width, height := m.viewport()
	rows := max(height-1-m.statusRows(), 1)
	return geometry.RectXYWH(0, 1, float64(width), float64(rows))
}

func (m *Model) layout() {
	width, height := m.viewport()
	m.overlays.SetViewport(width, height)
	if m.scene == nil {
		return
	}
	if m.scene.Bar != nil {
		m.scene.Bar.SetBounds(geometry.RectXYWH(0, 0, float64(width), 1))
	}
	body := m.bodyBounds()
	for _, area := range m.scene.Context {
		area.SetBounds(body)
	}
}
