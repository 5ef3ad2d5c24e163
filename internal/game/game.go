package game

import (
	"fmt"
	"log"
	"time"

	"shapenav/internal/engine"
	"shapenav/internal/nav"
	"shapenav/internal/shape"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Options struct {
	Config      nav.Config
	Faces       *shape.Registry
	ContentRoot string // directory face content refs are relative to
	FontDir     string
	PrefsPath   string // empty disables remembered viewer settings
	Width       int
	Height      int
	FPS         int
	Logger      *log.Logger
}

// Game is the desktop viewer: a raylib window driving one Navigator.
type Game struct {
	opts   Options
	nav    *nav.Navigator
	panel  *ContentPanel
	frame  nav.Frame
	logger *log.Logger

	pressedOnScene bool
	autoRotate     bool
	baseSpeed      rl.Vector2
	speedScale     float32

	start time.Time
}

// keyBindings maps raylib keys to navigator keys.
var keyBindings = []struct {
	raylib int32
	key    nav.Key
}{
	{rl.KeyD, nav.KeyDebugToggle},
	{rl.KeyLeft, nav.KeyLeft},
	{rl.KeyRight, nav.KeyRight},
	{rl.KeyUp, nav.KeyUp},
	{rl.KeyDown, nav.KeyDown},
	{rl.KeyZ, nav.KeyRollForward},
	{rl.KeyX, nav.KeyRollBack},
}

func New(opts Options) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	g := &Game{
		opts:       opts,
		logger:     opts.Logger,
		autoRotate: true,
		baseSpeed:  opts.Config.BaseSpeed,
		speedScale: 1,
	}

	n, err := nav.New(opts.Config, opts.Faces,
		nav.WithRenderer(g),
		nav.WithLogger(opts.Logger),
		nav.WithViewport(opts.Width, opts.Height),
	)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	g.nav = n
	g.frame = n.Snapshot()
	g.panel = NewContentPanel(opts.FPS, func() {
		if err := g.nav.Close(); err != nil {
			g.logger.Printf("[viewer] close: %v", err)
		}
	})

	n.Bus().OnNavigateStart(g.onNavigateStart)
	n.Bus().OnNavigateClose(func(engine.NavigateClose) { g.panel.Close() })

	if opts.PrefsPath != "" {
		prefs, ok, err := LoadPrefs(opts.PrefsPath)
		if err != nil {
			g.logger.Printf("[viewer] %v", err)
		}
		if ok {
			g.applyPrefs(prefs)
		}
	}
	return g, nil
}

func (g *Game) Navigator() *nav.Navigator { return g.nav }

// Render keeps the latest frame for Draw.
func (g *Game) Render(f nav.Frame) {
	g.frame = f
}

func (g *Game) onNavigateStart(e engine.NavigateStart) {
	body, err := LoadContent(g.opts.ContentRoot, e.ContentRef)
	if err != nil {
		g.logger.Printf("[viewer] %v", err)
		body = noContent
	}
	g.panel.Open(e.Label, body)
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.opts.Width), int32(g.opts.Height), "shapenav")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.opts.FPS))
	// Escape closes the content panel instead of the window.
	rl.SetExitKey(rl.KeyNull)

	initRayguiStyle(g.opts.FontDir)
	g.nav.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())

	g.start = time.Now()
	for !rl.WindowShouldClose() {
		g.Update()
		g.nav.Tick(time.Since(g.start))
		g.panel.Update()
		g.Draw()
	}

	if g.opts.PrefsPath != "" {
		if err := SavePrefs(g.opts.PrefsPath, g.currentPrefs(rl.GetScreenWidth(), rl.GetScreenHeight())); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) narrow() bool {
	return rl.GetScreenWidth() <= g.opts.Config.MobileBreakpoint
}

// Update turns this frame's window input into navigator calls.
func (g *Game) Update() {
	if rl.IsWindowResized() {
		g.nav.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	mouse := rl.GetMousePosition()
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	overPanel := g.panel.Contains(mouse, sw, sh, g.narrow())

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overPanel {
		g.pressedOnScene = true
		g.nav.PointerDown(mouse.X, mouse.Y)
	}
	if g.pressedOnScene {
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			g.nav.PointerMove(mouse.X, mouse.Y)
		}
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			g.pressedOnScene = false
			g.nav.PointerUp()
			g.nav.Click(mouse.X, mouse.Y)
		}
	}

	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.raylib) {
			g.nav.Key(b.key)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) && g.panel.IsOpen() {
		if err := g.nav.Close(); err != nil {
			g.logger.Printf("[viewer] close: %v", err)
		}
	}
}

func (g *Game) Draw() {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()

	rl.BeginDrawing()
	rl.ClearBackground(colorBgDark)

	g.drawShape(g.frame)
	g.drawLabels(g.frame)
	g.panel.Draw(sw, sh, g.narrow())
	g.drawDebugOverlay(g.frame)

	if !g.frame.DebugMode {
		drawTextEx(uiFont, "Drag to spin, click a face to open it", 10, 10, 18, colorTextMuted)
	}
	rl.DrawFPS(int32(sw)-90, int32(sh)-26)
	rl.EndDrawing()
}
