package breakout

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/replay"
)

// Variant IDs.
const (
	VariantClassic = "classic" // Seed from the runtime, random when zero
	VariantDaily   = "daily"   // Same wall for everyone on a given UTC day
)

// Visual characters for rendering
const (
	PaddleChar            = '='
	BallChar              = '●'
	ScoringBlockChar      = '█'
	InvulnerableBlockChar = '▓'
)

var pickupColors = map[PickupKind]core.Color{
	PickupBonus:     core.ColorBrightYellow,
	PickupExtraBall: core.ColorBrightRed,
	PickupDetonator: core.ColorOrange,
	PickupMultiBall: core.ColorBrightCyan,
}

var (
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on top of the config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig loads the configuration with the CLI overrides applied.
func LoadConfig() (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// DailySeed derives the level seed for the UTC day containing t.
func DailySeed(t time.Time) uint64 {
	sum := sha256.Sum256([]byte(t.UTC().Format(time.DateOnly)))
	return binary.LittleEndian.Uint64(sum[:8])
}

// Game adapts a State to the platform: it maps actions to input, handles
// pause and restart, records the run and draws it into a character grid.
type Game struct {
	variant string

	runtime  core.RuntimeConfig
	cfg      config.BreakoutConfig
	state    *State
	recorder *replay.Recorder
	dt       float64

	paused   bool
	finished bool

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// NewClassic creates the classic variant.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

// NewDaily creates the daily variant.
func NewDaily() *Game {
	return &Game{variant: VariantDaily}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	if g.variant == VariantDaily {
		return "Breakout (Daily)"
	}
	return "Breakout"
}

// Reset starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig()
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultBreakoutConfig()
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Sim.TickRate
	}
	g.dt = 1 / float64(tickRate)

	seed := g.chooseSeed(runtime.Seed)
	g.state = New(seed, cfg, WithLogger(logger))
	g.recorder = replay.NewRecorder(g.variant, seed, tickRate, string(difficultyPreset))

	g.paused = false
	g.finished = false

	g.minScreenW = 30
	g.minScreenH = 15
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	logger.Info("run started", "variant", g.variant, "seed", seed, "tick_rate", tickRate)
}

// Resize adapts the run to a new screen size. The simulation does not
// depend on the screen, only whether it can be shown.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

func (g *Game) chooseSeed(requested uint64) uint64 {
	switch {
	case g.variant == VariantDaily:
		return DailySeed(time.Now())
	case requested != 0:
		return requested
	default:
		return rand.Uint64()
	}
}

// Seed returns the seed of the current run.
func (g *Game) Seed() uint64 {
	return g.state.Seed()
}

// Recording returns the inputs of the current run.
func (g *Game) Recording() replay.Recording {
	return g.recorder.Recording()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.finished {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.finished {
		g.paused = !g.paused
	}
	if g.paused || g.finished {
		return core.StepResult{State: g.State()}
	}

	input := Input{PaddleDir: int(in.Direction()), Serve: in.Has(core.ActionServe)}
	g.recorder.Add(input.PaddleDir, input.Serve)
	if !g.state.Update(g.dt, input) {
		g.finished = true
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	sc := g.state.Scoring()
	return core.GameState{
		Score:     sc.Score,
		Combo:     sc.ComboScore,
		Penalties: sc.Penalties,
		ComboMax:  sc.ComboMax,
		Rank:      sc.Rank().String(),
		Cleared:   g.state.Cleared(),
		GameOver:  g.finished,
		Paused:    g.paused,
	}
}

// Render draws the latest tick.
func (g *Game) Render(dst *core.Screen) {
	g.RenderAt(dst, 1)
}

// RenderAt draws the state interpolated alpha of the way from the previous
// tick to the latest one.
func (g *Game) RenderAt(dst *core.Screen, alpha float64) {
	dst.Clear()

	if g.screenTooSmall {
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorDefault)
		return
	}

	f := g.state.Frame(alpha)
	v := newViewport(dst.Width(), dst.Height(), f.Arena)

	g.renderHUD(dst, f)
	dst.DrawBox(v.x0-1, v.y0-1, v.w+2, v.h+2, core.ColorGray)
	renderBlocks(dst, v, f.Blocks)
	renderPickups(dst, v, f.Pickups)
	renderPaddle(dst, v, f)
	c, r := v.point(f.BallPos)
	dst.SetColored(c, r, BallChar, core.ColorBrightWhite)
	g.renderOverlay(dst, f)
}

// viewport maps world coordinates onto a w*h cell area at (x0, y0).
type viewport struct {
	x0, y0 int
	w, h   int
	arena  geom.Rect
}

func newViewport(screenW, screenH int, arena geom.Rect) viewport {
	// Row 0 is the HUD; the border takes one cell on every side.
	return viewport{x0: 1, y0: 2, w: screenW - 2, h: screenH - 3, arena: arena}
}

// fx and fy return fractional cell offsets from the top-left corner.
func (v viewport) fx(x float64) float64 {
	return (x - v.arena.Mins.X) / v.arena.Width() * float64(v.w)
}

func (v viewport) fy(y float64) float64 {
	return (v.arena.Maxs.Y - y) / v.arena.Height() * float64(v.h)
}

// point returns the cell containing p, clamped to the play area.
func (v viewport) point(p geom.Point) (int, int) {
	c := min(max(int(math.Floor(v.fx(p.X))), 0), v.w-1)
	r := min(max(int(math.Floor(v.fy(p.Y))), 0), v.h-1)
	return v.x0 + c, v.y0 + r
}

// rect returns the cell span of r as x, y, w, h. Neighbouring rects share
// boundaries, so spans are rounded rather than grown. Every rect covers at
// least one cell.
func (v viewport) rect(r geom.Rect) (int, int, int, int) {
	c0 := int(math.Round(v.fx(r.Mins.X)))
	c1 := max(int(math.Round(v.fx(r.Maxs.X))), c0+1)
	r0 := int(math.Round(v.fy(r.Maxs.Y)))
	r1 := max(int(math.Round(v.fy(r.Mins.Y))), r0+1)
	return v.x0 + c0, v.y0 + r0, c1 - c0, r1 - r0
}

func renderBlocks(dst *core.Screen, v viewport, blocks []Block) {
	for _, b := range blocks {
		x, y, w, h := v.rect(b.Rect)
		if b.Kind == BlockInvulnerable {
			dst.FillRect(x, y, w, h, InvulnerableBlockChar, core.ColorDarkGray)
			continue
		}
		// Leave a gap so blocks of equal strength do not merge.
		if w >= 3 {
			w--
		}
		dst.FillRect(x, y, w, h, ScoringBlockChar, core.HPColor(b.HP))
	}
}

func renderPickups(dst *core.Screen, v viewport, pickups []Pickup) {
	for _, p := range pickups {
		c, r := v.point(p.Pos)
		dst.SetColored(c, r, p.Kind.Glyph(), pickupColors[p.Kind])
	}
}

func renderPaddle(dst *core.Screen, v viewport, f Frame) {
	x, _, w, _ := v.rect(f.PaddleShape.At(f.PaddlePos))
	_, r := v.point(f.PaddlePos.Add(geom.V(0, -f.PaddleShape.Height()/2)))
	for c := x; c < x+w; c++ {
		if c >= v.x0 && c < v.x0+v.w {
			dst.SetColored(c, r, PaddleChar, core.ColorBrightCyan)
		}
	}
}

// renderHUD draws score and combo on the left, rank and catches on the right.
func (g *Game) renderHUD(dst *core.Screen, f Frame) {
	sc := f.Scoring
	left := fmt.Sprintf("Score: %8d  Combo: x%1.1f %+8d", sc.Score, sc.ComboMultiplier, sc.ComboScore)
	dst.DrawText(1, 0, left)

	right := fmt.Sprintf("Rank %s", sc.Rank())
	if caught := g.catchSummary(); caught != "" {
		right = caught + "  " + right
	}
	if x := dst.Width() - len([]rune(right)) - 1; x > len(left)+2 {
		dst.DrawTextColored(x, 0, right, core.ColorBrightYellow)
	}
}

// catchSummary lists collected pickups, e.g. "$3 M1".
func (g *Game) catchSummary() string {
	s := ""
	for k := range PickupKindCount {
		n := g.state.Collected(k)
		if n == 0 {
			continue
		}
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%c%d", k.Glyph(), n)
	}
	return s
}

// renderOverlay draws state messages.
func (g *Game) renderOverlay(dst *core.Screen, f Frame) {
	switch {
	case g.finished:
		sc := f.Scoring
		title := fmt.Sprintf("CLEARED  -  RANK %s", sc.Rank())
		subtitle := fmt.Sprintf("Score: %d  Penalties: %d  |  Press R to restart", sc.Score, sc.Penalties)
		drawCenteredBox(dst, title, subtitle)

	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case f.Serving:
		dst.DrawTextCentered(dst.Height()-1, " Press SPACE to serve ", core.ColorBrightWhite)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorBrightWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

// Register the variants with the registry
func init() {
	registry.Register(VariantClassic, func() registry.Game {
		return NewClassic()
	})
	registry.Register(VariantDaily, func() registry.Game {
		return NewDaily()
	})
}
