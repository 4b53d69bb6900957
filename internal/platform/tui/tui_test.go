package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want core.Action
		quit bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"d", core.ActionRight, false},
		{" ", core.ActionServe, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"b", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		got, quit := km.MapKey(keyMsg(tt.key))
		if got != tt.want || quit != tt.quit {
			t.Errorf("MapKey(%q) = %s/%v, expected %s/%v", tt.key, got, quit, tt.want, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"k":     MenuActionUp,
		"j":     MenuActionDown,
		"left":  MenuActionLeft,
		"enter": MenuActionSelect,
		"esc":   MenuActionBack,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
	}
	for key, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(key)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", key, got, want)
		}
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := newHeldKeys(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	h.press(core.ActionLeft, start)

	in := core.NewInputFrame()
	h.apply(&in, start.Add(50*time.Millisecond))
	if in.Direction() != -1 {
		t.Error("left should still be held")
	}

	in = core.NewInputFrame()
	h.apply(&in, start.Add(150*time.Millisecond))
	if in.Direction() != 0 {
		t.Error("left should have been released")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := newHeldKeys(time.Second)
	now := time.Unix(1000, 0)

	h.press(core.ActionLeft, now)
	h.press(core.ActionRight, now)
	h.press(core.ActionServe, now) // Not a steering key

	in := core.NewInputFrame()
	h.apply(&in, now)
	if in.Direction() != 1 {
		t.Errorf("right should replace left, direction %v", in.Direction())
	}
	if in.Has(core.ActionServe) {
		t.Error("serve must not be held")
	}

	h.release()
	in = core.NewInputFrame()
	h.apply(&in, now)
	if in.Direction() != 0 {
		t.Error("release should clear every key")
	}
}

func TestStepperAdvance(t *testing.T) {
	s := newStepper(100) // 10ms ticks
	start := time.Unix(1000, 0)

	if n, _ := s.advance(start); n != 0 {
		t.Errorf("first frame should not tick, got %d", n)
	}

	n, alpha := s.advance(start.Add(25 * time.Millisecond))
	if n != 2 {
		t.Errorf("25ms should give 2 ticks, got %d", n)
	}
	if alpha < 0.49 || alpha > 0.51 {
		t.Errorf("alpha = %v, expected 0.5", alpha)
	}

	// A long stall is capped and the backlog dropped.
	n, alpha = s.advance(start.Add(time.Second))
	if n != s.maxSteps || alpha != 0 {
		t.Errorf("stall gave %d ticks alpha %v", n, alpha)
	}

	s.reset()
	if n, _ := s.advance(start.Add(2 * time.Second)); n != 0 {
		t.Error("reset should restart timing")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "hi")
	s.SetColored(3, 0, '█', core.HPColor(4))
	s.SetColored(4, 1, '▓', core.ColorDarkGray)

	out := RenderScreen(s)
	for _, want := range []string{"hi", "█", "▓"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 lines, got %d newlines", got+1)
	}
}

func TestHPColorsHaveStyles(t *testing.T) {
	for hp := 1; hp <= 11; hp++ {
		if _, ok := colorStyles[core.HPColor(hp)]; !ok {
			t.Errorf("no style for hp %d", hp)
		}
	}
}

func TestMenuResult(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewMenuModel(nil, cfg)
	if len(m.items) < 2 {
		t.Fatalf("expected the breakout variants, got %+v", m.items)
	}

	next, _ := m.Update(keyMsg("j"))
	next, cmd := next.(MenuModel).Update(keyMsg("enter"))
	if cmd == nil {
		t.Error("selecting should end the menu program")
	}
	res := next.(MenuModel).result()
	if res.Quit || res.GameID != m.items[1].GameID {
		t.Errorf("unexpected result %+v", res)
	}

	next, _ = m.Update(keyMsg("tab"))
	if !next.(MenuModel).result().WantsScoreboard {
		t.Error("tab should open the scoreboard")
	}
}

func TestDifficultyModel(t *testing.T) {
	m := NewDifficultyModel("Breakout", config.DifficultyHard, 80, 24)
	if config.Presets[m.cursor] != config.DifficultyHard {
		t.Fatalf("cursor should start on the current preset")
	}

	next, _ := m.Update(keyMsg("up"))
	next, _ = next.(DifficultyModel).Update(keyMsg("enter"))
	preset, ok := next.(DifficultyModel).Selected()
	if !ok || preset != config.DifficultyNormal {
		t.Errorf("Selected() = %q/%v, expected normal", preset, ok)
	}

	back, _ := m.Update(keyMsg("esc"))
	if _, ok := back.(DifficultyModel).Selected(); ok {
		t.Error("backing out should not select")
	}
}

func TestModelArchivesFinishedRun(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "breakout.yaml")
	// A wall with no scoring blocks clears on the first tick.
	if err := os.WriteFile(cfgPath, []byte("level:\n  keep_chance: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	breakout.SetConfigPath(cfgPath)
	t.Cleanup(func() { breakout.SetConfigPath("") })

	store, err := storage.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	replayDir := filepath.Join(dir, "replays")
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100, Seed: 42}
	m := NewModel(breakout.NewClassic(), store, cfg, Options{Player: "tester", ReplayDir: replayDir})
	m.Init()

	start := time.Unix(1000, 0)
	m.Update(frameMsg(start))
	m.Update(frameMsg(start.Add(15 * time.Millisecond)))

	if !m.gameState.GameOver {
		t.Fatal("run should be over")
	}

	runs, err := store.TopRuns(breakout.VariantClassic, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one stored run, got %d", len(runs))
	}
	if runs[0].Seed != 42 || runs[0].Player != "tester" || !runs[0].Cleared || runs[0].Ticks != 1 {
		t.Errorf("unexpected run %+v", runs[0])
	}

	files, _ := filepath.Glob(filepath.Join(replayDir, "*.yaml"))
	if len(files) != 1 {
		t.Fatalf("expected one replay file, got %v", files)
	}
	rec, err := replay.Load(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != runs[0].RunID {
		t.Error("replay and stored run should share an ID")
	}

	// Further frames must not archive again.
	m.Update(frameMsg(start.Add(30 * time.Millisecond)))
	if runs, _ := store.TopRuns(breakout.VariantClassic, 10); len(runs) != 1 {
		t.Errorf("run archived %d times", len(runs))
	}
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m := NewModel(breakout.NewClassic(), nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100, Seed: 1}, Options{})
	breakout.SetConfigPath(writeEmptyConfig(t))
	t.Cleanup(func() { breakout.SetConfigPath("") })
	m.Init()

	m.Update(keyMsg("b"))
	if m.BackToMenu() {
		t.Error("back during play should be ignored")
	}

	m.Update(keyMsg("p"))
	start := time.Unix(1000, 0)
	m.Update(frameMsg(start))
	m.Update(frameMsg(start.Add(15 * time.Millisecond)))
	if !m.gameState.Paused {
		t.Fatal("game should be paused")
	}

	if _, cmd := m.Update(keyMsg("b")); cmd == nil || !m.BackToMenu() {
		t.Error("back while paused should leave the run")
	}
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScoreboardSwitchesVariant(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{GameID: breakout.VariantClassic, Score: 300, Rank: "A", Player: "ada"})
	store.SaveRun(storage.Run{GameID: breakout.VariantClassic, Score: 100, Rank: "C", Player: "bob"})
	store.SaveRun(storage.Run{GameID: breakout.VariantDaily, Score: 50, Rank: "F", Player: "cy"})

	m := NewScoreboardModel(store, 120, 40)
	if m.games[m.gameCursor].ID != breakout.VariantClassic {
		t.Fatalf("scoreboard should open on classic, got %s", m.games[m.gameCursor].ID)
	}
	if len(m.scores) != 2 || m.scores[0].Score != 300 {
		t.Errorf("unexpected classic runs %+v", m.scores)
	}
	if !strings.Contains(m.statsLine(), "Runs 2") {
		t.Errorf("stats line = %q", m.statsLine())
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != breakout.VariantDaily {
		t.Fatalf("tab should move to daily, got %s", m.games[m.gameCursor].ID)
	}
	if len(m.scores) != 1 || m.scores[0].Player != "cy" {
		t.Errorf("unexpected daily runs %+v", m.scores)
	}

	next, _ = m.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if len(m.scores) != 0 || m.statsLine() != "" {
		t.Error("scoreboard without a store should be empty")
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("expected the empty message")
	}
}

func TestSessionModelFlow(t *testing.T) {
	breakout.SetConfigPath(writeEmptyConfig(t))
	t.Cleanup(func() { breakout.SetConfigPath("") })

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100}
	var m tea.Model = NewSessionModel(nil, cfg, Options{})

	m, _ = m.Update(keyMsg("enter"))
	s := m.(SessionModel)
	if s.game == nil {
		t.Fatal("selecting a variant should start a run")
	}

	m, _ = m.Update(keyMsg("p"))
	start := time.Unix(1000, 0)
	m, _ = m.Update(frameMsg(start))
	m, _ = m.Update(frameMsg(start.Add(15 * time.Millisecond)))

	m, _ = m.Update(keyMsg("b"))
	s = m.(SessionModel)
	if s.game != nil {
		t.Fatal("back while paused should return to the menu")
	}
	if s.quitting {
		t.Error("going back must not end the session")
	}

	m, cmd := m.Update(keyMsg("q"))
	if !m.(SessionModel).quitting || cmd == nil {
		t.Error("quitting from the menu should end the session")
	}
}
