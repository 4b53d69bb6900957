package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "w", "up":
		return core.ActionServe, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// heldKeys emulates key holding. Terminals report presses and auto-repeat
// but never releases, so a steering key counts as held for a short window
// after its last press.
type heldKeys struct {
	hold  time.Duration
	until map[core.Action]time.Time
}

func newHeldKeys(hold time.Duration) heldKeys {
	return heldKeys{hold: hold, until: make(map[core.Action]time.Time)}
}

// press marks a steering action as held from now. Pressing one direction
// releases the other.
func (h heldKeys) press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	default:
		return
	}
	h.until[a] = now.Add(h.hold)
}

// apply sets every action still held at now on frame.
func (h heldKeys) apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if now.Before(until) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
}

func (h heldKeys) release() {
	clear(h.until)
}
