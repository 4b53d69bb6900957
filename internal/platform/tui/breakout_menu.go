package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// presetNotes describes each difficulty preset for display.
var presetNotes = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "Slow serves, speeding up with score",
	config.DifficultyNormal: "Moderate serves, speeding up with score",
	config.DifficultyHard:   "Fast serves from the start",
	config.DifficultyFixed:  "Serve speed never changes",
}

// DifficultyModel lets users choose a difficulty preset before a run.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a difficulty picker for the variant title.
// The cursor starts on current when it is a known preset.
func NewDifficultyModel(title string, current config.DifficultyPreset, width, height int) DifficultyModel {
	m := DifficultyModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, p := range config.Presets {
		if p == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp, MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown, MenuActionRight:
		if m.cursor < len(config.Presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range config.Presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-7s %s", cursor, p, presetNotes[p]), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the chosen preset, or false if the user backed out.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return config.Presets[m.cursor], true
}

// RunDifficultySelector runs the picker and returns the chosen preset.
// ok is false when the user went back or quit.
func RunDifficultySelector(title string, current config.DifficultyPreset, cfg core.RuntimeConfig) (preset config.DifficultyPreset, ok bool, err error) {
	p := tea.NewProgram(
		NewDifficultyModel(title, current, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)
	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isModel := finalModel.(DifficultyModel)
	if !isModel {
		return "", false, nil
	}
	preset, ok = m.Selected()
	return preset, ok, nil
}
