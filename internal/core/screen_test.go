package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", got)
	}

	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", got.Color)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(0, 0, 10, 10, 'X', ColorBlue)

	s.Clear()

	for y := range 10 {
		for x := range 10 {
			if s.Get(x, y) != ' ' {
				t.Errorf("After Clear, expected space at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorYellow)

	for i, ch := range "Hello" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorYellow {
			t.Errorf("DrawTextColored: expected yellow %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "█x")
	if s.Get(1, 0) != 'x' {
		t.Errorf("multibyte rune should occupy one cell, got %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(2, 2, 3, 3, '#', ColorGreen)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("FillRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}

	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("FillRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(1, 1, 5, 4, ColorGray)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v should be %q, got %q", pos, want, got)
		}
	}

	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	s.Resize(15, 8)
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") || len(row) != 10 {
		t.Errorf("Row(2) = %q", row)
	}
	if out := s.Row(-1); out != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", out)
	}
}

func TestInputFrameDirection(t *testing.T) {
	f := NewInputFrame()
	if f.Direction() != 0 {
		t.Error("empty frame should have no direction")
	}
	f.Set(ActionLeft)
	if f.Direction() != -1 {
		t.Errorf("left should be -1, got %v", f.Direction())
	}
	f.Set(ActionRight)
	if f.Direction() != 0 {
		t.Errorf("left and right should cancel, got %v", f.Direction())
	}
	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should drop every action")
	}

	var zero InputFrame
	if zero.Has(ActionServe) {
		t.Error("zero frame should report nothing")
	}
}

func TestHPColor(t *testing.T) {
	if HPColor(0) != ColorHP1 || HPColor(1) != ColorHP1 {
		t.Error("hp at or below one should map to the first palette entry")
	}
	if HPColor(5) != ColorHP5 {
		t.Errorf("HPColor(5) = %v", HPColor(5))
	}
	if HPColor(40) != ColorHP11 {
		t.Error("hp past the palette should saturate")
	}
}
