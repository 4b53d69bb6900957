package breakout

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// paddleAtRest is the default paddle rect at x=0.
var paddleAtRest = geom.NewRect(geom.P(-40, 34), geom.P(40, 40))

func pickupConfig(drop float64) config.PickupConfig {
	cfg := config.DefaultBreakoutConfig().Pickups
	cfg.DropChance = drop
	return cfg
}

func TestPickupsDropChance(t *testing.T) {
	block := NewScoringBlock(0, geom.NewRect(geom.P(-15, 300), geom.P(15, 330)), 20, 2)

	never := NewPickups(1, pickupConfig(0))
	always := NewPickups(1, pickupConfig(1))
	for range 50 {
		never.BlockBroken(block)
		always.BlockBroken(block)
	}

	if never.Len() != 0 {
		t.Errorf("drop chance 0 spawned %d pickups", never.Len())
	}
	if always.Len() != 50 {
		t.Fatalf("drop chance 1 spawned %d pickups, expected 50", always.Len())
	}
	for _, p := range always.Items() {
		if p.Pos != geom.P(0, 315) {
			t.Errorf("pickup should spawn at block centre, got %v", p.Pos)
		}
		if p.Kind < 0 || p.Kind >= PickupKindCount {
			t.Errorf("unknown kind %d", p.Kind)
		}
		if p.Kind == PickupBonus && (p.Amount < 0 || p.Amount > 990 || p.Amount%10 != 0) {
			t.Errorf("bonus amount %d out of range", p.Amount)
		}
	}
}

func TestPickupsDisabled(t *testing.T) {
	cfg := pickupConfig(1)
	cfg.Enabled = false
	p := NewPickups(1, cfg)
	p.BlockBroken(NewScoringBlock(0, unitRect, 10, 1))
	if p.Len() != 0 {
		t.Error("disabled pickups should never spawn")
	}
}

func TestPickupsDeterministic(t *testing.T) {
	block := NewScoringBlock(0, unitRect, 10, 1)
	a := NewPickups(9, pickupConfig(0.5))
	b := NewPickups(9, pickupConfig(0.5))
	for range 100 {
		a.BlockBroken(block)
		b.BlockBroken(block)
	}
	if !slices.Equal(a.Items(), b.Items()) {
		t.Error("same seed should drop the same pickups")
	}
}

func TestPickupsFallCatchAndDespawn(t *testing.T) {
	p := NewPickups(1, pickupConfig(1))
	p.items = []Pickup{
		{Pos: geom.P(0, 50), Kind: PickupBonus, Amount: 100}, // Just above the paddle
		{Pos: geom.P(200, 2), Kind: PickupMultiBall},         // About to hit the floor
		{Pos: geom.P(-200, 300), Kind: PickupDetonator},      // Still falling
	}

	got := p.Update(0.01, paddleAtRest, 0)

	if len(got) != 1 || got[0].Kind != PickupBonus || got[0].Amount != 100 {
		t.Fatalf("expected the bonus to be caught, got %+v", got)
	}
	items := p.Items()
	if len(items) != 1 || items[0].Kind != PickupDetonator {
		t.Fatalf("only the falling pickup should remain, got %+v", items)
	}
	if items[0].Pos.Y != 297 {
		t.Errorf("pickup should fall 3 units, at y=%v", items[0].Pos.Y)
	}
}

func TestPickupItemsIsACopy(t *testing.T) {
	p := NewPickups(1, pickupConfig(1))
	p.items = []Pickup{{Pos: geom.P(0, 100)}}
	items := p.Items()
	items[0].Pos = geom.P(5, 5)
	if p.items[0].Pos != geom.P(0, 100) {
		t.Error("Items should not expose internal storage")
	}
}

func TestPickupKindGlyphs(t *testing.T) {
	seen := map[rune]bool{}
	for k := range PickupKindCount {
		g := k.Glyph()
		if g == '?' || seen[g] {
			t.Errorf("kind %s has a missing or duplicate glyph %q", k, g)
		}
		seen[g] = true
	}
}
