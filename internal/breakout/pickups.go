package breakout

import (
	"math/rand/v2"
	"slices"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// PickupKind is the kind of a falling pickup.
type PickupKind int

const (
	PickupBonus     PickupKind = iota // Points credited on collection
	PickupExtraBall                   // Extra ball
	PickupDetonator                   // Detonator
	PickupMultiBall                   // Multi-ball
	PickupKindCount                   // Sentinel for counting kinds
)

// Glyph returns the display character for a pickup kind.
func (k PickupKind) Glyph() rune {
	switch k {
	case PickupBonus:
		return '$'
	case PickupExtraBall:
		return '♥'
	case PickupDetonator:
		return '*'
	case PickupMultiBall:
		return 'M'
	default:
		return '?'
	}
}

// String returns the name of the pickup kind.
func (k PickupKind) String() string {
	switch k {
	case PickupBonus:
		return "Bonus"
	case PickupExtraBall:
		return "Extra"
	case PickupDetonator:
		return "Boom"
	case PickupMultiBall:
		return "Multi"
	default:
		return "?"
	}
}

// Pickup is an item falling from a broken block.
type Pickup struct {
	Pos    geom.Point
	Kind   PickupKind
	Amount int // Points, for PickupBonus
}

// Pickups owns the falling items and the generator that spawns them.
type Pickups struct {
	cfg   config.PickupConfig
	rng   *rand.Rand
	items []Pickup
}

// NewPickups creates an empty set with its own random stream.
func NewPickups(seed uint64, cfg config.PickupConfig) *Pickups {
	return &Pickups{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, streamSalt)),
	}
}

// BlockBroken may drop a pickup at the centre of b.
func (p *Pickups) BlockBroken(b Block) {
	if !p.cfg.Enabled || p.rng.Float64() >= p.cfg.DropChance {
		return
	}

	item := Pickup{Pos: b.Rect.Center()}
	switch roll := p.rng.Float64(); {
	case roll < 0.7:
		item.Kind = PickupBonus
		item.Amount = int(p.rng.Float64()*100) * 10
	case roll < 0.8:
		item.Kind = PickupExtraBall
	case roll < 0.9:
		item.Kind = PickupDetonator
	default:
		item.Kind = PickupMultiBall
	}
	p.items = append(p.items, item)
}

// Update drops every item by dt and returns those the paddle caught.
// Items at or below floor are discarded.
func (p *Pickups) Update(dt float64, paddle geom.Rect, floor float64) []Pickup {
	m := p.cfg.CatchMargin
	catch := paddle.ExpandRect(geom.CenteredRect(m, m))

	for i := range p.items {
		p.items[i].Pos.Y -= dt * p.cfg.DropSpeed
	}

	var collected []Pickup
	p.items = slices.DeleteFunc(p.items, func(item Pickup) bool {
		if catch.Contains(item.Pos) {
			collected = append(collected, item)
			return true
		}
		return item.Pos.Y <= floor
	})
	return collected
}

// Items returns a copy of the falling items.
func (p *Pickups) Items() []Pickup {
	return slices.Clone(p.items)
}

// Len returns the number of falling items.
func (p *Pickups) Len() int {
	return len(p.items)
}
