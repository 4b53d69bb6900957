package breakout

import "math"

// Rank is the letter grade of a run, ordered from worst to best.
type Rank int

const (
	RankF Rank = iota
	RankE
	RankD
	RankC
	RankB
	RankA
	RankS
)

// String returns the letter.
func (r Rank) String() string {
	switch r {
	case RankS:
		return "S"
	case RankA:
		return "A"
	case RankB:
		return "B"
	case RankC:
		return "C"
	case RankD:
		return "D"
	case RankE:
		return "E"
	default:
		return "F"
	}
}

// Scoring accumulates points for one session.
//
// Broken blocks feed a combo pot instead of the score. The pot is banked
// when the ball returns to the paddle and forfeited, as a penalty, when it
// reaches the floor.
type Scoring struct {
	Score           int64
	ComboScore      int64
	ComboMultiplier float64
	ComboMax        int64
	Penalties       int64
}

// NewScoring returns an empty scoring with the multiplier at 1.
func NewScoring() Scoring {
	return Scoring{ComboMultiplier: 1}
}

func (s *Scoring) endCombo() int64 {
	combo := s.ComboScore
	s.ComboScore = 0
	s.ComboMax = max(s.ComboMax, combo)
	s.ComboMultiplier = 1
	return combo
}

// HitFloor forfeits the pot.
func (s *Scoring) HitFloor() {
	combo := s.endCombo()
	s.Score -= combo
	s.Penalties += combo
}

// HitPaddle banks the pot.
func (s *Scoring) HitPaddle() {
	s.Score += s.endCombo()
}

// BlockBroken adds the block's points, scaled by the multiplier, to the pot
// and raises the multiplier by one.
func (s *Scoring) BlockBroken(points int) {
	s.ComboScore += int64(math.Round(s.ComboMultiplier * float64(points)))
	s.ComboMultiplier++
}

// BlockDamaged raises the multiplier slightly.
func (s *Scoring) BlockDamaged() {
	s.ComboMultiplier += 0.1
}

// PickupBonus credits a collected bonus straight to the score.
func (s *Scoring) PickupBonus(amount int) {
	s.Score += int64(amount)
}

// NoCombo reports whether the pot is empty.
func (s Scoring) NoCombo() bool {
	return s.ComboScore == 0
}

// Rank grades the run by penalties per mille of score. A run that has not
// scored anything ranks F.
func (s Scoring) Rank() Rank {
	if s.Score <= 0 {
		return RankF
	}
	ratio := int64(math.Trunc(float64(s.Penalties) / float64(s.Score) * 1000))
	switch {
	case ratio <= 5:
		return RankS
	case ratio <= 25:
		return RankA
	case ratio <= 50:
		return RankB
	case ratio <= 100:
		return RankC
	case ratio <= 150:
		return RankD
	case ratio <= 250:
		return RankE
	default:
		return RankF
	}
}
