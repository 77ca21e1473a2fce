// Package autosub works out which bench players come into a fantasy squad
// automatically and what the squad's live score is once they do.
package autosub

import (
	"sort"

	"github.com/omarshaarawi/fplcheck/internal/status"
)

// Starting XI occupies squad positions 1-11; 12 and up are the bench, in
// priority order.
const lastStarterPosition = 11

const (
	Goalkeeper = "GKP"
	Defender   = "DEF"
	Midfielder = "MID"
	Forward    = "FWD"
)

// Formation holds the minimum number of starters per position.
type Formation struct {
	MinGoalkeepers int
	MinDefenders   int
	MinForwards    int
}

func DefaultFormation() Formation {
	return Formation{MinGoalkeepers: 1, MinDefenders: 3, MinForwards: 1}
}

func (f Formation) valid(counts map[string]int) bool {
	return counts[Goalkeeper] >= f.MinGoalkeepers &&
		counts[Defender] >= f.MinDefenders &&
		counts[Forward] >= f.MinForwards
}

type Pick struct {
	Position       int
	ElementID      int
	Name           string
	Team           string
	PlayerPosition string
	Points         int
	Multiplier     int
	IsCaptain      bool
	IsViceCaptain  bool
	Classification status.Classification
}

func (p Pick) didNotPlay() bool {
	return p.Classification.Status == status.DoneDidNotPlay
}

// Substitution records a bench player replacing a starter.
type Substitution struct {
	In  Pick
	Out Pick
}

type Result struct {
	Starters      []Pick
	Bench         []Pick
	Substitutions []Substitution
	TransferCost  int
	LivePoints    int
	// BenchBoost scores the whole bench and disables substitutions.
	BenchBoost bool
}

// ComesOn reports whether the bench player at position is substituted in.
func (r Result) ComesOn(position int) bool {
	for _, sub := range r.Substitutions {
		if sub.In.Position == position {
			return true
		}
	}
	return false
}

// GoesOff reports whether the starter at position is substituted out.
func (r Result) GoesOff(position int) bool {
	for _, sub := range r.Substitutions {
		if sub.Out.Position == position {
			return true
		}
	}
	return false
}

// BenchColour is the display state of a bench player.
func (r Result) BenchColour(p Pick) status.Colour {
	switch {
	case p.didNotPlay():
		return status.ColourRed
	case r.benchCounts(p) && p.Classification.Status.Done():
		return status.ColourGreen
	case p.Classification.Status.Done():
		return status.ColourYellow
	default:
		return status.ColourWhite
	}
}

func (r Result) benchCounts(p Pick) bool {
	return r.BenchBoost || r.ComesOn(p.Position)
}

// Calculate splits picks into starters and bench, then walks the bench in
// order. Each bench player who has not been ruled out replaces the first
// starter still waiting on a replacement for whom the swap keeps a legal
// formation; goalkeepers only swap with goalkeepers. Under bench boost no
// substitutions are made.
func Calculate(picks []Pick, transferCost int, formation Formation, benchBoost bool) Result {
	var starters, bench []Pick
	for _, p := range picks {
		if p.Position <= lastStarterPosition {
			starters = append(starters, p)
		} else {
			bench = append(bench, p)
		}
	}
	sort.SliceStable(starters, func(i, j int) bool { return starters[i].Position < starters[j].Position })
	sort.SliceStable(bench, func(i, j int) bool { return bench[i].Position < bench[j].Position })

	counts := make(map[string]int)
	for _, p := range starters {
		counts[p.PlayerPosition]++
	}

	var pending []int
	for i, p := range starters {
		if p.didNotPlay() && !benchBoost {
			pending = append(pending, i)
		}
	}

	var subs []Substitution
	for _, in := range bench {
		if len(pending) == 0 {
			break
		}
		if in.didNotPlay() {
			continue
		}

		for k, idx := range pending {
			out := starters[idx]
			if !swapAllowed(out, in, counts, formation) {
				continue
			}
			counts[out.PlayerPosition]--
			counts[in.PlayerPosition]++
			subs = append(subs, Substitution{In: in, Out: out})
			pending = append(pending[:k], pending[k+1:]...)
			break
		}
	}

	result := Result{
		Starters:      starters,
		Bench:         bench,
		Substitutions: subs,
		TransferCost:  transferCost,
		BenchBoost:    benchBoost,
	}
	result.LivePoints = result.livePoints()
	return result
}

func swapAllowed(out, in Pick, counts map[string]int, formation Formation) bool {
	if out.PlayerPosition == Goalkeeper || in.PlayerPosition == Goalkeeper {
		return out.PlayerPosition == Goalkeeper && in.PlayerPosition == Goalkeeper
	}

	trial := make(map[string]int, len(counts))
	for k, v := range counts {
		trial[k] = v
	}
	trial[out.PlayerPosition]--
	trial[in.PlayerPosition]++
	return formation.valid(trial)
}

func (r Result) livePoints() int {
	total := 0
	for _, p := range r.Starters {
		if r.GoesOff(p.Position) {
			continue
		}
		total += p.Points * starterMultiplier(p)
	}
	for _, p := range r.Bench {
		switch {
		case r.ComesOn(p.Position):
			total += p.Points
		case p.Multiplier > 0:
			total += p.Points * p.Multiplier
		case r.BenchBoost:
			total += p.Points
		}
	}
	return total - r.TransferCost
}

// Starters always carry a multiplier of at least 1, even when the payload
// omits it.
func starterMultiplier(p Pick) int {
	if p.Multiplier < 1 {
		return 1
	}
	return p.Multiplier
}
