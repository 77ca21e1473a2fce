package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/fplcheck/internal/autosub"
	"github.com/omarshaarawi/fplcheck/internal/models"
	"github.com/omarshaarawi/fplcheck/internal/status"
)

const benchBoostChip = "bboost"

var positionLetters = map[string]string{
	autosub.Goalkeeper: "G",
	autosub.Defender:   "D",
	autosub.Midfielder: "M",
	autosub.Forward:    "F",
}

// EntryReport shows a fantasy entry's picks for the gameweek with each
// player's state, the automatic substitutions and the live total.
func (s *FPLService) EntryReport(ctx context.Context, entryID int) (string, error) {
	if entryID <= 0 {
		return "", errors.Newf("entry id must be positive, got %d", entryID)
	}

	snap, err := s.load(ctx, true)
	if err != nil {
		return "", errors.Wrap(err, "loading entry data")
	}

	picksResp, err := s.source.EntryPicks(ctx, entryID, snap.gameweek)
	if err != nil {
		return "", err
	}

	picks := make([]autosub.Pick, 0, len(picksResp.Picks))
	for _, p := range picksResp.Picks {
		picks = append(picks, s.buildPick(snap, p))
	}

	benchBoost := picksResp.ActiveChip == benchBoostChip
	result := autosub.Calculate(picks, picksResp.EntryHistory.EventTransfersCost, autosub.DefaultFormation(), benchBoost)
	return formatEntryReport(entryID, snap.gameweek, picksResp.ActiveChip, result), nil
}

func (s *FPLService) buildPick(snap *snapshot, p models.Pick) autosub.Pick {
	pick := autosub.Pick{
		Position:      p.Position,
		ElementID:     p.Element,
		Name:          "Unknown",
		Multiplier:    p.Multiplier,
		IsCaptain:     p.IsCaptain,
		IsViceCaptain: p.IsViceCaptain,
		Classification: status.Classification{
			Status: status.StillPlaying,
		},
	}

	stats, _ := snap.repo.LiveStats(p.Element)
	pick.Points = stats.TotalPoints

	element, ok := snap.repo.Player(p.Element)
	if !ok {
		s.logger.Warn("picked element missing from bootstrap", "element", p.Element)
		return pick
	}

	pick.Name = element.WebName
	pick.Team = snap.repo.TeamShortName(element.Team)
	pick.PlayerPosition = snap.repo.Position(element.ElementType)
	pick.Classification, _, _ = s.classify(snap.repo, element)
	return pick
}

func formatEntryReport(entryID, gameweek int, chip string, result autosub.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Entry %d - GW%d\n", entryID, gameweek))
	if chip != "" {
		sb.WriteString(fmt.Sprintf("Chip: %s\n", chip))
	}

	sb.WriteString(fmt.Sprintf("Live points: %d", result.LivePoints))
	if result.TransferCost > 0 {
		sb.WriteString(fmt.Sprintf(" (-%d)", result.TransferCost))
	}
	sb.WriteString("\n\nStarting XI:\n")

	for _, p := range result.Starters {
		colour := p.Classification.Colour()
		sb.WriteString(formatPickLine(p, colour, captainMark(p), result.GoesOff(p.Position)))
	}

	sb.WriteString("\nBench:\n")
	for _, p := range result.Bench {
		sb.WriteString(formatPickLine(p, result.BenchColour(p), "", false))
	}

	if len(result.Substitutions) > 0 {
		sb.WriteString("\nAuto-subs:\n")
		for _, sub := range result.Substitutions {
			sb.WriteString(fmt.Sprintf("  %s -> %s\n", sub.Out.Name, sub.In.Name))
		}
	}

	return sb.String()
}

func formatPickLine(p autosub.Pick, colour status.Colour, mark string, goesOff bool) string {
	line := fmt.Sprintf("  [%-6s] %s %s%s  %s  %d", colour, positionLetters[p.PlayerPosition], p.Name, mark, p.Team, p.Points)
	if p.Classification.BonusPending {
		line += " (bonus pending)"
	}
	if goesOff {
		line += " (auto-subbed)"
	}
	return line + "\n"
}

func captainMark(p autosub.Pick) string {
	switch {
	case p.IsCaptain:
		return " (C)"
	case p.IsViceCaptain:
		return " (V)"
	default:
		return ""
	}
}
