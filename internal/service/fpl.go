package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/fplcheck/internal/api/fpl"
	"github.com/omarshaarawi/fplcheck/internal/logging"
	"github.com/omarshaarawi/fplcheck/internal/models"
	"github.com/omarshaarawi/fplcheck/internal/repository/memory"
	"github.com/omarshaarawi/fplcheck/internal/status"
)

const (
	redCardSampleSize   = 3
	subbedOffSampleSize = 5
	unusedSampleSize    = 5
	bonusSampleSize     = 5
	fixtureSampleSize   = 5
	subsTeamSampleSize  = 3

	// Players on this many minutes or fewer most likely came off the bench.
	likelySubMinutes = 45
	fullMatchMinutes = 90
	// Below this chance of playing a flagged player is called doubtful.
	doubtfulChance = 75
)

// Source is the read-only upstream API.
type Source interface {
	Bootstrap(ctx context.Context) (*models.BootstrapResponse, error)
	Fixtures(ctx context.Context, gameweek int) ([]models.Fixture, error)
	Live(ctx context.Context, gameweek int) (*models.LiveResponse, error)
	EntryPicks(ctx context.Context, entryID, gameweek int) (*models.PicksResponse, error)
}

type Options struct {
	// Gameweek overrides the current gameweek when positive.
	Gameweek    int
	SampleLimit int
	Thresholds  status.Thresholds
}

type FPLService struct {
	source Source
	opts   Options
	logger *logging.Logger
}

func NewFPLService(source Source, opts Options, logger *logging.Logger) *FPLService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FPLService{source: source, opts: opts, logger: logger}
}

// snapshot is everything one report needs, fetched fresh for that report.
type snapshot struct {
	gameweek  int
	bootstrap *models.BootstrapResponse
	fixtures  []models.Fixture
	live      *models.LiveResponse
	repo      *memory.Repository
}

func (s *FPLService) load(ctx context.Context, withLive bool) (*snapshot, error) {
	bootstrap, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}

	gameweek, err := s.resolveGameweek(bootstrap)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resolved gameweek", "gameweek", gameweek)

	fixtures, err := s.source.Fixtures(ctx, gameweek)
	if err != nil {
		return nil, err
	}

	repo := memory.NewRepository()
	repo.SaveBootstrap(bootstrap)
	repo.SaveFixtures(fixtures)

	snap := &snapshot{
		gameweek:  gameweek,
		bootstrap: bootstrap,
		fixtures:  fixtures,
		live:      &models.LiveResponse{},
		repo:      repo,
	}

	if withLive {
		live, err := s.source.Live(ctx, gameweek)
		if err != nil {
			return nil, err
		}
		repo.SaveLive(live)
		snap.live = live
	}

	return snap, nil
}

func (s *FPLService) resolveGameweek(bootstrap *models.BootstrapResponse) (int, error) {
	if s.opts.Gameweek > 0 {
		return s.opts.Gameweek, nil
	}
	gameweek, err := fpl.CurrentGameweek(bootstrap)
	if err != nil {
		return 0, errors.Wrap(err, "resolving gameweek (set FPL_GAMEWEEK to pick one)")
	}
	return gameweek, nil
}

func (s *FPLService) CurrentGameweek(ctx context.Context) (int, error) {
	bootstrap, err := s.source.Bootstrap(ctx)
	if err != nil {
		return 0, err
	}
	return s.resolveGameweek(bootstrap)
}

func toFixtureState(f models.Fixture) status.FixtureState {
	return status.FixtureState{
		Started:             f.Started,
		Finished:            f.Finished,
		FinishedProvisional: f.FinishedProvisional,
		MinutesElapsed:      f.Minutes,
	}
}

func toPlayerStats(stats models.LiveStats) status.PlayerMatchStats {
	return status.PlayerMatchStats{
		MinutesPlayed: stats.Minutes,
		RedCards:      stats.RedCards,
		YellowCards:   stats.YellowCards,
		Goals:         stats.GoalsScored,
		Assists:       stats.Assists,
		Bonus:         stats.Bonus,
		TotalPoints:   stats.TotalPoints,
		Starts:        stats.Starts,
	}
}

// classify returns ok=false when the player's team has no fixture this
// gameweek; the classification is then StillPlaying.
func (s *FPLService) classify(repo *memory.Repository, element models.Element) (status.Classification, models.Fixture, bool) {
	stats, _ := repo.LiveStats(element.ID)
	fixture, ok := repo.FixtureForTeam(element.Team)
	if !ok {
		return status.Classification{Status: status.StillPlaying}, models.Fixture{}, false
	}
	return s.opts.Thresholds.Classify(toFixtureState(fixture), toPlayerStats(stats)), fixture, true
}

// sampledLive returns up to SampleLimit live elements joined with their
// bootstrap entries. Elements missing from bootstrap are skipped.
func (s *FPLService) sampledLive(snap *snapshot) []sampledPlayer {
	elements := snap.live.Elements
	if s.opts.SampleLimit > 0 && len(elements) > s.opts.SampleLimit {
		elements = elements[:s.opts.SampleLimit]
	}

	out := make([]sampledPlayer, 0, len(elements))
	for _, live := range elements {
		element, ok := snap.repo.Player(live.ID)
		if !ok {
			s.logger.Debug("live element missing from bootstrap", "element", live.ID)
			continue
		}
		classification, fixture, hasFixture := s.classify(snap.repo, element)
		out = append(out, sampledPlayer{
			element:        element,
			stats:          live.Stats,
			fixture:        fixture,
			hasFixture:     hasFixture,
			classification: classification,
		})
	}
	return out
}

type sampledPlayer struct {
	element        models.Element
	stats          models.LiveStats
	fixture        models.Fixture
	hasFixture     bool
	classification status.Classification
}

func scoreString(score *int) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *score)
}

// FixtureStates lists every started fixture of the gameweek with its flags.
func (s *FPLService) FixtureStates(ctx context.Context) (string, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return "", errors.Wrap(err, "loading fixtures")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Current Gameweek: %d\n\n", snap.gameweek))
	sb.WriteString("Fixture States:\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, f := range snap.fixtures {
		if !f.Started {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s vs %s:\n", snap.repo.TeamShortName(f.TeamH), snap.repo.TeamShortName(f.TeamA)))
		sb.WriteString(fmt.Sprintf("  Started: %t\n", f.Started))
		sb.WriteString(fmt.Sprintf("  Finished: %t\n", f.Finished))
		sb.WriteString(fmt.Sprintf("  Finished Provisional: %t\n", f.FinishedProvisional))
		sb.WriteString(fmt.Sprintf("  Minutes: %d\n", f.Minutes))
		sb.WriteString(fmt.Sprintf("  Home Score: %s\n", scoreString(f.TeamHScore)))
		sb.WriteString(fmt.Sprintf("  Away Score: %s\n\n", scoreString(f.TeamAScore)))
	}

	return sb.String(), nil
}

// LiveSample shows the shape of the live and fixture payloads.
func (s *FPLService) LiveSample(ctx context.Context) (string, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return "", errors.Wrap(err, "loading live data")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Current Gameweek: %d\n", snap.gameweek))

	if len(snap.live.Elements) > 0 {
		sample := snap.live.Elements[0]
		raw, err := sonic.ConfigStd.MarshalIndent(sample.Stats, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "encoding sample stats")
		}
		sb.WriteString(fmt.Sprintf("\nAvailable stats for element %d:\n", sample.ID))
		sb.Write(raw)
		sb.WriteString("\n")
	} else {
		sb.WriteString("\nNo live elements yet.\n")
	}

	if len(snap.fixtures) > 0 {
		f := snap.fixtures[0]
		sb.WriteString("\nSample fixture data:\n")
		sb.WriteString(fmt.Sprintf("Finished: %t\n", f.Finished))
		sb.WriteString(fmt.Sprintf("Finished Provisional: %t\n", f.FinishedProvisional))
		sb.WriteString(fmt.Sprintf("Started: %t\n", f.Started))
		sb.WriteString(fmt.Sprintf("Minutes: %d\n", f.Minutes))
	}

	return sb.String(), nil
}

// PlayerStatusReport groups sampled players by how the classifier sees them.
func (s *FPLService) PlayerStatusReport(ctx context.Context) (string, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return "", errors.Wrap(err, "loading player status data")
	}

	var redCards, subbedOff, unused, bonusPending []sampledPlayer
	for _, p := range s.sampledLive(snap) {
		if !p.hasFixture {
			continue
		}
		if p.stats.RedCards > 0 {
			redCards = append(redCards, p)
		}
		if p.classification.Status == status.DonePlayed && !p.fixture.Finished && p.stats.RedCards == 0 {
			subbedOff = append(subbedOff, p)
		}
		if p.classification.Status == status.DoneDidNotPlay {
			unused = append(unused, p)
		}
		if p.classification.BonusPending {
			bonusPending = append(bonusPending, p)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Checking player status determination (GW%d):\n", snap.gameweek))
	sb.WriteString(strings.Repeat("=", 50) + "\n")

	sb.WriteString("\nPlayers with red cards:\n")
	for _, p := range head(redCards, redCardSampleSize) {
		sb.WriteString(fmt.Sprintf("  %s: %d mins, Red cards: %d, Game finished: %t\n",
			p.element.WebName, p.stats.Minutes, p.stats.RedCards, p.fixture.Finished))
	}

	sb.WriteString("\nPlayers subbed off (minutes trailing the match clock):\n")
	for _, p := range head(subbedOff, subbedOffSampleSize) {
		sb.WriteString(fmt.Sprintf("  %s: %d mins, Game at %d mins\n",
			p.element.WebName, p.stats.Minutes, p.fixture.Minutes))
	}

	sb.WriteString("\nPlayers with 0 minutes in finished games:\n")
	for _, p := range head(unused, unusedSampleSize) {
		sb.WriteString(fmt.Sprintf("  %s (%s): Didn't play (game finished)\n",
			p.element.WebName, snap.repo.TeamShortName(p.element.Team)))
	}

	sb.WriteString("\nPlayers awaiting bonus confirmation:\n")
	for _, p := range head(bonusPending, bonusSampleSize) {
		sb.WriteString(fmt.Sprintf("  %s: %d pts (%d provisional bonus)\n",
			p.element.WebName, p.stats.TotalPoints, p.stats.Bonus))
	}

	sb.WriteString("\n" + strings.Repeat("=", 50) + "\n")
	sb.WriteString("Rules for deciding a player is done:\n")
	sb.WriteString("1. Game finished -> done (no minutes means didn't play)\n")
	sb.WriteString("2. Red card -> done\n")
	sb.WriteString(fmt.Sprintf("3. Minutes > 0 and < game minutes - %d -> subbed off\n", s.opts.Thresholds.SubstitutionSlack))
	sb.WriteString("Anyone else, including 0 minutes in an unfinished game, is still playing.\n")

	return sb.String(), nil
}

// SubstitutionReport infers substitutions from minutes played, since the
// API carries no substitution events.
func (s *FPLService) SubstitutionReport(ctx context.Context) (string, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return "", errors.Wrap(err, "loading substitution data")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Checking fixture data for substitution info (GW%d):\n", snap.gameweek))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	for _, f := range head(snap.fixtures, fixtureSampleSize) {
		sb.WriteString(fmt.Sprintf("\n%s vs %s\n", snap.repo.TeamShortName(f.TeamH), snap.repo.TeamShortName(f.TeamA)))
		sb.WriteString(fmt.Sprintf("Status: Started=%t, Finished=%t, Minutes=%d\n", f.Started, f.Finished, f.Minutes))
	}

	byTeam := make(map[int][]sampledPlayer)
	for _, p := range s.sampledLive(snap) {
		if p.stats.Minutes > 0 && p.stats.Minutes < fullMatchMinutes {
			byTeam[p.element.Team] = append(byTeam[p.element.Team], p)
		}
	}

	teamIDs := make([]int, 0, len(byTeam))
	for id := range byTeam {
		teamIDs = append(teamIDs, id)
	}
	sort.Ints(teamIDs)

	sb.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	sb.WriteString("Substitution patterns in player minutes:\n")
	for _, teamID := range head(teamIDs, subsTeamSampleSize) {
		sb.WriteString(fmt.Sprintf("\n%s - Players with < %d mins:\n", snap.repo.TeamShortName(teamID), fullMatchMinutes))
		for _, p := range byTeam[teamID] {
			var marks []string
			if p.stats.Minutes <= likelySubMinutes {
				marks = append(marks, "(likely sub)")
			}
			if p.classification.Status == status.DonePlayed && p.hasFixture && !p.fixture.Finished {
				marks = append(marks, "(subbed off)")
			}
			line := fmt.Sprintf("  %s: %d mins", p.element.WebName, p.stats.Minutes)
			if len(marks) > 0 {
				line += " " + strings.Join(marks, " ")
			}
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	sb.WriteString("The API doesn't provide substitution events; they can only be inferred from minutes played.\n")

	return sb.String(), nil
}

var availabilityNames = map[string]string{
	"a": "Available",
	"d": "Doubtful",
	"i": "Injured",
	"n": "Not available",
	"s": "Suspended",
	"u": "Unavailable",
}

// AvailabilityReport lists players whose chance of playing this round is
// below 100%. Nothing before kickoff says who is in a matchday squad.
func (s *FPLService) AvailabilityReport(ctx context.Context) (string, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return "", errors.Wrap(err, "loading squad data")
	}

	elements := snap.bootstrap.Elements
	if s.opts.SampleLimit > 0 && len(elements) > s.opts.SampleLimit {
		elements = elements[:s.opts.SampleLimit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Player availability (GW%d):\n", snap.gameweek))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	flagged := 0
	for _, e := range elements {
		if e.Status == "a" || e.ChanceOfPlayingThisRound == nil || *e.ChanceOfPlayingThisRound >= 100 {
			continue
		}
		flagged++

		name, ok := availabilityNames[e.Status]
		if !ok {
			name = e.Status
		}
		chance := *e.ChanceOfPlayingThisRound
		line := fmt.Sprintf("  %s (%s): %s - %d%% chance", e.WebName, snap.repo.TeamShortName(e.Team), name, chance)
		if chance < doubtfulChance {
			line += " (doubtful)"
		}
		if e.News != "" {
			line += " - " + e.News
		}
		sb.WriteString(line + "\n")
	}

	if flagged == 0 {
		sb.WriteString("  No availability issues.\n")
	}

	return sb.String(), nil
}

// AnalyzePlayer reports one player's live stats alongside the classifier's verdict.
// An unknown name is reported in the output rather than as an error.
func (s *FPLService) AnalyzePlayer(ctx context.Context, name string) (string, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return "", errors.Wrap(err, "loading player data")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Current Gameweek: %d\n", snap.gameweek))
	sb.WriteString(fmt.Sprintf("\n=== %s ===\n", strings.ToUpper(name)))

	element, ok := snap.repo.FindPlayerByName(name)
	if !ok {
		s.logger.Warn("player not found", "name", name)
		sb.WriteString(fmt.Sprintf("Player '%s' not found!\n", name))
		return sb.String(), nil
	}

	sb.WriteString(fmt.Sprintf("Player: %s (ID %d)\n", element.WebName, element.ID))
	if team, ok := snap.repo.Team(element.Team); ok {
		sb.WriteString(fmt.Sprintf("Team: %s (%s)\n", team.Name, team.ShortName))
	}
	sb.WriteString(fmt.Sprintf("Position: %s\n", snap.repo.Position(element.ElementType)))

	classification, fixture, hasFixture := s.classify(snap.repo, element)
	if hasFixture {
		venue := "(AWAY)"
		if fixture.TeamH == element.Team {
			venue = "(HOME)"
		}
		sb.WriteString(fmt.Sprintf("Fixture: %s vs %s %s\n",
			snap.repo.TeamShortName(fixture.TeamH), snap.repo.TeamShortName(fixture.TeamA), venue))
		sb.WriteString(fmt.Sprintf("Started: %t\n", fixture.Started))
		sb.WriteString(fmt.Sprintf("Finished: %t\n", fixture.Finished))
		sb.WriteString(fmt.Sprintf("Finished Provisional: %t\n", fixture.FinishedProvisional))
		sb.WriteString(fmt.Sprintf("Minutes: %d\n", fixture.Minutes))
	} else {
		sb.WriteString("Fixture: none this gameweek\n")
	}

	stats, _ := snap.repo.LiveStats(element.ID)
	sb.WriteString("\nLive Stats:\n")
	sb.WriteString(fmt.Sprintf("  Minutes: %d\n", stats.Minutes))
	sb.WriteString(fmt.Sprintf("  Total Points: %d\n", stats.TotalPoints))
	sb.WriteString(fmt.Sprintf("  Bonus: %d\n", stats.Bonus))
	sb.WriteString(fmt.Sprintf("  Goals: %d\n", stats.GoalsScored))
	sb.WriteString(fmt.Sprintf("  Assists: %d\n", stats.Assists))
	sb.WriteString(fmt.Sprintf("  Yellow Cards: %d\n", stats.YellowCards))
	sb.WriteString(fmt.Sprintf("  Red Cards: %d\n", stats.RedCards))

	if hasFixture {
		sb.WriteString("\nClassification:\n")
		sb.WriteString(fmt.Sprintf("  Game In Progress: %t\n", fixture.Started && !fixture.FinishedProvisional))
		sb.WriteString(fmt.Sprintf("  Bonus Pending: %t\n", classification.BonusPending))
		sb.WriteString(fmt.Sprintf("  Status: %s\n", classification.Status))
		sb.WriteString(fmt.Sprintf("  Player Done: %t\n", classification.Status.Done()))
		sb.WriteString(fmt.Sprintf("  Didn't Play: %t\n", classification.Status == status.DoneDidNotPlay))
		sb.WriteString(fmt.Sprintf("  Colour: %s\n", classification.Colour()))
	}

	return sb.String(), nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
