// Package status decides whether a player's involvement in a gameweek
// fixture is over.
//
// The upstream API has no substitution or squad data, so the decision works
// from the fixture flags and the player's minutes alone. A player on zero
// minutes in an unfinished match stays StillPlaying however late the match
// is: an unused substitute cannot be told apart from one about to come on.
package status

// DefaultSubstitutionSlack is how many minutes a player's total may trail
// the match clock before the player counts as substituted off. It absorbs
// stoppage time and the lag in live minute updates.
const DefaultSubstitutionSlack = 5

type Status int

const (
	StillPlaying Status = iota
	DonePlayed
	DoneDidNotPlay
)

func (s Status) String() string {
	switch s {
	case StillPlaying:
		return "STILL_PLAYING"
	case DonePlayed:
		return "DONE_PLAYED"
	case DoneDidNotPlay:
		return "DONE_DID_NOT_PLAY"
	default:
		return "UNKNOWN"
	}
}

func (s Status) Done() bool {
	return s == DonePlayed || s == DoneDidNotPlay
}

// FixtureState is the slice of a fixture payload the classifier reads.
type FixtureState struct {
	Started             bool
	Finished            bool
	FinishedProvisional bool
	MinutesElapsed      int
}

// PlayerMatchStats carries a player's live stats for one gameweek. Only
// MinutesPlayed and RedCards feed the classification.
type PlayerMatchStats struct {
	MinutesPlayed int
	RedCards      int
	YellowCards   int
	Goals         int
	Assists       int
	Bonus         int
	TotalPoints   int
	Starts        int
}

type Classification struct {
	Status       Status
	BonusPending bool
}

type Colour string

const (
	ColourWhite  Colour = "WHITE"
	ColourGreen  Colour = "GREEN"
	ColourRed    Colour = "RED"
	ColourYellow Colour = "YELLOW"
)

func (c Classification) Colour() Colour {
	switch c.Status {
	case DoneDidNotPlay:
		return ColourRed
	case DonePlayed:
		return ColourGreen
	default:
		return ColourWhite
	}
}

type Thresholds struct {
	SubstitutionSlack int
}

func DefaultThresholds() Thresholds {
	return Thresholds{SubstitutionSlack: DefaultSubstitutionSlack}
}

// Classify applies DefaultThresholds.
func Classify(fixture FixtureState, player PlayerMatchStats) Classification {
	return DefaultThresholds().Classify(fixture, player)
}

// Classify evaluates the rules in order, first match wins: a finished
// fixture, a red card, then minutes trailing the clock by more than the slack.
func (t Thresholds) Classify(fixture FixtureState, player PlayerMatchStats) Classification {
	return Classification{
		Status:       t.status(fixture, player),
		BonusPending: fixture.FinishedProvisional && !fixture.Finished && player.MinutesPlayed > 0,
	}
}

func (t Thresholds) status(fixture FixtureState, player PlayerMatchStats) Status {
	switch {
	case fixture.Finished:
		if player.MinutesPlayed == 0 {
			return DoneDidNotPlay
		}
		return DonePlayed
	case player.RedCards > 0:
		return DonePlayed
	case player.MinutesPlayed > 0 && player.MinutesPlayed < fixture.MinutesElapsed-t.SubstitutionSlack:
		return DonePlayed
	default:
		return StillPlaying
	}
}
