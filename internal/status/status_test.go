package status

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		fixture FixtureState
		player  PlayerMatchStats
		want    Classification
	}{
		{
			name:    "finished fixture, unused player",
			fixture: FixtureState{Started: true, Finished: true, FinishedProvisional: true, MinutesElapsed: 94},
			player:  PlayerMatchStats{},
			want:    Classification{Status: DoneDidNotPlay},
		},
		{
			name:    "finished fixture, played",
			fixture: FixtureState{Started: true, Finished: true, FinishedProvisional: true, MinutesElapsed: 90},
			player:  PlayerMatchStats{MinutesPlayed: 90},
			want:    Classification{Status: DonePlayed},
		},
		{
			name:    "on the pitch with the clock",
			fixture: FixtureState{Started: true, MinutesElapsed: 60},
			player:  PlayerMatchStats{MinutesPlayed: 60},
			want:    Classification{Status: StillPlaying},
		},
		{
			name:    "subbed off",
			fixture: FixtureState{Started: true, MinutesElapsed: 70},
			player:  PlayerMatchStats{MinutesPlayed: 45},
			want:    Classification{Status: DonePlayed},
		},
		{
			name:    "sent off early with minutes matching the clock",
			fixture: FixtureState{Started: true, MinutesElapsed: 20},
			player:  PlayerMatchStats{MinutesPlayed: 20, RedCards: 1},
			want:    Classification{Status: DonePlayed},
		},
		{
			name:    "red card with no minutes recorded",
			fixture: FixtureState{Started: true, MinutesElapsed: 30},
			player:  PlayerMatchStats{RedCards: 1},
			want:    Classification{Status: DonePlayed},
		},
		{
			name:    "unused late in an unfinished match",
			fixture: FixtureState{Started: true, MinutesElapsed: 89},
			player:  PlayerMatchStats{},
			want:    Classification{Status: StillPlaying},
		},
		{
			name:    "not kicked off",
			fixture: FixtureState{},
			player:  PlayerMatchStats{},
			want:    Classification{Status: StillPlaying},
		},
		{
			name:    "provisional finish, played",
			fixture: FixtureState{Started: true, FinishedProvisional: true, MinutesElapsed: 90},
			player:  PlayerMatchStats{MinutesPlayed: 90, Bonus: 2},
			want:    Classification{Status: StillPlaying, BonusPending: true},
		},
		{
			name:    "provisional finish, subbed off",
			fixture: FixtureState{Started: true, FinishedProvisional: true, MinutesElapsed: 95},
			player:  PlayerMatchStats{MinutesPlayed: 62},
			want:    Classification{Status: DonePlayed, BonusPending: true},
		},
		{
			name:    "provisional finish, unused",
			fixture: FixtureState{Started: true, FinishedProvisional: true, MinutesElapsed: 95},
			player:  PlayerMatchStats{},
			want:    Classification{Status: StillPlaying},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.fixture, tt.player))
		})
	}
}

func TestClassify_SlackBoundary(t *testing.T) {
	fixture := FixtureState{Started: true, MinutesElapsed: 90}

	assert.Equal(t, DonePlayed, Classify(fixture, PlayerMatchStats{MinutesPlayed: 84}).Status)
	assert.Equal(t, StillPlaying, Classify(fixture, PlayerMatchStats{MinutesPlayed: 85}).Status)
	assert.Equal(t, StillPlaying, Classify(fixture, PlayerMatchStats{MinutesPlayed: 86}).Status)
}

func TestThresholds_ConfiguredSlack(t *testing.T) {
	fixture := FixtureState{Started: true, MinutesElapsed: 90}

	strict := Thresholds{SubstitutionSlack: 0}
	assert.Equal(t, DonePlayed, strict.Classify(fixture, PlayerMatchStats{MinutesPlayed: 89}).Status)
	assert.Equal(t, StillPlaying, strict.Classify(fixture, PlayerMatchStats{MinutesPlayed: 90}).Status)

	loose := Thresholds{SubstitutionSlack: 10}
	assert.Equal(t, StillPlaying, loose.Classify(fixture, PlayerMatchStats{MinutesPlayed: 84}).Status)
	assert.Equal(t, DonePlayed, loose.Classify(fixture, PlayerMatchStats{MinutesPlayed: 79}).Status)
}

// Sweeps every combination of the consistent fixture flags against a range
// of minutes and red cards.
func TestClassify_Properties(t *testing.T) {
	flagSets := []FixtureState{
		{},
		{Started: true},
		{Started: true, FinishedProvisional: true},
		{Started: true, FinishedProvisional: true, Finished: true},
	}

	for _, flags := range flagSets {
		for elapsed := 0; elapsed <= 100; elapsed += 5 {
			for played := 0; played <= 95; played += 5 {
				for reds := 0; reds <= 1; reds++ {
					fixture := flags
					fixture.MinutesElapsed = elapsed
					player := PlayerMatchStats{MinutesPlayed: played, RedCards: reds}
					got := Classify(fixture, player)
					name := fmt.Sprintf("%+v/%+v", fixture, player)

					if fixture.Finished && played == 0 {
						assert.Equal(t, DoneDidNotPlay, got.Status, name)
					}
					if fixture.Finished && played > 0 {
						assert.Equal(t, DonePlayed, got.Status, name)
					}
					if !fixture.Finished && reds > 0 {
						assert.Equal(t, DonePlayed, got.Status, name)
					}
					if !fixture.Finished && played == 0 && reds == 0 {
						assert.Equal(t, StillPlaying, got.Status, name)
					}
					wantPending := fixture.FinishedProvisional && !fixture.Finished && played > 0
					assert.Equal(t, wantPending, got.BonusPending, name)
				}
			}
		}
	}
}

func TestColour(t *testing.T) {
	assert.Equal(t, ColourRed, Classification{Status: DoneDidNotPlay}.Colour())
	assert.Equal(t, ColourGreen, Classification{Status: DonePlayed}.Colour())
	assert.Equal(t, ColourWhite, Classification{Status: StillPlaying, BonusPending: true}.Colour())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "STILL_PLAYING", StillPlaying.String())
	assert.Equal(t, "DONE_PLAYED", DonePlayed.String())
	assert.Equal(t, "DONE_DID_NOT_PLAY", DoneDidNotPlay.String())
	assert.Equal(t, "UNKNOWN", Status(42).String())
	assert.True(t, DonePlayed.Done())
	assert.False(t, StillPlaying.Done())
}
