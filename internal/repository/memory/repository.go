package memory

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/fplcheck/internal/models"
)

// nameMatchThreshold is the minimum Levenshtein similarity for a fuzzy
// web-name match.
const nameMatchThreshold = 0.7

// Repository indexes one run's API payloads. Every Save overwrites earlier
// entries with the same key.
type Repository struct {
	mu           sync.RWMutex
	teams        map[int]models.Team
	players      map[int]models.Element
	playerByName map[string]models.Element
	positions    map[int]string
	fixtures     map[int]models.Fixture
	live         map[int]models.LiveStats
}

func NewRepository() *Repository {
	return &Repository{
		teams:        make(map[int]models.Team),
		players:      make(map[int]models.Element),
		playerByName: make(map[string]models.Element),
		positions:    make(map[int]string),
		fixtures:     make(map[int]models.Fixture),
		live:         make(map[int]models.LiveStats),
	}
}

func (r *Repository) SaveBootstrap(bootstrap *models.BootstrapResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, team := range bootstrap.Teams {
		r.teams[team.ID] = team
	}
	for _, elementType := range bootstrap.ElementTypes {
		r.positions[elementType.ID] = elementType.SingularNameShort
	}
	for _, element := range bootstrap.Elements {
		r.players[element.ID] = element
		r.playerByName[strings.ToLower(element.WebName)] = element
	}
}

// SaveFixtures maps both participating teams to each fixture.
func (r *Repository) SaveFixtures(fixtures []models.Fixture) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, fixture := range fixtures {
		r.fixtures[fixture.TeamH] = fixture
		r.fixtures[fixture.TeamA] = fixture
	}
}

func (r *Repository) SaveLive(live *models.LiveResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, element := range live.Elements {
		r.live[element.ID] = element.Stats
	}
}

func (r *Repository) Team(id int) (models.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	team, ok := r.teams[id]
	return team, ok
}

// TeamShortName falls back to "Unknown" on a miss.
func (r *Repository) TeamShortName(id int) string {
	if team, ok := r.Team(id); ok {
		return team.ShortName
	}
	return "Unknown"
}

func (r *Repository) Player(id int) (models.Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[id]
	return player, ok
}

func (r *Repository) Position(elementType int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.positions[elementType]
}

func (r *Repository) FixtureForTeam(teamID int) (models.Fixture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fixture, ok := r.fixtures[teamID]
	return fixture, ok
}

// LiveStats returns zero stats when the element has no live entry.
func (r *Repository) LiveStats(elementID int) (models.LiveStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats, ok := r.live[elementID]
	return stats, ok
}

// FindPlayerByName tries an exact case-insensitive web-name match first,
// then the closest web name by Levenshtein similarity.
func (r *Repository) FindPlayerByName(name string) (models.Element, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return models.Element{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if player, ok := r.playerByName[needle]; ok {
		return player, true
	}

	var best models.Element
	bestScore := -1.0
	for webName, player := range r.playerByName {
		distance := fuzzy.LevenshteinDistance(needle, webName)
		maxLen := float64(max(utf8.RuneCountInString(needle), utf8.RuneCountInString(webName)))
		similarity := 1 - float64(distance)/maxLen

		if similarity < nameMatchThreshold {
			continue
		}
		if similarity > bestScore || (similarity == bestScore && player.ID < best.ID) {
			bestScore = similarity
			best = player
		}
	}

	return best, bestScore >= 0
}
