package models

// BootstrapResponse is the /bootstrap-static/ payload.
type BootstrapResponse struct {
	Events       []Event       `json:"events"`
	Teams        []Team        `json:"teams"`
	Elements     []Element     `json:"elements"`
	ElementTypes []ElementType `json:"element_types"`
}

type Event struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IsCurrent   bool   `json:"is_current"`
	IsNext      bool   `json:"is_next"`
	Finished    bool   `json:"finished"`
	DataChecked bool   `json:"data_checked"`
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type Element struct {
	ID                       int    `json:"id"`
	WebName                  string `json:"web_name"`
	FirstName                string `json:"first_name"`
	SecondName               string `json:"second_name"`
	Team                     int    `json:"team"`
	ElementType              int    `json:"element_type"`
	Status                   string `json:"status"`
	ChanceOfPlayingThisRound *int   `json:"chance_of_playing_this_round"`
	ChanceOfPlayingNextRound *int   `json:"chance_of_playing_next_round"`
	News                     string `json:"news"`
}

type ElementType struct {
	ID                int    `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
}

// Fixture is one entry of the /fixtures/ payload. Minutes and scores are
// null before kickoff and decode to zero.
type Fixture struct {
	ID                  int    `json:"id"`
	Event               int    `json:"event"`
	TeamH               int    `json:"team_h"`
	TeamA               int    `json:"team_a"`
	TeamHScore          *int   `json:"team_h_score"`
	TeamAScore          *int   `json:"team_a_score"`
	Started             bool   `json:"started"`
	Finished            bool   `json:"finished"`
	FinishedProvisional bool   `json:"finished_provisional"`
	Minutes             int    `json:"minutes"`
	KickoffTime         string `json:"kickoff_time"`
	PulseID             int    `json:"pulse_id"`
}

// LiveResponse is the /event/{gw}/live/ payload.
type LiveResponse struct {
	Elements []LiveElement `json:"elements"`
}

type LiveElement struct {
	ID    int       `json:"id"`
	Stats LiveStats `json:"stats"`
}

type LiveStats struct {
	Minutes     int `json:"minutes"`
	GoalsScored int `json:"goals_scored"`
	Assists     int `json:"assists"`
	CleanSheets int `json:"clean_sheets"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
	Saves       int `json:"saves"`
	Bonus       int `json:"bonus"`
	BPS         int `json:"bps"`
	Starts      int `json:"starts"`
	TotalPoints int `json:"total_points"`
}

// PicksResponse is the /entry/{id}/event/{gw}/picks/ payload.
type PicksResponse struct {
	ActiveChip   string       `json:"active_chip"`
	EntryHistory EntryHistory `json:"entry_history"`
	Picks        []Pick       `json:"picks"`
}

type EntryHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}
