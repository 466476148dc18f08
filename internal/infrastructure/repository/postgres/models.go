package postgres

import (
	"database/sql"
	"time"
)

type seasonTableModel struct {
	ID        int64      `db:"id"`
	Year      int        `db:"year"`
	IsCurrent bool       `db:"is_current"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type conferenceTableModel struct {
	ID               int64      `db:"id"`
	Name             string     `db:"name"`
	ExternalLeagueID string     `db:"external_league_id"`
	SeasonID         int64      `db:"season_id"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

type teamTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	OwnerName sql.NullString `db:"owner_name"`
	OwnerID   sql.NullString `db:"owner_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type rosterAssignmentTableModel struct {
	ID               int64     `db:"id"`
	TeamID           int64     `db:"team_id"`
	ConferenceID     int64     `db:"conference_id"`
	ExternalRosterID string    `db:"external_roster_id"`
	IsActive         bool      `db:"is_active"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type matchupTableModel struct {
	ID                int64         `db:"id"`
	Week              int           `db:"week"`
	ConferenceID      int64         `db:"conference_id"`
	Team1ID           int64         `db:"team1_id"`
	Team2ID           sql.NullInt64 `db:"team2_id"`
	Team2ConferenceID sql.NullInt64 `db:"team2_conference_id"`
	IsPlayoff         bool          `db:"is_playoff"`
	IsInterConference bool          `db:"is_inter_conference"`
	Status            string        `db:"status"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
	DeletedAt         *time.Time    `db:"deleted_at"`
}

type playerTableModel struct {
	ID          int64          `db:"id"`
	ExternalID  string         `db:"external_id"`
	FirstName   sql.NullString `db:"first_name"`
	LastName    sql.NullString `db:"last_name"`
	DisplayName sql.NullString `db:"display_name"`
	Position    sql.NullString `db:"position"`
	NFLTeam     sql.NullString `db:"nfl_team"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
