package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-matchups/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return team.Team{
		ID:        row.ID,
		Name:      row.Name,
		OwnerName: nullStringValue(row.OwnerName),
		OwnerID:   nullStringValue(row.OwnerID),
	}, true, nil
}

func (r *TeamRepository) GetActiveRosterAssignment(ctx context.Context, teamID, conferenceID int64) (team.RosterAssignment, bool, error) {
	query, args, err := qb.Select("*").From("roster_assignments").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("conference_id", conferenceID),
			qb.Eq("is_active", true),
		).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return team.RosterAssignment{}, false, fmt.Errorf("build get active roster assignment query: %w", err)
	}

	var row rosterAssignmentTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.RosterAssignment{}, false, nil
		}
		return team.RosterAssignment{}, false, fmt.Errorf("get active roster assignment: %w", err)
	}

	return team.RosterAssignment{
		TeamID:           row.TeamID,
		ConferenceID:     row.ConferenceID,
		ExternalRosterID: row.ExternalRosterID,
		IsActive:         row.IsActive,
	}, true, nil
}
