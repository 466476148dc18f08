package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/league"
	qb "github.com/riskibarqy/fantasy-matchups/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetConferenceByID(ctx context.Context, conferenceID int64) (league.Conference, bool, error) {
	query, args, err := qb.Select("*").From("conferences").
		Where(
			qb.Eq("id", conferenceID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.Conference{}, false, fmt.Errorf("build get conference by id query: %w", err)
	}

	var row conferenceTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Conference{}, false, nil
		}
		return league.Conference{}, false, fmt.Errorf("get conference by id: %w", err)
	}

	return league.Conference{
		ID:               row.ID,
		Name:             row.Name,
		ExternalLeagueID: row.ExternalLeagueID,
		SeasonID:         row.SeasonID,
	}, true, nil
}

func (r *LeagueRepository) GetSeasonByID(ctx context.Context, seasonID int64) (league.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Season{}, false, nil
		}
		return league.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	return league.Season{
		ID:        row.ID,
		Year:      row.Year,
		IsCurrent: row.IsCurrent,
	}, true, nil
}
