package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	qb "github.com/riskibarqy/fantasy-matchups/internal/platform/querybuilder"
)

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

func (r *MatchupRepository) ListByWeek(ctx context.Context, week int) ([]matchup.Record, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(
			qb.Eq("week", week),
			qb.Expr("conference_id IN (SELECT c.id FROM conferences c JOIN seasons s ON s.id = c.season_id WHERE s.is_current = ? AND c.deleted_at IS NULL)", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups by week query: %w", err)
	}

	var rows []matchupTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchups by week: %w", err)
	}

	out := make([]matchup.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupFromRow(row))
	}

	return out, nil
}

func matchupFromRow(row matchupTableModel) matchup.Record {
	return matchup.Record{
		ID:                row.ID,
		Week:              row.Week,
		ConferenceID:      row.ConferenceID,
		Team1ID:           row.Team1ID,
		Team2ID:           nullInt64Value(row.Team2ID),
		IsPlayoff:         row.IsPlayoff,
		Team2ConferenceID: nullInt64Value(row.Team2ConferenceID),
		IsInterConference: row.IsInterConference,
		Status:            matchup.Status(row.Status),
	}
}
