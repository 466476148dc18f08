package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-matchups/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) FindByExternalIDs(ctx context.Context, externalIDs []string) ([]player.Player, error) {
	if len(externalIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select("*").From("players").
		Where(qb.InStrings("external_id", externalIDs)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find players by external ids query: %w", err)
	}

	var rows []playerTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by external ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ExternalID:  row.ExternalID,
			FirstName:   nullStringValue(row.FirstName),
			LastName:    nullStringValue(row.LastName),
			DisplayName: nullStringValue(row.DisplayName),
			Position:    nullStringValue(row.Position),
			NFLTeam:     nullStringValue(row.NFLTeam),
		})
	}

	return out, nil
}
