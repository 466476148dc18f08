package postgres

import (
	"database/sql"
	"testing"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
)

func TestMatchupFromRow(t *testing.T) {
	t.Run("bye week has no team2", func(t *testing.T) {
		got := matchupFromRow(matchupTableModel{ID: 1, Week: 5, ConferenceID: 1, Team1ID: 10, Status: "final"})
		if !got.IsBye() {
			t.Fatalf("expected bye for null team2_id")
		}
		if got.Status != matchup.StatusFinal {
			t.Fatalf("unexpected status: %s", got.Status)
		}
	})

	t.Run("inter-conference keeps team2 conference", func(t *testing.T) {
		got := matchupFromRow(matchupTableModel{
			ID:                2,
			Week:              5,
			ConferenceID:      1,
			Team1ID:           10,
			Team2ID:           sql.NullInt64{Int64: 20, Valid: true},
			Team2ConferenceID: sql.NullInt64{Int64: 2, Valid: true},
			IsInterConference: true,
		})
		if got.Team2ID != 20 || got.Team2Conference() != 2 || !got.IsInterConference {
			t.Fatalf("unexpected record: %+v", got)
		}
	})
}
