package matchup

import "math"

// EmptySlotID marks an unfilled roster slot on the scoring host.
const EmptySlotID = "0"

// RoundPoints rounds to two decimals, half away from zero.
func RoundPoints(v float64) float64 {
	return math.Round(v*100) / 100
}

// DecideWinner returns the side with the strictly greater total. Ties and
// byes have no winner.
func DecideWinner(team1 TeamView, team2 *TeamView) *Winner {
	if team2 == nil {
		return nil
	}

	switch {
	case team1.TotalPoints > team2.TotalPoints:
		return &Winner{
			TeamID:   team1.Identity.TeamID,
			TeamName: team1.Identity.TeamName,
			Margin:   RoundPoints(team1.TotalPoints - team2.TotalPoints),
		}
	case team2.TotalPoints > team1.TotalPoints:
		return &Winner{
			TeamID:   team2.Identity.TeamID,
			TeamName: team2.Identity.TeamName,
			Margin:   RoundPoints(team2.TotalPoints - team1.TotalPoints),
		}
	default:
		return nil
	}
}
