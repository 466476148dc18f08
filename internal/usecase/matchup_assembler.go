package usecase

import (
	"strconv"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
)

// Stages at which a matchup can drop out of a run.
const (
	StageValidate    = "validate"
	StageIdentity    = "identity"
	StageScoring     = "scoring"
	StageRosterEntry = "roster_entry"
	StageAssemble    = "assemble"
)

// WeekLookup is one run's prefetched identities, league payloads and player
// names. Assembly and reconciliation read from it and never refetch.
type WeekLookup struct {
	Week         int
	Identities   map[IdentityKey]TeamIdentity
	IdentityErrs map[IdentityKey]error
	Scoring      map[string][]ScoringSnapshot
	ScoringErrs  map[string]error
	PlayerNames  map[string]string
}

// SideData is what a lookup knows about one side of a matchup. Err is nil
// only when both the identity and the roster entry were found; Stage names
// the step that failed otherwise.
type SideData struct {
	Key         IdentityKey
	Identity    TeamIdentity
	HasIdentity bool
	Snapshot    ScoringSnapshot
	Stage       string
	Err         error
}

func (d SideData) Complete() bool {
	return d.Err == nil
}

func (l *WeekLookup) Side(teamID, conferenceID int64) SideData {
	key := IdentityKey{TeamID: teamID, ConferenceID: conferenceID}
	out := SideData{Key: key}

	identity, ok := l.Identities[key]
	if !ok {
		out.Stage = StageIdentity
		out.Err = l.IdentityErrs[key]
		if out.Err == nil {
			out.Err = &MissingIdentityError{Leg: IdentityLegTeam, TeamID: teamID, ConferenceID: conferenceID}
		}
		return out
	}
	out.Identity = identity
	out.HasIdentity = true

	snapshots, ok := l.Scoring[identity.ExternalLeagueID]
	if !ok {
		out.Stage = StageScoring
		out.Err = l.ScoringErrs[identity.ExternalLeagueID]
		if out.Err == nil {
			out.Err = ErrFetchHTTP
		}
		return out
	}

	entry, err := FindEntry(snapshots, identity.ExternalRosterID)
	if err != nil {
		out.Stage = StageRosterEntry
		out.Err = err
		return out
	}
	out.Snapshot = entry
	return out
}

// BuildTeamView turns a roster entry into starters, bench and total points.
func BuildTeamView(identity TeamIdentity, snapshot ScoringSnapshot, names map[string]string) matchup.TeamView {
	view := matchup.TeamView{
		Identity: identity,
		Starters: make([]matchup.PlayerLine, 0, len(snapshot.Starters)),
	}

	starting := make(map[string]struct{}, len(snapshot.Starters))
	var starterSum float64
	for i, id := range snapshot.Starters {
		starting[id] = struct{}{}
		points := starterPoints(snapshot, i, id)
		starterSum += points
		view.Starters = append(view.Starters, matchup.PlayerLine{
			PlayerID: id,
			Name:     NameOf(names, id),
			Points:   matchup.RoundPoints(points),
		})
	}

	for _, id := range snapshot.AllPlayers {
		if id == matchup.EmptySlotID {
			continue
		}
		if _, ok := starting[id]; ok {
			continue
		}
		view.Bench = append(view.Bench, matchup.PlayerLine{
			PlayerID: id,
			Name:     NameOf(names, id),
			Points:   matchup.RoundPoints(snapshot.PlayerPoints[id]),
		})
	}

	view.TotalPoints = matchup.RoundPoints(totalPoints(snapshot, starterSum))
	return view
}

// PlaceholderTeamView stands in for a side that could not be resolved.
func PlaceholderTeamView(teamID, conferenceID int64) matchup.TeamView {
	return matchup.TeamView{
		Identity: TeamIdentity{
			TeamID:       teamID,
			ConferenceID: conferenceID,
			TeamName:     placeholderTeamName(teamID),
		},
		Starters: []matchup.PlayerLine{},
	}
}

func placeholderTeamName(teamID int64) string {
	return "Team " + strconv.FormatInt(teamID, 10)
}

func starterPoints(snapshot ScoringSnapshot, slot int, id string) float64 {
	if id == matchup.EmptySlotID {
		return 0
	}
	if slot < len(snapshot.StarterPoints) {
		return snapshot.StarterPoints[slot]
	}
	return snapshot.PlayerPoints[id]
}

func totalPoints(snapshot ScoringSnapshot, starterSum float64) float64 {
	switch {
	case snapshot.CustomPoints != nil:
		return *snapshot.CustomPoints
	case snapshot.Points != nil:
		return *snapshot.Points
	default:
		return starterSum
	}
}

func assembleMatchup(record matchup.Record, side1, side2 SideData, names map[string]string) matchup.Aggregated {
	out := matchup.Aggregated{
		MatchupID:         record.ID,
		Week:              record.Week,
		IsPlayoff:         record.IsPlayoff,
		Status:            record.Status,
		IsInterConference: record.IsInterConference,
		Team1:             BuildTeamView(side1.Identity, side1.Snapshot, names),
	}
	if !record.IsBye() {
		team2 := BuildTeamView(side2.Identity, side2.Snapshot, names)
		out.Team2 = &team2
	}
	out.Winner = matchup.DecideWinner(out.Team1, out.Team2)
	return out
}
