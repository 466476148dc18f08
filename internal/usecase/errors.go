package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrMissingIdentity       = errors.New("missing team identity")
	ErrFetchTimeout          = errors.New("scoring fetch timed out")
	ErrFetchHTTP             = errors.New("scoring fetch failed")
	ErrMissingScoringEntry   = errors.New("roster missing from scoring payload")
)

// Identity join legs.
const (
	IdentityLegTeam       = "team"
	IdentityLegConference = "conference"
	IdentityLegRoster     = "roster"
	IdentityLegSeason     = "season"
)

// MissingIdentityError reports which join leg had no row.
type MissingIdentityError struct {
	Leg          string
	TeamID       int64
	ConferenceID int64
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("%s: leg=%s team=%d conference=%d", ErrMissingIdentity, e.Leg, e.TeamID, e.ConferenceID)
}

func (e *MissingIdentityError) Unwrap() error {
	return ErrMissingIdentity
}
