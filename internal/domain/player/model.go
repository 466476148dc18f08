package player

import (
	"fmt"
	"strings"
)

// Player is a locally stored copy of an external player's display identity.
type Player struct {
	ExternalID  string
	FirstName   string
	LastName    string
	DisplayName string
	Position    string
	NFLTeam     string
}

// Name returns the best display name available, or "" when none is set.
func (p Player) Name() string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ExternalID) == "" {
		return fmt.Errorf("player external id is required")
	}
	if p.Name() == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
