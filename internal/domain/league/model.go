package league

import "fmt"

// Season is one calendar year of play.
type Season struct {
	ID        int64
	Year      int
	IsCurrent bool
}

func (s Season) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("season id is required")
	}
	if s.Year <= 0 {
		return fmt.Errorf("season year is required")
	}

	return nil
}

// Conference is an internal grouping of teams that maps onto exactly one
// league on the external scoring host.
type Conference struct {
	ID               int64
	Name             string
	ExternalLeagueID string
	SeasonID         int64
}

func (c Conference) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("conference id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("conference name is required")
	}
	if c.ExternalLeagueID == "" {
		return fmt.Errorf("conference external league id is required")
	}
	if c.SeasonID <= 0 {
		return fmt.Errorf("conference season id is required")
	}

	return nil
}
