package player

import "fmt"

// Player is a canonical scorer identity. NormalizedName is the comparable
// form the resolver matches against; it is unique in the store so that two
// concurrent imports discovering the same unknown scorer converge on one row.
type Player struct {
	ID             string
	Name           string
	NormalizedName string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.NormalizedName == "" {
		return fmt.Errorf("player normalized name is required")
	}

	return nil
}
