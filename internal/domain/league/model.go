package league

import (
	"fmt"
	"strings"
)

// League is a competition that clubs are filed under. Leagues are created
// lazily by imports and never deleted.
type League struct {
	ID        int64
	Name      string
	Nation    string
	IsDefault bool
}

func (l League) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// SameIdentity reports whether two (name, nation) pairs denote the same
// league, ignoring case.
func SameIdentity(a, b League) bool {
	return strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name)) &&
		strings.EqualFold(strings.TrimSpace(a.Nation), strings.TrimSpace(b.Nation))
}
