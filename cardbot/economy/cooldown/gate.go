// Package cooldown decides whether a user may open another pack.
package cooldown

import "time"

// DefaultCooldown is the wait between two pack openings.
const DefaultCooldown = 24 * time.Hour

type Decision struct {
	Allowed   bool
	Remaining time.Duration
}

// CanOpen is pure: a zero lastOpened means the user never opened a pack.
// Remaining is zero whenever Allowed is true. A lastOpened in the future
// counts as just opened, so the full cooldown applies.
func CanOpen(lastOpened, now time.Time, cooldown time.Duration) Decision {
	if lastOpened.IsZero() {
		return Decision{Allowed: true}
	}

	elapsed := now.Sub(lastOpened)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= cooldown {
		return Decision{Allowed: true}
	}
	return Decision{Remaining: cooldown - elapsed}
}
