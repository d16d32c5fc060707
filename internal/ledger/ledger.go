// Package ledger answers "may this user draw a card now" and records
// successful draws. One card per user per seven days.
package ledger

import "time"

const Cooldown = 7 * 24 * time.Hour

// Ledger is the draw-eligibility contract. CanDraw does not reserve
// anything: the caller is expected to RecordDraw only after an eligible
// CanDraw, and updates are serialized per user by the dispatch loop, so no
// check-and-set is needed.
//
// Eligibility is inclusive at the boundary: exactly Cooldown after the last
// draw is eligible. A last-draw timestamp in the future (clock moved
// backwards) reads as not yet eligible until lastDraw+Cooldown.
type Ledger interface {
	// CanDraw reports eligibility at the instant now. When ineligible,
	// retryAt is the exact instant eligibility resumes.
	CanDraw(userID int64, now time.Time) (ok bool, retryAt time.Time, err error)

	// RecordDraw overwrites the user's last-draw timestamp with now.
	RecordDraw(userID int64, now time.Time) error
}

func eligible(lastDraw, now time.Time) (bool, time.Time) {
	if now.Sub(lastDraw) >= Cooldown {
		return true, time.Time{}
	}
	return false, lastDraw.Add(Cooldown)
}
