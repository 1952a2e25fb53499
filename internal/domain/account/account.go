package account

import (
	"strconv"
	"time"
)

// Account holds the point balance for a single profile. Exactly one account
// exists per profile and its balance is mutated only by the ledger engine.
type Account struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrAccountNotFound indicates no account exists for the given profile
type ErrAccountNotFound struct {
	ProfileID int64
}

func (e ErrAccountNotFound) Error() string {
	return "account not found for profile: " + strconv.FormatInt(e.ProfileID, 10)
}

// Is implements errors.Is matching. A target with a zero ProfileID matches
// any ErrAccountNotFound.
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	if t.ProfileID == 0 {
		return true
	}
	return e.ProfileID == t.ProfileID
}
