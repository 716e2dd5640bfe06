// Package streak implements the consecutive-day check-in counter updated on
// successful login.
package streak

import "time"

// Result carries the updated streak fields.
type Result struct {
	Current     int
	Longest     int
	LastCheckIn time.Time
}

// sameDate reports whether a and b fall on the same UTC calendar date.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Update applies one check-in at now against the stored streak state.
//
// Rules (UTC calendar dates):
//   - same date as lastCheckIn: no-op, repeated logins in a day don't inflate
//     the streak;
//   - exactly the next date: current++;
//   - anything else (gap of two or more days, zero lastCheckIn, or a
//     lastCheckIn in the future due to clock skew): current resets to 1.
//
// Longest never decreases, and lastCheckIn moves to now whenever the date
// differs from the stored one.
func Update(current, longest int, lastCheckIn, now time.Time) Result {
	switch {
	case !lastCheckIn.IsZero() && sameDate(lastCheckIn, now):
		// keep lastCheckIn as stored
		if longest < current {
			longest = current
		}
		return Result{Current: current, Longest: longest, LastCheckIn: lastCheckIn}

	case !lastCheckIn.IsZero() && sameDate(lastCheckIn.UTC().AddDate(0, 0, 1), now):
		current++

	default:
		current = 1
	}

	if longest < current {
		longest = current
	}
	return Result{Current: current, Longest: longest, LastCheckIn: now}
}
