package services

import "github.com/dmitrijs2005/focussync/internal/model"

// mergeRecords folds an incoming batch into the stored authoritative set.
//
// Per id: a new id is inserted; an existing id is replaced only when the
// incoming RecencyKey is strictly greater (lexical comparison of the
// fixed-width ISO-8601 strings), so ties keep the stored record. Stored
// records absent from the batch are retained: sync never deletes by
// omission. Per-id max-by-RecencyKey makes the merge commutative and
// idempotent regardless of batch order.
//
// Output order is stored-set order followed by newly inserted ids, which
// keeps repeated syncs byte-stable for unchanged data.
func mergeRecords[T model.Record](stored, incoming []T) []T {
	byID := make(map[string]T, len(stored)+len(incoming))
	order := make([]string, 0, len(stored)+len(incoming))

	for _, r := range stored {
		byID[r.Key()] = r
		order = append(order, r.Key())
	}

	for _, r := range incoming {
		cur, ok := byID[r.Key()]
		if !ok {
			byID[r.Key()] = r
			order = append(order, r.Key())
			continue
		}
		if r.RecencyKey() > cur.RecencyKey() {
			byID[r.Key()] = r
		}
	}

	out := make([]T, 0, len(order))
	for _, key := range order {
		out = append(out, byID[key])
	}
	return out
}
