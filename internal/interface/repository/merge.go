package repository

import (
	"valet-booking-service/internal/domain/entity"
)

// MergeByID merges remote booking records into the local set. Remote records
// take precedence over local ones with the same id; local-only records are
// appended rather than dropped. The result carries no duplicate ids.
func MergeByID(local, remote []entity.Booking) []entity.Booking {
	seen := make(map[string]bool, len(remote))
	merged := make([]entity.Booking, 0, len(local)+len(remote))
	for _, b := range remote {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		merged = append(merged, b)
	}
	for _, b := range local {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		merged = append(merged, b)
	}
	return merged
}

// DedupeByID drops later duplicates of the same booking id, keeping the
// first occurrence. Used whenever two sources are enumerated together.
func DedupeByID(bookings []entity.Booking) []entity.Booking {
	seen := make(map[string]bool, len(bookings))
	out := make([]entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

// localOnly returns the local records whose ids are absent from the remote
// set. These are the ones pushed up during reconciliation.
func localOnly(local, remote []entity.Booking) []entity.Booking {
	remoteIDs := make(map[string]bool, len(remote))
	for _, b := range remote {
		remoteIDs[b.ID] = true
	}
	out := make([]entity.Booking, 0)
	for _, b := range local {
		if !remoteIDs[b.ID] {
			out = append(out, b)
		}
	}
	return out
}
