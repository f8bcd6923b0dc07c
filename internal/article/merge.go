package article

import (
	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// mergeFiles computes the new file sequence for an update: existing files
// minus those whose ID is in removed, followed by the newly uploaded files
// in upload order.
func mergeFiles(existing []models.File, removed []string, added []models.File) []models.File {
	removedSet := idSet(removed)

	merged := make([]models.File, 0, len(existing)+len(added))
	for _, f := range existing {
		if !removedSet[f.ID] {
			merged = append(merged, f)
		}
	}
	return append(merged, added...)
}

// mergeTags computes the new tag set for an update: existing tags minus
// those whose ID is in removed, union the incoming tag ID references that
// are not already present. Incoming IDs are NOT validated against the tag
// table here — they become bare placeholder references and persistence
// decides their fate. Unparseable IDs are dropped, since they could never
// link anyway.
func mergeTags(existing []models.Tag, removed []string, incoming []string) []models.Tag {
	removedSet := idSet(removed)

	merged := make([]models.Tag, 0, len(existing)+len(incoming))
	present := make(map[uuid.UUID]bool)
	for _, t := range existing {
		if removedSet[t.ID] {
			continue
		}
		merged = append(merged, t)
		present[t.ID] = true
	}

	for _, raw := range incoming {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if present[id] {
			continue
		}
		present[id] = true
		merged = append(merged, models.Tag{ID: id})
	}

	return merged
}

// idSet parses a list of raw ID strings into a lookup set, ignoring
// entries that are not valid UUIDs.
func idSet(raw []string) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(raw))
	for _, r := range raw {
		if id, err := uuid.Parse(r); err == nil {
			set[id] = true
		}
	}
	return set
}
