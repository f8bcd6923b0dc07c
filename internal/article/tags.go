package article

import (
	"context"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/models"
	"newsdesk/internal/parse"
)

// resolveTags turns a mix of existing tag IDs and inline tag specifications
// into a unified tag list. Existing IDs must all resolve or the whole
// operation fails; inline specs are validated up front so no tag is created
// before the batch is known to be well-formed. Inline creation is not
// deduplicated by name: duplicate names produce duplicate tags.
func (s *Service) resolveTags(ctx context.Context, existingIDs []string, specs []parse.TagSpec) ([]models.Tag, error) {
	var resolved []models.Tag
	seen := make(map[uuid.UUID]bool)

	for _, raw := range existingIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.Newf(apperr.KindBadRequest, "invalid tag id %q", raw)
		}
		if seen[id] {
			continue
		}
		tag, err := s.tags.FindByID(ctx, id)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "tag lookup failed", err)
		}
		if tag == nil {
			return nil, apperr.Newf(apperr.KindNotFound, "referenced tag %s not found", id)
		}
		seen[id] = true
		resolved = append(resolved, *tag)
	}

	// Validate every spec before creating anything.
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, apperr.New(apperr.KindBadRequest, "missing tag name")
		}
	}

	for _, spec := range specs {
		now := time.Now()
		tag := &models.Tag{
			ID:        uuid.New(),
			Name:      spec.Name,
			NameAr:    spec.NameAr,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.tags.Create(ctx, tag); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "tag create failed", err)
		}
		resolved = append(resolved, *tag)
	}

	return resolved, nil
}
