package article

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/apperr"
	"newsdesk/internal/models"
	"newsdesk/internal/parse"
)

func TestResolveTagsExistingAndInline(t *testing.T) {
	existing := models.Tag{ID: uuid.New(), Name: "tech"}
	repo := newFakeTagRepo(existing)
	svc := NewService(newFakeStore(), repo, &fakeUploader{}, &fakeUploader{})

	ar := "اقتصاد"
	got, err := svc.resolveTags(context.Background(),
		[]string{existing.ID.String()},
		[]parse.TagSpec{{Name: "economy", NameAr: &ar}},
	)
	if err != nil {
		t.Fatalf("resolveTags failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d tags, want 2", len(got))
	}
	if got[0].ID != existing.ID {
		t.Error("referenced tag should resolve first")
	}
	if got[1].Name != "economy" || got[1].NameAr == nil || *got[1].NameAr != ar {
		t.Errorf("inline tag wrong: %+v", got[1])
	}
	if got[1].ID == uuid.Nil {
		t.Error("inline tag should get a generated ID")
	}
	if len(repo.created) != 1 {
		t.Errorf("expected 1 created tag, got %d", len(repo.created))
	}
}

func TestResolveTagsDeduplicatesReferences(t *testing.T) {
	existing := models.Tag{ID: uuid.New(), Name: "tech"}
	repo := newFakeTagRepo(existing)
	svc := NewService(newFakeStore(), repo, &fakeUploader{}, &fakeUploader{})

	got, err := svc.resolveTags(context.Background(),
		[]string{existing.ID.String(), existing.ID.String()}, nil)
	if err != nil {
		t.Fatalf("resolveTags failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("duplicate IDs should collapse, got %d tags", len(got))
	}
}

func TestResolveTagsInvalidID(t *testing.T) {
	svc := NewService(newFakeStore(), newFakeTagRepo(), &fakeUploader{}, &fakeUploader{})

	_, err := svc.resolveTags(context.Background(), []string{"not-a-uuid"}, nil)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("want bad request, got %v", err)
	}
}

func TestResolveTagsUnknownID(t *testing.T) {
	svc := NewService(newFakeStore(), newFakeTagRepo(), &fakeUploader{}, &fakeUploader{})

	_, err := svc.resolveTags(context.Background(), []string{uuid.NewString()}, nil)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("want not found, got %v", err)
	}
}

func TestResolveTagsValidatesSpecsBeforeCreating(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewService(newFakeStore(), repo, &fakeUploader{}, &fakeUploader{})

	_, err := svc.resolveTags(context.Background(), nil,
		[]parse.TagSpec{{Name: "good"}, {Name: ""}})
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("want bad request, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("no tag may be created when any spec is invalid")
	}
}

func TestResolveTagsDuplicateNamesAllowed(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewService(newFakeStore(), repo, &fakeUploader{}, &fakeUploader{})

	got, err := svc.resolveTags(context.Background(), nil,
		[]parse.TagSpec{{Name: "same"}, {Name: "same"}})
	if err != nil {
		t.Fatalf("resolveTags failed: %v", err)
	}
	if len(got) != 2 || got[0].ID == got[1].ID {
		t.Errorf("duplicate names should produce distinct tags: %+v", got)
	}
}
