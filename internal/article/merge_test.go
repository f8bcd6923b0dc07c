package article

import (
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func namedFile(name string) models.File {
	return models.File{ID: uuid.New(), Filename: name}
}

func TestMergeFiles(t *testing.T) {
	a, b, c := namedFile("a"), namedFile("b"), namedFile("c")
	d := namedFile("d")

	got := mergeFiles(
		[]models.File{a, b, c},
		[]string{a.ID.String(), b.ID.String()},
		[]models.File{d},
	)

	if len(got) != 2 || got[0].Filename != "c" || got[1].Filename != "d" {
		names := make([]string, len(got))
		for i, f := range got {
			names[i] = f.Filename
		}
		t.Errorf("merge = %v, want [c d]", names)
	}
}

func TestMergeFilesIgnoresUnknownRemovals(t *testing.T) {
	a := namedFile("a")

	got := mergeFiles([]models.File{a}, []string{uuid.NewString(), "not-a-uuid"}, nil)
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("unknown removal IDs must not affect existing files: %+v", got)
	}
}

func TestMergeFilesEmptyExisting(t *testing.T) {
	d := namedFile("d")

	got := mergeFiles(nil, nil, []models.File{d})
	if len(got) != 1 || got[0].ID != d.ID {
		t.Errorf("got %+v, want just the added file", got)
	}
}

func TestMergeTags(t *testing.T) {
	kept := models.Tag{ID: uuid.New(), Name: "kept"}
	dropped := models.Tag{ID: uuid.New(), Name: "dropped"}
	incoming := uuid.New()

	got := mergeTags(
		[]models.Tag{kept, dropped},
		[]string{dropped.ID.String()},
		[]string{incoming.String(), kept.ID.String(), "garbage"},
	)

	if len(got) != 2 {
		t.Fatalf("got %d tags, want 2: %+v", len(got), got)
	}
	if got[0].ID != kept.ID {
		t.Error("retained tag should come first")
	}
	if got[1].ID != incoming {
		t.Error("incoming reference should become a placeholder tag")
	}
	if got[1].Name != "" {
		t.Error("placeholder tags carry only the ID")
	}
}

func TestMergeTagsDeduplicates(t *testing.T) {
	id := uuid.New()

	got := mergeTags(nil, nil, []string{id.String(), id.String()})
	if len(got) != 1 {
		t.Errorf("duplicate incoming IDs should collapse, got %d", len(got))
	}
}
