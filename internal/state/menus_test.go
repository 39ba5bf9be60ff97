package state

import (
	"testing"

	"github.com/atomicstack/menukit/internal/config"
)

func TestMenuStoreTracksRevisions(t *testing.T) {
	initial := config.DefaultMenuDefinition()
	store := NewMenuStore(initial)
	if store.Revision() != 0 {
		t.Fatalf("expected revision 0, got %d", store.Revision())
	}
	if store.SetDefinition(config.DefaultMenuDefinition()) {
		t.Fatalf("identical definition should not count as a change")
	}

	next := config.DefaultMenuDefinition()
	next.Title = "renamed"
	if !store.SetDefinition(next) {
		t.Fatalf("expected changed definition to be stored")
	}
	if store.Revision() != 1 {
		t.Fatalf("expected revision 1, got %d", store.Revision())
	}
	if got := store.Definition().Title; got != "renamed" {
		t.Fatalf("expected stored title renamed, got %q", got)
	}
}
