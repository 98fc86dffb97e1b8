package store

import (
	"errors"
	"testing"

	"github.com/calvinwijaya/casino-be/internal/game"
)

func newGame(t *testing.T, tableID string) *game.CasinoGame {
	t.Helper()
	g, err := game.NewCasinoGame(tableID, 2, true, nil, game.Rules{})
	if err != nil {
		t.Fatalf("NewCasinoGame: %v", err)
	}
	return g
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore()
	g := newGame(t, "table-1")

	if err := s.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	got, err := s.GetGame(g.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got != g {
		t.Fatalf("GetGame returned a different pointer")
	}

	if _, err := s.GetGame("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetGame(missing) err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreTableIndex(t *testing.T) {
	s := NewMemoryStore()
	g1 := newGame(t, "table-1")
	g2 := newGame(t, "table-1")
	g3 := newGame(t, "table-2")

	for _, g := range []*game.CasinoGame{g1, g2, g3} {
		if err := s.SaveGame(g); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
	}
	// Saving again must not duplicate the table entry.
	if err := s.SaveGame(g1); err != nil {
		t.Fatalf("SaveGame (resave): %v", err)
	}

	games, err := s.GetTableGames("table-1")
	if err != nil {
		t.Fatalf("GetTableGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("table-1 has %d games, want 2", len(games))
	}

	games, err = s.GetTableGames("empty-table")
	if err != nil {
		t.Fatalf("GetTableGames (empty): %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("empty table has %d games, want 0", len(games))
	}
}

func TestMemoryStoreActiveTableGame(t *testing.T) {
	s := NewMemoryStore()
	done := newGame(t, "table-1")
	done.Phase = game.PhaseDone
	active := newGame(t, "table-1")

	if err := s.SaveGame(done); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := s.SaveGame(active); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	got, err := s.GetActiveTableGame("table-1")
	if err != nil {
		t.Fatalf("GetActiveTableGame: %v", err)
	}
	if got.ID != active.ID {
		t.Fatalf("active game = %s, want %s", got.ID, active.ID)
	}

	active.Phase = game.PhaseDone
	if _, err := s.GetActiveTableGame("table-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("all-done table err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	g := newGame(t, "table-1")

	if err := s.SaveGame(g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := s.DeleteGame(g.ID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}

	if _, err := s.GetGame(g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetGame after delete err = %v, want ErrNotFound", err)
	}
	games, _ := s.GetTableGames("table-1")
	if len(games) != 0 {
		t.Fatalf("table index still holds %d games after delete", len(games))
	}

	if err := s.DeleteGame(g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreGetAllGames(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 3; i++ {
		if err := s.SaveGame(newGame(t, "table-1")); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
	}

	games, err := s.GetAllGames()
	if err != nil {
		t.Fatalf("GetAllGames: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("GetAllGames returned %d games, want 3", len(games))
	}
}
