package repo

import (
	"path/filepath"
	"testing"

	"github.com/tbourn/go-credits-backend/internal/domain"
)

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	m := db.Migrator()
	for _, tbl := range []any{&domain.Credit{}, &domain.TokenBalance{}, &domain.Pricing{}, &domain.Transaction{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T after AutoMigrate", tbl)
		}
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "no-such-dir", "ledger.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}
