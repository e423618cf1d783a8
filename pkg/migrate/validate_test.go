package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDirAcceptsCheckedInMigrations(t *testing.T) {
	dir := filepath.Join("..", "..", "db", "migrations")
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("checked-in migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected filename without version to be rejected")
	}
}

func TestValidateDirRejectsMissingDownSection(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20250101000000_broken.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected migration without Down section to be rejected")
	}
}
