package gormrepo

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestMigrationFiles_SortsAndFiltersSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_events.sql":  {Data: []byte("SELECT 1;")},
		"0001_init.sql":    {Data: []byte("SELECT 1;")},
		"README.md":        {Data: []byte("notes")},
		"archive/0000.sql": {Data: []byte("SELECT 1;")},
	}
	got, err := migrationFiles(fsys)
	if err != nil {
		t.Fatalf("migration files: %v", err)
	}
	want := []string{"0001_init.sql", "0002_events.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files mismatch: got=%v want=%v", got, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := map[string]bool{
		`ERROR: duplicate key value violates unique constraint "games_pkey"`: true,
		"UNIQUE constraint failed: games.session_id":                         true,
		"connection refused":                                                 false,
	}
	for msg, want := range cases {
		if got := isUniqueViolation(errString(msg)); got != want {
			t.Fatalf("isUniqueViolation(%q) mismatch: got=%v want=%v", msg, got, want)
		}
	}
	if isUniqueViolation(nil) {
		t.Fatalf("nil error must not be a unique violation")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
