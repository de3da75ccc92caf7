package config

import "testing"

func TestEnsureDB_NotConnected(t *testing.T) {
	prev := DB
	DB = nil
	defer func() { DB = prev }()

	if err := EnsureDB(); err == nil {
		t.Fatalf("ensure must fail when no pool is connected")
	}
}
