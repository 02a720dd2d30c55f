package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/teemow/tasknotes/internal/auth"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "tasknotes", "settings.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func TestLoad_MissingFileYieldsZeroSettings(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ClientID != "" || got.Token != nil {
		t.Errorf("Expected zero settings, got %+v", got)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := Settings{
		ClientID:           "client-id",
		ClientSecret:       "client-secret",
		RefreshIntervalSec: 300,
		Token: &auth.TokenData{
			AccessToken:  "at",
			RefreshToken: "rt",
			Expiry:       time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC),
			TokenType:    "Bearer",
		},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ClientID != want.ClientID || got.ClientSecret != want.ClientSecret {
		t.Errorf("Credentials did not round-trip: %+v", got)
	}
	if got.RefreshIntervalSec != want.RefreshIntervalSec {
		t.Errorf("Expected interval %d, got %d", want.RefreshIntervalSec, got.RefreshIntervalSec)
	}
	if got.Token == nil || got.Token.RefreshToken != "rt" {
		t.Errorf("Token did not round-trip: %+v", got.Token)
	}
	if !got.Token.Expiry.Equal(want.Token.Expiry) {
		t.Errorf("Expected expiry %v, got %v", want.Token.Expiry, got.Token.Expiry)
	}
}

func TestSave_FilePermissions(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(Settings{ClientID: "id"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("Expected mode 0600, got %o", perm)
	}
}

func TestSaveToken_PreservesOtherFields(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(Settings{ClientID: "id", ClientSecret: "secret"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	token := &auth.TokenData{AccessToken: "at", RefreshToken: "rt"}
	if err := store.SaveToken(token); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ClientID != "id" || got.ClientSecret != "secret" {
		t.Errorf("Expected credentials preserved, got %+v", got)
	}
	if got.Token == nil || got.Token.AccessToken != "at" {
		t.Errorf("Expected saved token, got %+v", got.Token)
	}
}

func TestSaveToken_NilClearsToken(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(Settings{Token: &auth.TokenData{AccessToken: "at"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.SaveToken(nil); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != nil {
		t.Errorf("Expected token cleared, got %+v", got.Token)
	}
}
