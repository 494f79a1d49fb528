package credman

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

// stubKeyring swaps the package-level keyring functions for an in-memory
// map and restores them when the test finishes.
func stubKeyring(t *testing.T) map[string]string {
	t.Helper()
	store := make(map[string]string)
	origSet, origGet, origDelete := keyringSet, keyringGet, keyringDelete
	keyringSet = func(service, user, secret string) error {
		store[service+"/"+user] = secret
		return nil
	}
	keyringGet = func(service, user string) (string, error) {
		secret, ok := store[service+"/"+user]
		if !ok {
			return "", keyring.ErrNotFound
		}
		return secret, nil
	}
	keyringDelete = func(service, user string) error {
		key := service + "/" + user
		if _, ok := store[key]; !ok {
			return keyring.ErrNotFound
		}
		delete(store, key)
		return nil
	}
	t.Cleanup(func() {
		keyringSet, keyringGet, keyringDelete = origSet, origGet, origDelete
	})
	return store
}

func TestTokenStore_SetAndGet(t *testing.T) {
	stubKeyring(t)
	s := NewTokenStore()

	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	token, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected tok-123, got %q", token)
	}
}

func TestTokenStore_MissingToken(t *testing.T) {
	stubKeyring(t)
	s := NewTokenStore()

	_, err := s.Token()
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestTokenStore_Delete(t *testing.T) {
	stubKeyring(t)
	s := NewTokenStore()

	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := s.DeleteToken(); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken after delete, got %v", err)
	}

	// Deleting again is not an error.
	if err := s.DeleteToken(); err != nil {
		t.Errorf("expected nil for double delete, got %v", err)
	}
}
