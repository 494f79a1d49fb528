// Package credman stores the inference API token in the operating system
// keyring so the daemon and CLI never keep it in plain files.
package credman

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// ErrNoToken is returned when no API token has been stored yet.
var ErrNoToken = errors.New("no inference API token stored")

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
)

// TokenStore reads and writes the inference API token under a fixed
// service/account pair in the OS keyring.
type TokenStore struct {
	Service string
	Account string
}

// NewTokenStore creates a store using the default prewarm keyring entry.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		Service: "prewarm",
		Account: "inference-api",
	}
}

// SetToken stores the API token, replacing any existing one.
func (s *TokenStore) SetToken(token string) error {
	return keyringSet(s.Service, s.Account, token)
}

// Token returns the stored API token. ErrNoToken is returned when the
// keyring has no entry for this store.
func (s *TokenStore) Token() (string, error) {
	token, err := keyringGet(s.Service, s.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}
	return token, nil
}

// DeleteToken removes the stored API token. Deleting a missing token is
// not an error.
func (s *TokenStore) DeleteToken() error {
	err := keyringDelete(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
