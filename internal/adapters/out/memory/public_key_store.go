// Package memory holds process-local implementations of core ports.
package memory

import "sync/atomic"

// PublicKeyStore caches the auth service's signing key. Readers never block
// and always see either the previous or the new key.
type PublicKeyStore struct {
	key atomic.Pointer[string]
}

func NewPublicKeyStore() *PublicKeyStore {
	return &PublicKeyStore{}
}

func (s *PublicKeyStore) Get() string {
	if k := s.key.Load(); k != nil {
		return *k
	}
	return ""
}

func (s *PublicKeyStore) Set(key string) {
	s.key.Store(&key)
}
