package session

import (
	"errors"
	"strings"
	"testing"
)

func TestIdentityFormat(t *testing.T) {
	id := LoadOrCreateIdentity(NewMemStorage())
	if !strings.HasPrefix(id, "user_") {
		t.Fatalf("expected user_ prefix, got %q", id)
	}
	if len(id) != len("user_")+9 {
		t.Errorf("expected 9 random characters, got %q", id)
	}
	for _, r := range id[len("user_"):] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z') {
			t.Errorf("expected base36 characters, got %q", id)
		}
	}
}

func TestIdentityStableAcrossLoads(t *testing.T) {
	s := NewMemStorage()
	first := LoadOrCreateIdentity(s)
	second := LoadOrCreateIdentity(s)
	if first != second {
		t.Errorf("expected a stable identity, got %q then %q", first, second)
	}
}

func TestIdentityPreservesExisting(t *testing.T) {
	s := NewMemStorage()
	s.Set(identityKey, "user_existing1")
	if got := LoadOrCreateIdentity(s); got != "user_existing1" {
		t.Errorf("expected the persisted identity, got %q", got)
	}
}

// brokenStorage rejects writes, as a browser in private mode may.
type brokenStorage struct{ MemStorage }

func (brokenStorage) Set(key, value string) error {
	return errors.New("quota exceeded")
}

func TestIdentitySurvivesBrokenStorage(t *testing.T) {
	id := LoadOrCreateIdentity(&brokenStorage{MemStorage: *NewMemStorage()})
	if !strings.HasPrefix(id, "user_") {
		t.Errorf("expected a usable identity despite the write failure, got %q", id)
	}
}

func TestIdentitiesDiffer(t *testing.T) {
	a := LoadOrCreateIdentity(NewMemStorage())
	b := LoadOrCreateIdentity(NewMemStorage())
	if a == b {
		t.Errorf("two fresh identities collided: %q", a)
	}
}
