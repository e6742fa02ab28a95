package session

import (
	"math/rand"

	"k8s.io/klog/v2"
)

// identityKey matches the key the original web client used, so player
// identities survive a client rewrite.
const identityKey = "wordgame_userid"

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// LoadOrCreateIdentity returns the stable per-browser player identifier,
// generating and persisting one on first use. If persistence fails the
// identifier still works for the lifetime of the process; only
// rejoin-after-reload degrades.
func LoadOrCreateIdentity(s Storage) string {
	if id := s.Get(identityKey); id != "" {
		return id
	}
	id := "user_" + randomBase36(9)
	if err := s.Set(identityKey, id); err != nil {
		klog.Warningf("identity not persisted, rejoin after reload will not work: %v", err)
	}
	return id
}

func randomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
