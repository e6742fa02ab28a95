package frontend

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"

	"wordrace/internal/session"
)

// browserStorage adapts the JS localStorage object to session.Storage.
type browserStorage struct {
	store app.Value
}

// newStorage returns localStorage-backed storage, degrading to an in-memory
// store during server prerender or when the browser blocks storage access.
// In degraded mode the identity lives only for the page's lifetime and
// rejoin-after-reload stops working, which is acceptable.
func newStorage() session.Storage {
	if app.IsServer {
		return session.NewMemStorage()
	}
	ls := app.Window().Get("localStorage")
	if !ls.Truthy() {
		klog.Warningf("localStorage unavailable, session will not survive reloads")
		return session.NewMemStorage()
	}
	return &browserStorage{store: ls}
}

func (b *browserStorage) Get(key string) string {
	v := b.store.Call("getItem", key)
	if !v.Truthy() {
		return ""
	}
	return v.String()
}

func (b *browserStorage) Set(key, value string) (err error) {
	// setItem throws when the quota is exhausted or storage is sandboxed.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage.setItem(%q): %v", key, r)
		}
	}()
	b.store.Call("setItem", key, value)
	return nil
}

func (b *browserStorage) Del(key string) {
	b.store.Call("removeItem", key)
}
