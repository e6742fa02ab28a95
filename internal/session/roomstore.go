package session

import "k8s.io/klog/v2"

// roomKey matches the original web client's key.
const roomKey = "wordgame_roomid"

// RoomStore persists the active room id across reloads. A non-empty stored
// id is the sole trigger for rejoin-on-load; terminal and fatal-error
// transitions clear it. No validation happens here, the server is the
// source of truth for room ids.
type RoomStore struct {
	s Storage
}

func (r RoomStore) Save(id string) {
	if err := r.s.Set(roomKey, id); err != nil {
		klog.Warningf("room id not persisted: %v", err)
	}
}

func (r RoomStore) Load() string { return r.s.Get(roomKey) }

func (r RoomStore) Clear() { r.s.Del(roomKey) }
