package session

// Storage is the persistence surface for identity and room id. The browser
// client backs it with localStorage; tests and the degraded (storage-less)
// mode use MemStorage.
type Storage interface {
	Get(key string) string
	Set(key, value string) error
	Del(key string)
}

// MemStorage is a process-lifetime Storage.
type MemStorage struct {
	m map[string]string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{m: make(map[string]string)}
}

func (s *MemStorage) Get(key string) string { return s.m[key] }

func (s *MemStorage) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *MemStorage) Del(key string) { delete(s.m, key) }
