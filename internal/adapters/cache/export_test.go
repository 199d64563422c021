package cache

import "time"

// RemoveExpired exposes the lazy-delete path for tests.
func (s *Store) RemoveExpired(key string, now time.Time) {
	s.removeExpired(key, now)
}
