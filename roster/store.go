package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Store persists team rosters as a single pretty-printed JSON object so
// the file stays hand-editable. The whole object is read and rewritten
// on every operation; there is no locking of the file itself, so
// concurrent writers can lose an update (accepted for low-frequency
// administrative use). The degraded flag is shared between the
// scheduler and handler goroutines and is guarded by the mutex.
type Store struct {
	path string

	mu       sync.Mutex
	degraded bool
}

// NewStore opens a roster store at path, creating the file with an
// empty mapping when it does not exist.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(map[string][]string{}); err != nil {
			return nil, fmt.Errorf("initializing roster file: %w", err)
		}
	}
	return s, nil
}

// Get returns the roster for a team, matching the name case-insensitively.
func (s *Store) Get(team string) ([]string, bool) {
	rosters := s.load()
	for name, players := range rosters {
		if strings.EqualFold(name, team) {
			return players, true
		}
	}
	return nil, false
}

// Set replaces a team's roster. When a stored key matches team
// case-insensitively its original casing is kept as the storage key,
// so the file never holds two keys differing only by case.
func (s *Store) Set(team string, players []string) error {
	rosters := s.load()

	key := team
	for name := range rosters {
		if strings.EqualFold(name, team) {
			key = name
			break
		}
	}

	rosters[key] = players
	return s.save(rosters)
}

// Delete removes a team's roster, matching case-insensitively. It
// reports whether a roster was found; a rewrite failure comes back as
// the error so callers never mistake an I/O problem for a missing team.
func (s *Store) Delete(team string) (bool, error) {
	rosters := s.load()
	for name := range rosters {
		if strings.EqualFold(name, team) {
			delete(rosters, name)
			if err := s.save(rosters); err != nil {
				return true, fmt.Errorf("saving rosters: %w", err)
			}
			return true, nil
		}
	}
	return false, nil
}

// Teams returns all team names in lexicographic order.
func (s *Store) Teams() []string {
	rosters := s.load()
	teams := make([]string, 0, len(rosters))
	for name := range rosters {
		teams = append(teams, name)
	}
	sort.Strings(teams)
	return teams
}

// Clear removes every roster.
func (s *Store) Clear() error {
	return s.save(map[string][]string{})
}

// Degraded reports whether the last load found malformed content. Reads
// still return empty results in that case; the flag exists so callers
// can surface the difference between an absent and a corrupt file.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) setDegraded(v bool) {
	s.mu.Lock()
	s.degraded = v
	s.mu.Unlock()
}

func (s *Store) load() map[string][]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.setDegraded(false)
		return map[string][]string{}
	}
	var rosters map[string][]string
	if err := json.Unmarshal(data, &rosters); err != nil {
		s.setDegraded(true)
		return map[string][]string{}
	}
	s.setDegraded(false)
	if rosters == nil {
		rosters = map[string][]string{}
	}
	return rosters
}

func (s *Store) save(rosters map[string][]string) error {
	data, err := json.MarshalIndent(rosters, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
