package sim

import (
	"log"
	"sort"
	"sync"

	"github.com/automoto/intheclouds/combat"
	"github.com/automoto/intheclouds/systems"
	"github.com/yohamta/donburi"
)

// Stats tallies published events by name.
type Stats struct {
	mu     sync.Mutex
	counts map[string]int
	damage int
	kills  int
}

func newStats() *Stats {
	return &Stats{counts: make(map[string]int)}
}

func (s *Stats) record(_ donburi.World, e systems.GameplayEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[e.Event.EventName()]++
	if d, ok := e.Event.(combat.Damaged); ok {
		s.damage += d.Amount
		if d.Died {
			s.kills++
		}
	}
}

// Count returns how many events called name were published.
func (s *Stats) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[name]
}

// Damage returns the total damage applied.
func (s *Stats) Damage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.damage
}

// Kills returns how many hits were fatal.
func (s *Stats) Kills() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kills
}

// LogSummary writes the tallies to the standard logger.
func (s *Stats) LogSummary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.counts))
	for name := range s.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Printf("  %-22s %d", name, s.counts[name])
	}
	log.Printf("  damage %d, kills %d", s.damage, s.kills)
}
