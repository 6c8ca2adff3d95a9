// Package bot holds the process core: the tick loop that reconciles
// wall-clock time against fixed and remote schedules, the schedule cache,
// the content selector and the command-queue drainer.
package bot

import "sync"

// State is the bot's process-wide mutable state. It is reset to defaults
// on restart and mutated only through its methods; both the tick loop and
// the drainer (pause/resume/set_city commands) touch it, so access is
// mutex-guarded.
type State struct {
	mu              sync.Mutex
	paused          bool
	city            string
	lastFiredMinute int
}

func NewState(city string) *State {
	return &State{city: city, lastFiredMinute: -1}
}

func (s *State) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

func (s *State) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

func (s *State) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetCity updates the weather city. An empty city keeps the current one.
// Returns the effective city.
func (s *State) SetCity(city string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if city != "" {
		s.city = city
	}
	return s.city
}

func (s *State) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

// RecordFired marks the given clock-minute as handled. It returns false
// when the minute was already recorded, which is how the tick loop
// deduplicates multiple ticks inside the same wall-clock minute.
func (s *State) RecordFired(minute int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if minute == s.lastFiredMinute {
		return false
	}
	s.lastFiredMinute = minute
	return true
}

// LastFiredMinute returns the most recently handled clock-minute,
// -1 when no minute has fired yet.
func (s *State) LastFiredMinute() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFiredMinute
}
