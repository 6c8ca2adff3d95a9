package bot_test

import (
	"testing"

	"github.com/lizark9x/connor-bot/internal/bot"
)

func TestState_Defaults(t *testing.T) {
	s := bot.NewState("Seoul")
	if s.Paused() {
		t.Error("new state must not be paused")
	}
	if got := s.City(); got != "Seoul" {
		t.Errorf("City() = %q, want Seoul", got)
	}
	if got := s.LastFiredMinute(); got != -1 {
		t.Errorf("LastFiredMinute() = %d, want -1", got)
	}
}

func TestState_PauseResume(t *testing.T) {
	s := bot.NewState("Seoul")
	s.Pause()
	if !s.Paused() {
		t.Error("expected paused")
	}
	s.Resume()
	if s.Paused() {
		t.Error("expected resumed")
	}
}

func TestState_SetCity(t *testing.T) {
	s := bot.NewState("Seoul")
	if got := s.SetCity("Busan"); got != "Busan" {
		t.Errorf("SetCity(Busan) = %q", got)
	}
	// Empty input keeps the current city.
	if got := s.SetCity(""); got != "Busan" {
		t.Errorf("SetCity(\"\") = %q, want Busan", got)
	}
}

func TestState_RecordFiredDedup(t *testing.T) {
	s := bot.NewState("Seoul")
	if !s.RecordFired(30) {
		t.Error("first tick of a minute must fire")
	}
	if s.RecordFired(30) {
		t.Error("second tick of the same minute must not fire")
	}
	if !s.RecordFired(31) {
		t.Error("next minute must fire again")
	}
	// Minute 30 of the next hour is a new minute for the loop.
	if s.RecordFired(31) {
		t.Error("repeat of minute 31 must not fire")
	}
}
