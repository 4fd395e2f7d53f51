package model

import (
	"testing"
	"time"
)

func TestAcceptsAttemptsUsesLocalDayBoundary(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)
	// Late evening locally; in UTC the previous day is still running.
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, loc)

	exam := Exam{IsActive: true, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, loc)}
	if !exam.AcceptsAttempts(now) {
		t.Error("exam scheduled today rejected near local midnight")
	}

	exam.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
	if exam.AcceptsAttempts(now) {
		t.Error("exam scheduled yesterday accepted")
	}
}

func TestAcceptsAttemptsStateChecks(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)

	exam := Exam{IsActive: true, Date: future}
	if !exam.AcceptsAttempts(time.Now()) {
		t.Error("active future exam rejected")
	}

	exam = Exam{IsActive: false, Date: future}
	if exam.AcceptsAttempts(time.Now()) {
		t.Error("inactive exam accepted")
	}

	exam = Exam{IsActive: true, IsExpired: true, Date: future}
	if exam.AcceptsAttempts(time.Now()) {
		t.Error("expired exam accepted")
	}
}

func TestStartOfDayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	got := StartOfDay(time.Date(2026, 6, 1, 18, 45, 12, 0, loc))
	want := time.Date(2026, 6, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}
