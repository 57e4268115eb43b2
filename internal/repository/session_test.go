package repository

import (
	"testing"
	"time"
)

func TestSessionActiveBoundary(t *testing.T) {
	exp := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: exp}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before expiry", exp.Add(-time.Hour), true},
		{"one second before", exp.Add(-time.Second), true},
		{"exactly at expiry", exp, false}, // active iff now < expires_at
		{"one second after", exp.Add(time.Second), false},
		{"long after", exp.Add(12 * time.Hour), false},
	}
	for _, tc := range cases {
		if got := s.Active(tc.now); got != tc.want {
			t.Errorf("%s: Active = %v, want %v", tc.name, got, tc.want)
		}
	}
}
