package services

import (
	"testing"
	"time"
)

func TestClaimAvailable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cooldown := 24 * time.Hour

	tests := []struct {
		name      string
		last      *time.Time
		available bool
		next      time.Time
	}{
		{
			name:      "never claimed",
			last:      nil,
			available: true,
			next:      now,
		},
		{
			name:      "claimed one hour ago",
			last:      timePtr(now.Add(-1 * time.Hour)),
			available: false,
			next:      now.Add(23 * time.Hour),
		},
		{
			name:      "claimed just inside the window",
			last:      timePtr(now.Add(-24*time.Hour + time.Second)),
			available: false,
			next:      now.Add(time.Second),
		},
		{
			name:      "claimed exactly a window ago",
			last:      timePtr(now.Add(-24 * time.Hour)),
			available: true,
			next:      now,
		},
		{
			name:      "claimed two days ago",
			last:      timePtr(now.Add(-48 * time.Hour)),
			available: true,
			next:      now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, next := claimAvailable(tt.last, cooldown, now)
			if available != tt.available {
				t.Errorf("expected available=%v, got %v", tt.available, available)
			}
			if !next.Equal(tt.next) {
				t.Errorf("expected next=%v, got %v", tt.next, next)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
