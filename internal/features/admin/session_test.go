package admin

import (
	"testing"
	"time"
)

func TestSessionExpired(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session Session
		now     time.Time
		want    bool
	}{
		{
			"действующая сессия",
			Session{IsActive: true, ExpiresAt: base.Add(sessionTTL)},
			base,
			false,
		},
		{
			"истекает через секунду",
			Session{IsActive: true, ExpiresAt: base.Add(time.Second)},
			base,
			false,
		},
		{
			"ровно в момент истечения",
			Session{IsActive: true, ExpiresAt: base},
			base,
			true,
		},
		{
			"истекла",
			Session{IsActive: true, ExpiresAt: base.Add(-time.Minute)},
			base,
			true,
		},
		{
			"деактивирована до срока",
			Session{IsActive: false, ExpiresAt: base.Add(sessionTTL)},
			base,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Expired(tt.now); got != tt.want {
				t.Errorf("Expired = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}
