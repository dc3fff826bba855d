package player

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockplayer -source=time_provider.go

// TimeProvider stamps registrations
type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
