package battle

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockbattle -source=time_provider.go

// TimeProvider stamps battles and turn records
type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
