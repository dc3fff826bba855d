package entities_test

import (
	"testing"

	"github.com/KirkDiggler/battle-arena/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestPlayer_WinRate(t *testing.T) {
	tests := []struct {
		name   string
		wins   int
		losses int
		want   float64
	}{
		{name: "no battles", want: 0},
		{name: "undefeated", wins: 3, want: 100},
		{name: "winless", losses: 2, want: 0},
		{name: "five of eight", wins: 5, losses: 3, want: 62.5},
		{name: "rounds to two decimals", wins: 1, losses: 2, want: 33.33},
		{name: "rounds up", wins: 2, losses: 1, want: 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &entities.Player{Wins: tt.wins, Losses: tt.losses}
			assert.Equal(t, tt.want, p.WinRate())
		})
	}
}
