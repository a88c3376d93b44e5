package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clickgrow/growcore/pkg/domain"
)

func TestApplyOfflineDecay(t *testing.T) {
	tests := []struct {
		name          string
		elapsed       time.Duration
		wantHappiness float64
		wantHealth    float64
		wantDead      bool
	}{
		{"no time passed", 0, 100, 100, false},
		{"three hours", 3 * time.Hour, 94, 97, false},
		{"half an hour", 30 * time.Minute, 99, 99.5, false},
		{"two days floors at zero happiness", 60 * time.Hour, 0, 40, false},
		{"just under a week", 7*24*time.Hour - time.Second, 0, 0, false},
		{"exactly a week", 7 * 24 * time.Hour, 100, 100, true},
		{"eight days", 8 * 24 * time.Hour, 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.NewPlayerState(t0)

			res := ApplyOfflineDecay(p, t0.Add(tt.elapsed), DefaultDeathAfter)

			assert.Equal(t, tt.wantDead, p.Dead)
			assert.Equal(t, tt.wantDead, res.Died)
			assert.InDelta(t, tt.wantHappiness, p.Happiness, 1e-9)
			assert.InDelta(t, tt.wantHealth, p.Health, 1e-9)
		})
	}
}

func TestApplyOfflineDecay_Incremental(t *testing.T) {
	p := domain.NewPlayerState(t0)

	ApplyOfflineDecay(p, t0.Add(time.Hour), DefaultDeathAfter)
	ApplyOfflineDecay(p, t0.Add(2*time.Hour), DefaultDeathAfter)
	res := ApplyOfflineDecay(p, t0.Add(2*time.Hour), DefaultDeathAfter)

	// two hours total, the repeated call is a no-op
	assert.InDelta(t, 96, p.Happiness, 1e-9)
	assert.InDelta(t, 98, p.Health, 1e-9)
	assert.Equal(t, DecayResult{}, res)
}

func TestApplyOfflineDecay_DeadPlantUntouched(t *testing.T) {
	p := domain.NewPlayerState(t0)
	p.Dead = true
	p.Happiness = 50

	res := ApplyOfflineDecay(p, t0.Add(10*time.Hour), DefaultDeathAfter)

	assert.Equal(t, DecayResult{}, res)
	assert.Equal(t, 50.0, p.Happiness)
	assert.Equal(t, t0, p.LastDecayAt)
}

func TestApplyOfflineDecay_InteractionKeepsPlantAlive(t *testing.T) {
	p := domain.NewPlayerState(t0)
	p.LastInteractionAt = t0.Add(6 * 24 * time.Hour)

	ApplyOfflineDecay(p, t0.Add(8*24*time.Hour), DefaultDeathAfter)

	assert.False(t, p.Dead)
	assert.Equal(t, 0.0, p.Happiness)
}

func TestApplyOfflineDecay_CustomDeathAfter(t *testing.T) {
	p := domain.NewPlayerState(t0)

	ApplyOfflineDecay(p, t0.Add(2*time.Hour), time.Hour)

	assert.True(t, p.Dead)
}
