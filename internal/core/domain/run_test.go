package domain_test

import (
	"testing"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestStage_CanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.Stage
		want     bool
	}{
		{domain.StageIdle, domain.StageExtracting, true},
		{domain.StageIdle, domain.StageFailed, false},
		{domain.StageExtracting, domain.StageTransforming, true},
		{domain.StageExtracting, domain.StageLoading, false},
		{domain.StageExtracting, domain.StageFailed, true},
		{domain.StageTransforming, domain.StageLoading, true},
		{domain.StageTransforming, domain.StageFailed, true},
		{domain.StageLoading, domain.StageDone, true},
		{domain.StageLoading, domain.StageFailed, true},
		{domain.StageFailed, domain.StageExtracting, false},
		{domain.StageDone, domain.StageIdle, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStage_IsTerminal(t *testing.T) {
	assert.True(t, domain.StageDone.IsTerminal())
	assert.True(t, domain.StageFailed.IsTerminal())
	assert.False(t, domain.StageLoading.IsTerminal())
	assert.False(t, domain.StageIdle.IsTerminal())
}
