package config

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Config{
			MazeWidth:     20,
			MazeHeight:    20,
			AgentVariant:  agent.ExplorerVariant,
			Reinforcement: agent.PathPolicy,
			TickDelayMS:   30,
			LearningRate:  0.01,
			CellSize:      15,
			HostIP:        "0.0.0.0",
			GinMode:       "release",
		}, cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("MAZE_WIDTH", "8")
		t.Setenv("MAZE_HEIGHT", "5")
		t.Setenv("AGENT_VARIANT", "learner")
		t.Setenv("REINFORCEMENT", "distance")
		t.Setenv("TICK_DELAY_MS", "1")
		t.Setenv("SEED", "1234567890123")
		t.Setenv("LEARNING_RATE", "0.25")
		t.Setenv("MAX_TICKS", "500")
		t.Setenv("RENDER_EVERY", "50")
		t.Setenv("REST_PORT", "8080")
		t.Setenv("GIN_MODE", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.MazeWidth)
		assert.Equal(t, 5, cfg.MazeHeight)
		assert.Equal(t, agent.LearnerVariant, cfg.AgentVariant)
		assert.Equal(t, agent.DistancePolicy, cfg.Reinforcement)
		assert.Equal(t, 1, cfg.TickDelayMS)
		assert.Equal(t, int64(1234567890123), cfg.Seed)
		assert.InDelta(t, 0.25, cfg.LearningRate, 1e-12)
		assert.Equal(t, int64(500), cfg.MaxTicks)
		assert.Equal(t, int64(50), cfg.RenderEvery)
		assert.Equal(t, 8080, cfg.RESTPort)
		assert.Equal(t, "debug", cfg.GinMode)
	})

	invalid := []struct {
		key   string
		value string
	}{
		{"MAZE_WIDTH", "wide"},
		{"MAZE_HEIGHT", "0"},
		{"AGENT_VARIANT", "wanderer"},
		{"REINFORCEMENT", "greedy"},
		{"TICK_DELAY_MS", "fast"},
		{"SEED", "1.5"},
		{"LEARNING_RATE", "-0.1"},
		{"LEARNING_RATE", "lots"},
		{"MAX_TICKS", "-1"},
		{"REST_PORT", "70000"},
	}
	for _, tt := range invalid {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
