package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/agent"
	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds the application's configuration values.
type Config struct {
	MazeWidth     int           // Maze width in cells
	MazeHeight    int           // Maze height in cells
	AgentVariant  agent.Variant // explorer, seeker or learner
	Reinforcement agent.Policy  // Reward backpropagation: path or distance
	TickDelayMS   int           // Milliseconds between ticks
	Seed          int64         // Maze and placement seed; 0 picks one from the clock
	LearningRate  float64       // Predictor learning rate
	MaxTicks      int64         // Tick budget; 0 runs until interrupted
	RenderEvery   int64         // Print the ASCII surface every N ticks; 0 disables it
	CellSize      int           // Pixel size hint for frame clients
	HostIP        string        // Host IP for the frame API
	RESTPort      int           // Port for the frame API; 0 disables it
	GinMode       string        // Mode for the Gin framework (e.g., release, debug, test)
}

// Load reads the configuration from the environment after loading a .env
// file if one is present.
func Load() (Config, error) {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	var errs []error
	cfg := Config{
		MazeWidth:     getEnvAsInt("MAZE_WIDTH", 20, &errs),
		MazeHeight:    getEnvAsInt("MAZE_HEIGHT", 20, &errs),
		AgentVariant:  agent.Variant(getEnvWithDefault("AGENT_VARIANT", string(agent.ExplorerVariant))),
		Reinforcement: agent.Policy(getEnvWithDefault("REINFORCEMENT", string(agent.PathPolicy))),
		TickDelayMS:   getEnvAsInt("TICK_DELAY_MS", 30, &errs),
		Seed:          getEnvAsInt64("SEED", 0, &errs),
		LearningRate:  getEnvAsFloat("LEARNING_RATE", 0.01, &errs),
		MaxTicks:      getEnvAsInt64("MAX_TICKS", 0, &errs),
		RenderEvery:   getEnvAsInt64("RENDER_EVERY", 0, &errs),
		CellSize:      getEnvAsInt("CELL_SIZE", 15, &errs),
		HostIP:        getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:      getEnvAsInt("REST_PORT", 0, &errs),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
	}

	if cfg.MazeWidth <= 0 || cfg.MazeHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: MAZE_WIDTH and MAZE_HEIGHT must be positive, got %dx%d", ErrInvalidValue, cfg.MazeWidth, cfg.MazeHeight))
	}
	if _, err := agent.ParseVariant(string(cfg.AgentVariant)); err != nil {
		errs = append(errs, fmt.Errorf("%w: AGENT_VARIANT: %v", ErrInvalidValue, err))
	}
	if _, err := agent.ParsePolicy(string(cfg.Reinforcement)); err != nil {
		errs = append(errs, fmt.Errorf("%w: REINFORCEMENT: %v", ErrInvalidValue, err))
	}
	if cfg.LearningRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: LEARNING_RATE must be positive, got %v", ErrInvalidValue, cfg.LearningRate))
	}
	if cfg.MaxTicks < 0 || cfg.RenderEvery < 0 {
		errs = append(errs, fmt.Errorf("%w: MAX_TICKS and RENDER_EVERY must not be negative", ErrInvalidValue))
	}
	if cfg.RESTPort < 0 || cfg.RESTPort > 65535 {
		errs = append(errs, fmt.Errorf("%w: REST_PORT out of range: %d", ErrInvalidValue, cfg.RESTPort))
	}

	return cfg, errors.Join(errs...)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, recording a parse failure in errs.
func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidValue, key, err))
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64, errs *[]error) int64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidValue, key, err))
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64, errs *[]error) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be a number: %v", ErrInvalidValue, key, err))
		return defaultValue
	}
	return value
}
