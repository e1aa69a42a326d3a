package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/agent"
	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	simulationapi "github.com/beka-birhanu/vinom-maze/api/simulation"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/gin-gonic/gin"
)

// Global variables for dependencies
var (
	cfg                  config.Config
	surface              *render.ASCII
	driver               *game.Driver
	simulationController api_i.Controller
	router               *api.Router
	appLogger            *log.Logger
)

func newLogger(prefix, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset), log.LstdFlags)
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		appLogger.Printf("%s[ERROR]%s loading configuration: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	appLogger.Printf("%s[INFO]%s configuration loaded: %dx%d %s, seed %d", config.LogInfoColor, config.LogColorReset, cfg.MazeWidth, cfg.MazeHeight, cfg.AgentVariant, cfg.Seed)
}

func initDriver() {
	surface = render.NewASCII(cfg.MazeWidth, cfg.MazeHeight)

	var onTick func(agent.StepResult, int64)
	if cfg.RenderEvery > 0 {
		onTick = func(_ agent.StepResult, tick int64) {
			if tick%cfg.RenderEvery == 0 {
				fmt.Printf("tick %d\n%s", tick, surface)
			}
		}
	}

	var err error
	driver, err = game.NewDriver(game.DriverConfig{
		Options: game.Options{
			Width:        cfg.MazeWidth,
			Height:       cfg.MazeHeight,
			Variant:      cfg.AgentVariant,
			Seed:         cfg.Seed,
			LearningRate: cfg.LearningRate,
			CellSize:     cfg.CellSize,
		},
		Scheduler: game.NewTimerScheduler(),
		Surface:   surface,
		Delay:     time.Duration(cfg.TickDelayMS) * time.Millisecond,
		Policy:    cfg.Reinforcement,
		Logger:    newLogger("DRIVER", config.ColorCyan),
		OnTick:    onTick,
	})
	if err != nil {
		appLogger.Printf("%s[ERROR]%s creating simulation driver: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s simulation driver initialized", config.LogInfoColor, config.LogColorReset)
}

func initSimulationController() {
	simulationController = simulationapi.NewSimulationController(driver)
	appLogger.Printf("%s[INFO]%s simulation controller initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter() {
	gin.SetMode(cfg.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{simulationController},
	})
	appLogger.Printf("%s[INFO]%s router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)

	initConfig()
	initDriver()

	if cfg.RESTPort != 0 {
		initSimulationController()
		initRouter()

		// Run HTTP server
		go func() {
			if err := router.Run(); err != nil {
				appLogger.Printf("%s[ERROR]%s starting server: %v", config.LogErrorColor, config.LogColorReset, err)
				stop()
			}
		}()
	}

	if cfg.MaxTicks > 0 {
		frame, err := driver.Run(ctx, cfg.MaxTicks)
		if err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Printf("%s[ERROR]%s running simulation: %v", config.LogErrorColor, config.LogColorReset, err)
			os.Exit(1)
		}
		appLogger.Printf("%s[INFO]%s finished at tick %d with %d goals reached", config.LogInfoColor, config.LogColorReset, frame.Tick, frame.GoalsReached)
		fmt.Print(surface)
		return
	}

	driver.Start()
	<-ctx.Done()
	driver.Pause()

	frame := driver.Snapshot()
	appLogger.Printf("%s[INFO]%s stopped at tick %d with %d goals reached", config.LogInfoColor, config.LogColorReset, frame.Tick, frame.GoalsReached)
}
