package simulationapi

import (
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/gin-gonic/gin"
)

// FrameSource is the read side of a game.Driver.
type FrameSource interface {
	Snapshot() game.Frame
	Running() bool
	Delay() time.Duration
}

// SimulationController serves frames of a single simulation.
type SimulationController struct {
	source FrameSource
}

// NewSimulationController initializes a SimulationController.
func NewSimulationController(source FrameSource) *SimulationController {
	return &SimulationController{source: source}
}

// RegisterPublic registers the read-only routes.
func (sc *SimulationController) RegisterPublic(route *gin.RouterGroup) {
	simulation := route.Group("/simulation")
	{
		simulation.GET("", sc.frame)
		simulation.GET("/maze", sc.maze)
	}
}

// frame returns the current frame as JSON.
func (sc *SimulationController) frame(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, FrameResponse{
		Running: sc.source.Running(),
		DelayMS: sc.source.Delay().Milliseconds(),
		Frame:   sc.source.Snapshot(),
	})
}

// maze returns the current frame drawn as text.
func (sc *SimulationController) maze(ctx *gin.Context) {
	f := sc.source.Snapshot()
	surface := render.NewASCII(f.Width, f.Height)
	game.Paint(surface, f)
	ctx.String(http.StatusOK, surface.String())
}
