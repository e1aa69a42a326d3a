package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/agent"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/maze"
)

// Driver errors.
var (
	ErrInvalidDelay = errors.New("tick delay must be one of 200, 100, 30, 10 or 1 ms")
	ErrNilScheduler = errors.New("scheduler is required")
)

// Delays lists the tick delays a driver accepts, slowest first.
var Delays = []time.Duration{
	200 * time.Millisecond,
	100 * time.Millisecond,
	30 * time.Millisecond,
	10 * time.Millisecond,
	1 * time.Millisecond,
}

// DriverConfig wires a driver to its collaborators.
type DriverConfig struct {
	Options   Options
	Scheduler Scheduler
	Surface   RenderSurface // Optional
	Delay     time.Duration // Zero selects 30ms
	Policy    agent.Policy  // Empty selects the path policy
	Logger    *log.Logger   // Optional

	// OnTick runs after every scheduled or manual tick, outside the lock.
	OnTick func(res agent.StepResult, tick int64)
}

// Driver runs a simulation on a scheduler and mirrors every change onto a
// render surface.
type Driver struct {
	sim       *Simulation
	opts      Options
	scheduler Scheduler
	surface   RenderSurface
	delay     time.Duration
	policy    agent.Policy
	running   bool
	logger    *log.Logger
	onTick    func(agent.StepResult, int64)
	shown     *maze.CellPosition // Prediction currently drawn
	sync.RWMutex
}

// NewDriver builds the first simulation from cfg.Options.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Delay == 0 {
		cfg.Delay = 30 * time.Millisecond
	}
	if !slices.Contains(Delays, cfg.Delay) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDelay, cfg.Delay)
	}
	if cfg.Policy == "" {
		cfg.Policy = agent.PathPolicy
	}
	if _, err := agent.ParsePolicy(string(cfg.Policy)); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.Writer(), "[DRIVER] ", log.LstdFlags)
	}

	sim, err := NewSimulation(cfg.Options)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		sim:       sim,
		opts:      cfg.Options,
		scheduler: cfg.Scheduler,
		surface:   cfg.Surface,
		delay:     cfg.Delay,
		policy:    cfg.Policy,
		logger:    cfg.Logger,
		onTick:    cfg.OnTick,
	}
	d.redraw()
	return d, nil
}

// Start draws the current frame, takes one tick and keeps ticking on the
// scheduler until Pause. Calling Start while running does nothing.
func (d *Driver) Start() {
	d.Lock()
	if d.running {
		d.Unlock()
		return
	}
	d.running = true
	d.redraw()
	d.logger.Printf("%s[INFO]%s simulation %s started at tick %d", config.LogInfoColor, config.LogColorReset, d.sim.ID, d.sim.Clock())
	d.Unlock()

	d.scheduledTick()
}

// Pause cancels the pending tick.
func (d *Driver) Pause() {
	d.Lock()
	defer d.Unlock()
	d.scheduler.Cancel()
	if !d.running {
		return
	}
	d.running = false
	d.logger.Printf("%s[INFO]%s simulation %s paused at tick %d", config.LogInfoColor, config.LogColorReset, d.sim.ID, d.sim.Clock())
}

// Running reports whether ticks are being scheduled.
func (d *Driver) Running() bool {
	d.RLock()
	defer d.RUnlock()
	return d.running
}

// Reset replaces the simulation with a fresh one built from the same options
// and the given seed. A running driver keeps running on the new maze.
func (d *Driver) Reset(seed int64) error {
	d.RLock()
	opts := d.opts
	d.RUnlock()
	opts.Seed = seed
	sim, err := NewSimulation(opts)
	if err != nil {
		d.logger.Printf("%s[ERROR]%s reset with seed %d failed: %v", config.LogErrorColor, config.LogColorReset, seed, err)
		return err
	}

	d.Lock()
	defer d.Unlock()
	d.sim = sim
	d.opts = opts
	d.redraw()
	d.logger.Printf("%s[INFO]%s simulation reset to %s with seed %d", config.LogInfoColor, config.LogColorReset, sim.ID, seed)
	return nil
}

// SetDelay changes the pause between scheduled ticks.
func (d *Driver) SetDelay(delay time.Duration) error {
	if !slices.Contains(Delays, delay) {
		return fmt.Errorf("%w: got %s", ErrInvalidDelay, delay)
	}
	d.Lock()
	defer d.Unlock()
	d.delay = delay
	return nil
}

// Delay returns the pause between scheduled ticks.
func (d *Driver) Delay() time.Duration {
	d.RLock()
	defer d.RUnlock()
	return d.delay
}

// SetPolicy changes the reinforcement policy used from the next tick on.
func (d *Driver) SetPolicy(p agent.Policy) error {
	if _, err := agent.ParsePolicy(string(p)); err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()
	d.policy = p
	return nil
}

// Tick steps the simulation once, whether or not the driver is running.
func (d *Driver) Tick() agent.StepResult {
	d.Lock()
	res, tick := d.step()
	d.Unlock()

	if d.onTick != nil {
		d.onTick(res, tick)
	}
	return res
}

// Run ticks synchronously until ctx is done or maxTicks ticks have been
// taken. A non-positive maxTicks runs until ctx is done. The scheduler is
// not used.
func (d *Driver) Run(ctx context.Context, maxTicks int64) (Frame, error) {
	d.logger.Printf("%s[INFO]%s headless run of simulation %s", config.LogInfoColor, config.LogColorReset, d.Snapshot().ID)
	for n := int64(0); maxTicks <= 0 || n < maxTicks; n++ {
		timer := time.NewTimer(d.Delay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return d.Snapshot(), ctx.Err()
		case <-timer.C:
		}
		d.Tick()
	}
	return d.Snapshot(), nil
}

// Snapshot returns the current frame.
func (d *Driver) Snapshot() Frame {
	d.RLock()
	defer d.RUnlock()
	return d.sim.Frame()
}

// scheduledTick is the scheduler callback.
func (d *Driver) scheduledTick() {
	d.Lock()
	if !d.running {
		d.Unlock()
		return
	}
	res, tick := d.step()
	delay := d.delay
	d.Unlock()

	if d.onTick != nil {
		d.onTick(res, tick)
	}

	d.RLock()
	running := d.running
	d.RUnlock()
	if running {
		d.scheduler.ScheduleNext(d.scheduledTick, delay)
	}
}

// step advances the simulation and draws the cells it touched.
// The caller must hold the write lock.
func (d *Driver) step() (agent.StepResult, int64) {
	res := d.sim.Tick(d.policy)
	if res.ReachedGoal {
		d.logger.Printf("%s[INFO]%s goal reached at tick %d (%d so far), respawn at (%d, %d)",
			config.LogInfoColor, config.LogColorReset, d.sim.Clock(), d.sim.GoalsReached(), res.Respawn.Row, res.Respawn.Col)
	}
	d.drawStep(res)
	return res, d.sim.Clock()
}

func (d *Driver) drawStep(res agent.StepResult) {
	if d.surface == nil {
		return
	}
	if d.shown != nil {
		d.clearCell(*d.shown)
		d.shown = nil
	}
	d.clearCell(res.From)
	if res.Bumped {
		d.surface.DrawWall(maze.SegmentOf(res.From, res.Direction), true)
	}
	if res.ReachedGoal {
		d.clearCell(res.To)
	}
	if res.Predicted != nil {
		d.surface.DrawPrediction(*res.Predicted)
		shown := *res.Predicted
		d.shown = &shown
	}
	d.surface.DrawAgent(d.sim.Agent().Position())
}

// clearCell repaints pos and puts the goal marker back when pos is the goal.
func (d *Driver) clearCell(pos maze.CellPosition) {
	d.surface.ClearCell(pos, d.sim.Agent().Visits(pos))
	if goal := d.sim.Goal(); goal != nil && *goal == pos {
		d.surface.DrawGoal(pos)
	}
}

// redraw paints the whole frame. The caller must hold the write lock or be
// the only reference to the driver.
func (d *Driver) redraw() {
	if d.surface == nil {
		return
	}
	f := d.sim.Frame()
	Paint(d.surface, f)
	d.shown = f.Predicted
}
