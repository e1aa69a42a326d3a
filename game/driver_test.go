package game

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/agent"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualScheduler struct {
	next    func()
	delay   time.Duration
	cancels int
}

func (m *manualScheduler) ScheduleNext(fn func(), delay time.Duration) {
	m.next = fn
	m.delay = delay
}

func (m *manualScheduler) Cancel() {
	m.next = nil
	m.cancels++
}

// fire runs the pending callback, if any.
func (m *manualScheduler) fire() bool {
	fn := m.next
	if fn == nil {
		return false
	}
	m.next = nil
	fn()
	return true
}

type recordingSurface struct {
	cells      map[maze.CellPosition]int
	walls      map[maze.WallSegment]bool
	agent      maze.CellPosition
	goal       *maze.CellPosition
	prediction *maze.CellPosition
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		cells: make(map[maze.CellPosition]int),
		walls: make(map[maze.WallSegment]bool),
	}
}

func (r *recordingSurface) Reset(int, int) {
	clear(r.cells)
	clear(r.walls)
	r.goal = nil
	r.prediction = nil
}

func (r *recordingSurface) ClearCell(pos maze.CellPosition, visits int) {
	r.cells[pos] = visits
	if r.prediction != nil && *r.prediction == pos {
		r.prediction = nil
	}
}

func (r *recordingSurface) DrawWall(seg maze.WallSegment, thick bool) {
	r.walls[seg] = thick
}

func (r *recordingSurface) DrawAgent(pos maze.CellPosition) {
	r.agent = pos
}

func (r *recordingSurface) DrawGoal(pos maze.CellPosition) {
	r.goal = &pos
}

func (r *recordingSurface) DrawPrediction(pos maze.CellPosition) {
	r.prediction = &pos
}

func newTestDriver(t *testing.T, opts Options) (*Driver, *manualScheduler, *recordingSurface, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	sched := &manualScheduler{}
	surface := newRecordingSurface()
	d, err := NewDriver(DriverConfig{
		Options:   opts,
		Scheduler: sched,
		Surface:   surface,
		Logger:    log.New(&buf, "", 0),
	})
	require.NoError(t, err)
	return d, sched, surface, &buf
}

func TestNewDriver(t *testing.T) {
	opts := Options{Width: 3, Height: 3, Variant: agent.ExplorerVariant}

	_, err := NewDriver(DriverConfig{Options: opts})
	assert.ErrorIs(t, err, ErrNilScheduler)

	_, err = NewDriver(DriverConfig{Options: opts, Scheduler: &manualScheduler{}, Delay: 50 * time.Millisecond})
	assert.ErrorIs(t, err, ErrInvalidDelay)

	_, err = NewDriver(DriverConfig{Options: opts, Scheduler: &manualScheduler{}, Policy: "greedy"})
	assert.ErrorIs(t, err, agent.ErrUnknownPolicy)

	_, err = NewDriver(DriverConfig{Options: Options{Width: 3, Height: 3, Variant: "wanderer"}, Scheduler: &manualScheduler{}})
	assert.ErrorIs(t, err, ErrUnknownVariant)

	d, _, surface, _ := newTestDriver(t, Options{Width: 4, Height: 3, Variant: agent.SeekerVariant, Seed: 2, Start: at(0, 0), Goal: at(2, 3)})
	f := d.Snapshot()
	assert.Len(t, surface.cells, 12)
	assert.Len(t, surface.walls, len(f.Walls))
	assert.Equal(t, maze.CellPosition{}, surface.agent)
	assert.Equal(t, f.Goal, surface.goal)
	assert.Equal(t, 30*time.Millisecond, d.Delay())
}

func TestDriverStartPause(t *testing.T) {
	d, sched, surface, logs := newTestDriver(t, Options{Width: 5, Height: 5, Variant: agent.ExplorerVariant, Seed: 1})

	d.Start()
	assert.True(t, d.Running())
	assert.Equal(t, int64(1), d.Snapshot().Tick)
	assert.Equal(t, 30*time.Millisecond, sched.delay)
	assert.Contains(t, logs.String(), "started")

	require.True(t, sched.fire())
	assert.Equal(t, int64(2), d.Snapshot().Tick)

	d.Start()
	assert.Equal(t, int64(2), d.Snapshot().Tick, "start while running must not tick")

	require.NoError(t, d.SetDelay(10*time.Millisecond))
	require.True(t, sched.fire())
	assert.Equal(t, 10*time.Millisecond, sched.delay)
	assert.Equal(t, int64(3), d.Snapshot().Tick)

	stale := sched.next
	d.Pause()
	assert.False(t, d.Running())
	assert.False(t, sched.fire())
	stale()
	assert.Equal(t, int64(3), d.Snapshot().Tick, "callbacks after pause must not tick")
	assert.Contains(t, logs.String(), "paused")

	d.Pause()
	assert.Equal(t, 2, sched.cancels)

	d.Start()
	assert.Equal(t, int64(4), d.Snapshot().Tick)
	assert.Equal(t, d.Snapshot().Agent, surface.agent)
}

func TestDriverSettings(t *testing.T) {
	d, _, _, _ := newTestDriver(t, Options{Width: 3, Height: 3, Variant: agent.SeekerVariant})

	for _, delay := range Delays {
		assert.NoError(t, d.SetDelay(delay))
		assert.Equal(t, delay, d.Delay())
	}
	assert.ErrorIs(t, d.SetDelay(0), ErrInvalidDelay)
	assert.ErrorIs(t, d.SetDelay(time.Second), ErrInvalidDelay)
	assert.Equal(t, time.Millisecond, d.Delay())

	assert.NoError(t, d.SetPolicy(agent.DistancePolicy))
	assert.ErrorIs(t, d.SetPolicy("greedy"), agent.ErrUnknownPolicy)
}

func TestDriverReset(t *testing.T) {
	d, _, surface, logs := newTestDriver(t, Options{Width: 4, Height: 4, Variant: agent.SeekerVariant, Seed: 1})
	for i := 0; i < 5; i++ {
		d.Tick()
	}
	before := d.Snapshot()

	require.NoError(t, d.Reset(77))
	after := d.Snapshot()
	assert.NotEqual(t, before.ID, after.ID)
	assert.Zero(t, after.Tick)
	assert.Equal(t, after.Agent, surface.agent)
	assert.Equal(t, after.Goal, surface.goal)
	assert.Contains(t, logs.String(), "seed 77")

	again, err := NewSimulation(Options{Width: 4, Height: 4, Variant: agent.SeekerVariant, Seed: 77})
	require.NoError(t, err)
	assert.Equal(t, again.Frame().Walls, after.Walls)
}

func TestDriverTick(t *testing.T) {
	var ticks []int64
	sched := &manualScheduler{}
	surface := newRecordingSurface()
	d, err := NewDriver(DriverConfig{
		Options:   Options{Width: 3, Height: 3, Variant: agent.LearnerVariant, Seed: 4, Start: at(0, 0), Goal: at(2, 2)},
		Scheduler: sched,
		Surface:   surface,
		Logger:    log.New(&bytes.Buffer{}, "", 0),
		OnTick: func(_ agent.StepResult, tick int64) {
			ticks = append(ticks, tick)
		},
	})
	require.NoError(t, err)

	res := d.Tick()
	require.True(t, res.Bumped)
	assert.True(t, surface.walls[maze.WallSegment{Row: 0, Col: 0}])

	for i := 0; i < 200; i++ {
		res = d.Tick()
		if res.Predicted != nil {
			require.NotNil(t, surface.prediction)
			assert.Equal(t, *res.Predicted, *surface.prediction)
		}
		assert.Equal(t, d.Snapshot().Agent, surface.agent)
	}
	assert.Len(t, ticks, 201)
	assert.Equal(t, int64(201), ticks[200])
	assert.Nil(t, sched.next, "manual ticks must not schedule")

	f := d.Snapshot()
	for i, visits := range f.Visits {
		pos := maze.CellPosition{Row: i / 3, Col: i % 3}
		if pos == f.Agent {
			continue
		}
		assert.Equal(t, visits, surface.cells[pos], "cell %v", pos)
	}
	assert.Equal(t, f.Goal, surface.goal)
}

func TestDriverRun(t *testing.T) {
	t.Run("stops after the tick budget", func(t *testing.T) {
		d, sched, _, _ := newTestDriver(t, Options{Width: 4, Height: 4, Variant: agent.SeekerVariant, Seed: 6})
		require.NoError(t, d.SetDelay(time.Millisecond))

		f, err := d.Run(context.Background(), 25)
		require.NoError(t, err)
		assert.Equal(t, int64(25), f.Tick)
		assert.Nil(t, sched.next)
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		d, _, _, _ := newTestDriver(t, Options{Width: 4, Height: 4, Variant: agent.ExplorerVariant})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f, err := d.Run(ctx, 0)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, f.Tick)
	})
}

func TestTimerScheduler(t *testing.T) {
	d, err := NewDriver(DriverConfig{
		Options:   Options{Width: 6, Height: 6, Variant: agent.ExplorerVariant, Seed: 9},
		Scheduler: NewTimerScheduler(),
		Delay:     time.Millisecond,
		Logger:    log.New(&bytes.Buffer{}, "", 0),
	})
	require.NoError(t, err)

	d.Start()
	assert.Eventually(t, func() bool {
		return d.Snapshot().Tick >= 10
	}, 2*time.Second, 5*time.Millisecond)
	d.Pause()

	paused := d.Snapshot().Tick
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, paused, d.Snapshot().Tick)
}
