package tracker

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ultima-todo-api/internal/store"
)

// PomodoroSeconds is the fixed countdown length of a pomodoro session.
const PomodoroSeconds = 25 * 60

// TimerState is an explicit snapshot of the single global timer. Exactly one
// task may be accumulating time at any instant; in pomodoro mode the timer
// is the countdown instead and is not tied to any task id.
type TimerState struct {
	Pomodoro  bool      `json:"pomodoro"`
	Running   bool      `json:"running"`
	TaskID    uint      `json:"task_id,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
	Remaining int       `json:"remaining,omitempty"`
}

// Notify delivers a timer event to whoever owns the session (e.g. over the
// websocket hub). May be nil.
type Notify func(userID string, event string, payload map[string]any)

// Tracker owns the global timer state. All transitions go through Toggle,
// SetPomodoro and Tick under one mutex; there are no shared mutable flags
// outside of it.
type Tracker struct {
	mu        sync.Mutex
	userID    string
	taskID    uint // 0 when no task timer is active
	startedAt time.Time
	pomodoro  bool
	remaining int
	running   bool

	notify Notify
	stop   chan struct{}
	once   sync.Once
}

func New(notify Notify) *Tracker {
	return &Tracker{
		notify:    notify,
		remaining: PomodoroSeconds,
		stop:      make(chan struct{}),
	}
}

var (
	instance     *Tracker
	instanceOnce sync.Once
)

// Get returns the singleton tracker used by the HTTP handlers.
func Get() *Tracker {
	instanceOnce.Do(func() {
		instance = New(nil)
	})
	return instance
}

// SetNotify wires the event sink. Called once during startup.
func (t *Tracker) SetNotify(notify Notify) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notify = notify
}

// Start launches the once-per-second tick loop.
func (t *Tracker) Start() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				t.Tick()
			}
		}
	}()
}

// Stop terminates the tick loop. Idempotent.
func (t *Tracker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// State returns a snapshot of the current timer state.
func (t *Tracker) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Tracker) stateLocked() TimerState {
	s := TimerState{
		Pomodoro: t.pomodoro,
		Running:  t.running,
	}
	if t.pomodoro {
		s.Remaining = t.remaining
	} else if t.running {
		s.TaskID = t.taskID
		s.StartedAt = t.startedAt
	}
	return s
}

// Toggle starts or pauses the timer for a task.
//
// With pomodoro mode engaged the task id is ignored and the countdown is
// paused or resumed instead. Otherwise: toggling the active task pauses it,
// freezing its tracked time at the last whole second; toggling any other
// task stops the previous timer and starts the new one, so at most one
// timer is ever active.
func (t *Tracker) Toggle(userID string, taskID uint) TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pomodoro {
		t.running = !t.running
		t.userID = userID
		return t.stateLocked()
	}

	if t.running && t.taskID == taskID {
		t.running = false
		t.taskID = 0
		return t.stateLocked()
	}

	t.userID = userID
	t.taskID = taskID
	t.startedAt = time.Now()
	t.running = true
	return t.stateLocked()
}

// SetPomodoro switches the timer between task-tracking and pomodoro mode.
// Entering pomodoro mode stops any active task timer and arms a fresh
// countdown, paused until toggled.
func (t *Tracker) SetPomodoro(userID string, enabled bool) TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.userID = userID
	t.pomodoro = enabled
	t.running = false
	t.taskID = 0
	t.remaining = PomodoroSeconds
	return t.stateLocked()
}

// Tick advances the timer by one second. In task mode it adds exactly one
// tracked second to the active task; in pomodoro mode it counts the session
// down and, on reaching zero, fires one break notification, re-arms the
// countdown and pauses it until explicitly restarted.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	if t.pomodoro {
		t.remaining--
		if t.remaining <= 0 {
			t.remaining = PomodoroSeconds
			t.running = false
			log.Info().Str("user_id", t.userID).Msg("pomodoro finished")
			if t.notify != nil {
				t.notify(t.userID, "pomodoro_break", map[string]any{
					"message": "Time for a break!",
				})
			}
		}
		return
	}

	// The in-memory timer keeps running even if persistence fails; the
	// failure is reported, not rolled back.
	if err := store.IncrementTimeTracked(t.taskID); err != nil {
		log.Error().Err(err).Uint("task_id", t.taskID).Msg("failed to persist tracked second")
	}
}
