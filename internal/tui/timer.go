package tui

import "time"

// timerState tracks the current state of the countdown.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// timerModel is a pausable countdown. It holds no storage; the focus view
// persists sessions around it.
type timerModel struct {
	state     timerState
	duration  time.Duration
	startTime time.Time
	pausedAt  time.Time
	pauseGap  time.Duration

	// now is replaced in tests.
	now func() time.Time
}

func newTimerModel() timerModel {
	return timerModel{now: time.Now}
}

func (t *timerModel) start(d time.Duration) {
	t.state = timerRunning
	t.duration = d
	t.startTime = t.now()
	t.pauseGap = 0
}

// stop halts the countdown and returns the time spent running.
func (t *timerModel) stop() time.Duration {
	if t.state == timerStopped {
		return 0
	}
	elapsed := t.elapsed()
	t.state = timerStopped
	return elapsed
}

func (t *timerModel) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pausedAt = t.now()
}

func (t *timerModel) resume() {
	if t.state != timerPaused {
		return
	}
	t.pauseGap += t.now().Sub(t.pausedAt)
	t.state = timerRunning
}

func (t *timerModel) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

func (t timerModel) running() bool {
	return t.state != timerStopped
}

func (t timerModel) paused() bool {
	return t.state == timerPaused
}

// elapsed is capped at the countdown's duration.
func (t timerModel) elapsed() time.Duration {
	var e time.Duration
	switch t.state {
	case timerStopped:
		return 0
	case timerPaused:
		e = t.pausedAt.Sub(t.startTime) - t.pauseGap
	default:
		e = t.now().Sub(t.startTime) - t.pauseGap
	}
	return min(max(e, 0), t.duration)
}

func (t timerModel) remaining() time.Duration {
	if t.state == timerStopped {
		return t.duration
	}
	return t.duration - t.elapsed()
}

func (t timerModel) finished() bool {
	return t.state == timerRunning && t.remaining() <= 0
}
