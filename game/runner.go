package game

import (
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Runner plays matches on a separate goroutine, one tick per interval, and
// publishes a Snapshot after every tick.
type Runner struct {
	game         *Game
	interval     time.Duration
	matches      int
	snapshotChan chan Snapshot
	controlChan  chan bool // stop signal
	done         chan struct{}
	wg           sync.WaitGroup
	mutex        sync.RWMutex
	isRunning    bool
	played       int
	onFrame      func(Snapshot)
	logger       log.Logger
}

// NewRunner plays matches back to back on game. matches <= 0 plays until
// Stop is called. A zero interval runs the ticks unpaced.
func NewRunner(game *Game, interval time.Duration, matches int, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{
		game:         game,
		interval:     interval,
		matches:      matches,
		snapshotChan: make(chan Snapshot, 1), // room for the newest frame only
		controlChan:  make(chan bool, 1),
		done:         make(chan struct{}),
		logger:       logger,
	}
}

// OnFrame registers a callback invoked with every published snapshot on the
// runner goroutine. Set it before Start.
func (r *Runner) OnFrame(fn func(Snapshot)) {
	r.onFrame = fn
}

// Snapshots delivers the latest frames. Frames are dropped when the reader
// falls behind.
func (r *Runner) Snapshots() <-chan Snapshot {
	return r.snapshotChan
}

// Done is closed once the runner has stopped.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) Start() {
	r.mutex.Lock()
	if r.isRunning {
		r.mutex.Unlock()
		return
	}
	r.isRunning = true
	r.mutex.Unlock()

	r.wg.Add(1)
	go r.loop()
}

// Stop halts the loop and waits for it to exit.
func (r *Runner) Stop() {
	r.mutex.Lock()
	if !r.isRunning {
		r.mutex.Unlock()
		return
	}
	r.isRunning = false
	r.mutex.Unlock()

	select {
	case r.controlChan <- true:
	default:
	}
	r.wg.Wait()
}

// Played returns the number of finished matches.
func (r *Runner) Played() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.played
}

func (r *Runner) loop() {
	defer r.wg.Done()
	defer close(r.done)
	defer func() {
		r.mutex.Lock()
		r.isRunning = false
		r.mutex.Unlock()
	}()

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	r.game.Start()
	for {
		if tick != nil {
			select {
			case <-r.controlChan:
				return
			case <-tick:
			}
		} else {
			select {
			case <-r.controlChan:
				return
			default:
			}
		}

		res := r.game.Update()
		r.publish(r.game.Snapshot())
		if !res.Ended {
			continue
		}

		r.mutex.Lock()
		r.played++
		played := r.played
		r.mutex.Unlock()

		if r.matches > 0 && played >= r.matches {
			_ = level.Debug(r.logger).Log("msg", "runner finished", "matches", played)
			return
		}
		r.game.Reset()
		r.game.Start()
	}
}

func (r *Runner) publish(snap Snapshot) {
	if r.onFrame != nil {
		r.onFrame(snap)
	}
	select {
	case r.snapshotChan <- snap:
	default:
		// drop the stale frame and keep the newest one
		select {
		case <-r.snapshotChan:
		default:
		}
		select {
		case r.snapshotChan <- snap:
		default:
		}
	}
}
