// Package syncer pushes the session snapshot to the remote sync store after a
// quiet period. Each new edit supersedes any pending push, so rapid successive
// edits coalesce into one write and only the latest snapshot lands.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/havenlab/haven/internal/cloud"
	"github.com/havenlab/haven/internal/events"
	"github.com/havenlab/haven/internal/record"
)

const flushTimeout = 15 * time.Second

type pendingPush struct {
	userID string
	snap   record.Snapshot
}

type Syncer struct {
	client   cloud.Client
	events   events.Client
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending *pendingPush
	status  string

	kick chan struct{}

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(client cloud.Client, ev events.Client, debounce time.Duration, logger *slog.Logger) *Syncer {
	return &Syncer{
		client:   client,
		events:   ev,
		debounce: debounce,
		logger:   logger,
		status:   "idle",
		kick:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

func (s *Syncer) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop flushes any pending push and waits for the loop to exit.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

// Schedule records the latest snapshot for the user and restarts the debounce
// window. An earlier unsent snapshot is discarded.
func (s *Syncer) Schedule(userID string, snap record.Snapshot) {
	s.mu.Lock()
	s.pending = &pendingPush{userID: userID, snap: snap}
	s.status = "pending"
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Status reports the last observed sync state: idle, pending, syncing,
// synced, or error.
func (s *Syncer) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) loop(ctx context.Context) {
	defer s.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-s.stopCh:
			if timer != nil {
				timer.Stop()
			}
			s.flush()
			return
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-s.kick:
			if timer == nil {
				timer = time.NewTimer(s.debounce)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timerC:
				default:
				}
			}
			timer.Reset(s.debounce)
		case <-timerC:
			timer = nil
			timerC = nil
			s.flush()
		}
	}
}

// flush pushes the pending snapshot, if any. Failures leave local state
// authoritative; they are reported through status and events, never fatal.
func (s *Syncer) flush() {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	if p != nil {
		s.status = "syncing"
	}
	s.mu.Unlock()

	if p == nil {
		return
	}

	syncAttempts.Inc()
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	err := s.client.Upsert(ctx, p.userID, p.snap)

	s.mu.Lock()
	if err != nil {
		s.status = "error"
	} else if s.pending == nil {
		s.status = "synced"
	}
	s.mu.Unlock()

	if err != nil {
		syncFailures.Inc()
		s.logger.Warn("sync push failed", "user_id", p.userID, "error", err)
		if s.events != nil {
			_ = s.events.Publish(events.SubjectSyncFailed, events.SyncEvent{UserID: p.userID, Error: err.Error()})
		}
		return
	}

	s.logger.Info("sync push complete", "user_id", p.userID, "properties", len(p.snap.Properties))
	if s.events != nil {
		_ = s.events.Publish(events.SubjectSyncCompleted, events.SyncEvent{UserID: p.userID})
	}
}
