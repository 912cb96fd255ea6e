// Package session owns the decision session: the property collection and the
// active raw weight set. It is the only stateful layer — the scoring and
// weight engines stay pure functions of what the session hands them. Every
// mutating operation flushes to the local store and, when a user is signed in,
// schedules a debounced push to the remote sync store.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/havenlab/haven/internal/cloud"
	"github.com/havenlab/haven/internal/events"
	"github.com/havenlab/haven/internal/record"
	"github.com/havenlab/haven/internal/scoring"
	"github.com/havenlab/haven/internal/store"
	"github.com/havenlab/haven/internal/syncer"
	"github.com/havenlab/haven/internal/weights"
)

type Session struct {
	store  store.Store
	cloud  cloud.Client
	syncer *syncer.Syncer
	events events.Client
	logger *slog.Logger

	mu         sync.Mutex
	properties []record.Property
	rawWeights weights.Raw
	userID     string
}

// New builds a session from the local store. Malformed or missing persisted
// data degrades to an empty collection and equal weights; it is never fatal.
func New(s store.Store, c cloud.Client, sy *syncer.Syncer, ev events.Client, logger *slog.Logger) *Session {
	sess := &Session{
		store:      s,
		cloud:      c,
		syncer:     sy,
		events:     ev,
		logger:     logger,
		rawWeights: weights.Equal(),
	}
	sess.loadLocal()
	return sess
}

func (s *Session) loadLocal() {
	if data, err := s.store.Load(store.KeyProperties); err != nil {
		s.logger.Warn("failed to load properties, starting empty", "error", err)
	} else if data != nil {
		props, err := record.DecodeProperties(data)
		if err != nil {
			s.logger.Warn("malformed stored properties, starting empty", "error", err)
		} else {
			s.properties = props
		}
	}

	if data, err := s.store.Load(store.KeyWeights); err != nil {
		s.logger.Warn("failed to load weights, using equal weights", "error", err)
	} else if data != nil {
		stored, err := record.DecodeRawWeights(data)
		if err != nil {
			s.logger.Warn("malformed stored weights, using equal weights", "error", err)
		} else {
			s.rawWeights = weights.Hydrate(stored)
		}
	}
}

// AddProperty appends the property, flushes, and schedules a sync.
func (s *Session) AddProperty(p record.Property) error {
	s.mu.Lock()
	s.properties = append(s.properties, p)
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.scheduleSync()
	if s.events != nil {
		_ = s.events.Publish(events.SubjectPropertyAdded(p.ID), events.PropertyEvent{PropertyID: p.ID, Address: p.Address})
	}
	return nil
}

// DeleteProperty removes the property by id, preserving the order of the
// remainder. It reports whether the id existed.
func (s *Session) DeleteProperty(id string) (bool, error) {
	s.mu.Lock()
	before := len(s.properties)
	s.properties = record.DeleteByID(s.properties, id)
	removed := len(s.properties) < before
	var err error
	if removed {
		err = s.persistLocked()
	}
	s.mu.Unlock()
	if err != nil {
		return removed, err
	}
	if removed {
		s.scheduleSync()
		if s.events != nil {
			_ = s.events.Publish(events.SubjectPropertyDeleted(id), events.PropertyEvent{PropertyID: id})
		}
	}
	return removed, nil
}

// SetRawWeights replaces the active raw weight set. Input is hydrated first:
// missing, non-numeric, or negative entries become 0.
func (s *Session) SetRawWeights(stored map[string]float64) error {
	raw := weights.Hydrate(stored)
	s.mu.Lock()
	s.rawWeights = raw
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.scheduleSync()
	if s.events != nil {
		_ = s.events.Publish(events.SubjectWeightsUpdated, events.WeightsEvent{RawWeights: raw})
	}
	return nil
}

// ApplyPreset replaces the raw weights with a named preset. It reports whether
// the preset exists.
func (s *Session) ApplyPreset(name string) (bool, error) {
	raw, ok := weights.Preset(name)
	if !ok {
		return false, nil
	}
	s.mu.Lock()
	s.rawWeights = raw
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return true, err
	}
	s.scheduleSync()
	if s.events != nil {
		_ = s.events.Publish(events.SubjectWeightsUpdated, events.WeightsEvent{RawWeights: raw, Preset: name})
	}
	return true, nil
}

// Properties returns a copy of the collection in insertion order.
func (s *Session) Properties() []record.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// Property returns the property with the given id, or nil.
func (s *Session) Property(id string) *record.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.ID == id {
			copied := p
			return &copied
		}
	}
	return nil
}

// RawWeights returns a copy of the persisted-shape raw weights.
func (s *Session) RawWeights() weights.Raw {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(weights.Raw, len(s.rawWeights))
	for k, v := range s.rawWeights {
		out[k] = v
	}
	return out
}

// NormalizedWeights recomputes the distribution from the current raw set.
func (s *Session) NormalizedWeights() weights.Distribution {
	return weights.Normalize(s.RawWeights())
}

// Insights runs the analyzer over the current collection and weights.
func (s *Session) Insights() (*scoring.Insights, error) {
	return scoring.Analyze(s.Properties(), s.NormalizedWeights())
}

// PropertyBreakdown is one property's full weighted scoring explanation.
type PropertyBreakdown struct {
	ID         string                  `json:"id"`
	Address    string                  `json:"address"`
	Total      float64                 `json:"total"`
	Structural float64                 `json:"structural_score"`
	Categories []scoring.CategoryScore `json:"categories"`
}

// Breakdowns returns the weighted breakdown for every property, in insertion
// order.
func (s *Session) Breakdowns() ([]PropertyBreakdown, error) {
	props := s.Properties()
	d := s.NormalizedWeights()
	out := make([]PropertyBreakdown, 0, len(props))
	for _, p := range props {
		categories, total, err := scoring.Breakdown(p, d)
		if err != nil {
			return nil, err
		}
		out = append(out, PropertyBreakdown{
			ID:         p.ID,
			Address:    p.Address,
			Total:      total,
			Structural: p.StructuralScore,
			Categories: categories,
		})
	}
	return out, nil
}

// SignIn binds the session to a user identity and reconciles with the remote
// store: a non-empty remote snapshot replaces local state; an empty remote is
// seeded from local state. Two devices editing offline before their first sync
// resolve by last-write-wins at the store — the later writer silently keeps.
func (s *Session) SignIn(ctx context.Context, userID string) error {
	if s.cloud == nil {
		return fmt.Errorf("remote sync is not configured")
	}

	remote, err := s.cloud.Fetch(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch remote snapshot: %w", err)
	}

	s.mu.Lock()
	s.userID = userID
	if remote != nil {
		s.properties = remote.Snapshot.Properties
		if remote.Snapshot.RawWeights != nil {
			s.rawWeights = remote.Snapshot.RawWeights
		}
		if err := s.persistLocked(); err != nil {
			s.logger.Warn("failed to persist remote snapshot locally", "error", err)
		}
	}
	seed := remote == nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if seed {
		if err := s.cloud.Upsert(ctx, userID, snap); err != nil {
			s.logger.Warn("failed to seed remote store", "user_id", userID, "error", err)
		}
	}

	if s.events != nil {
		_ = s.events.Publish(events.SubjectSignedIn, events.SyncEvent{UserID: userID})
	}
	s.logger.Info("signed in", "user_id", userID, "remote_snapshot", remote != nil)
	return nil
}

// SignOut unbinds the user identity. Local state stays available.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.userID = ""
	s.mu.Unlock()
}

// UserID returns the signed-in user identity, or empty.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// SyncStatus reports the sync state for the UI surface.
func (s *Session) SyncStatus() string {
	if s.cloud == nil {
		return "local only"
	}
	if s.UserID() == "" {
		return "signed out"
	}
	if s.syncer == nil {
		return "idle"
	}
	return s.syncer.Status()
}

func (s *Session) snapshotLocked() record.Snapshot {
	props := make([]record.Property, len(s.properties))
	copy(props, s.properties)
	raw := make(weights.Raw, len(s.rawWeights))
	for k, v := range s.rawWeights {
		raw[k] = v
	}
	return record.Snapshot{Properties: props, RawWeights: raw, UpdatedAt: time.Now().UTC()}
}

// persistLocked flushes both storage keys. Callers hold s.mu.
func (s *Session) persistLocked() error {
	propertiesJSON, err := json.Marshal(s.properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	weightsJSON, err := json.Marshal(s.rawWeights)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	if err := s.store.Save(store.KeyProperties, propertiesJSON); err != nil {
		return err
	}
	return s.store.Save(store.KeyWeights, weightsJSON)
}

func (s *Session) scheduleSync() {
	if s.syncer == nil {
		return
	}
	s.mu.Lock()
	userID := s.userID
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if userID == "" {
		return
	}
	s.syncer.Schedule(userID, snap)
}
