package persistence

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/saeid-a/FitJourney/internal/models"
	"github.com/saeid-a/FitJourney/internal/onboarding"
	"go.uber.org/zap"
)

// Subscriber writes controller changes through a Gateway. The profile is
// only stored once it has a name, and the feed only once it has posts.
//
// OnChange only records the latest snapshot per key; the writes happen in
// Run (or Flush), off the controller lock.
type Subscriber struct {
	gateway *Gateway
	logger  *zap.Logger

	mu      sync.Mutex
	pending map[string]pendingWrite
	wake    chan struct{}
}

// pendingWrite is either a snapshot to store or a delete.
type pendingWrite struct {
	remove  bool
	profile *models.UserProfile
	posts   []models.CommunityPost
}

func NewSubscriber(gateway *Gateway, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{
		gateway: gateway,
		logger:  logger,
		pending: make(map[string]pendingWrite),
		wake:    make(chan struct{}, 1),
	}
}

func (s *Subscriber) OnChange(change onboarding.Change) {
	switch change.Kind {
	case onboarding.ProfileChanged:
		if change.Profile.Name == "" {
			return
		}
		profile := change.Profile
		s.enqueue(onboarding.ProfileKey, pendingWrite{profile: &profile})
	case onboarding.PostsChanged:
		if len(change.Posts) == 0 {
			return
		}
		s.enqueue(onboarding.PostsKey, pendingWrite{posts: change.Posts})
	case onboarding.ProfileReset:
		s.enqueue(onboarding.ProfileKey, pendingWrite{remove: true})
	default:
		s.logger.Warn("ignoring unknown change", zap.Stringer("kind", change.Kind))
	}
}

// enqueue replaces any unwritten snapshot for key and wakes the writer.
func (s *Subscriber) enqueue(key string, w pendingWrite) {
	s.mu.Lock()
	s.pending[key] = w
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run writes pending snapshots until ctx is done, then flushes once more
// so the last change before shutdown reaches the store. Each write is
// bounded by the gateway timeout, not by ctx.
func (s *Subscriber) Run(ctx context.Context) {
	writeCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			s.Flush(writeCtx)
			return
		case <-s.wake:
			s.Flush(writeCtx)
		}
	}
}

// Flush writes every pending snapshot and returns once they are stored or
// have failed.
func (s *Subscriber) Flush(ctx context.Context) {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[string]pendingWrite)
	s.mu.Unlock()

	for _, key := range []string{onboarding.ProfileKey, onboarding.PostsKey} {
		w, ok := batch[key]
		if !ok {
			continue
		}
		s.write(ctx, key, w)
	}
}

func (s *Subscriber) write(ctx context.Context, key string, w pendingWrite) {
	if w.remove {
		s.gateway.Remove(ctx, key)
		return
	}

	var (
		data []byte
		err  error
	)
	if w.profile != nil {
		data, err = json.Marshal(w.profile)
	} else {
		data, err = json.Marshal(w.posts)
	}
	if err != nil {
		s.logger.Error("encode snapshot failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.gateway.Save(ctx, key, data)
}
