package onboarding

import (
	"context"
	"encoding/json"

	"github.com/saeid-a/FitJourney/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Storage keys for the two independently serialised records.
const (
	ProfileKey = "fitnessProfile"
	PostsKey   = "communityPosts"
)

// Loader reads a stored record. ok is false when the key is absent or the
// store could not be read.
type Loader interface {
	Load(ctx context.Context, key string) (data []byte, ok bool)
}

// Restore rebuilds the startup state. Each record falls back on its own: a
// missing or unreadable profile yields the empty profile on the landing
// page, a missing or unreadable feed yields the seed posts. A stored profile
// with a name resumes on the dashboard.
func Restore(ctx context.Context, loader Loader, logger *zap.Logger) State {
	var (
		profileData, postsData []byte
		profileOK, postsOK     bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profileData, profileOK = loader.Load(gctx, ProfileKey)
		return nil
	})
	g.Go(func() error {
		postsData, postsOK = loader.Load(gctx, PostsKey)
		return nil
	})
	_ = g.Wait()

	state := DefaultState()

	if profileOK {
		var profile models.UserProfile
		if err := json.Unmarshal(profileData, &profile); err != nil {
			logger.Warn("stored profile is unreadable, starting fresh", zap.Error(err))
		} else {
			state.Profile = profile
			if profile.Name != "" {
				state.Step = StepDashboard
			}
		}
	}

	if postsOK {
		var posts []models.CommunityPost
		if err := json.Unmarshal(postsData, &posts); err != nil {
			logger.Warn("stored community posts are unreadable, using seed posts", zap.Error(err))
		} else if posts != nil {
			state.Posts = posts
		}
	}

	return state
}
