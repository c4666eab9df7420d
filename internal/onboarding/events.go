package onboarding

import "github.com/saeid-a/FitJourney/internal/models"

type ChangeKind int

const (
	ProfileChanged ChangeKind = iota + 1
	PostsChanged
	ProfileReset
)

func (k ChangeKind) String() string {
	switch k {
	case ProfileChanged:
		return "profile_changed"
	case PostsChanged:
		return "posts_changed"
	case ProfileReset:
		return "profile_reset"
	default:
		return "unknown"
	}
}

// Change carries copies of the state after a mutation.
type Change struct {
	Kind    ChangeKind
	Profile models.UserProfile
	Posts   []models.CommunityPost
}

// Listener receives every change in mutation order. OnChange runs while the
// controller lock is held and must not call back into the controller.
type Listener interface {
	OnChange(Change)
}

type ListenerFunc func(Change)

func (f ListenerFunc) OnChange(c Change) { f(c) }
