// Package onboarding implements the wizard that takes a new user from the
// landing page to the dashboard, one validated step at a time.
//
// The Controller owns the step index, the profile being built and the
// community feed. Every exported operation runs to completion under a single
// mutex, so concurrent HTTP requests observe the same exclusive, one-at-a-time
// ordering a single-threaded UI would. After each mutation the controller
// notifies its listeners; persistence and the live feed are listeners, not
// part of the state machine.
package onboarding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/saeid-a/FitJourney/internal/catalog"
	"github.com/saeid-a/FitJourney/internal/models"
)

// TargetWorkouts is the number of workouts that counts as 100% progress.
const TargetWorkouts = 20

// CaloriesPerWorkout is the flat estimate used by the dashboard counters.
const CaloriesPerWorkout = 450

// State is a point-in-time copy of everything the controller owns.
type State struct {
	Step    Step                   `json:"step"`
	Profile models.UserProfile     `json:"profile"`
	Posts   []models.CommunityPost `json:"posts"`
}

type Controller struct {
	mu        sync.Mutex
	step      Step
	profile   models.UserProfile
	posts     []models.CommunityPost
	draft     BiometricsDraft
	catalog   *catalog.Catalog
	listeners []Listener
	newID     func() string
	photos    photoTracker
}

type Option func(*Controller)

func WithListener(l Listener) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, l) }
}

func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

func WithPhotoDecoder(d PhotoDecoder) Option {
	return func(c *Controller) { c.photos.decode = d }
}

// New builds a controller around a previously restored state. A zero State
// is not valid; use DefaultState for a first run.
func New(cat *catalog.Catalog, initial State, opts ...Option) *Controller {
	baseCtx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		step:    initial.Step,
		profile: initial.Profile.Clone(),
		posts:   models.ClonePosts(initial.Posts),
		catalog: cat,
		newID:   uuid.NewString,
		photos: photoTracker{
			baseCtx:    baseCtx,
			cancelBase: cancel,
			decode:     EncodeDataURI,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultState is the first-run state: landing page, empty profile, seed feed.
func DefaultState() State {
	return State{
		Step:    StepLanding,
		Profile: models.UserProfile{},
		Posts:   SeedPosts(),
	}
}

// Subscribe adds a listener after construction.
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	return State{
		Step:    c.step,
		Profile: c.profile.Clone(),
		Posts:   models.ClonePosts(c.posts),
	}
}

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) Profile() models.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

func (c *Controller) Posts() []models.CommunityPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.ClonePosts(c.posts)
}

// Draft returns the last biometrics form input, accepted or not.
func (c *Controller) Draft() BiometricsDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.draft
	if d.Sex != nil {
		sex := *d.Sex
		d.Sex = &sex
	}
	return d
}

func (c *Controller) emitLocked(kind ChangeKind) {
	if len(c.listeners) == 0 {
		return
	}
	change := Change{Kind: kind}
	switch kind {
	case PostsChanged:
		change.Posts = models.ClonePosts(c.posts)
	default:
		change.Profile = c.profile.Clone()
	}
	for _, l := range c.listeners {
		l.OnChange(change)
	}
}

// advance checks that the wizard is at from, applies mutate and moves one
// step forward. A nil or failing mutate leaves the profile untouched.
func (c *Controller) advance(from Step, mutate func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != from {
		return fmt.Errorf("%w: expected step %s, at %s", ErrInvalidStateTransition, from, c.step)
	}
	if mutate != nil {
		if err := mutate(); err != nil {
			return err
		}
	}
	c.step = from + 1
	if mutate != nil {
		c.emitLocked(ProfileChanged)
	}
	return nil
}

// Start leaves the landing page.
func (c *Controller) Start() error {
	return c.advance(StepLanding, nil)
}

func (c *Controller) SubmitName(raw string) error {
	name := strings.TrimSpace(raw)
	return c.advance(StepName, func() error {
		if name == "" {
			return fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		c.profile.Name = name
		return nil
	})
}

func (c *Controller) SelectGoal(goal models.Goal) error {
	return c.advance(StepGoal, func() error {
		if !goal.Valid() {
			return fmt.Errorf("%w: goal must be one of: weight-loss, weight-gain, endurance", ErrInvalidInput)
		}
		c.profile.Goal = models.Ptr(goal)
		return nil
	})
}

// SubmitBiometrics parses the raw form fields, derives BMI and its category
// together, and merges them into the profile.
func (c *Controller) SubmitBiometrics(draft BiometricsDraft) error {
	c.mu.Lock()
	c.draft = draft
	if draft.Sex != nil {
		sex := *draft.Sex
		c.draft.Sex = &sex
	}
	c.mu.Unlock()

	return c.advance(StepBiometrics, func() error {
		parsed, err := parseBiometrics(draft)
		if err != nil {
			return err
		}
		bmi := CalculateBMI(parsed.weight, parsed.height)
		b := &c.profile.Biometrics
		b.AgeYears = models.Ptr(parsed.age)
		b.WeightKG = models.Ptr(parsed.weight)
		b.HeightCM = models.Ptr(parsed.height)
		b.Sex = models.Ptr(parsed.sex)
		b.BMI = models.Ptr(bmi)
		b.BMICategory = models.Ptr(BMICategory(bmi))
		return nil
	})
}

func (c *Controller) SelectActivityLevel(level models.ActivityLevel) error {
	return c.advance(StepActivityLevel, func() error {
		if !level.Valid() {
			return fmt.Errorf("%w: activity_level must be one of: sedentary, light, moderate, very-active, extra-active", ErrInvalidInput)
		}
		c.profile.Biometrics.ActivityLevel = models.Ptr(level)
		return nil
	})
}

func (c *Controller) SelectExperienceLevel(level models.ExperienceLevel) error {
	return c.advance(StepExperienceLevel, func() error {
		if !level.Valid() {
			return fmt.Errorf("%w: experience_level must be one of: beginner, intermediate, advanced", ErrInvalidInput)
		}
		c.profile.ExperienceLevel = models.Ptr(level)
		return nil
	})
}

func (c *Controller) SelectTrainingLocation(location models.TrainingLocation) error {
	return c.advance(StepLocation, func() error {
		if !location.Valid() {
			return fmt.Errorf("%w: training_location must be one of: gym, home", ErrInvalidInput)
		}
		c.profile.TrainingLocation = models.Ptr(location)
		return nil
	})
}

func (c *Controller) SelectPlan(plan models.SubscriptionPlan) error {
	return c.advance(StepPlan, func() error {
		if !plan.Valid() {
			return fmt.Errorf("%w: subscription_plan must be one of: essential, premium", ErrInvalidInput)
		}
		c.profile.SubscriptionPlan = models.Ptr(plan)
		return nil
	})
}

func (c *Controller) ConfirmAndEnterDashboard() error {
	return c.advance(StepSummary, nil)
}

// CompleteWorkout is not tied to a step; callers only offer it on the dashboard.
func (c *Controller) CompleteWorkout() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile.CompletedWorkoutCount++
	c.emitLocked(ProfileChanged)
	return c.profile.CompletedWorkoutCount
}

// SharePost prepends a new post authored by the current profile. A blank
// body is refused; otherwise the text is stored as given.
func (c *Controller) SharePost(body string) (models.CommunityPost, error) {
	if strings.TrimSpace(body) == "" {
		return models.CommunityPost{}, fmt.Errorf("%w: post body is required", ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	post := models.CommunityPost{
		ID:           c.newID(),
		Author:       c.profile.Name,
		GoalLabel:    c.catalog.GoalLabel(c.profile.Goal),
		Body:         body,
		LikeCount:    0,
		CreatedLabel: newPostLabel,
	}
	posts := make([]models.CommunityPost, 0, len(c.posts)+1)
	posts = append(posts, post)
	c.posts = append(posts, c.posts...)
	c.emitLocked(PostsChanged)
	return post, nil
}

// LikePost adds one like. Likes are not deduplicated per user.
func (c *Controller) LikePost(id string) (models.CommunityPost, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.posts {
		if c.posts[i].ID == id {
			c.posts[i].LikeCount++
			c.emitLocked(PostsChanged)
			return c.posts[i], true
		}
	}
	return models.CommunityPost{}, false
}

// ResetProfile discards the profile and any pending input and returns to
// the landing page. The community feed is kept.
func (c *Controller) ResetProfile() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profile = models.UserProfile{}
	c.draft = BiometricsDraft{}
	c.photos.resetLocked()
	c.step = StepLanding
	c.emitLocked(ProfileReset)
}

// ProgressPercent is not clamped; more than TargetWorkouts yields over 100.
func (c *Controller) ProgressPercent() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return progressPercent(c.profile.CompletedWorkoutCount)
}

func progressPercent(completed int) float64 {
	return float64(completed) / TargetWorkouts * 100
}

func Stats(p models.UserProfile) models.DashboardStats {
	return models.DashboardStats{
		CompletedWorkouts: p.CompletedWorkoutCount,
		TargetWorkouts:    TargetWorkouts,
		RemainingWorkouts: TargetWorkouts - p.CompletedWorkoutCount,
		ProgressPercent:   progressPercent(p.CompletedWorkoutCount),
		CaloriesBurned:    p.CompletedWorkoutCount * CaloriesPerWorkout,
	}
}

type Dashboard struct {
	Profile     models.UserProfile    `json:"profile"`
	WorkoutPlan models.WorkoutPlan    `json:"workout_plan"`
	MealPlan    models.MealPlan       `json:"meal_plan"`
	Stats       models.DashboardStats `json:"stats"`
}

// Dashboard derives every dashboard view from the current profile.
func (c *Controller) Dashboard() Dashboard {
	p := c.Profile()
	return Dashboard{
		Profile:     p,
		WorkoutPlan: c.catalog.WorkoutPlan(p.Goal, p.TrainingLocation),
		MealPlan:    c.catalog.MealPlan(p.Goal),
		Stats:       Stats(p),
	}
}

type Summary struct {
	Profile models.UserProfile `json:"profile"`
	Labels  catalog.Labels     `json:"labels"`
}

func (c *Controller) Summary() Summary {
	p := c.Profile()
	return Summary{Profile: p, Labels: c.catalog.LabelsFor(p)}
}

func (c *Controller) WorkoutPlan() models.WorkoutPlan {
	p := c.Profile()
	return c.catalog.WorkoutPlan(p.Goal, p.TrainingLocation)
}

func (c *Controller) MealPlan() models.MealPlan {
	p := c.Profile()
	return c.catalog.MealPlan(p.Goal)
}
