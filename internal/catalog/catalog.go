// Package catalog holds the static workout and meal tables shown on the
// dashboard. The tables are parsed once from an embedded YAML document and
// never mutated afterwards; every accessor returns a copy.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/saeid-a/FitJourney/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// DefaultGoal is used for every lookup made before a goal has been chosen.
const DefaultGoal = models.GoalEndurance

type goalEntry struct {
	Label       string           `yaml:"label"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Gym         []models.Workout `yaml:"gym"`
	Home        []models.Workout `yaml:"home"`
	Meals       models.MealPlan  `yaml:"meals"`
}

type document struct {
	Goals map[models.Goal]goalEntry `yaml:"goals"`
}

type Catalog struct {
	goals map[models.Goal]goalEntry
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsing it on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(catalogYAML)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot continue without the tables.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, goal := range []models.Goal{models.GoalWeightLoss, models.GoalWeightGain, models.GoalEndurance} {
		entry, ok := doc.Goals[goal]
		if !ok {
			return nil, fmt.Errorf("catalog is missing goal %q", goal)
		}
		if len(entry.Gym) == 0 || len(entry.Home) == 0 {
			return nil, fmt.Errorf("catalog goal %q needs gym and home workouts", goal)
		}
		for i := range entry.Home {
			if entry.Home[i].Exercises == nil {
				entry.Home[i].Exercises = []models.Exercise{}
			}
		}
		doc.Goals[goal] = entry
	}
	return &Catalog{goals: doc.Goals}, nil
}

func (c *Catalog) entry(goal *models.Goal) goalEntry {
	if goal != nil {
		if e, ok := c.goals[*goal]; ok {
			return e
		}
	}
	return c.goals[DefaultGoal]
}

// WorkoutPlan picks the gym table only when the location is gym; an unset
// location falls back to the home table.
func (c *Catalog) WorkoutPlan(goal *models.Goal, location *models.TrainingLocation) models.WorkoutPlan {
	e := c.entry(goal)
	workouts := e.Home
	if location != nil && *location == models.LocationGym {
		workouts = e.Gym
	}
	return models.WorkoutPlan{
		Title:       e.Title,
		Description: e.Description,
		Workouts:    cloneWorkouts(workouts),
	}
}

func (c *Catalog) MealPlan(goal *models.Goal) models.MealPlan {
	m := c.entry(goal).Meals
	return models.MealPlan{
		Breakfast: append([]string(nil), m.Breakfast...),
		Lunch:     append([]string(nil), m.Lunch...),
		Dinner:    append([]string(nil), m.Dinner...),
		Snacks:    append([]string(nil), m.Snacks...),
	}
}

// GoalLabel is the community-facing name of a goal.
func (c *Catalog) GoalLabel(goal *models.Goal) string {
	return c.entry(goal).Label
}

func cloneWorkouts(in []models.Workout) []models.Workout {
	out := make([]models.Workout, len(in))
	for i, w := range in {
		out[i] = w
		out[i].Exercises = append([]models.Exercise{}, w.Exercises...)
	}
	return out
}
