package models

type Exercise struct {
	Name         string `json:"name" yaml:"name"`
	Sets         string `json:"sets" yaml:"sets"`
	Reps         string `json:"reps" yaml:"reps"`
	Rest         string `json:"rest" yaml:"rest"`
	Equipment    string `json:"equipment,omitempty" yaml:"equipment"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

type Workout struct {
	Name      string     `json:"name" yaml:"name"`
	Duration  string     `json:"duration" yaml:"duration"`
	Calories  string     `json:"calories" yaml:"calories"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}

type WorkoutPlan struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Workouts    []Workout `json:"workouts"`
}

type MealPlan struct {
	Breakfast []string `json:"breakfast" yaml:"breakfast"`
	Lunch     []string `json:"lunch" yaml:"lunch"`
	Dinner    []string `json:"dinner" yaml:"dinner"`
	Snacks    []string `json:"snacks" yaml:"snacks"`
}

type DashboardStats struct {
	CompletedWorkouts int     `json:"completed_workouts"`
	TargetWorkouts    int     `json:"target_workouts"`
	RemainingWorkouts int     `json:"remaining_workouts"`
	ProgressPercent   float64 `json:"progress_percent"`
	CaloriesBurned    int     `json:"calories_burned"`
}
