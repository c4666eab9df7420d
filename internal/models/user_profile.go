package models

type Goal string

const (
	GoalWeightLoss Goal = "weight-loss"
	GoalWeightGain Goal = "weight-gain"
	GoalEndurance  Goal = "endurance"
)

type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

type TrainingLocation string

const (
	LocationGym  TrainingLocation = "gym"
	LocationHome TrainingLocation = "home"
)

type SubscriptionPlan string

const (
	PlanEssential SubscriptionPlan = "essential"
	PlanPremium   SubscriptionPlan = "premium"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary   ActivityLevel = "sedentary"
	ActivityLight       ActivityLevel = "light"
	ActivityModerate    ActivityLevel = "moderate"
	ActivityVeryActive  ActivityLevel = "very-active"
	ActivityExtraActive ActivityLevel = "extra-active"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalWeightLoss, GoalWeightGain, GoalEndurance:
		return true
	}
	return false
}

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

func (l TrainingLocation) Valid() bool {
	return l == LocationGym || l == LocationHome
}

func (p SubscriptionPlan) Valid() bool {
	return p == PlanEssential || p == PlanPremium
}

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityVeryActive, ActivityExtraActive:
		return true
	}
	return false
}

// UserProfile is the record accumulated across the onboarding steps.
// Nil pointers are fields the user has not filled in yet.
type UserProfile struct {
	Name                  string            `json:"name"`
	Goal                  *Goal             `json:"goal"`
	ExperienceLevel       *ExperienceLevel  `json:"experience_level"`
	TrainingLocation      *TrainingLocation `json:"training_location"`
	SubscriptionPlan      *SubscriptionPlan `json:"subscription_plan"`
	CompletedWorkoutCount int               `json:"completed_workout_count"`
	Biometrics            Biometrics        `json:"biometrics"`
}

type Biometrics struct {
	AgeYears      *int           `json:"age_years"`
	WeightKG      *float64       `json:"weight_kg"`
	HeightCM      *float64       `json:"height_cm"`
	Sex           *Sex           `json:"sex"`
	ActivityLevel *ActivityLevel `json:"activity_level"`
	PhotoDataURI  *string        `json:"photo_data_uri"`
	BMI           *float64       `json:"bmi"`
	BMICategory   *string        `json:"bmi_category"`
}

// Clone returns a deep copy so callers can hand profiles across goroutines.
func (p UserProfile) Clone() UserProfile {
	c := p
	c.Goal = clonePtr(p.Goal)
	c.ExperienceLevel = clonePtr(p.ExperienceLevel)
	c.TrainingLocation = clonePtr(p.TrainingLocation)
	c.SubscriptionPlan = clonePtr(p.SubscriptionPlan)
	c.Biometrics = Biometrics{
		AgeYears:      clonePtr(p.Biometrics.AgeYears),
		WeightKG:      clonePtr(p.Biometrics.WeightKG),
		HeightCM:      clonePtr(p.Biometrics.HeightCM),
		Sex:           clonePtr(p.Biometrics.Sex),
		ActivityLevel: clonePtr(p.Biometrics.ActivityLevel),
		PhotoDataURI:  clonePtr(p.Biometrics.PhotoDataURI),
		BMI:           clonePtr(p.Biometrics.BMI),
		BMICategory:   clonePtr(p.Biometrics.BMICategory),
	}
	return c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func Ptr[T any](v T) *T {
	return &v
}
