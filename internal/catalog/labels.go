package catalog

import "github.com/saeid-a/FitJourney/internal/models"

var activityLabels = map[models.ActivityLevel]string{
	models.ActivitySedentary:   "Sedentary",
	models.ActivityLight:       "Lightly Active",
	models.ActivityModerate:    "Moderately Active",
	models.ActivityVeryActive:  "Very Active",
	models.ActivityExtraActive: "Extremely Active",
}

var levelLabels = map[models.ExperienceLevel]string{
	models.LevelBeginner:     "Beginner",
	models.LevelIntermediate: "Intermediate",
	models.LevelAdvanced:     "Advanced",
}

// Labels is the human-readable summary of a profile's choices.
type Labels struct {
	Goal     string `json:"goal"`
	Activity string `json:"activity_level"`
	Level    string `json:"experience_level"`
	Location string `json:"training_location"`
	Plan     string `json:"subscription_plan"`
}

// LabelsFor mirrors the summary screen: unset values fall through to the
// last option of each list.
func (c *Catalog) LabelsFor(p models.UserProfile) Labels {
	labels := Labels{
		Goal:     c.GoalLabel(p.Goal),
		Activity: activityLabels[models.ActivityExtraActive],
		Level:    levelLabels[models.LevelAdvanced],
		Location: "Home",
		Plan:     "Essential",
	}
	if p.Biometrics.ActivityLevel != nil {
		if l, ok := activityLabels[*p.Biometrics.ActivityLevel]; ok {
			labels.Activity = l
		}
	}
	if p.ExperienceLevel != nil {
		if l, ok := levelLabels[*p.ExperienceLevel]; ok {
			labels.Level = l
		}
	}
	if p.TrainingLocation != nil && *p.TrainingLocation == models.LocationGym {
		labels.Location = "Gym"
	}
	if p.SubscriptionPlan != nil && *p.SubscriptionPlan == models.PlanPremium {
		labels.Plan = "Premium"
	}
	return labels
}
