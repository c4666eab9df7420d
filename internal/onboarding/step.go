package onboarding

import "fmt"

type Step int

const (
	StepLanding Step = iota - 1
	StepName
	StepGoal
	StepBiometrics
	StepActivityLevel
	StepExperienceLevel
	StepLocation
	StepPlan
	StepSummary
	StepDashboard
)

var stepNames = map[Step]string{
	StepLanding:         "landing",
	StepName:            "name",
	StepGoal:            "goal",
	StepBiometrics:      "biometrics",
	StepActivityLevel:   "activity_level",
	StepExperienceLevel: "experience_level",
	StepLocation:        "location",
	StepPlan:            "plan",
	StepSummary:         "summary",
	StepDashboard:       "dashboard",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}
