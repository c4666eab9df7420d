package onboarding

import "github.com/saeid-a/FitJourney/internal/models"

const newPostLabel = "now"

// SeedPosts is the community feed shown before anything has been stored.
func SeedPosts() []models.CommunityPost {
	return []models.CommunityPost{
		{
			ID:           "1",
			Author:       "Carlos Silva",
			GoalLabel:    "Weight Loss",
			Body:         "Lost 8kg in 2 months following the plan! My performance improved a lot!",
			LikeCount:    24,
			CreatedLabel: "2 days ago",
		},
		{
			ID:           "2",
			Author:       "Ana Costa",
			GoalLabel:    "Endurance",
			Body:         "Managed to run 10km without stopping! The endurance training is amazing!",
			LikeCount:    18,
			CreatedLabel: "5 days ago",
		},
		{
			ID:           "3",
			Author:       "Pedro Santos",
			GoalLabel:    "Weight Gain",
			Body:         "Gained 5kg of muscle mass! I am much stronger now!",
			LikeCount:    31,
			CreatedLabel: "1 week ago",
		},
	}
}
