package models

type CommunityPost struct {
	ID           string `json:"id"`
	Author       string `json:"author"`
	GoalLabel    string `json:"goal_label"`
	Body         string `json:"body"`
	LikeCount    int    `json:"like_count"`
	CreatedLabel string `json:"created_label"`
}

func ClonePosts(posts []CommunityPost) []CommunityPost {
	if posts == nil {
		return nil
	}
	out := make([]CommunityPost, len(posts))
	copy(out, posts)
	return out
}
