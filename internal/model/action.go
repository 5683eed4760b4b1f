package model

type ProcessActionRequest struct {
	UserID     string         `json:"user_id"`
	ActionType string         `json:"action_type"`
	Payload    map[string]any `json:"payload"`
}

type ProcessActionResponse struct {
	Result ActionResult `json:"result"`
}

type GetUserRankRequest struct {
	UserID string `json:"user_id"`
	Metric string `json:"metric"`
	Period string `json:"period"`
}

type GetUserRankResponse struct {
	// Rank is null when the user has no entry on the leaderboard.
	Rank *int `json:"rank"`
}

type GetCurrentStreakRequest struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
}

type GetCurrentStreakResponse struct {
	CurrentLength int `json:"current_length"`
}

type GetAvailableRewardsRequest struct {
	UserID string `json:"user_id"`
}

type GetAvailableRewardsResponse struct {
	Rewards []Reward `json:"rewards"`
}

type ClaimRewardRequest struct {
	UserID   string `json:"user_id"`
	RewardID string `json:"reward_id"`
}

type ClaimRewardResponse struct {
	Claimed bool `json:"claimed"`
}

type GetMyBadgesRequest struct {
	UserID string `json:"user_id"`
}

type GetMyBadgesResponse struct {
	Badges []Badge `json:"badges"`
}

type GetMyLevelRequest struct {
	UserID string `json:"user_id"`
}

type GetMyLevelResponse struct {
	Level LevelProgress `json:"level"`
}

type GetEventsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetEventsResponse struct {
	Events []GamificationEvent `json:"events"`
}

type GetLeaderboardRequest struct {
	Metric string `json:"metric"`
	Period string `json:"period"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetLeaderboardResponse struct {
	// PeriodValue labels the period bucket the board currently covers, for
	// example "week/34/2026". Empty for all-time boards.
	PeriodValue string             `json:"period_value,omitempty"`
	Entries     []LeaderboardEntry `json:"entries"`
}
