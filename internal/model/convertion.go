package model

import "github.com/jobquest-lab/backend/internal/entity"

func ConvertBadge(badge entity.Badge) Badge {
	return Badge{
		ID:          badge.ID,
		Name:        badge.Name,
		Description: badge.Description,
		Type:        badge.Type,
		Rarity:      string(badge.Rarity),
		Points:      badge.Points,
	}
}

func ConvertAchievement(achievement entity.Achievement) Achievement {
	return Achievement{
		ID:          achievement.ID,
		Name:        achievement.Name,
		Description: achievement.Description,
		Type:        achievement.Type,
		Points:      achievement.Points,
	}
}

func ConvertStreak(streak entity.Streak) Streak {
	return Streak{
		Category:      streak.Category,
		CurrentLength: streak.CurrentLength,
		LongestLength: streak.LongestLength,
	}
}

func ConvertReward(reward entity.Reward) Reward {
	return Reward{
		ID:          reward.ID,
		Name:        reward.Name,
		Description: reward.Description,
		Type:        string(reward.Type),
		Cost:        reward.Cost,
		Value:       reward.Value,
	}
}

func ConvertGamificationEvent(event entity.GamificationEvent) GamificationEvent {
	return GamificationEvent{
		ID:          event.ID,
		Kind:        string(event.Kind),
		Title:       event.Title,
		Description: event.Description,
		PointsDelta: event.PointsDelta,
		Metadata:    event.Metadata,
		CreatedAt:   event.CreatedAt,
	}
}

func ConvertLeaderboardEntry(entry entity.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		UserID: entry.UserID,
		Score:  entry.Score,
		Rank:   entry.Rank,
	}
}
