package dto

import "time"

type ChartDataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ActivityItem struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// UserAnalytics is the aggregated snapshot the analytics collaborator
// returns for one user.
type UserAnalytics struct {
	TotalInteractions int            `json:"total_interactions"`
	HourDistribution  []int          `json:"hour_distribution"`
	MoodDistribution  []int          `json:"mood_distribution"`
	AverageMood       float64        `json:"average_mood"`
	RecentActivities  []ActivityItem `json:"recent_activities"`
}

// DashboardSnapshot is the periodic payload pushed to every live channel of
// a connected user.
type DashboardSnapshot struct {
	Type               string         `json:"type"`
	ActiveSessions     int            `json:"active_sessions"`
	RecentInteractions int            `json:"recent_interactions"`
	CurrentMood        float64        `json:"current_mood"`
	ActivityData       ChartData      `json:"activity_data"`
	MoodData           ChartData      `json:"mood_data"`
	RecentActivity     []ActivityItem `json:"recent_activity"`
}
