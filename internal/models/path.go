package models

import "time"

type LearningPath struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"` // beginner, intermediate, advanced
	ImageURL      string    `json:"image_url,omitempty"`
	XPReward      int       `json:"xp_reward"`
	CreatorID     int64     `json:"creator_id"`
	IsPublished   bool      `json:"is_published"`
	IsApproved    bool      `json:"is_approved"`
	Rating        float64   `json:"rating"`
	TotalRatings  int       `json:"total_ratings"`
	EnrolledCount int       `json:"enrolled_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Modules []Module `json:"modules,omitempty"`
}

type Module struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Order          int       `json:"order"`
	XPReward       int       `json:"xp_reward"`
	LearningPathID int64     `json:"learning_path_id"`
	CreatedAt      time.Time `json:"created_at"`

	Resources []Resource `json:"resources,omitempty"`
}

type Resource struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ResourceType string    `json:"resource_type"` // video, article, tutorial, quiz
	URL          string    `json:"url,omitempty"`
	Content      string    `json:"content,omitempty"`
	Order        int       `json:"order"`
	ModuleID     int64     `json:"module_id"`
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
	CreatedAt    time.Time `json:"created_at"`
}

// ── Content Creation Requests ─────────────────────────────

type CreatePathRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	ImageURL    string `json:"image_url"`
	XPReward    int    `json:"xp_reward"`
}

type CreateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	XPReward    int    `json:"xp_reward"`
}

type CreateResourceRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ResourceType string `json:"resource_type"`
	URL          string `json:"url"`
	Content      string `json:"content"`
	Order        int    `json:"order"`
}
