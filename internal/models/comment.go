package models

import "time"

// DeletedCommentContent masks soft-deleted comments in output; the row stays.
const DeletedCommentContent = "[This comment has been deleted]"

type CommentAuthor struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type Comment struct {
	ID             int64          `json:"id"`
	Content        string         `json:"content"`
	UserID         int64          `json:"user_id"`
	LearningPathID *int64         `json:"learning_path_id,omitempty"`
	ResourceID     *int64         `json:"resource_id,omitempty"`
	ParentID       *int64         `json:"parent_id,omitempty"`
	IsDeleted      bool           `json:"is_deleted"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
	User           *CommentAuthor `json:"user,omitempty"`
	Replies        []Comment      `json:"replies,omitempty"`
}

type CreateCommentRequest struct {
	Content        string `json:"content"`
	LearningPathID *int64 `json:"learning_path_id"`
	ResourceID     *int64 `json:"resource_id"`
	ParentID       *int64 `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CommentListResponse struct {
	Comments    []Comment `json:"comments"`
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"current_page"`
}
