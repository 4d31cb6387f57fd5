package comments

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// List returns one page of top-level comments for a path or resource, each
// with its replies attached.
func (s *Service) List(f Filter, page, perPage int) (*models.CommentListResponse, error) {
	if f.LearningPathID == nil && f.ResourceID == nil {
		return nil, apperr.Validation("TARGET_REQUIRED", "learning_path_id or resource_id is required")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, err := s.store.CountTopLevel(f)
	if err != nil {
		return nil, err
	}

	comments, err := s.store.ListTopLevel(f, page, perPage)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		replies, err := s.store.ListReplies(comments[i].ID)
		if err != nil {
			return nil, err
		}
		comments[i].Replies = replies
	}

	return &models.CommentListResponse{
		Comments:    comments,
		Total:       total,
		Pages:       PageCount(total, perPage),
		CurrentPage: page,
	}, nil
}

// Create posts a comment or a depth-one reply and credits the author XP.
func (s *Service) Create(userID int64, req *models.CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperr.Validation("CONTENT_REQUIRED", "Content is required")
	}
	if req.LearningPathID == nil && req.ResourceID == nil {
		return nil, apperr.Validation("TARGET_REQUIRED", "learning_path_id or resource_id is required")
	}

	if req.LearningPathID != nil {
		exists, err := s.store.PathExists(*req.LearningPathID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("PATH_NOT_FOUND", "Learning path not found")
		}
	} else {
		exists, err := s.store.ResourceExists(*req.ResourceID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("RESOURCE_NOT_FOUND", "Resource not found")
		}
	}

	if req.ParentID != nil {
		parent, err := s.store.GetComment(*req.ParentID)
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("PARENT_NOT_FOUND", "Parent comment not found")
		}
		if err != nil {
			return nil, fmt.Errorf("get parent: %w", err)
		}
		// Replies to replies would nest deeper than one level.
		if parent.ParentID != nil {
			return nil, apperr.Validation("NESTING_LIMIT", "Nested replies limited to 1 level")
		}
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create comment: %w", err)
	}
	defer tx.Rollback()

	id, err := s.store.Insert(tx, userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddUserXP(tx, userID, CommentXP); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create comment: %w", err)
	}

	return s.store.GetComment(id)
}

// Update edits the caller's own comment inside the edit window.
func (s *Service) Update(userID, commentID int64, content string) (*models.Comment, error) {
	comment, err := s.store.GetComment(commentID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("COMMENT_NOT_FOUND", "Comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	if comment.UserID != userID {
		return nil, apperr.Forbidden("NOT_OWNER", "Unauthorized")
	}
	if comment.IsDeleted {
		return nil, apperr.Validation("COMMENT_DELETED", "Cannot edit deleted comment")
	}
	if !CanEdit(comment.CreatedAt, time.Now().UTC()) {
		return nil, apperr.Forbidden("EDIT_WINDOW_EXPIRED", "Edit window has expired (15 minutes)")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("CONTENT_REQUIRED", "Content is required")
	}

	if err := s.store.UpdateContent(commentID, content, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.store.GetComment(commentID)
}

// Delete soft-deletes the caller's own comment.
func (s *Service) Delete(userID, commentID int64) error {
	comment, err := s.store.GetComment(commentID)
	if err == sql.ErrNoRows {
		return apperr.NotFound("COMMENT_NOT_FOUND", "Comment not found")
	}
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}

	if comment.UserID != userID {
		return apperr.Forbidden("NOT_OWNER", "Unauthorized")
	}
	return s.store.SoftDelete(commentID)
}
