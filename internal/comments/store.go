package comments

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/learnquest/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin() (*sql.Tx, error) {
	return s.db.Begin()
}

const commentColumns = `c.id, c.content, c.user_id, c.learning_path_id, c.resource_id,
	c.parent_id, c.is_deleted, c.created_at, c.updated_at,
	u.id, u.username, COALESCE(u.avatar_url, '')`

func scanComment(row interface{ Scan(...interface{}) error }) (models.Comment, error) {
	var c models.Comment
	var author models.CommentAuthor
	err := row.Scan(&c.ID, &c.Content, &c.UserID, &c.LearningPathID, &c.ResourceID,
		&c.ParentID, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
		&author.ID, &author.Username, &author.AvatarURL)
	if err != nil {
		return c, err
	}
	c.User = &author
	c.Content = DisplayContent(c.Content, c.IsDeleted)
	return c, nil
}

// ── Listing ─────────────────────────────────────────────

// Filter narrows a comment listing to one anchor. Exactly one of the fields
// is set.
type Filter struct {
	LearningPathID *int64
	ResourceID     *int64
}

func (f Filter) clause() (string, []interface{}) {
	if f.LearningPathID != nil {
		return `c.learning_path_id = $1`, []interface{}{*f.LearningPathID}
	}
	return `c.resource_id = $1`, []interface{}{*f.ResourceID}
}

func (s *Store) CountTopLevel(f Filter) (int, error) {
	where, args := f.clause()
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM comments c WHERE c.parent_id IS NULL AND `+where,
		args...,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

// ListTopLevel returns one page of top-level comments, newest first.
func (s *Store) ListTopLevel(f Filter, page, perPage int) ([]models.Comment, error) {
	where, args := f.clause()
	offset := (page - 1) * perPage
	query := fmt.Sprintf(
		`SELECT %s FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.parent_id IS NULL AND %s
		 ORDER BY c.created_at DESC
		 LIMIT %d OFFSET %d`,
		commentColumns, where, perPage, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// ListReplies returns a comment's direct replies, oldest first.
func (s *Store) ListReplies(parentID int64) ([]models.Comment, error) {
	rows, err := s.db.Query(
		`SELECT `+commentColumns+` FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.parent_id = $1
		 ORDER BY c.created_at ASC`,
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	replies := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		replies = append(replies, c)
	}
	return replies, rows.Err()
}

func (s *Store) GetComment(commentID int64) (*models.Comment, error) {
	c, err := scanComment(s.db.QueryRow(
		`SELECT `+commentColumns+` FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.id = $1`,
		commentID,
	))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ── Target Checks ───────────────────────────────────────

func (s *Store) PathExists(pathID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM learning_paths WHERE id = $1)`, pathID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check path: %w", err)
	}
	return exists, nil
}

func (s *Store) ResourceExists(resourceID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1)`, resourceID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check resource: %w", err)
	}
	return exists, nil
}

// ── Writes ──────────────────────────────────────────────

func (s *Store) Insert(tx *sql.Tx, userID int64, req *models.CreateCommentRequest) (int64, error) {
	var id int64
	err := tx.QueryRow(
		`INSERT INTO comments (content, user_id, learning_path_id, resource_id, parent_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		req.Content, userID, req.LearningPathID, req.ResourceID, req.ParentID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return id, nil
}

func (s *Store) AddUserXP(tx *sql.Tx, userID int64, xp int) error {
	_, err := tx.Exec(
		`UPDATE users SET xp = xp + $2, updated_at = NOW() WHERE id = $1`,
		userID, xp,
	)
	if err != nil {
		return fmt.Errorf("add user xp: %w", err)
	}
	return nil
}

func (s *Store) UpdateContent(commentID int64, content string, now time.Time) error {
	_, err := s.db.Exec(
		`UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`,
		commentID, content, now,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

func (s *Store) SoftDelete(commentID int64) error {
	_, err := s.db.Exec(
		`UPDATE comments SET is_deleted = TRUE WHERE id = $1`, commentID,
	)
	if err != nil {
		return fmt.Errorf("soft delete comment: %w", err)
	}
	return nil
}
