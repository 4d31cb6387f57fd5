package admin

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/learnquest/backend/internal/models"
)

type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin() (*sql.Tx, error) {
	return s.db.Begin()
}

// ── Dashboard counters ────────────────────────────────────

func (s *Store) CountUsers() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (s *Store) CountUsersCreatedSince(since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

func (s *Store) CountUsersCreatedBetween(from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&n)
	return n, err
}

func (s *Store) CountPublishedPaths() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM learning_paths WHERE is_published = TRUE`).Scan(&n)
	return n, err
}

func (s *Store) CountActiveToday() (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE DATE(last_active) = CURRENT_DATE`,
	).Scan(&n)
	return n, err
}

func (s *Store) CountPendingApprovals() (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM learning_paths WHERE is_published = TRUE AND is_approved = FALSE`,
	).Scan(&n)
	return n, err
}

func (s *Store) CountPendingReports() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM reports WHERE status = 'pending'`).Scan(&n)
	return n, err
}

// ── Path approvals ────────────────────────────────────────

// PathCreator identifies who submitted a path for review.
type PathCreator struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PendingPath is a learning path awaiting approval, with the creator's
// contact details attached for the review queue.
type PendingPath struct {
	models.LearningPath
	Creator      PathCreator `json:"creator"`
	ModulesCount int         `json:"modules_count"`
}

func (s *Store) ListPendingPaths() ([]PendingPath, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.title, COALESCE(p.description, ''), COALESCE(p.category, ''),
		        COALESCE(p.difficulty, ''), COALESCE(p.image_url, ''), p.xp_reward,
		        p.creator_id, p.is_published, p.is_approved, p.rating, p.total_ratings,
		        p.enrolled_count, p.created_at, p.updated_at,
		        u.username, u.email,
		        (SELECT COUNT(*) FROM modules m WHERE m.learning_path_id = p.id)
		 FROM learning_paths p
		 JOIN users u ON u.id = p.creator_id
		 WHERE p.is_published = TRUE AND p.is_approved = FALSE
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingPath
	for rows.Next() {
		var p PendingPath
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Category, &p.Difficulty, &p.ImageURL,
			&p.XPReward, &p.CreatorID, &p.IsPublished, &p.IsApproved, &p.Rating,
			&p.TotalRatings, &p.EnrolledCount, &p.CreatedAt, &p.UpdatedAt,
			&p.Creator.Username, &p.Creator.Email, &p.ModulesCount,
		); err != nil {
			return nil, err
		}
		p.Creator.ID = p.CreatorID
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPathForReview(id int64) (pathID, creatorID int64, title string, approved bool, err error) {
	err = s.db.QueryRow(
		`SELECT id, creator_id, title, is_approved FROM learning_paths WHERE id = $1`, id,
	).Scan(&pathID, &creatorID, &title, &approved)
	return
}

func (s *Store) ApprovePath(tx querier, pathID int64) error {
	_, err := tx.Exec(
		`UPDATE learning_paths SET is_approved = TRUE, updated_at = NOW() WHERE id = $1`, pathID,
	)
	return err
}

func (s *Store) UnpublishPath(tx querier, pathID int64) error {
	_, err := tx.Exec(
		`UPDATE learning_paths SET is_published = FALSE, is_approved = FALSE, updated_at = NOW()
		 WHERE id = $1`, pathID,
	)
	return err
}

func (s *Store) AddUserXP(tx querier, userID int64, xp int) error {
	_, err := tx.Exec(
		`UPDATE users SET xp = xp + $1, updated_at = NOW() WHERE id = $2`, xp, userID,
	)
	return err
}

func (s *Store) InsertNotification(tx querier, n models.Notification) error {
	_, err := tx.Exec(
		`INSERT INTO notifications (user_id, type, title, message, related_type, related_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.UserID, n.Type, n.Title, n.Message, n.RelatedType, n.RelatedID,
	)
	return err
}

// ── User management ───────────────────────────────────────

type UserFilter struct {
	Search string
	Role   string
	Status string
}

func (f UserFilter) clause() (string, []any) {
	where := ""
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		cond = fmt.Sprintf(cond, len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		cond := fmt.Sprintf("(username ILIKE $%d OR email ILIKE $%d)", len(args), len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if f.Role != "" {
		add("role = $%d", f.Role)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	return where, args
}

func (s *Store) CountFilteredUsers(f UserFilter) (int, error) {
	where, args := f.clause()
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users`+where, args...).Scan(&n)
	return n, err
}

func (s *Store) ListUsers(f UserFilter, page, perPage int) ([]models.User, error) {
	where, args := f.clause()
	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf(
		`SELECT id, username, email, role, status, xp, points, streak_days,
		        hours_learned, COALESCE(avatar_url, ''), COALESCE(bio, ''),
		        last_active, created_at, updated_at
		 FROM users%s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args),
	)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Role, &u.Status, &u.XP, &u.Points,
			&u.StreakDays, &u.HoursLearned, &u.AvatarURL, &u.Bio,
			&u.LastActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) GetUser(id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, username, email, role, status, xp, points, streak_days,
		        hours_learned, COALESCE(avatar_url, ''), COALESCE(bio, ''),
		        last_active, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(
		&u.ID, &u.Username, &u.Email, &u.Role, &u.Status, &u.XP, &u.Points,
		&u.StreakDays, &u.HoursLearned, &u.AvatarURL, &u.Bio,
		&u.LastActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetUserRole(id int64, role string) error {
	_, err := s.db.Exec(
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id,
	)
	return err
}

func (s *Store) SetUserStatus(q querier, id int64, status string) error {
	_, err := q.Exec(
		`UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`, status, id,
	)
	return err
}

func (s *Store) DeleteUser(id int64) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	return err
}

// ── Moderation queue ──────────────────────────────────────

func (s *Store) ListReports(status, contentType string) ([]models.Report, error) {
	query := `SELECT r.id, r.reporter_id, r.content_type, r.content_id, r.reason,
	                 COALESCE(r.details, ''), r.status, COALESCE(r.action_taken, ''),
	                 COALESCE(r.admin_notes, ''), r.created_at, r.resolved_at, r.resolved_by,
	                 u.username
	          FROM reports r
	          JOIN users u ON u.id = r.reporter_id`
	var args []any
	where := ""
	if status != "" {
		args = append(args, status)
		where = fmt.Sprintf(" WHERE r.status = $%d", len(args))
	}
	if contentType != "" {
		args = append(args, contentType)
		cond := fmt.Sprintf("r.content_type = $%d", len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	query += where + ` ORDER BY r.created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Report
	for rows.Next() {
		var r models.Report
		var reporterName string
		if err := rows.Scan(
			&r.ID, &r.ReporterID, &r.ContentType, &r.ContentID, &r.Reason, &r.Details,
			&r.Status, &r.ActionTaken, &r.AdminNotes, &r.CreatedAt, &r.ResolvedAt,
			&r.ResolvedBy, &reporterName,
		); err != nil {
			return nil, err
		}
		r.Reporter = &models.CommentAuthor{ID: r.ReporterID, Username: reporterName}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetReport(id int64) (*models.Report, error) {
	var r models.Report
	err := s.db.QueryRow(
		`SELECT id, reporter_id, content_type, content_id, reason, COALESCE(details, ''),
		        status, COALESCE(action_taken, ''), COALESCE(admin_notes, ''),
		        created_at, resolved_at, resolved_by
		 FROM reports WHERE id = $1`, id,
	).Scan(
		&r.ID, &r.ReporterID, &r.ContentType, &r.ContentID, &r.Reason, &r.Details,
		&r.Status, &r.ActionTaken, &r.AdminNotes, &r.CreatedAt, &r.ResolvedAt, &r.ResolvedBy,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetCommentForModeration returns the reported comment's text and author.
func (s *Store) GetCommentForModeration(commentID int64) (content string, authorID int64, authorName string, err error) {
	err = s.db.QueryRow(
		`SELECT c.content, c.user_id, u.username
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.id = $1`, commentID,
	).Scan(&content, &authorID, &authorName)
	return
}

func (s *Store) DismissReport(id, adminID int64) error {
	_, err := s.db.Exec(
		`UPDATE reports SET status = 'dismissed', resolved_at = NOW(), resolved_by = $1
		 WHERE id = $2`, adminID, id,
	)
	return err
}

func (s *Store) StampReportAction(tx querier, id, adminID int64, action, notes string) error {
	_, err := tx.Exec(
		`UPDATE reports
		 SET status = 'actioned', action_taken = $1, admin_notes = $2,
		     resolved_at = NOW(), resolved_by = $3
		 WHERE id = $4`, action, notes, adminID, id,
	)
	return err
}

func (s *Store) SoftDeleteComment(tx querier, commentID int64) error {
	_, err := tx.Exec(
		`UPDATE comments SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`, commentID,
	)
	return err
}
