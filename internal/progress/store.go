package progress

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/learnquest/backend/internal/models"
)

type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
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

// ── Path / Module / Resource Lookups ────────────────────

func (s *Store) GetPathReward(q querier, pathID int64) (int, error) {
	var xp int
	err := q.QueryRow(`SELECT xp_reward FROM learning_paths WHERE id = $1`, pathID).Scan(&xp)
	if err != nil {
		return 0, err
	}
	return xp, nil
}

// FirstModuleID returns the lowest-ordered module of a path, or nil when the
// path has no modules yet.
func (s *Store) FirstModuleID(q querier, pathID int64) (*int64, error) {
	var id int64
	err := q.QueryRow(
		`SELECT id FROM modules WHERE learning_path_id = $1 ORDER BY "order" LIMIT 1`,
		pathID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first module: %w", err)
	}
	return &id, nil
}

func (s *Store) GetModule(q querier, moduleID int64) (*models.Module, error) {
	var m models.Module
	err := q.QueryRow(
		`SELECT id, title, "order", xp_reward, learning_path_id
		 FROM modules WHERE id = $1`,
		moduleID,
	).Scan(&m.ID, &m.Title, &m.Order, &m.XPReward, &m.LearningPathID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// NextModuleID finds the module following the given order within a path.
func (s *Store) NextModuleID(q querier, pathID int64, afterOrder int) (*int64, error) {
	var id int64
	err := q.QueryRow(
		`SELECT id FROM modules
		 WHERE learning_path_id = $1 AND "order" > $2
		 ORDER BY "order" LIMIT 1`,
		pathID, afterOrder,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next module: %w", err)
	}
	return &id, nil
}

// GetResourcePath resolves a resource to its owning path.
func (s *Store) GetResourcePath(q querier, resourceID int64) (int64, error) {
	var pathID int64
	err := q.QueryRow(
		`SELECT m.learning_path_id
		 FROM resources r JOIN modules m ON m.id = r.module_id
		 WHERE r.id = $1`,
		resourceID,
	).Scan(&pathID)
	return pathID, err
}

func (s *Store) CountPathResources(q querier, pathID int64) (int, error) {
	var n int
	err := q.QueryRow(
		`SELECT COUNT(*) FROM resources r
		 JOIN modules m ON m.id = r.module_id
		 WHERE m.learning_path_id = $1`,
		pathID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count path resources: %w", err)
	}
	return n, nil
}

func (s *Store) CountCompletedPathResources(q querier, userID, pathID int64) (int, error) {
	var n int
	err := q.QueryRow(
		`SELECT COUNT(*) FROM resource_completions rc
		 JOIN resources r ON r.id = rc.resource_id
		 JOIN modules m ON m.id = r.module_id
		 WHERE rc.user_id = $1 AND m.learning_path_id = $2`,
		userID, pathID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count completed resources: %w", err)
	}
	return n, nil
}

// ── Enrollment ──────────────────────────────────────────

func (s *Store) GetProgress(q querier, userID, pathID int64) (*models.UserProgress, error) {
	var p models.UserProgress
	err := q.QueryRow(
		`SELECT up.id, up.user_id, up.learning_path_id, lp.title,
		        up.current_module_id, up.progress_percentage, up.xp_earned,
		        up.time_spent, up.status, up.enrolled_at, up.last_accessed,
		        up.completed_at
		 FROM user_progress up
		 JOIN learning_paths lp ON lp.id = up.learning_path_id
		 WHERE up.user_id = $1 AND up.learning_path_id = $2`,
		userID, pathID,
	).Scan(&p.ID, &p.UserID, &p.LearningPathID, &p.LearningPathTitle,
		&p.CurrentModuleID, &p.ProgressPercentage, &p.XPEarned,
		&p.TimeSpent, &p.Status, &p.EnrolledAt, &p.LastAccessed,
		&p.CompletedAt)
	if err != nil {
		return nil, err
	}
	if err := s.loadCompletionSets(q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// loadCompletionSets fills the completed module and resource ID sets from
// the child tables, scoped to the enrollment's path.
func (s *Store) loadCompletionSets(q querier, p *models.UserProgress) error {
	p.CompletedModules = []int64{}
	p.CompletedResources = []int64{}

	rows, err := q.Query(
		`SELECT mc.module_id FROM module_completions mc
		 JOIN modules m ON m.id = mc.module_id
		 WHERE mc.user_id = $1 AND m.learning_path_id = $2
		 ORDER BY mc.completed_at`,
		p.UserID, p.LearningPathID,
	)
	if err != nil {
		return fmt.Errorf("load completed modules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan completed module: %w", err)
		}
		p.CompletedModules = append(p.CompletedModules, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(
		`SELECT rc.resource_id FROM resource_completions rc
		 JOIN resources r ON r.id = rc.resource_id
		 JOIN modules m ON m.id = r.module_id
		 WHERE rc.user_id = $1 AND m.learning_path_id = $2
		 ORDER BY rc.completed_at`,
		p.UserID, p.LearningPathID,
	)
	if err != nil {
		return fmt.Errorf("load completed resources: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan completed resource: %w", err)
		}
		p.CompletedResources = append(p.CompletedResources, id)
	}
	return rows.Err()
}

func (s *Store) CreateEnrollment(tx *sql.Tx, userID, pathID int64, firstModuleID *int64) error {
	_, err := tx.Exec(
		`INSERT INTO user_progress (user_id, learning_path_id, current_module_id, status)
		 VALUES ($1, $2, $3, $4)`,
		userID, pathID, firstModuleID, models.ProgressInProgress,
	)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

func (s *Store) IncrementEnrolledCount(tx *sql.Tx, pathID int64) error {
	_, err := tx.Exec(
		`UPDATE learning_paths SET enrolled_count = enrolled_count + 1 WHERE id = $1`,
		pathID,
	)
	if err != nil {
		return fmt.Errorf("increment enrolled count: %w", err)
	}
	return nil
}

// ListEnrollments returns the user's enrollments with their paths, most
// recently accessed first.
func (s *Store) ListEnrollments(userID int64) ([]models.EnrolledPath, error) {
	rows, err := s.db.Query(
		`SELECT lp.id, lp.title, COALESCE(lp.description, ''), COALESCE(lp.category, ''),
		        COALESCE(lp.difficulty, ''), COALESCE(lp.image_url, ''), lp.xp_reward,
		        lp.creator_id, lp.is_published, lp.is_approved, lp.rating,
		        lp.total_ratings, lp.enrolled_count, lp.created_at, lp.updated_at,
		        up.id, up.user_id, up.learning_path_id, up.current_module_id,
		        up.progress_percentage, up.xp_earned, up.time_spent, up.status,
		        up.enrolled_at, up.last_accessed, up.completed_at
		 FROM user_progress up
		 JOIN learning_paths lp ON lp.id = up.learning_path_id
		 WHERE up.user_id = $1
		 ORDER BY up.last_accessed DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	enrolled := []models.EnrolledPath{}
	for rows.Next() {
		var e models.EnrolledPath
		if err := rows.Scan(
			&e.Path.ID, &e.Path.Title, &e.Path.Description, &e.Path.Category,
			&e.Path.Difficulty, &e.Path.ImageURL, &e.Path.XPReward,
			&e.Path.CreatorID, &e.Path.IsPublished, &e.Path.IsApproved, &e.Path.Rating,
			&e.Path.TotalRatings, &e.Path.EnrolledCount, &e.Path.CreatedAt, &e.Path.UpdatedAt,
			&e.Progress.ID, &e.Progress.UserID, &e.Progress.LearningPathID, &e.Progress.CurrentModuleID,
			&e.Progress.ProgressPercentage, &e.Progress.XPEarned, &e.Progress.TimeSpent, &e.Progress.Status,
			&e.Progress.EnrolledAt, &e.Progress.LastAccessed, &e.Progress.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		if err := s.loadCompletionSets(s.db, &e.Progress); err != nil {
			return nil, err
		}
		e.Progress.LearningPathTitle = e.Path.Title
		enrolled = append(enrolled, e)
	}
	return enrolled, rows.Err()
}

// ── Completions ─────────────────────────────────────────

func (s *Store) GetResourceCompletion(q querier, userID, resourceID int64) (*models.ResourceCompletion, error) {
	var rc models.ResourceCompletion
	err := q.QueryRow(
		`SELECT id, user_id, resource_id, completed_at, time_spent, xp_earned
		 FROM resource_completions WHERE user_id = $1 AND resource_id = $2`,
		userID, resourceID,
	).Scan(&rc.ID, &rc.UserID, &rc.ResourceID, &rc.CompletedAt, &rc.TimeSpent, &rc.XPEarned)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (s *Store) InsertResourceCompletion(tx *sql.Tx, userID, resourceID int64, timeSpent, xpEarned int, now time.Time) (*models.ResourceCompletion, error) {
	var rc models.ResourceCompletion
	err := tx.QueryRow(
		`INSERT INTO resource_completions (user_id, resource_id, completed_at, time_spent, xp_earned)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, resource_id, completed_at, time_spent, xp_earned`,
		userID, resourceID, now, timeSpent, xpEarned,
	).Scan(&rc.ID, &rc.UserID, &rc.ResourceID, &rc.CompletedAt, &rc.TimeSpent, &rc.XPEarned)
	if err != nil {
		return nil, fmt.Errorf("insert resource completion: %w", err)
	}
	return &rc, nil
}

func (s *Store) HasModuleCompletion(q querier, userID, moduleID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM module_completions WHERE user_id = $1 AND module_id = $2)`,
		userID, moduleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check module completion: %w", err)
	}
	return exists, nil
}

func (s *Store) InsertModuleCompletion(tx *sql.Tx, userID, moduleID int64, now time.Time) error {
	_, err := tx.Exec(
		`INSERT INTO module_completions (user_id, module_id, completed_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, module_id) DO NOTHING`,
		userID, moduleID, now,
	)
	if err != nil {
		return fmt.Errorf("insert module completion: %w", err)
	}
	return nil
}

// ── Enrollment Mutations ────────────────────────────────

// RecordResourceProgress folds a resource completion into the enrollment
// row: accumulated XP and time, recomputed percentage, access stamp.
func (s *Store) RecordResourceProgress(tx *sql.Tx, progressID int64, xp, minutes int, percentage float64, now time.Time) error {
	_, err := tx.Exec(
		`UPDATE user_progress SET
		    xp_earned = xp_earned + $2, time_spent = time_spent + $3,
		    progress_percentage = $4, last_accessed = $5
		 WHERE id = $1`,
		progressID, xp, minutes, percentage, now,
	)
	if err != nil {
		return fmt.Errorf("record resource progress: %w", err)
	}
	return nil
}

// AdvanceModule moves the enrollment cursor to the next module and credits
// the completed module's XP.
func (s *Store) AdvanceModule(tx *sql.Tx, progressID int64, nextModuleID *int64, xp int, now time.Time) error {
	_, err := tx.Exec(
		`UPDATE user_progress SET
		    current_module_id = $2, xp_earned = xp_earned + $3, last_accessed = $4
		 WHERE id = $1`,
		progressID, nextModuleID, xp, now,
	)
	if err != nil {
		return fmt.Errorf("advance module: %w", err)
	}
	return nil
}

// CompletePath transitions the enrollment to its terminal state.
func (s *Store) CompletePath(tx *sql.Tx, progressID int64, xp int, now time.Time) error {
	_, err := tx.Exec(
		`UPDATE user_progress SET
		    status = $2, completed_at = $3, progress_percentage = 100,
		    xp_earned = xp_earned + $4, last_accessed = $3
		 WHERE id = $1`,
		progressID, models.ProgressCompleted, now, xp,
	)
	if err != nil {
		return fmt.Errorf("complete path: %w", err)
	}
	return nil
}

// ── User XP ─────────────────────────────────────────────

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

func (s *Store) GetUserXP(q querier, userID int64) (int64, error) {
	var xp int64
	err := q.QueryRow(`SELECT xp FROM users WHERE id = $1`, userID).Scan(&xp)
	if err != nil {
		return 0, err
	}
	return xp, nil
}
