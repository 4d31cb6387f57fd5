package gamification

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/learnquest/backend/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx so store methods can run
// standalone or inside a caller-owned transaction.
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

// ── Streak State ────────────────────────────────────────

// GetStreakForUpdate reads the user's streak row with a row lock so a
// concurrent update cannot interleave.
func (s *Store) GetStreakForUpdate(tx *sql.Tx, userID int64) (int, *time.Time, error) {
	var days int
	var lastActive *time.Time
	err := tx.QueryRow(
		`SELECT streak_days, last_active FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&days, &lastActive)
	if err != nil {
		return 0, nil, err
	}
	return days, lastActive, nil
}

func (s *Store) GetStreak(userID int64) (int, *time.Time, error) {
	var days int
	var lastActive *time.Time
	err := s.db.QueryRow(
		`SELECT streak_days, last_active FROM users WHERE id = $1`,
		userID,
	).Scan(&days, &lastActive)
	if err != nil {
		return 0, nil, err
	}
	return days, lastActive, nil
}

func (s *Store) SetStreak(q querier, userID int64, days int, lastActive time.Time) error {
	_, err := q.Exec(
		`UPDATE users SET streak_days = $2, last_active = $3, updated_at = NOW()
		 WHERE id = $1`,
		userID, days, lastActive,
	)
	if err != nil {
		return fmt.Errorf("set streak: %w", err)
	}
	return nil
}

// ── XP / Points ─────────────────────────────────────────

// AddXP credits XP and points with a single atomic increment.
func (s *Store) AddXP(q querier, userID int64, xp, points int) error {
	_, err := q.Exec(
		`UPDATE users SET xp = xp + $2, points = points + $3, updated_at = NOW()
		 WHERE id = $1`,
		userID, xp, points,
	)
	if err != nil {
		return fmt.Errorf("add xp: %w", err)
	}
	return nil
}

func (s *Store) GetXP(q querier, userID int64) (int64, error) {
	var xp int64
	err := q.QueryRow(`SELECT xp FROM users WHERE id = $1`, userID).Scan(&xp)
	if err != nil {
		return 0, err
	}
	return xp, nil
}

// ── Badge Catalog / Awards ──────────────────────────────

// EnsureBadge returns the badge with the given name, creating it if the
// catalog has no such row yet. The no-op DO UPDATE makes RETURNING yield the
// row on both paths.
func (s *Store) EnsureBadge(q querier, name, description, iconURL, badgeType string) (models.Badge, error) {
	var b models.Badge
	err := q.QueryRow(
		`INSERT INTO badges (name, description, icon_url, badge_type)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, COALESCE(description, ''), COALESCE(icon_url, ''),
		           COALESCE(badge_type, ''), is_seasonal`,
		name, description, iconURL, badgeType,
	).Scan(&b.ID, &b.Name, &b.Description, &b.IconURL, &b.BadgeType, &b.IsSeasonal)
	if err != nil {
		return models.Badge{}, fmt.Errorf("ensure badge %q: %w", name, err)
	}
	return b, nil
}

// AwardBadge grants the badge to the user, reporting false if the user
// already held it.
func (s *Store) AwardBadge(q querier, userID, badgeID int64, earnedAt time.Time) (bool, error) {
	res, err := q.Exec(
		`INSERT INTO user_badges (user_id, badge_id, earned_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, badge_id) DO NOTHING`,
		userID, badgeID, earnedAt,
	)
	if err != nil {
		return false, fmt.Errorf("award badge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("award badge rows: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ListBadges() ([]models.Badge, error) {
	rows, err := s.db.Query(
		`SELECT id, name, COALESCE(description, ''), COALESCE(icon_url, ''),
		        COALESCE(badge_type, ''), is_seasonal
		 FROM badges ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	badges := []models.Badge{}
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.IconURL, &b.BadgeType, &b.IsSeasonal); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func (s *Store) ListUserBadges(userID int64) ([]models.UserBadge, error) {
	rows, err := s.db.Query(
		`SELECT ub.id, ub.user_id, ub.earned_at,
		        b.id, b.name, COALESCE(b.description, ''), COALESCE(b.icon_url, ''),
		        COALESCE(b.badge_type, ''), b.is_seasonal
		 FROM user_badges ub
		 JOIN badges b ON b.id = ub.badge_id
		 WHERE ub.user_id = $1
		 ORDER BY ub.earned_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user badges: %w", err)
	}
	defer rows.Close()

	badges := []models.UserBadge{}
	for rows.Next() {
		var ub models.UserBadge
		if err := rows.Scan(&ub.ID, &ub.UserID, &ub.EarnedAt,
			&ub.Badge.ID, &ub.Badge.Name, &ub.Badge.Description, &ub.Badge.IconURL,
			&ub.Badge.BadgeType, &ub.Badge.IsSeasonal); err != nil {
			return nil, fmt.Errorf("scan user badge: %w", err)
		}
		badges = append(badges, ub)
	}
	return badges, rows.Err()
}

// HeldBadgeNames returns the set of badge names the user already holds.
func (s *Store) HeldBadgeNames(q querier, userID int64) (map[string]bool, error) {
	rows, err := q.Query(
		`SELECT b.name FROM user_badges ub JOIN badges b ON b.id = ub.badge_id
		 WHERE ub.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("held badge names: %w", err)
	}
	defer rows.Close()

	held := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan badge name: %w", err)
		}
		held[name] = true
	}
	return held, rows.Err()
}

func (s *Store) CountUserBadges(q querier, userID int64) (int, error) {
	var n int
	err := q.QueryRow(`SELECT COUNT(*) FROM user_badges WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count user badges: %w", err)
	}
	return n, nil
}

// ── Activity Counters ───────────────────────────────────

// GetActivityCounters aggregates everything the badge rules need in one
// round trip per counter.
func (s *Store) GetActivityCounters(q querier, userID int64) (ActivityCounters, error) {
	var c ActivityCounters
	err := q.QueryRow(
		`SELECT role, streak_days FROM users WHERE id = $1`, userID,
	).Scan(&c.Role, &c.StreakDays)
	if err != nil {
		return c, err
	}

	counts := []struct {
		dst   *int
		query string
	}{
		{&c.ResourcesCompleted, `SELECT COUNT(*) FROM resource_completions WHERE user_id = $1`},
		{&c.PathsCompleted, `SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND status = 'completed'`},
		{&c.PerfectQuizzes, `SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1 AND score = 100`},
		{&c.Comments, `SELECT COUNT(*) FROM comments WHERE user_id = $1 AND is_deleted = FALSE`},
		{&c.AuthoredPaths, `SELECT COUNT(*) FROM learning_paths WHERE creator_id = $1`},
	}
	for _, cnt := range counts {
		if err := q.QueryRow(cnt.query, userID).Scan(cnt.dst); err != nil {
			return c, fmt.Errorf("activity counter: %w", err)
		}
	}
	return c, nil
}

// CountModulesCompleted backs the modules_completed achievement type, which
// has no badge rule of its own.
func (s *Store) CountModulesCompleted(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM module_completions WHERE user_id = $1`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count module completions: %w", err)
	}
	return n, nil
}

// ── Leaderboard ─────────────────────────────────────────

// TopUsers returns the highest-XP users active since the given time (nil
// means no filter), ranked 1-based in result order.
func (s *Store) TopUsers(since *time.Time, limit int) ([]models.LeaderboardEntry, error) {
	query := `SELECT id, username, COALESCE(avatar_url, ''), xp, points FROM users`
	args := []interface{}{}
	if since != nil {
		query += ` WHERE last_active >= $1`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY xp DESC LIMIT %d`, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.AvatarURL, &e.XP, &e.Points); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetLeaderboardUser(userID int64) (models.LeaderboardEntry, error) {
	var e models.LeaderboardEntry
	err := s.db.QueryRow(
		`SELECT id, username, COALESCE(avatar_url, ''), xp, points FROM users WHERE id = $1`,
		userID,
	).Scan(&e.UserID, &e.Username, &e.AvatarURL, &e.XP, &e.Points)
	if err != nil {
		return models.LeaderboardEntry{}, err
	}
	return e, nil
}

func (s *Store) CountUsersActiveSince(since *time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM users`
	args := []interface{}{}
	if since != nil {
		query += ` WHERE last_active >= $1`
		args = append(args, *since)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}

// CountHigherXP is the rank basis: users in the filtered set with strictly
// more XP than the given value.
func (s *Store) CountHigherXP(since *time.Time, xp int64) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE xp > $1`
	args := []interface{}{xp}
	if since != nil {
		query += ` AND last_active >= $2`
		args = append(args, *since)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count higher xp: %w", err)
	}
	return n, nil
}

// NeighborsAbove returns up to limit users just above the given XP, nearest
// first.
func (s *Store) NeighborsAbove(since *time.Time, xp int64, limit int) ([]models.LeaderboardEntry, error) {
	return s.neighbors(since, xp, limit, true)
}

// NeighborsBelow returns up to limit users just below the given XP, nearest
// first.
func (s *Store) NeighborsBelow(since *time.Time, xp int64, limit int) ([]models.LeaderboardEntry, error) {
	return s.neighbors(since, xp, limit, false)
}

func (s *Store) neighbors(since *time.Time, xp int64, limit int, above bool) ([]models.LeaderboardEntry, error) {
	cmp, order := "<", "DESC"
	if above {
		cmp, order = ">", "ASC"
	}
	query := fmt.Sprintf(
		`SELECT id, username, COALESCE(avatar_url, ''), xp, points
		 FROM users WHERE xp %s $1`, cmp)
	args := []interface{}{xp}
	if since != nil {
		query += ` AND last_active >= $2`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY xp %s LIMIT %d`, order, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("leaderboard neighbors: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.AvatarURL, &e.XP, &e.Points); err != nil {
			return nil, fmt.Errorf("scan neighbor: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ── Achievements / Challenges ───────────────────────────

func (s *Store) ListAchievements() ([]models.Achievement, error) {
	rows, err := s.db.Query(
		`SELECT id, name, COALESCE(description, ''), COALESCE(icon_url, ''),
		        xp_reward, points_reward, COALESCE(requirement_type, ''),
		        COALESCE(requirement_value, 0)
		 FROM achievements ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	achievements := []models.Achievement{}
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.IconURL,
			&a.XPReward, &a.PointsReward, &a.RequirementType, &a.RequirementValue); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (s *Store) ListChallenges(activeOnly bool) ([]models.Challenge, error) {
	query := `SELECT id, title, COALESCE(description, ''), COALESCE(challenge_type, ''),
	                 xp_reward, points_reward, badge_id, COALESCE(requirement_type, ''),
	                 COALESCE(requirement_value, 0), start_date, end_date, is_active
	          FROM challenges`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	challenges := []models.Challenge{}
	for rows.Next() {
		var c models.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ChallengeType,
			&c.XPReward, &c.PointsReward, &c.BadgeID, &c.RequirementType,
			&c.RequirementValue, &c.StartDate, &c.EndDate, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (s *Store) GetChallenge(id int64) (*models.Challenge, error) {
	var c models.Challenge
	err := s.db.QueryRow(
		`SELECT id, title, COALESCE(description, ''), COALESCE(challenge_type, ''),
		        xp_reward, points_reward, badge_id, COALESCE(requirement_type, ''),
		        COALESCE(requirement_value, 0), start_date, end_date, is_active
		 FROM challenges WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.ChallengeType,
		&c.XPReward, &c.PointsReward, &c.BadgeID, &c.RequirementType,
		&c.RequirementValue, &c.StartDate, &c.EndDate, &c.IsActive)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
