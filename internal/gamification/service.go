package gamification

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// ── Streak ──────────────────────────────────────────────

// UpdateStreak advances the user's streak for one activity signal and
// awards any milestone badges the new streak has reached. The whole update
// runs in a single transaction.
func (s *Service) UpdateStreak(userID int64) (*models.StreakUpdateResponse, error) {
	tx, err := s.store.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin streak update: %w", err)
	}
	defer tx.Rollback()

	days, lastActive, err := s.store.GetStreakForUpdate(tx, userID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}

	now := time.Now().UTC()
	var hours float64
	if lastActive != nil {
		hours = now.Sub(*lastActive).Hours()
	}

	newDays, outcome := AdvanceStreak(days, hours, lastActive == nil)
	if outcome != StreakAlreadyCounted {
		if err := s.store.SetStreak(tx, userID, newDays, now); err != nil {
			return nil, err
		}
	}

	milestones, err := s.awardMilestones(tx, userID, newDays, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit streak update: %w", err)
	}

	if len(milestones) > 0 {
		log.Printf("[gamification] user %d reached %d streak milestone(s)", userID, len(milestones))
	}

	return &models.StreakUpdateResponse{
		StreakDays: newDays,
		Message:    StreakMessage(outcome, newDays),
		Milestones: milestones,
	}, nil
}

// awardMilestones grants every due milestone badge the user does not
// already hold, crediting the milestone XP per new grant.
func (s *Service) awardMilestones(tx *sql.Tx, userID int64, streakDays int, now time.Time) ([]models.MilestoneAward, error) {
	awards := []models.MilestoneAward{}
	for _, m := range DueMilestones(streakDays) {
		badge, err := s.store.EnsureBadge(tx, m.BadgeName, m.BadgeDesc, m.IconURL(), "streak")
		if err != nil {
			return nil, err
		}

		granted, err := s.store.AwardBadge(tx, userID, badge.ID, now)
		if err != nil {
			return nil, err
		}
		if !granted {
			continue
		}

		if err := s.store.AddXP(tx, userID, m.XP, 0); err != nil {
			return nil, err
		}
		awards = append(awards, models.MilestoneAward{Days: m.Days, XPAwarded: m.XP, Badge: badge})
	}
	return awards, nil
}

// GetStreakStatus reports the streak without mutating it.
func (s *Service) GetStreakStatus(userID int64) (*models.StreakStatusResponse, error) {
	days, lastActive, err := s.store.GetStreak(userID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}

	if lastActive == nil {
		status, message := StreakStatus(0, false)
		return &models.StreakStatusResponse{
			StreakDays: 0,
			Status:     status,
			Message:    message,
		}, nil
	}

	hours := time.Now().UTC().Sub(*lastActive).Hours()
	rounded := math.Round(hours*100) / 100
	last := lastActive.Format(time.RFC3339)
	status, message := StreakStatus(hours, true)

	return &models.StreakStatusResponse{
		StreakDays:       days,
		LastActive:       &last,
		HoursSinceActive: &rounded,
		Status:           status,
		Message:          message,
	}, nil
}

// ── Leaderboard ─────────────────────────────────────────

func (s *Service) GetLeaderboard(period string, limit int) (*models.LeaderboardResponse, error) {
	since, err := PeriodStart(period, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	entries, err := s.store.TopUsers(since, ClampLimit(limit))
	if err != nil {
		return nil, err
	}

	return &models.LeaderboardResponse{Leaderboard: entries, Period: period}, nil
}

// GetUserRank computes the user's 1-based rank within the period's active
// set, plus up to two neighbors on each side. The user resolves even when
// outside the filtered set.
func (s *Service) GetUserRank(userID int64, period string) (*models.UserRankResponse, error) {
	user, err := s.store.GetLeaderboardUser(userID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	since, err := PeriodStart(period, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountUsersActiveSince(since)
	if err != nil {
		return nil, err
	}

	higher, err := s.store.CountHigherXP(since, user.XP)
	if err != nil {
		return nil, err
	}
	user.Rank = higher + 1

	above, err := s.store.NeighborsAbove(since, user.XP, 2)
	if err != nil {
		return nil, err
	}
	below, err := s.store.NeighborsBelow(since, user.XP, 2)
	if err != nil {
		return nil, err
	}

	// Neighbors are listed top-down: farthest-above first, then below in
	// descending XP.
	surrounding := []models.LeaderboardEntry{}
	for i := len(above) - 1; i >= 0; i-- {
		e := above[i]
		if e.Rank, err = s.neighborRank(since, e.XP); err != nil {
			return nil, err
		}
		e.Position = "above"
		surrounding = append(surrounding, e)
	}
	for _, e := range below {
		if e.Rank, err = s.neighborRank(since, e.XP); err != nil {
			return nil, err
		}
		e.Position = "below"
		surrounding = append(surrounding, e)
	}

	return &models.UserRankResponse{
		UserRank:         user.Rank,
		User:             user,
		SurroundingUsers: surrounding,
		Period:           period,
		TotalUsers:       total,
	}, nil
}

func (s *Service) neighborRank(since *time.Time, xp int64) (int, error) {
	higher, err := s.store.CountHigherXP(since, xp)
	if err != nil {
		return 0, err
	}
	return higher + 1, nil
}

// ── Badge Evaluation ────────────────────────────────────

// CheckAndAwardBadges evaluates the badge rule table against the user's
// activity and grants anything newly earned, applying the XP and points
// bonuses once at the end.
func (s *Service) CheckAndAwardBadges(userID int64) (*models.BadgeCheckResponse, error) {
	tx, err := s.store.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin badge check: %w", err)
	}
	defer tx.Rollback()

	counters, err := s.store.GetActivityCounters(tx, userID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, err
	}

	held, err := s.store.HeldBadgeNames(tx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBadges := []models.Badge{}
	for _, rule := range QualifiedBadges(counters, held) {
		badge, err := s.store.EnsureBadge(tx, rule.Name, rule.Description, rule.IconURL, rule.BadgeType)
		if err != nil {
			return nil, err
		}
		granted, err := s.store.AwardBadge(tx, userID, badge.ID, now)
		if err != nil {
			return nil, err
		}
		if granted {
			newBadges = append(newBadges, badge)
		}
	}

	xpBonus := BadgeXPBonus * len(newBadges)
	pointsBonus := BadgePointsBonus * len(newBadges)
	if len(newBadges) > 0 {
		if err := s.store.AddXP(tx, userID, xpBonus, pointsBonus); err != nil {
			return nil, err
		}
	}

	total, err := s.store.CountUserBadges(tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit badge check: %w", err)
	}

	if len(newBadges) > 0 {
		log.Printf("[gamification] awarded %d badge(s) to user %d (+%d xp)", len(newBadges), userID, xpBonus)
	}

	return &models.BadgeCheckResponse{
		NewBadges:   newBadges,
		TotalBadges: total,
		XPBonus:     xpBonus,
		PointsBonus: pointsBonus,
	}, nil
}

// GetAchievementsProgress reports the user's standing against every
// achievement without mutating anything.
func (s *Service) GetAchievementsProgress(userID int64) ([]models.AchievementProgress, error) {
	counters, err := s.store.GetActivityCounters(s.store.db, userID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, err
	}

	modulesCompleted, err := s.store.CountModulesCompleted(userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.store.ListAchievements()
	if err != nil {
		return nil, err
	}

	progress := []models.AchievementProgress{}
	for _, a := range achievements {
		var current int
		switch a.RequirementType {
		case "modules_completed":
			current = modulesCompleted
		case "paths_completed":
			current = counters.PathsCompleted
		case "streak":
			current = counters.StreakDays
		case "resources_completed":
			current = counters.ResourcesCompleted
		}
		progress = append(progress, models.AchievementProgress{
			Achievement: a,
			Current:     current,
			Target:      a.RequirementValue,
			Unlocked:    a.RequirementValue > 0 && current >= a.RequirementValue,
		})
	}
	return progress, nil
}

// ── XP / Catalog Reads ──────────────────────────────────

// AddXP credits a raw XP amount and returns the user's new total.
func (s *Service) AddXP(userID int64, xp int) (int64, error) {
	if _, err := s.store.GetXP(s.store.db, userID); err != nil {
		if err == sql.ErrNoRows {
			return 0, apperr.NotFound("USER_NOT_FOUND", "User not found")
		}
		return 0, fmt.Errorf("get xp: %w", err)
	}

	if err := s.store.AddXP(s.store.db, userID, xp, 0); err != nil {
		return 0, err
	}
	return s.store.GetXP(s.store.db, userID)
}

func (s *Service) ListBadges() ([]models.Badge, error) {
	return s.store.ListBadges()
}

func (s *Service) ListUserBadges(userID int64) ([]models.UserBadge, error) {
	return s.store.ListUserBadges(userID)
}

func (s *Service) ListAchievements() ([]models.Achievement, error) {
	return s.store.ListAchievements()
}

func (s *Service) ListChallenges(activeOnly bool) ([]models.Challenge, error) {
	return s.store.ListChallenges(activeOnly)
}

func (s *Service) GetChallenge(id int64) (*models.Challenge, error) {
	c, err := s.store.GetChallenge(id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("CHALLENGE_NOT_FOUND", "Challenge not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
