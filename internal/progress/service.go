package progress

import (
	"database/sql"
	"fmt"
	"log"
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

// ── Enrollment ──────────────────────────────────────────

// Enroll creates the (user, path) enrollment, pointing its cursor at the
// first module. Re-enrolling is a no-op that returns the existing record.
func (s *Service) Enroll(userID, pathID int64) (*models.UserProgress, bool, error) {
	if _, err := s.store.GetPathReward(s.store.db, pathID); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, apperr.NotFound("PATH_NOT_FOUND", "Learning path not found")
		}
		return nil, false, fmt.Errorf("get path: %w", err)
	}

	existing, err := s.store.GetProgress(s.store.db, userID, pathID)
	if err == nil {
		return existing, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("get progress: %w", err)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin enroll: %w", err)
	}
	defer tx.Rollback()

	firstModule, err := s.store.FirstModuleID(tx, pathID)
	if err != nil {
		return nil, false, err
	}
	if err := s.store.CreateEnrollment(tx, userID, pathID, firstModule); err != nil {
		return nil, false, err
	}
	if err := s.store.IncrementEnrolledCount(tx, pathID); err != nil {
		return nil, false, err
	}

	created, err := s.store.GetProgress(tx, userID, pathID)
	if err != nil {
		return nil, false, fmt.Errorf("reload progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit enroll: %w", err)
	}

	log.Printf("[progress] user %d enrolled in path %d", userID, pathID)
	return created, false, nil
}

// MyPaths lists the user's enrollments, most recently accessed first.
func (s *Service) MyPaths(userID int64) ([]models.EnrolledPath, error) {
	return s.store.ListEnrollments(userID)
}

// PathProgress reports the user's standing in one path; a missing row means
// not enrolled, not an error.
func (s *Service) PathProgress(userID, pathID int64) (*models.UserProgress, error) {
	p, err := s.store.GetProgress(s.store.db, userID, pathID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return p, nil
}

// ── Resource Completion ─────────────────────────────────

// CompleteResource records the first completion of a resource, credits the
// flat XP award, and folds the completion into any active enrollment. A
// repeat call returns the original record without re-awarding.
func (s *Service) CompleteResource(userID, resourceID int64, timeSpentSeconds int) (*models.CompleteResourceResponse, bool, error) {
	pathID, err := s.store.GetResourcePath(s.store.db, resourceID)
	if err == sql.ErrNoRows {
		return nil, false, apperr.NotFound("RESOURCE_NOT_FOUND", "Resource not found")
	}
	if err != nil {
		return nil, false, fmt.Errorf("get resource: %w", err)
	}

	if existing, err := s.store.GetResourceCompletion(s.store.db, userID, resourceID); err == nil {
		total, xpErr := s.store.GetUserXP(s.store.db, userID)
		if xpErr != nil {
			return nil, false, fmt.Errorf("get user xp: %w", xpErr)
		}
		return &models.CompleteResourceResponse{
			Completion: *existing,
			XPEarned:   0,
			TotalXP:    total,
		}, true, nil
	} else if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("get completion: %w", err)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin complete resource: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	completion, err := s.store.InsertResourceCompletion(tx, userID, resourceID, timeSpentSeconds, ResourceXP, now)
	if err != nil {
		return nil, false, err
	}
	if err := s.store.AddUserXP(tx, userID, ResourceXP); err != nil {
		return nil, false, err
	}

	// Fold into the enrollment when one exists; completing a resource
	// without enrolling is allowed and only affects the user's XP.
	enrollment, err := s.store.GetProgress(tx, userID, pathID)
	if err != nil && err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("get enrollment: %w", err)
	}
	if err == nil {
		total, err := s.store.CountPathResources(tx, pathID)
		if err != nil {
			return nil, false, err
		}
		completed, err := s.store.CountCompletedPathResources(tx, userID, pathID)
		if err != nil {
			return nil, false, err
		}
		pct := Percentage(completed, total)
		minutes := MinutesFromSeconds(timeSpentSeconds)
		if err := s.store.RecordResourceProgress(tx, enrollment.ID, ResourceXP, minutes, pct, now); err != nil {
			return nil, false, err
		}
	}

	totalXP, err := s.store.GetUserXP(tx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("get user xp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit complete resource: %w", err)
	}

	return &models.CompleteResourceResponse{
		Completion: *completion,
		XPEarned:   ResourceXP,
		TotalXP:    totalXP,
	}, false, nil
}

// ── Module Completion ───────────────────────────────────

// CompleteModule marks a module done for an enrolled user, advances the
// cursor, and finishes the path with its bonus XP when no module remains.
func (s *Service) CompleteModule(userID, moduleID int64) (*models.CompleteModuleResponse, bool, error) {
	module, err := s.store.GetModule(s.store.db, moduleID)
	if err == sql.ErrNoRows {
		return nil, false, apperr.NotFound("MODULE_NOT_FOUND", "Module not found")
	}
	if err != nil {
		return nil, false, fmt.Errorf("get module: %w", err)
	}

	enrollment, err := s.store.GetProgress(s.store.db, userID, module.LearningPathID)
	if err == sql.ErrNoRows {
		return nil, false, apperr.Validation("NOT_ENROLLED", "Not enrolled in this learning path")
	}
	if err != nil {
		return nil, false, fmt.Errorf("get enrollment: %w", err)
	}

	done, err := s.store.HasModuleCompletion(s.store.db, userID, moduleID)
	if err != nil {
		return nil, false, err
	}
	if done {
		total, err := s.store.GetUserXP(s.store.db, userID)
		if err != nil {
			return nil, false, fmt.Errorf("get user xp: %w", err)
		}
		return &models.CompleteModuleResponse{
			XPEarned: 0,
			TotalXP:  total,
			Progress: *enrollment,
		}, true, nil
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin complete module: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if err := s.store.InsertModuleCompletion(tx, userID, moduleID, now); err != nil {
		return nil, false, err
	}

	xpEarned := module.XPReward
	if err := s.store.AddUserXP(tx, userID, module.XPReward); err != nil {
		return nil, false, err
	}

	next, err := s.store.NextModuleID(tx, module.LearningPathID, module.Order)
	if err != nil {
		return nil, false, err
	}
	if next != nil {
		if err := s.store.AdvanceModule(tx, enrollment.ID, next, module.XPReward, now); err != nil {
			return nil, false, err
		}
	} else {
		// Last module: the enrollment completes and the path's own
		// reward is granted on top of the module XP.
		pathBonus, err := s.store.GetPathReward(tx, module.LearningPathID)
		if err != nil {
			return nil, false, fmt.Errorf("get path reward: %w", err)
		}
		if err := s.store.CompletePath(tx, enrollment.ID, module.XPReward, now); err != nil {
			return nil, false, err
		}
		if err := s.store.AddUserXP(tx, userID, pathBonus); err != nil {
			return nil, false, err
		}
		xpEarned += pathBonus
		log.Printf("[progress] user %d completed path %d (+%d xp bonus)", userID, module.LearningPathID, pathBonus)
	}

	updated, err := s.store.GetProgress(tx, userID, module.LearningPathID)
	if err != nil {
		return nil, false, fmt.Errorf("reload progress: %w", err)
	}
	totalXP, err := s.store.GetUserXP(tx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("get user xp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit complete module: %w", err)
	}

	return &models.CompleteModuleResponse{
		XPEarned: xpEarned,
		TotalXP:  totalXP,
		Progress: *updated,
	}, false, nil
}
