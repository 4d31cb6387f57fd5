package paths

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
)

const defaultPathXP = 100

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListPaths() ([]models.LearningPath, error) {
	return s.store.ListVisible()
}

func (s *Service) GetPath(pathID int64) (*models.LearningPath, error) {
	path, err := s.store.GetPathTree(pathID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("PATH_NOT_FOUND", "Learning path not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get path: %w", err)
	}
	return path, nil
}

// CreatePath creates an unpublished draft. Only contributors and admins may
// author content.
func (s *Service) CreatePath(userID int64, req *models.CreatePathRequest) (*models.LearningPath, error) {
	role, err := s.store.GetUserRole(userID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if role != models.RoleContributor && role != models.RoleAdmin {
		return nil, apperr.Forbidden("CONTRIBUTOR_REQUIRED", "Only contributors can create learning paths")
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("TITLE_REQUIRED", "Title is required")
	}
	if req.XPReward <= 0 {
		req.XPReward = defaultPathXP
	}

	path, err := s.store.CreatePath(userID, req)
	if err != nil {
		return nil, err
	}
	log.Printf("[paths] user %d created path %d %q", userID, path.ID, path.Title)
	return path, nil
}

// AddModule appends a module to a path the caller created.
func (s *Service) AddModule(userID, pathID int64, req *models.CreateModuleRequest) (*models.Module, error) {
	if err := s.requireCreator(userID, pathID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("TITLE_REQUIRED", "Title is required")
	}
	if req.XPReward <= 0 {
		req.XPReward = 50
	}
	return s.store.AddModule(pathID, req)
}

// AddResource appends a resource to a module of a path the caller created.
func (s *Service) AddResource(userID, moduleID int64, req *models.CreateResourceRequest) (*models.Resource, error) {
	pathID, err := s.store.GetModulePath(moduleID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("MODULE_NOT_FOUND", "Module not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}
	if err := s.requireCreator(userID, pathID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation("TITLE_REQUIRED", "Title is required")
	}
	return s.store.AddResource(moduleID, req)
}

// Publish submits the creator's path for admin approval.
func (s *Service) Publish(userID, pathID int64) (*models.LearningPath, error) {
	if err := s.requireCreator(userID, pathID); err != nil {
		return nil, err
	}
	if err := s.store.SetPublished(pathID, true); err != nil {
		return nil, err
	}
	return s.store.GetPath(pathID)
}

func (s *Service) requireCreator(userID, pathID int64) error {
	path, err := s.store.GetPath(pathID)
	if err == sql.ErrNoRows {
		return apperr.NotFound("PATH_NOT_FOUND", "Learning path not found")
	}
	if err != nil {
		return fmt.Errorf("get path: %w", err)
	}
	if path.CreatorID != userID {
		return apperr.Forbidden("NOT_CREATOR", "Not authorized to modify this path")
	}
	return nil
}

// Rate records one 1-5 rating against a path's running average.
func (s *Service) Rate(pathID int64, rating int) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, apperr.Validation("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if _, err := s.store.GetPath(pathID); err != nil {
		if err == sql.ErrNoRows {
			return 0, apperr.NotFound("PATH_NOT_FOUND", "Learning path not found")
		}
		return 0, fmt.Errorf("get path: %w", err)
	}
	return s.store.Rate(pathID, rating)
}

// SearchResults groups the hits across the content tree.
type SearchResults struct {
	Paths     []PathHit     `json:"paths"`
	Modules   []ModuleHit   `json:"modules"`
	Resources []ResourceHit `json:"resources"`
}

// Search matches published content by title, description, or category.
// Queries under two characters return empty results rather than erroring.
func (s *Service) Search(query string) (*SearchResults, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	results := &SearchResults{
		Paths:     []PathHit{},
		Modules:   []ModuleHit{},
		Resources: []ResourceHit{},
	}
	if len(q) < 2 {
		return results, nil
	}

	pattern := "%" + q + "%"
	var err error
	if results.Paths, err = s.store.SearchPaths(pattern); err != nil {
		return nil, err
	}
	if results.Modules, err = s.store.SearchModules(pattern); err != nil {
		return nil, err
	}
	if results.Resources, err = s.store.SearchResources(pattern); err != nil {
		return nil, err
	}
	return results, nil
}
