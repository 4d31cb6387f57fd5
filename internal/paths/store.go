package paths

import (
	"database/sql"
	"fmt"

	"github.com/learnquest/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const pathColumns = `id, title, COALESCE(description, ''), COALESCE(category, ''),
	COALESCE(difficulty, ''), COALESCE(image_url, ''), xp_reward, creator_id,
	is_published, is_approved, rating, total_ratings, enrolled_count,
	created_at, updated_at`

func scanPath(row interface{ Scan(...interface{}) error }) (models.LearningPath, error) {
	var p models.LearningPath
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category,
		&p.Difficulty, &p.ImageURL, &p.XPReward, &p.CreatorID,
		&p.IsPublished, &p.IsApproved, &p.Rating, &p.TotalRatings,
		&p.EnrolledCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ── Reads ───────────────────────────────────────────────

// ListVisible returns the catalog a learner may browse: published and
// admin-approved paths.
func (s *Store) ListVisible() ([]models.LearningPath, error) {
	rows, err := s.db.Query(
		`SELECT ` + pathColumns + ` FROM learning_paths
		 WHERE is_published = TRUE AND is_approved = TRUE
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	defer rows.Close()

	paths := []models.LearningPath{}
	for rows.Next() {
		p, err := scanPath(rows)
		if err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *Store) GetPath(pathID int64) (*models.LearningPath, error) {
	p, err := scanPath(s.db.QueryRow(
		`SELECT `+pathColumns+` FROM learning_paths WHERE id = $1`, pathID,
	))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPathTree loads a path with its ordered modules and their resources.
func (s *Store) GetPathTree(pathID int64) (*models.LearningPath, error) {
	path, err := s.GetPath(pathID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, title, COALESCE(description, ''), "order", xp_reward,
		        learning_path_id, created_at
		 FROM modules WHERE learning_path_id = $1 ORDER BY "order", id`,
		pathID,
	)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	path.Modules = []models.Module{}
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Order,
			&m.XPReward, &m.LearningPathID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		path.Modules = append(path.Modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range path.Modules {
		resources, err := s.listModuleResources(path.Modules[i].ID)
		if err != nil {
			return nil, err
		}
		path.Modules[i].Resources = resources
	}
	return path, nil
}

func (s *Store) listModuleResources(moduleID int64) ([]models.Resource, error) {
	rows, err := s.db.Query(
		`SELECT id, title, COALESCE(description, ''), COALESCE(resource_type, ''),
		        COALESCE(url, ''), COALESCE(content, ''), "order", module_id,
		        rating, total_ratings, created_at
		 FROM resources WHERE module_id = $1 ORDER BY "order", id`,
		moduleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var r models.Resource
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.ResourceType,
			&r.URL, &r.Content, &r.Order, &r.ModuleID,
			&r.Rating, &r.TotalRatings, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

func (s *Store) GetUserRole(userID int64) (string, error) {
	var role string
	err := s.db.QueryRow(`SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *Store) GetModulePath(moduleID int64) (int64, error) {
	var pathID int64
	err := s.db.QueryRow(
		`SELECT learning_path_id FROM modules WHERE id = $1`, moduleID,
	).Scan(&pathID)
	return pathID, err
}

// ── Writes ──────────────────────────────────────────────

func (s *Store) CreatePath(creatorID int64, req *models.CreatePathRequest) (*models.LearningPath, error) {
	p, err := scanPath(s.db.QueryRow(
		`INSERT INTO learning_paths (title, description, category, difficulty, image_url, xp_reward, creator_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+pathColumns,
		req.Title, req.Description, req.Category, req.Difficulty,
		req.ImageURL, req.XPReward, creatorID,
	))
	if err != nil {
		return nil, fmt.Errorf("create path: %w", err)
	}
	return &p, nil
}

func (s *Store) AddModule(pathID int64, req *models.CreateModuleRequest) (*models.Module, error) {
	var m models.Module
	err := s.db.QueryRow(
		`INSERT INTO modules (title, description, "order", xp_reward, learning_path_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, COALESCE(description, ''), "order", xp_reward,
		           learning_path_id, created_at`,
		req.Title, req.Description, req.Order, req.XPReward, pathID,
	).Scan(&m.ID, &m.Title, &m.Description, &m.Order, &m.XPReward,
		&m.LearningPathID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add module: %w", err)
	}
	return &m, nil
}

func (s *Store) AddResource(moduleID int64, req *models.CreateResourceRequest) (*models.Resource, error) {
	var r models.Resource
	err := s.db.QueryRow(
		`INSERT INTO resources (title, description, resource_type, url, content, "order", module_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, title, COALESCE(description, ''), COALESCE(resource_type, ''),
		           COALESCE(url, ''), COALESCE(content, ''), "order", module_id,
		           rating, total_ratings, created_at`,
		req.Title, req.Description, req.ResourceType, req.URL, req.Content,
		req.Order, moduleID,
	).Scan(&r.ID, &r.Title, &r.Description, &r.ResourceType,
		&r.URL, &r.Content, &r.Order, &r.ModuleID,
		&r.Rating, &r.TotalRatings, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return &r, nil
}

func (s *Store) SetPublished(pathID int64, published bool) error {
	_, err := s.db.Exec(
		`UPDATE learning_paths SET is_published = $2, updated_at = NOW() WHERE id = $1`,
		pathID, published,
	)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	return nil
}

// Rate folds one rating into the path's running average atomically.
func (s *Store) Rate(pathID int64, rating int) (float64, error) {
	var newRating float64
	err := s.db.QueryRow(
		`UPDATE learning_paths SET
		    rating = (rating * total_ratings + $2) / (total_ratings + 1),
		    total_ratings = total_ratings + 1,
		    updated_at = NOW()
		 WHERE id = $1
		 RETURNING rating`,
		pathID, rating,
	).Scan(&newRating)
	if err != nil {
		return 0, fmt.Errorf("rate path: %w", err)
	}
	return newRating, nil
}

// ── Search ──────────────────────────────────────────────

type PathHit struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type ModuleHit struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	LearningPathID int64  `json:"learning_path_id"`
	PathTitle      string `json:"path_title"`
}

type ResourceHit struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ModuleID  int64  `json:"module_id"`
	PathID    int64  `json:"path_id"`
	PathTitle string `json:"path_title"`
}

const searchHitLimit = 6

func (s *Store) SearchPaths(pattern string) ([]PathHit, error) {
	rows, err := s.db.Query(
		`SELECT id, title, COALESCE(category, ''), COALESCE(difficulty, '')
		 FROM learning_paths
		 WHERE is_published = TRUE
		   AND (title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		 LIMIT $2`,
		pattern, searchHitLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search paths: %w", err)
	}
	defer rows.Close()

	hits := []PathHit{}
	for rows.Next() {
		var h PathHit
		if err := rows.Scan(&h.ID, &h.Title, &h.Category, &h.Difficulty); err != nil {
			return nil, fmt.Errorf("scan path hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (s *Store) SearchModules(pattern string) ([]ModuleHit, error) {
	rows, err := s.db.Query(
		`SELECT m.id, m.title, m.learning_path_id, lp.title
		 FROM modules m
		 JOIN learning_paths lp ON lp.id = m.learning_path_id
		 WHERE lp.is_published = TRUE
		   AND (m.title ILIKE $1 OR m.description ILIKE $1)
		 LIMIT $2`,
		pattern, searchHitLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search modules: %w", err)
	}
	defer rows.Close()

	hits := []ModuleHit{}
	for rows.Next() {
		var h ModuleHit
		if err := rows.Scan(&h.ID, &h.Title, &h.LearningPathID, &h.PathTitle); err != nil {
			return nil, fmt.Errorf("scan module hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (s *Store) SearchResources(pattern string) ([]ResourceHit, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.title, r.module_id, m.learning_path_id, lp.title
		 FROM resources r
		 JOIN modules m ON m.id = r.module_id
		 JOIN learning_paths lp ON lp.id = m.learning_path_id
		 WHERE lp.is_published = TRUE
		   AND (r.title ILIKE $1 OR r.description ILIKE $1)
		 LIMIT $2`,
		pattern, searchHitLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}
	defer rows.Close()

	hits := []ResourceHit{}
	for rows.Next() {
		var h ResourceHit
		if err := rows.Scan(&h.ID, &h.Title, &h.ModuleID, &h.PathID, &h.PathTitle); err != nil {
			return nil, fmt.Errorf("scan resource hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
