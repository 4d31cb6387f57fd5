package reports

import (
	"database/sql"

	"github.com/learnquest/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CommentExists(id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1 AND is_deleted = FALSE)`, id,
	).Scan(&exists)
	return exists, err
}

func (s *Store) ResourceExists(id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// HasOpenReport reports whether the user already has a pending report
// against the same piece of content.
func (s *Store) HasOpenReport(reporterID int64, contentType string, contentID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (
			SELECT 1 FROM reports
			WHERE reporter_id = $1 AND content_type = $2 AND content_id = $3 AND status = 'pending'
		)`, reporterID, contentType, contentID,
	).Scan(&exists)
	return exists, err
}

func (s *Store) Insert(r *models.Report) error {
	return s.db.QueryRow(
		`INSERT INTO reports (reporter_id, content_type, content_id, reason, details, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')
		 RETURNING id, status, created_at`,
		r.ReporterID, r.ContentType, r.ContentID, r.Reason, r.Details,
	).Scan(&r.ID, &r.Status, &r.CreatedAt)
}

func (s *Store) ListByReporter(reporterID int64) ([]models.Report, error) {
	rows, err := s.db.Query(
		`SELECT id, reporter_id, content_type, content_id, reason, details,
		        status, COALESCE(action_taken, ''), created_at, resolved_at
		 FROM reports
		 WHERE reporter_id = $1
		 ORDER BY created_at DESC`, reporterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(
			&r.ID, &r.ReporterID, &r.ContentType, &r.ContentID, &r.Reason, &r.Details,
			&r.Status, &r.ActionTaken, &r.CreatedAt, &r.ResolvedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
