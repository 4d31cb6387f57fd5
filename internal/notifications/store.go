package notifications

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

const notificationColumns = `id, user_id, type, title, COALESCE(message, ''),
	COALESCE(related_type, ''), related_id, is_read, created_at`

func scanNotification(row interface{ Scan(...any) error }) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
		&n.RelatedType, &n.RelatedID, &n.IsRead, &n.CreatedAt,
	)
	return n, err
}

func (s *Store) ListForUser(userID int64, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT 50`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) CountUnread(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID,
	).Scan(&n)
	return n, err
}

func (s *Store) Get(id int64) (*models.Notification, error) {
	row := s.db.QueryRow(`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) MarkRead(id int64) error {
	_, err := s.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	return err
}

func (s *Store) MarkAllRead(userID int64) (int64, error) {
	res, err := s.db.Exec(
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
