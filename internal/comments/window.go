package comments

import (
	"time"

	"github.com/learnquest/backend/internal/models"
)

// CommentXP is awarded to the author when a comment is posted.
const CommentXP = 5

// EditWindow is how long after posting a comment its author may edit it.
const EditWindow = 15 * time.Minute

// CanEdit reports whether a comment posted at createdAt is still inside the
// edit window at now.
func CanEdit(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= EditWindow
}

// DisplayContent masks soft-deleted comments while keeping the row visible
// so reply threads stay intact.
func DisplayContent(content string, deleted bool) string {
	if deleted {
		return models.DeletedCommentContent
	}
	return content
}

// PageCount computes the number of pages for a paginated listing.
func PageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
