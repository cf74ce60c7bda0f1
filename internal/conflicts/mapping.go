package conflicts

import (
	"github.com/arbiterhq/arbiter/pkg/query"
	"github.com/arbiterhq/arbiter/pkg/repository"
)

// conflictColumns is the unqualified column list for INSERT ... RETURNING,
// ordered to match scanConflict.
const conflictColumns = "id, creator_id, title, description, language, status, created_at"

var projection = query.
	NewProjectionMap("public", "conflicts", "c").
	Project("id", "ID").
	Project("creator_id", "CreatorID").
	Project("title", "Title").
	Project("description", "Description").
	Project("language", "Language").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

// summaryProjection joins the caller's membership so listing is naturally
// scoped to conflicts the caller belongs to.
var summaryProjection = query.
	NewProjectionMap("public", "conflicts", "c").
	Project("id", "ID").
	Project("creator_id", "CreatorID").
	Project("title", "Title").
	Project("description", "Description").
	Project("language", "Language").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Join("public", "conflict_members", "m", "INNER JOIN", "c.id = m.conflict_id").
	Project("role", "CallerRole").
	Project("user_id", "MemberID")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanConflict(s repository.Scanner) (Conflict, error) {
	var c Conflict
	err := s.Scan(
		&c.ID,
		&c.CreatorID,
		&c.Title,
		&c.Description,
		&c.Language,
		&c.Status,
		&c.CreatedAt,
	)
	return c, err
}

func scanSummary(s repository.Scanner) (Summary, error) {
	var sm Summary
	err := s.Scan(
		&sm.ID,
		&sm.CreatorID,
		&sm.Title,
		&sm.Description,
		&sm.Language,
		&sm.Status,
		&sm.CreatedAt,
		&sm.CallerRole,
		&sm.MemberID,
	)
	return sm, err
}
