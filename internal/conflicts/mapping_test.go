package conflicts

import (
	"strings"
	"testing"
)

// An INSERT carries no FROM clause, so its RETURNING list must not use the
// projection's table alias.
func TestConflictColumnsUnqualified(t *testing.T) {
	if strings.Contains(conflictColumns, ".") {
		t.Fatalf("conflictColumns carries a table qualifier: %s", conflictColumns)
	}
}

func TestConflictColumnsMatchProjection(t *testing.T) {
	want := strings.ReplaceAll(projection.Columns(), "c.", "")
	if conflictColumns != want {
		t.Errorf("conflictColumns out of sync with projection: got %q, want %q",
			conflictColumns, want)
	}
}
