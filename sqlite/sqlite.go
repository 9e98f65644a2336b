package sqlite

import "strings"

// scannable is satisfied by *sql.Row and *sql.Rows.
type scannable interface {
	Scan(...any) error
}

// generateParameters returns a placeholder group such as (?,?,?) for n values.
func generateParameters(n int) string {
	if n <= 0 {
		return ""
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}
