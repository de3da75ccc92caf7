package db

import "database/sql"

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable reports whether the table exists in the current schema. Facts like
// penalties live in tables owned by other services, so their absence is a
// normal condition, not an error.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
