package postgres

import "database/sql"

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringToString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
