package sqlite

import (
	"database/sql"
)

// PtrToNullString converts an optional string into a nullable column value.
func PtrToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullStringToPtr converts a nullable column value back into an optional string.
func NullStringToPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	value := s.String
	return &value
}
