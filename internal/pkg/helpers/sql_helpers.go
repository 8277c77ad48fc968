package helpers

// NullableString converts an empty string to a nil pointer so optional
// columns store NULL instead of "".
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringOrEmpty dereferences an optional string column.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
