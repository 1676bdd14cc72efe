package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceInt returns the first non-zero int from vals.
func CoalesceInt(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// StrPtrOrNil returns nil for an empty string, otherwise a pointer to it.
// Optional dates travel as JSON null rather than "".
func StrPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
