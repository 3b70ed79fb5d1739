package models

// ListQuery is an explicit query specification for list operations.
// Filters are exact-match equality on whitelisted fields; Search is a
// case-insensitive substring match over the entity's text fields; Ordering
// names a whitelisted column with a "-" prefix for descending. Fields not in
// the whitelist are ignored rather than rejected, so callers cannot probe the
// schema through errors.
type ListQuery struct {
	Filters  map[string]any
	Search   string
	Ordering string
	Limit    int
	Offset   int
}
