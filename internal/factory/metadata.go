package factory

import "net/url"

// The Update* helpers decide, for a single field, whether the candidate
// taken from a description replaces the current value. They return the value
// to keep and whether it differs from current.

// UpdateString replaces current only with a non-empty, different candidate.
func UpdateString(current, candidate string) (string, bool) {
	if candidate == "" || candidate == current {
		return current, false
	}
	return candidate, true
}

// UpdateURI replaces current with a non-nil candidate whose string form differs.
func UpdateURI(current, candidate *url.URL) (*url.URL, bool) {
	if candidate == nil {
		return current, false
	}
	if current != nil && current.String() == candidate.String() {
		return current, false
	}
	u := *candidate
	return &u, true
}

// UpdateOptional replaces current with the candidate when one is given and differs.
func UpdateOptional[T comparable](current T, candidate *T) (T, bool) {
	if candidate == nil || *candidate == current {
		return current, false
	}
	return *candidate, true
}

// UpdateComparable treats the zero value of T as "not specified".
func UpdateComparable[T comparable](current, candidate T) (T, bool) {
	var zero T
	if candidate == zero || candidate == current {
		return current, false
	}
	return candidate, true
}

// field is one row of a factory's update table.
type field[E, D any] struct {
	name  string
	apply func(e *E, d *D) bool
}

// stringField builds a table row for a string field.
func stringField[E, D any](name string, get func(*E) *string, from func(*D) string) field[E, D] {
	return field[E, D]{name: name, apply: func(e *E, d *D) bool {
		v, changed := UpdateString(*get(e), from(d))
		if changed {
			*get(e) = v
		}
		return changed
	}}
}

func uriField[E, D any](name string, get func(*E) **url.URL, from func(*D) *url.URL) field[E, D] {
	return field[E, D]{name: name, apply: func(e *E, d *D) bool {
		v, changed := UpdateURI(*get(e), from(d))
		if changed {
			*get(e) = v
		}
		return changed
	}}
}

// applyAll runs every row, without short-circuiting, and returns the names
// of the fields that changed.
func applyAll[E, D any](e *E, d *D, fields []field[E, D]) []string {
	var changed []string
	for _, f := range fields {
		if f.apply(e, d) {
			changed = append(changed, f.name)
		}
	}
	return changed
}

func mustParseURI(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}
