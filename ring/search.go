package ring

// MatchFunc reports whether a record satisfies a search.
type MatchFunc[T any] func(T) bool

// MatchEqual returns the default search predicate: plain equality against
// want. Callers with richer notions of equivalence supply their own
// MatchFunc instead.
func MatchEqual[T comparable](want T) MatchFunc[T] {
	return func(got T) bool { return got == want }
}
