package domain

// Closure accumulates resolved dependencies in first-seen order, deduplicated by
// exact coordinate string. The zero value is not usable; call NewClosure.
type Closure struct {
	seen map[string]struct{}
	deps []Dependency
}

// NewClosure returns an empty closure.
func NewClosure() *Closure {
	return &Closure{seen: make(map[string]struct{})}
}

// Add appends every dependency whose coordinate has not been seen yet and
// returns how many were added.
func (c *Closure) Add(deps ...Dependency) int {
	added := 0
	for _, dep := range deps {
		coordinate := dep.Coordinate()
		if _, ok := c.seen[coordinate]; ok {
			continue
		}
		c.seen[coordinate] = struct{}{}
		c.deps = append(c.deps, dep)
		added++
	}
	return added
}

// Contains reports whether a dependency with the given coordinate is in the closure.
func (c *Closure) Contains(coordinate string) bool {
	_, ok := c.seen[coordinate]
	return ok
}

// Len returns the number of dependencies in the closure.
func (c *Closure) Len() int {
	return len(c.deps)
}

// Dependencies returns a copy of the closure in insertion order.
func (c *Closure) Dependencies() []Dependency {
	out := make([]Dependency, len(c.deps))
	copy(out, c.deps)
	return out
}

// Coordinates returns the coordinate strings of the closure in insertion order.
func Coordinates(deps []Dependency) []string {
	out := make([]string, len(deps))
	for i, dep := range deps {
		out[i] = dep.Coordinate()
	}
	return out
}
