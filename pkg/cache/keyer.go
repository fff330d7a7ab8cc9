package cache

// SolutionKeyOpts are the solver settings that take part in a cache key.
// Parallelism is not one of them; it does not change the cover size.
type SolutionKeyOpts struct {
	Branching string `json:"branching"`
	Dedupe    bool   `json:"dedupe"`
	Reduce    bool   `json:"reduce"`
	SkipEmpty bool   `json:"skip_empty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// SolutionKey returns the key for the cover of the instance whose
	// canonical form hashes to instanceHash.
	SolutionKey(instanceHash string, opts SolutionKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "solution:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey implements Keyer.
func (DefaultKeyer) SolutionKey(instanceHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", instanceHash, opts)
}
