package env

// TerminationPolicy decides when an episode ends.
type TerminationPolicy struct {
	StepBudget int
	StallLimit int
}

// IsDone fires once per badge gained: the count must strictly exceed the previous
// step's count.
func (p TerminationPolicy) IsDone(s GameSnapshot, mem *EpisodeMemory) bool {
	if mem.Prior == nil {
		return false
	}
	return s.Badges > mem.Prior.Badges
}

// IsTruncated reports whether the step budget (or the stall limit, when set) is spent.
func (p TerminationPolicy) IsTruncated(mem *EpisodeMemory) bool {
	if mem.StepCount >= p.StepBudget {
		return true
	}
	return p.StallLimit > 0 && mem.StallCount > p.StallLimit
}

// Truncate checks IsTruncated and, when it fires, purges mem so the same instance
// starts the next episode clean.
func (p TerminationPolicy) Truncate(mem *EpisodeMemory) bool {
	if !p.IsTruncated(mem) {
		return false
	}
	mem.Reset()
	return true
}
