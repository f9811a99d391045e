package shell

// MergeEnvironment exports mergeEnvironment for testing.
func MergeEnvironment(base, overrides []string) []string {
	return mergeEnvironment(base, overrides)
}
