package watcher

// InSkippedDir exports inSkippedDir for testing.
func InSkippedDir(path string) bool {
	return inSkippedDir(path)
}
