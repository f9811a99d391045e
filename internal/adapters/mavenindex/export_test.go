package mavenindex

import "net/http"

// NewIndexWithClient exports newIndexWithClient for testing.
func NewIndexWithClient(baseURL string, client *http.Client) *Index {
	return newIndexWithClient(baseURL, client)
}

// SelectLatest exports selectLatest for testing.
func SelectLatest(versions []string) (string, bool) {
	return selectLatest(versions)
}

// SelectVersion exports selectVersion for testing.
func SelectVersion(constraint string, versions []string) (string, bool) {
	return selectVersion(constraint, versions)
}
