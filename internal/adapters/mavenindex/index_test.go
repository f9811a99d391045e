package mavenindex_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/mavenindex"
	"go.trai.ch/kiln/internal/core/domain"
)

const testBaseURL = "https://search.example.test/solrsearch/select"

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) *http.Response
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req), nil
}

func newMockClient(handler func(req *http.Request) *http.Response) *http.Client {
	return &http.Client{
		Transport: &MockRoundTripper{RoundTripFunc: handler},
	}
}

func jsonResponse(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
}

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestIndex_ResolveVersion(t *testing.T) {
	body := loadFixture(t, "cats_core.json")

	var seen *http.Request
	client := newMockClient(func(req *http.Request) *http.Response {
		seen = req
		return jsonResponse(http.StatusOK, body)
	})

	index := mavenindex.NewIndexWithClient(testBaseURL, client)
	version, err := index.ResolveVersion(context.Background(), "org.typelevel", "cats-core_3", domain.LatestKeyword)
	require.NoError(t, err)
	assert.Equal(t, "2.10.0", version)

	require.NotNil(t, seen)
	query := seen.URL.Query()
	assert.Equal(t, `g:"org.typelevel" AND a:"cats-core_3"`, query.Get("q"))
	assert.Equal(t, "gav", query.Get("core"))
	assert.Equal(t, "50", query.Get("rows"))
	assert.Equal(t, "json", query.Get("wt"))
	assert.Contains(t, seen.Header.Get("User-Agent"), "kiln/")
}

func TestIndex_ResolveVersion_Memoized(t *testing.T) {
	body := loadFixture(t, "cats_core.json")

	var calls atomic.Int32
	client := newMockClient(func(_ *http.Request) *http.Response {
		calls.Add(1)
		return jsonResponse(http.StatusOK, body)
	})

	index := mavenindex.NewIndexWithClient(testBaseURL, client)
	for range 3 {
		version, err := index.ResolveVersion(context.Background(), "org.typelevel", "cats-core_3", domain.LatestKeyword)
		require.NoError(t, err)
		assert.Equal(t, "2.10.0", version)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestIndex_ResolveVersion_ConcurrentCallers(t *testing.T) {
	body := loadFixture(t, "cats_core.json")

	var calls atomic.Int32
	client := newMockClient(func(_ *http.Request) *http.Response {
		calls.Add(1)
		return jsonResponse(http.StatusOK, body)
	})

	index := mavenindex.NewIndexWithClient(testBaseURL, client)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			version, err := index.ResolveVersion(context.Background(), "org.typelevel", "cats-core_3", domain.LatestKeyword)
			assert.NoError(t, err)
			assert.Equal(t, "2.10.0", version)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestIndex_ResolveVersion_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: domain.ErrVersionLookupFailed.Error()},
		{name: "bad json", status: http.StatusOK, body: "{", wantErr: domain.ErrVersionLookupParseFailed.Error()},
		{name: "no docs", status: http.StatusOK, body: `{"response":{"numFound":0,"docs":[]}}`, wantErr: domain.ErrVersionNotFound.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newMockClient(func(_ *http.Request) *http.Response {
				return jsonResponse(tt.status, []byte(tt.body))
			})

			index := mavenindex.NewIndexWithClient(testBaseURL, client)
			_, err := index.ResolveVersion(context.Background(), "org.example", "missing", "")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrResolution)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIndex_ResolveVersion_ErrorsAreNotMemoized(t *testing.T) {
	body := loadFixture(t, "cats_core.json")

	var calls atomic.Int32
	client := newMockClient(func(_ *http.Request) *http.Response {
		if calls.Add(1) == 1 {
			return jsonResponse(http.StatusServiceUnavailable, nil)
		}
		return jsonResponse(http.StatusOK, body)
	})

	index := mavenindex.NewIndexWithClient(testBaseURL, client)
	_, err := index.ResolveVersion(context.Background(), "org.typelevel", "cats-core_3", domain.LatestKeyword)
	require.Error(t, err)

	version, err := index.ResolveVersion(context.Background(), "org.typelevel", "cats-core_3", domain.LatestKeyword)
	require.NoError(t, err)
	assert.Equal(t, "2.10.0", version)
}

func TestIndex_ResolveVersion_ConstraintsShareOneLookup(t *testing.T) {
	body := loadFixture(t, "cats_core.json")

	var calls atomic.Int32
	client := newMockClient(func(_ *http.Request) *http.Response {
		calls.Add(1)
		return jsonResponse(http.StatusOK, body)
	})

	index := mavenindex.NewIndexWithClient(testBaseURL, client)
	ctx := context.Background()

	stable, err := index.ResolveVersion(ctx, "org.typelevel", "cats-core_3", domain.StableKeyword)
	require.NoError(t, err)
	assert.Equal(t, "2.10.0", stable)

	ranged, err := index.ResolveVersion(ctx, "org.typelevel", "cats-core_3", "[2.8,2.10)")
	require.NoError(t, err)
	assert.Equal(t, "2.9.0", ranged)

	option, err := index.ResolveVersion(ctx, "org.typelevel", "cats-core_3", "2.6.0,2.8.0")
	require.NoError(t, err)
	assert.Equal(t, "2.8.0", option)

	assert.Equal(t, int32(1), calls.Load())
}

func TestIndex_ResolveVersion_ConcreteVersionSkipsLookup(t *testing.T) {
	client := newMockClient(func(_ *http.Request) *http.Response {
		t.Fatal("unexpected request")
		return nil
	})

	index := mavenindex.NewIndexWithClient(testBaseURL, client)
	version, err := index.ResolveVersion(context.Background(), "org.typelevel", "cats-core_3", "2.10.0")
	require.NoError(t, err)
	assert.Equal(t, "2.10.0", version)
}

func TestIndex_ResolveVersion_EmptyRange(t *testing.T) {
	body := loadFixture(t, "cats_core.json")
	client := newMockClient(func(_ *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, body)
	})

	index := mavenindex.NewIndexWithClient(testBaseURL, client)
	_, err := index.ResolveVersion(context.Background(), "org.typelevel", "cats-core_3", "[3.0,4.0)")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResolution)
	assert.ErrorContains(t, err, domain.ErrVersionNotFound.Error())
}

func TestSelectVersion(t *testing.T) {
	published := []string{"2.11.0-RC1", "2.9.0", "2.10.0", "2.8.0", "2.7.0"}

	tests := []struct {
		name       string
		constraint string
		versions   []string
		want       string
		wantOK     bool
	}{
		{name: "latest", constraint: domain.LatestKeyword, versions: published, want: "2.10.0", wantOK: true},
		{name: "empty means latest", constraint: "", versions: published, want: "2.10.0", wantOK: true},
		{name: "stable", constraint: domain.StableKeyword, versions: published, want: "2.10.0", wantOK: true},
		{name: "stable without stable releases", constraint: domain.StableKeyword, versions: []string{"1.0.0-M1"}},
		{name: "half-open range", constraint: "[2.8,2.10)", versions: published, want: "2.9.0", wantOK: true},
		{name: "inclusive upper bound", constraint: "[2.8,2.10.0]", versions: published, want: "2.10.0", wantOK: true},
		{name: "exclusive lower bound", constraint: "(2.7.0,2.8.0]", versions: published, want: "2.8.0", wantOK: true},
		{name: "open upper bound", constraint: "[2.10,)", versions: published, want: "2.10.0", wantOK: true},
		{name: "open lower bound", constraint: "(,2.8)", versions: published, want: "2.7.0", wantOK: true},
		{name: "pre-release inside range", constraint: "[2.11.0-RC1,2.12)", versions: published, want: "2.11.0-RC1", wantOK: true},
		{name: "nothing in range", constraint: "[3.0,4.0)", versions: published},
		{name: "first published option", constraint: "2.6.0, 2.9.0, 2.8.0", versions: published, want: "2.9.0", wantOK: true},
		{name: "no option published", constraint: "1.0,1.1", versions: published, want: "2.10.0", wantOK: true},
		{name: "concrete version", constraint: "2.9.0", versions: nil, want: "2.9.0", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mavenindex.SelectVersion(tt.constraint, tt.versions)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectLatest(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
		wantOK   bool
	}{
		{name: "empty", versions: nil},
		{name: "numeric ordering", versions: []string{"2.9.0", "2.10.0", "2.2.0"}, want: "2.10.0", wantOK: true},
		{name: "stable beats newer pre-release", versions: []string{"3.0.0-RC1", "2.13.0"}, want: "2.13.0", wantOK: true},
		{name: "only pre-releases", versions: []string{"1.0.0-M1", "1.0.0-M2"}, want: "1.0.0-M2", wantOK: true},
		{name: "short versions", versions: []string{"1.0", "1.1"}, want: "1.1", wantOK: true},
		{name: "unparseable falls back to first", versions: []string{"1.0.0.Final", "0.9.0.Final"}, want: "1.0.0.Final", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mavenindex.SelectLatest(tt.versions)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
