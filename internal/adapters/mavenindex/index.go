// Package mavenindex implements the VersionLookup port against the Maven Central search API.
package mavenindex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	searchAPIBase     = "https://search.maven.org/solrsearch/select"
	searchRows        = 50
	httpClientTimeout = 30 * time.Second
	memoSize          = 256
	memoTTL           = time.Hour
)

var _ ports.VersionLookup = (*Index)(nil)

// Index resolves version constraints against the versions an artifact has published.
// Version lists are memoized for the lifetime of the process and concurrent identical
// lookups share one request.
type Index struct {
	baseURL    string
	httpClient *http.Client

	memo     *lru.LRU[string, []string]
	inflight singleflight.Group
}

// NewIndex creates an Index that queries Maven Central.
func NewIndex() *Index {
	return newIndexWithClient(searchAPIBase, &http.Client{Timeout: httpClientTimeout})
}

func newIndexWithClient(baseURL string, client *http.Client) *Index {
	return &Index{
		baseURL:    baseURL,
		httpClient: client,
		memo:       lru.NewLRU[string, []string](memoSize, nil, memoTTL),
	}
}

// ResolveVersion returns the published version of group:artifact that satisfies constraint.
// Empty and latest pick the newest stable version, falling back to pre-releases when nothing
// stable exists. Stable never picks a pre-release. A range picks the newest version inside it and
// a comma-separated list picks the first option that is published, or the latest otherwise.
// A concrete version is returned unchanged without a lookup.
func (i *Index) ResolveVersion(ctx context.Context, group, artifact, constraint string) (string, error) {
	if !domain.IsVersionConstraint(constraint) {
		return constraint, nil
	}

	versions, err := i.versions(ctx, group, artifact)
	if err != nil {
		return "", domain.Classify(domain.ErrResolution, err)
	}

	version, ok := selectVersion(constraint, versions)
	if !ok {
		notFound := zerr.With(zerr.With(domain.ErrVersionNotFound, "group", group), "artifact", artifact)
		return "", domain.Classify(domain.ErrResolution, zerr.With(notFound, "constraint", constraint))
	}
	return version, nil
}

func (i *Index) versions(ctx context.Context, group, artifact string) ([]string, error) {
	key := group + ":" + artifact
	if versions, ok := i.memo.Get(key); ok {
		return versions, nil
	}

	result, err, _ := i.inflight.Do(key, func() (any, error) {
		if versions, ok := i.memo.Get(key); ok {
			return versions, nil
		}

		versions, err := i.query(ctx, group, artifact)
		if err != nil {
			return nil, err
		}
		if len(versions) > 0 {
			i.memo.Add(key, versions)
		}
		return versions, nil
	})
	if err != nil {
		return nil, err
	}

	versions, _ := result.([]string)
	return versions, nil
}

type searchResponse struct {
	Response struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	Group     string `json:"g"`
	Artifact  string `json:"a"`
	Version   string `json:"v"`
	Timestamp int64  `json:"timestamp"`
}

func (i *Index) query(ctx context.Context, group, artifact string) ([]string, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("g:%q AND a:%q", group, artifact))
	params.Set("core", "gav")
	params.Set("rows", fmt.Sprint(searchRows))
	params.Set("wt", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrVersionLookupFailed.Error())
	}
	req.Header.Set("User-Agent", "kiln/"+build.Version)
	req.Header.Set("Accept", "application/json")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrVersionLookupFailed.Error()), "artifact", group+":"+artifact)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrVersionLookupFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "artifact", group+":"+artifact)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrVersionLookupFailed.Error())
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, zerr.Wrap(err, domain.ErrVersionLookupParseFailed.Error())
	}

	versions := make([]string, 0, len(parsed.Response.Docs))
	for _, doc := range parsed.Response.Docs {
		if doc.Version != "" {
			versions = append(versions, doc.Version)
		}
	}
	return versions, nil
}
