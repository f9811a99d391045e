package mavenindex

import (
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"golang.org/x/mod/semver"
)

// selectVersion picks the version satisfying constraint out of the published versions.
func selectVersion(constraint string, versions []string) (string, bool) {
	switch constraint {
	case "", domain.LatestKeyword:
		return selectLatest(versions)
	case domain.StableKeyword:
		return selectStable(versions)
	}

	if r, ok := domain.ParseVersionRange(constraint); ok {
		return selectLatest(slices.DeleteFunc(slices.Clone(versions), func(v string) bool {
			return !inRange(v, r)
		}))
	}

	if domain.IsVersionConstraint(constraint) {
		for _, option := range domain.VersionOptions(constraint) {
			if slices.Contains(versions, option) {
				return option, true
			}
		}
		return selectLatest(versions)
	}
	return constraint, true
}

// selectLatest picks the highest version by semantic ordering, preferring stable releases.
// Versions that do not parse as semantic versions only win when nothing else does,
// in which case the first one listed by the index is taken.
func selectLatest(versions []string) (string, bool) {
	if len(versions) == 0 {
		return "", false
	}

	stable, _ := selectStable(versions)
	if stable != "" {
		return stable, true
	}

	var pre string
	for _, v := range versions {
		canonical := "v" + v
		if semver.IsValid(canonical) && (pre == "" || semver.Compare(canonical, "v"+pre) > 0) {
			pre = v
		}
	}
	if pre != "" {
		return pre, true
	}
	return versions[0], true
}

// selectStable picks the highest semantic version that carries no pre-release tag.
func selectStable(versions []string) (string, bool) {
	var stable string
	for _, v := range versions {
		canonical := "v" + v
		if !semver.IsValid(canonical) || semver.Prerelease(canonical) != "" {
			continue
		}
		if stable == "" || semver.Compare(canonical, "v"+stable) > 0 {
			stable = v
		}
	}
	return stable, stable != ""
}

// inRange reports whether v lies within r. Versions or bounds that are not semantic
// versions never match.
func inRange(v string, r domain.VersionRange) bool {
	canonical := "v" + v
	if !semver.IsValid(canonical) {
		return false
	}
	if r.Min != "" {
		lower := "v" + r.Min
		if !semver.IsValid(lower) {
			return false
		}
		c := semver.Compare(canonical, lower)
		if c < 0 || (c == 0 && !r.MinInclusive) {
			return false
		}
	}
	if r.Max != "" {
		upper := "v" + r.Max
		if !semver.IsValid(upper) {
			return false
		}
		c := semver.Compare(canonical, upper)
		if c > 0 || (c == 0 && !r.MaxInclusive) {
			return false
		}
	}
	return true
}
