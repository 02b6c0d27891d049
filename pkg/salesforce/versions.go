package salesforce

import (
	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

// LatestVersion picks the highest API version from a /services/data listing.
// Salesforce versions are "major.minor" strings ("62.0"); entries that fail
// to parse are skipped. Returns the zero value for an empty listing.
func LatestVersion(versions []APIVersion) APIVersion {
	type parsed struct {
		ver *semver.Version
		api APIVersion
	}
	candidates := lo.FilterMap(versions, func(v APIVersion, _ int) (parsed, bool) {
		sv, err := semver.NewVersion(v.Version)
		if err != nil {
			return parsed{}, false
		}
		return parsed{ver: sv, api: v}, true
	})
	if len(candidates) == 0 {
		return APIVersion{}
	}
	best := lo.MaxBy(candidates, func(a, b parsed) bool {
		return a.ver.GreaterThan(b.ver)
	})
	return best.api
}
