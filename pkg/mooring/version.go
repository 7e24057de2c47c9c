package mooring

import (
	"fmt"

	"github.com/bft-labs/mooring/pkg/log"
)

// Version information for the mooring module.
const (
	Version              = "1.0.0"
	MinCompatibleVersion = "1.0.0"
)

// validateModuleVersions checks that all wired sub-modules meet this
// module's minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"log": {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("mooring: module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// ModuleVersions returns the versions of mooring and every wired
// sub-module, keyed by module name.
func ModuleVersions() map[string]string {
	return map[string]string{
		"mooring": Version,
		"log":     log.Version,
	}
}

// isVersionCompatible reports whether version >= minVersion, assuming
// "major.minor.patch" format.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
