package validator

import "strings"

// checkStructure validates the basic shape of an HLS manifest: the
// #EXTM3U header plus the two tags the original parser requires.
func checkStructure(manifest string) (ok bool, reason string) {
	if !strings.HasPrefix(manifest, "#EXTM3U") {
		return false, "missing #EXTM3U header"
	}
	var missing []string
	for _, tag := range []string{"#EXT-X-VERSION", "#EXT-X-MEDIA-SEQUENCE"} {
		if !strings.Contains(manifest, tag) {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return false, "missing required tags: " + strings.Join(missing, ", ")
	}
	return true, ""
}
