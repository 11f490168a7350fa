package blob

import (
	"path"
	"strings"
)

const photoKeyPrefix = "manuscript-dna/photos/"

// PhotoKey builds the object key for a photograph upload. Keys group files by
// photo ID under a fixed prefix so bucket listings stay browsable:
//
//	manuscript-dna/photos/<photo-id>/<filename>
//
// The filename is reduced to its base name and unsafe characters are replaced
// so user-supplied names cannot escape the photo's directory.
func PhotoKey(photoID, filename string) string {
	return photoKeyPrefix + photoID + "/" + sanitizeFilename(filename)
}

func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		base = ""
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "photo"
	}
	return out
}
