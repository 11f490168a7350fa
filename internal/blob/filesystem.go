package blob

import (
	"manuscriptdna/internal/infra/blob/fs"
)

// NewFilesystem constructs a filesystem-backed blob.Store rooted at the
// provided path. The interface return keeps call sites off the concrete type.
func NewFilesystem(root string) (Store, error) {
	return fs.New(root)
}
