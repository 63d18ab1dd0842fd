package geodata

import (
	"io/fs"
	"os"
)

// DefaultCollections is the catalog read order. Earlier files win on
// duplicate hotels.
var DefaultCollections = []string{"ver", "steden", "nederland", "wintersport", "europa_hotels"}

type Source struct {
	fsys  fs.FS
	names []string
}

// Dir reads <name>.geojson files from a directory on disk, so edits are
// picked up without a restart.
func Dir(dir string) *Source {
	return &Source{fsys: os.DirFS(dir), names: DefaultCollections}
}

// FromFS is used by tests and embedded data sets.
func FromFS(fsys fs.FS, names ...string) *Source {
	if len(names) == 0 {
		names = DefaultCollections
	}
	return &Source{fsys: fsys, names: names}
}

func (s *Source) FS() fs.FS { return s.fsys }

func (s *Source) Collections() []string { return append([]string(nil), s.names...) }
