package app

import (
	"encoding/json"
	"io/fs"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/domain"
)

// CatalogService assembles the hotel collection from the geo source.
// Without a snapshot every call rebuilds from the files; EnableSnapshot keeps
// the last build until Invalidate is called (wired to a file watcher).
type CatalogService struct {
	src domain.GeoSource

	mu       sync.RWMutex
	snapshot []domain.Hotel
	keep     bool
	gen      uint64 // bumped by Invalidate
}

func NewCatalogService(src domain.GeoSource) *CatalogService {
	return &CatalogService{src: src}
}

func (s *CatalogService) EnableSnapshot() {
	s.mu.Lock()
	s.keep = true
	s.mu.Unlock()
}

func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.gen++
	s.mu.Unlock()
}

// All returns every European hotel, first occurrence per id across
// collections in source order.
func (s *CatalogService) All() []domain.Hotel {
	s.mu.RLock()
	keep, snap, gen := s.keep, s.snapshot, s.gen
	s.mu.RUnlock()
	if keep && snap != nil {
		return append([]domain.Hotel(nil), snap...)
	}

	out := s.build()
	if keep {
		// a build that overlapped an Invalidate may have read old files
		s.mu.Lock()
		if s.gen == gen {
			s.snapshot = out
		}
		s.mu.Unlock()
		return append([]domain.Hotel(nil), out...)
	}
	return out
}

func (s *CatalogService) build() []domain.Hotel {
	fsys := s.src.FS()
	out := make([]domain.Hotel, 0, 256)
	seen := make(map[string]struct{}, 256)

	for _, name := range s.src.Collections() {
		b, err := readCollection(fsys, name)
		if err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("geo collection unreadable, skipping")
			continue
		}
		var fc domain.FeatureCollection
		if err := json.Unmarshal(b, &fc); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("geo collection malformed, skipping")
			continue
		}
		category := fc.Name
		if category == "" {
			category = name
		}
		for _, f := range fc.Features {
			h, ok := mapFeature(f, category)
			if !ok || !isEuropean(h.Country) {
				continue
			}
			if _, dup := seen[h.ID]; dup {
				continue
			}
			seen[h.ID] = struct{}{}
			out = append(out, h)
		}
	}
	return out
}

func readCollection(fsys fs.FS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, name+".geojson")
}

func (s *CatalogService) ByID(id string) (domain.Hotel, bool) {
	for _, h := range s.All() {
		if h.ID == id {
			return h, true
		}
	}
	return domain.Hotel{}, false
}

// ByRegion filters by region; a region outside the enumeration returns the
// whole collection.
func (s *CatalogService) ByRegion(r domain.Region) []domain.Hotel {
	all := s.All()
	out := make([]domain.Hotel, 0, len(all))
	for _, h := range all {
		in, known := inRegion(h, r)
		if !known {
			return all
		}
		if in {
			out = append(out, h)
		}
	}
	return out
}

func (s *CatalogService) Search(query string) []domain.Hotel {
	q := strings.ToLower(query)
	all := s.All()
	out := make([]domain.Hotel, 0, len(all))
	for _, h := range all {
		if strings.Contains(strings.ToLower(h.Name), q) ||
			strings.Contains(strings.ToLower(h.Location), q) ||
			strings.Contains(strings.ToLower(h.Country), q) {
			out = append(out, h)
		}
	}
	return out
}

func (s *CatalogService) ByStars(stars string) []domain.Hotel {
	all := s.All()
	out := make([]domain.Hotel, 0, len(all))
	for _, h := range all {
		if h.Stars == stars {
			out = append(out, h)
		}
	}
	return out
}
