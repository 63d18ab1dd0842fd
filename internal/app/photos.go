package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/domain"
)

// PhotoService enriches hotels with provider photos. It never returns an
// error: any failure degrades to an empty list.
type PhotoService struct {
	lookup   domain.PhotoLookup // nil without a provider key
	cache    domain.Cache       // optional
	cacheTTL time.Duration
}

func NewPhotoService(l domain.PhotoLookup, c domain.Cache, ttl time.Duration) *PhotoService {
	return &PhotoService{lookup: l, cache: c, cacheTTL: ttl}
}

// Configured reports whether a provider is available at all.
func (s *PhotoService) Configured() bool { return s.lookup != nil }

func photoKey(name, location string) string {
	sum := sha1.Sum([]byte(strings.ToLower(name) + "|" + strings.ToLower(location)))
	return "photos:" + hex.EncodeToString(sum[:])
}

func empty() domain.PlacePhotos { return domain.PlacePhotos{Photos: []string{}} }

func (s *PhotoService) Photos(ctx context.Context, name, location string) domain.PlacePhotos {
	if s.lookup == nil {
		return empty()
	}
	key := photoKey(name, location)
	if s.cache != nil {
		var hit domain.PlacePhotos
		if ok, _ := s.cache.Get(ctx, key, &hit); ok {
			if hit.Photos == nil {
				hit.Photos = []string{}
			}
			return hit
		}
	}

	out, err := s.fetch(ctx, name, location)
	if err != nil {
		log.Warn().Err(err).Str("name", name).Msg("photo lookup failed")
		return empty()
	}
	s.store(ctx, key, out)
	return out
}

// ForHotel queries with "location, country", as the catalog pages do.
func (s *PhotoService) ForHotel(ctx context.Context, h domain.Hotel) domain.PlacePhotos {
	return s.Photos(ctx, h.Name, hotelPlace(h))
}

// Warm fills the cache for one hotel. cached is true when nothing had to be
// fetched. Unlike Photos, lookup errors are returned.
func (s *PhotoService) Warm(ctx context.Context, h domain.Hotel) (cached bool, err error) {
	if s.lookup == nil {
		return false, domain.ErrDisabled
	}
	loc := hotelPlace(h)
	key := photoKey(h.Name, loc)
	if s.cache != nil {
		var hit domain.PlacePhotos
		if ok, _ := s.cache.Get(ctx, key, &hit); ok {
			return true, nil
		}
	}
	out, err := s.fetch(ctx, h.Name, loc)
	if err != nil {
		return false, err
	}
	s.store(ctx, key, out)
	return false, nil
}

func hotelPlace(h domain.Hotel) string {
	if h.Country == "" || h.Location == h.Country {
		return h.Location
	}
	return h.Location + ", " + h.Country
}

func (s *PhotoService) fetch(ctx context.Context, name, location string) (domain.PlacePhotos, error) {
	out, err := s.lookup.Photos(ctx, strings.TrimSpace(name+" "+location))
	if err != nil {
		return domain.PlacePhotos{}, err
	}
	if out.Photos == nil {
		out.Photos = []string{}
	}
	return out, nil
}

func (s *PhotoService) store(ctx context.Context, key string, v domain.PlacePhotos) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Debug().Err(err).Msg("photo cache set failed")
	}
}
