package scrapers

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// extra reads manually entered concerts from a JSON file.
type extra struct {
	base
	path string
}

func NewExtra(opts Options, path string) Scraper {
	return &extra{base: newBase(opts, "Extra", ""), path: path}
}

func (s *extra) Scrape(_ context.Context) ([]Concert, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Concert{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	concerts, err := LoadConcerts(file, s.location())
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	upcoming := []Concert{}
	for _, concert := range concerts {
		if !concert.Date.Before(now) {
			upcoming = append(upcoming, concert)
		}
	}

	return upcoming, nil
}
