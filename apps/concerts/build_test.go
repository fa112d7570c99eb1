package concerts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"concerts.xdoubleu.com/apps/concerts"
	"concerts.xdoubleu.com/apps/concerts/internal/mocks"
	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"concerts.xdoubleu.com/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

func TestBuildStatic(t *testing.T) {
	cfg := testApp.Config
	cfg.OutputDir = t.TempDir()

	err := concerts.BuildStatic(
		context.Background(),
		logging.NewNopLogger(),
		cfg,
		clock.NewFixed(now),
		[]scrapers.Scraper{mocks.NewMockScraper(now)},
	)
	assert.Nil(t, err)

	file, err := os.Open(filepath.Join(cfg.OutputDir, "concerts.json"))
	assert.Nil(t, err)
	defer file.Close()

	dumped, err := scrapers.LoadConcerts(file, now.Location())
	assert.Nil(t, err)
	assert.Len(t, dumped, 3)
	assert.Equal(t, "Old Jazz Classics", dumped[0].Title)

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	assert.Nil(t, err)
	assert.Contains(t, cardTag(t, string(page), "Old Jazz Classics"), "hidden")
	assert.NotContains(t, cardTag(t, string(page), "Jazz Night"), "hidden")
	assert.Contains(t, string(page), `src="concerts.js"`)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "concerts.js"))
	assert.Nil(t, err)
}
