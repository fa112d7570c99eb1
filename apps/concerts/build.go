package concerts

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"concerts.xdoubleu.com/apps/concerts/internal/models"
	"concerts.xdoubleu.com/apps/concerts/internal/services"
	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"concerts.xdoubleu.com/apps/concerts/pkg/visibility"
	"concerts.xdoubleu.com/internal/clock"
	"concerts.xdoubleu.com/internal/config"
	"github.com/google/uuid"
)

const staticImagesDir = "images"

// BuildStatic scrapes every venue once and writes a self-contained site to
// cfg.OutputDir: concerts.json with the original image URLs, the
// thumbnails, index.html and the page script.
func BuildStatic(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.Config,
	c clock.Clock,
	concertScrapers []scrapers.Scraper,
) error {
	err := os.MkdirAll(cfg.OutputDir, 0o750)
	if err != nil {
		return err
	}

	scraped := scrapers.All(ctx, logger, c, concertScrapers)

	// dumped before making thumbnails to keep the original image URLs
	err = writeFile(filepath.Join(cfg.OutputDir, "concerts.json"), func(f *os.File) error {
		return scrapers.DumpConcerts(f, scraped)
	})
	if err != nil {
		return err
	}
	logger.Info("saved concerts.json")

	thumbnails := services.NewThumbnailService(
		logger,
		filepath.Join(cfg.OutputDir, staticImagesDir),
		cfg.ThumbnailSize,
	)
	names := thumbnails.MakeThumbnails(ctx, scraped)

	concerts := make([]models.Concert, 0, len(scraped))
	for i, concert := range scraped {
		concerts = append(concerts, models.Concert{
			ID:        staticID(concert),
			Thumbnail: names[i],
			Concert:   concert,
		})
	}

	cards := models.NewConcertCards(concerts, staticImagesDir+"/")
	visibility.HidePast(cards, c.Now())

	err = writeFile(filepath.Join(cfg.OutputDir, "index.html"), func(f *os.File) error {
		return renderPage(f, parseTemplates(), pageData{
			Cards:     cards,
			Query:     "",
			StaticURL: "",
		})
	})
	if err != nil {
		return err
	}

	script, err := fs.ReadFile(staticFiles, "static/concerts.js")
	if err != nil {
		return err
	}

	err = os.WriteFile(filepath.Join(cfg.OutputDir, "concerts.js"), script, 0o600)
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("page written to %s", cfg.OutputDir))

	return nil
}

// staticID derives a card id that stays the same between builds.
func staticID(concert scrapers.Concert) string {
	key := concert.URL + "@" + concert.Date.Format(scrapers.DateFormat)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
