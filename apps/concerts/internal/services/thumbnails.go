package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	// decoders for the image formats venues serve
	_ "image/gif"
	_ "image/png"

	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const thumbnailQuality = 80

type ThumbnailService struct {
	logger *slog.Logger
	client *http.Client
	dir    string
	size   int
}

func NewThumbnailService(logger *slog.Logger, dir string, size int) *ThumbnailService {
	return &ThumbnailService{
		logger: logger,
		client: &http.Client{
			//nolint:mnd //no magic number
			Timeout: 30 * time.Second,
		},
		dir:  dir,
		size: size,
	}
}

// ThumbnailName is the file name of a concert's thumbnail with all
// characters that are not allowed in file names removed.
func ThumbnailName(concert scrapers.Concert) string {
	name := fmt.Sprintf(
		"%s - %s - %s.jpg",
		concert.Date.Format("2006-01-02"),
		concert.Venue,
		concert.Title,
	)

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return -1
		}
		return r
	}, name)
}

// MakeThumbnail downloads the concert's image and stores a downscaled copy.
// Existing thumbnails are reused. It returns the thumbnail's file name.
func (service *ThumbnailService) MakeThumbnail(
	ctx context.Context,
	concert scrapers.Concert,
) (string, error) {
	name := ThumbnailName(concert)
	path := filepath.Join(service.dir, name)

	_, err := os.Stat(path)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	img, err := service.fetchImage(ctx, concert.ImgURL)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	if bounds.Dx() < service.size {
		service.logger.Warn(fmt.Sprintf("image < %dpx, %s", service.size, name))
	}
	if bounds.Dx() < bounds.Dy() {
		service.logger.Warn(fmt.Sprintf("portrait image, %s", name))
	}

	err = os.MkdirAll(service.dir, 0o750)
	if err != nil {
		return "", err
	}

	err = writeJPEG(path, Downscale(img, service.size))
	if err != nil {
		return "", err
	}

	return name, nil
}

// writeJPEG never leaves a partial file behind, as existing files are
// taken to be finished thumbnails.
func writeJPEG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	//nolint:exhaustruct //other fields are optional
	err = jpeg.Encode(file, img, &jpeg.Options{Quality: thumbnailQuality})
	err = errors.Join(err, file.Close())
	if err != nil {
		return errors.Join(err, os.Remove(path))
	}

	return nil
}

// MakeThumbnails creates the thumbnails of all concerts on a worker pool.
// The result holds the thumbnail name per concert, empty when it failed.
func (service *ThumbnailService) MakeThumbnails(
	ctx context.Context,
	concerts []scrapers.Concert,
) []string {
	service.logger.Info("making thumbnails")

	names := make([]string, len(concerts))
	if len(concerts) == 0 {
		return names
	}

	//nolint:mnd //no magic number
	amountWorkers := (len(concerts) / 10) + 1
	workerPool := threading.NewWorkerPool(service.logger, amountWorkers, len(concerts))

	mu := sync.Mutex{}
	for i, concert := range concerts {
		if concert.ImgURL == "" {
			continue
		}

		workerPool.EnqueueWork(func(_ context.Context, logger *slog.Logger) error {
			name, err := service.MakeThumbnail(ctx, concert)
			if err != nil {
				logger.Warn(
					fmt.Sprintf("no thumbnail for %s", concert.Title),
					logging.ErrAttr(err),
				)
				return nil
			}

			mu.Lock()
			names[i] = name
			mu.Unlock()

			return nil
		})
	}

	workerPool.WaitUntilDone()

	service.logger.Info("done making thumbnails")

	return names
}

func (service *ThumbnailService) fetchImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := service.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 from image host: %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	return img, err
}

// Downscale fits img inside a size x size square keeping its aspect ratio.
// Images that already fit are returned as they are.
func Downscale(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= size && height <= size {
		return img
	}

	if width >= height {
		height = max(1, height*size/width)
		width = size
	} else {
		width = max(1, width*size/height)
		height = size
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
