// Command build scrapes all venues once and writes the static concert page,
// concerts.json and the thumbnails to OUTPUT_DIR.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	_ "time/tzdata"

	"concerts.xdoubleu.com/apps/concerts"
	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"concerts.xdoubleu.com/internal/clock"
	"concerts.xdoubleu.com/internal/config"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"
)

func main() {
	cfg := config.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	logger := slog.New(sentrytools.NewLogHandler(cfg.Env,
		slog.NewTextHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := clock.NewSystem(cfg.Location())

	err := concerts.BuildStatic(
		ctx,
		logger,
		cfg,
		c,
		scrapers.Default(logger, c, cfg.ExtraConcertsPath),
	)
	if err != nil {
		logger.Error("failed to build page", logging.ErrAttr(err))
		stop()
		os.Exit(1)
	}
}
