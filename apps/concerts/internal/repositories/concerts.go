package repositories

import (
	"context"
	"time"

	"concerts.xdoubleu.com/apps/concerts/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type ConcertRepository struct {
	db postgres.DB
}

const selectConcerts = `
	SELECT id, source, title, venue, date, price, sold_out,
		description, img_url, thumbnail, url
	FROM concerts.concerts
`

func (repo *ConcertRepository) GetAllConcerts(
	ctx context.Context,
) ([]models.Concert, error) {
	query := selectConcerts + `
		ORDER BY date, venue, title
	`

	return repo.queryConcerts(ctx, query)
}

func (repo *ConcertRepository) GetUpcomingConcerts(
	ctx context.Context,
	from time.Time,
) ([]models.Concert, error) {
	query := selectConcerts + `
		WHERE date >= $1
		ORDER BY date, venue, title
	`

	return repo.queryConcerts(ctx, query, from)
}

func (repo *ConcertRepository) queryConcerts(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.Concert, error) {
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	concerts := []models.Concert{}
	for rows.Next() {
		var concert models.Concert

		err = rows.Scan(
			&concert.ID,
			&concert.Source,
			&concert.Title,
			&concert.Venue,
			&concert.Date,
			&concert.Price,
			&concert.SoldOut,
			&concert.Desc,
			&concert.ImgURL,
			&concert.Thumbnail,
			&concert.URL,
		)

		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		concerts = append(concerts, concert)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return concerts, nil
}

// ReplaceConcerts stores concerts as the complete upcoming program of the
// given sources. Stored concerts of those sources dated from `from` on that
// are not in concerts were cancelled or moved and are removed.
func (repo *ConcertRepository) ReplaceConcerts(
	ctx context.Context,
	sources []string,
	from time.Time,
	concerts []models.Concert,
) error {
	//nolint:exhaustruct //fields are optional
	tx, err := repo.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO concerts.concerts
		(id, source, title, venue, date, price, sold_out, description, img_url, thumbnail, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (url, date)
		DO UPDATE SET source = $2, title = $3, venue = $4, price = $6, sold_out = $7,
			description = $8, img_url = $9, thumbnail = $10
	`

	urls := make([]string, 0, len(concerts))
	dates := make([]time.Time, 0, len(concerts))

	//nolint:exhaustruct //fields are optional
	b := &pgx.Batch{}
	for _, concert := range concerts {
		id := concert.ID
		if id == "" {
			id = uuid.NewString()
		}

		b.Queue(
			query,
			id,
			concert.Source,
			concert.Title,
			concert.Venue,
			concert.Date,
			concert.Price,
			concert.SoldOut,
			concert.Desc,
			concert.ImgURL,
			concert.Thumbnail,
			concert.URL,
		)

		urls = append(urls, concert.URL)
		dates = append(dates, concert.Date)
	}

	err = tx.SendBatch(ctx, b).Close()
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	_, err = tx.Exec(
		ctx,
		`
		DELETE FROM concerts.concerts
		WHERE source = ANY($1) AND date >= $2
			AND (url, date) NOT IN (
				SELECT url, date FROM unnest($3::text[], $4::timestamptz[]) AS kept(url, date)
			)
		`,
		sources,
		from,
		urls,
		dates,
	)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

func (repo *ConcertRepository) DeleteConcertsBefore(
	ctx context.Context,
	before time.Time,
) (int64, error) {
	query := `
		DELETE FROM concerts.concerts
		WHERE date < $1
	`

	result, err := repo.db.Exec(ctx, query, before)
	if err != nil {
		return 0, postgres.PgxErrorToHTTPError(err)
	}

	return result.RowsAffected(), nil
}
