package repositories

import (
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type Repositories struct {
	Concerts *ConcertRepository
}

func New(db postgres.DB) *Repositories {
	concerts := &ConcertRepository{db: db}

	return &Repositories{
		Concerts: concerts,
	}
}
