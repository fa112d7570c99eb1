package models

import (
	"encoding/json"

	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
)

// Concert is a stored concert together with its generated thumbnail.
// Source is the Venue of the scraper that found it.
type Concert struct {
	ID        string
	Source    string
	Thumbnail string
	scrapers.Concert
}

// MarshalJSON extends the scraped concert's JSON form with the stored fields.
func (concert Concert) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(concert.Concert)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	if fields["id"], err = json.Marshal(concert.ID); err != nil {
		return nil, err
	}
	if fields["thumbnail"], err = json.Marshal(concert.Thumbnail); err != nil {
		return nil, err
	}

	return json.Marshal(fields)
}
