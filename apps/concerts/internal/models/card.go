package models

import (
	"strings"
	"time"

	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
)

// ConcertCard is a concert as rendered on the page. It satisfies
// visibility.Entity so the filters can toggle it.
type ConcertCard struct {
	ID      string
	Name    string
	Venue   string
	Date    time.Time
	Price   *float64
	SoldOut bool
	Desc    string
	ImgURL  string
	URL     string
	Hidden  bool
}

func NewConcertCard(concert Concert, imagesPrefix string) *ConcertCard {
	imgURL := concert.ImgURL
	if concert.Thumbnail != "" {
		imgURL = imagesPrefix + concert.Thumbnail
	}

	return &ConcertCard{
		ID:      concert.ID,
		Name:    concert.Title,
		Venue:   concert.Venue,
		Date:    concert.Date,
		Price:   concert.Price,
		SoldOut: concert.SoldOut,
		Desc:    concert.Desc,
		ImgURL:  imgURL,
		URL:     concert.URL,
		Hidden:  false,
	}
}

func NewConcertCards(concerts []Concert, imagesPrefix string) []*ConcertCard {
	cards := make([]*ConcertCard, 0, len(concerts))
	for _, concert := range concerts {
		cards = append(cards, NewConcertCard(concert, imagesPrefix))
	}
	return cards
}

func (card *ConcertCard) Title() string {
	return card.Name
}

func (card *ConcertCard) DateMarker() string {
	return card.Date.Format(scrapers.DateFormat)
}

func (card *ConcertCard) SetHidden(hidden bool) {
	card.Hidden = hidden
}

// SearchTitle is the lowercased title stored in the data-title attribute.
func (card *ConcertCard) SearchTitle() string {
	return strings.ToLower(card.Name)
}

func (card *ConcertCard) DisplayDate() string {
	return scrapers.FormatDate(card.Date)
}

// DisplayTime is empty for concerts without a known start time.
func (card *ConcertCard) DisplayTime() string {
	if card.Date.Hour() == 0 && card.Date.Minute() == 0 {
		return ""
	}
	return "kl. " + card.Date.Format("15:04")
}

func (card *ConcertCard) DisplayPrice() string {
	switch {
	case card.SoldOut:
		return "Udsolgt"
	case card.Price == nil:
		return ""
	case *card.Price == 0:
		return "Gratis"
	default:
		return scrapers.FormatPrice(*card.Price)
	}
}
