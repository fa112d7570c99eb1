package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"concerts.xdoubleu.com/apps/concerts/internal/models"
	"concerts.xdoubleu.com/apps/concerts/pkg/visibility"
	ics "github.com/arran4/golang-ical"
)

const (
	calendarName = "Koncerter i Odense"
	//nolint:mnd //no magic number
	eventDuration = 3 * time.Hour
)

type CalendarService struct {
	domain   string
	concerts *ConcertService
}

// Feed serializes the upcoming concerts whose title contains text as an
// ICS calendar. Concerts without a start time become all-day events.
func (service *CalendarService) Feed(ctx context.Context, text string) (string, error) {
	concerts, err := service.concerts.GetUpcoming(ctx)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//concerts//DA", service.domain))
	cal.SetXWRCalName(calendarName)

	stamp := service.concerts.clock.Now()
	for _, concert := range concerts {
		if !visibility.Matches(concert.Title, text) {
			continue
		}

		service.addEvent(cal, concert, stamp)
	}

	return cal.Serialize(), nil
}

func (service *CalendarService) addEvent(
	cal *ics.Calendar,
	concert models.Concert,
	stamp time.Time,
) {
	event := cal.AddEvent(fmt.Sprintf("%s@%s", concert.ID, service.domain))

	event.SetDtStampTime(stamp)
	event.SetSummary(concert.Title)
	event.SetLocation(concert.Venue)
	event.SetURL(concert.URL)

	description := concert.Desc
	if price := models.NewConcertCard(concert, "").DisplayPrice(); price != "" {
		description = strings.TrimSpace(price + "\n" + description)
	}
	if description != "" {
		event.SetDescription(description)
	}

	if concert.Date.Hour() == 0 && concert.Date.Minute() == 0 {
		event.SetAllDayStartAt(concert.Date)
		event.SetAllDayEndAt(concert.Date.AddDate(0, 0, 1))
		return
	}

	event.SetStartAt(concert.Date)
	event.SetEndAt(concert.Date.Add(eventDuration))
}
