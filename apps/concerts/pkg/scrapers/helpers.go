package scrapers

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/locales/da"
	"golang.org/x/net/html"
)

//nolint:gochecknoglobals //compiled once
var (
	reSrcset = regexp.MustCompile(`([^ ,]+)(?: (\d+)[wx])?`)
	reNumber = regexp.MustCompile(`\d+`)
	danish   = da.New()
)

var errNoPrice = errors.New("no price found")

// BestFromSrcset returns the URL of the widest image in a srcset.
// Candidates without a descriptor count as 1x.
func BestFromSrcset(srcset string) string {
	bestURL := ""
	bestWidth := -1

	for _, match := range reSrcset.FindAllStringSubmatch(srcset, -1) {
		width := 1
		if match[2] != "" {
			width, _ = strconv.Atoi(match[2])
		}

		if width > bestWidth {
			bestWidth = width
			bestURL = match[1]
		}
	}

	return bestURL
}

// BestFromImg returns the best image URL of an <img>, preferring its srcset.
func BestFromImg(img *goquery.Selection) string {
	if srcset, ok := img.Attr("srcset"); ok && srcset != "" {
		return BestFromSrcset(srcset)
	}

	src, _ := img.Attr("src")
	return src
}

// ParsePrice extracts a price from a Danish price tag such as "1.295,00 kr".
// Free concerts cost 0, sold out concerts have no price.
func ParsePrice(tag string) (*float64, bool, error) {
	tag = strings.ToLower(tag)

	if strings.Contains(tag, "gratis") {
		free := 0.0
		return &free, false, nil
	}

	if strings.Contains(tag, "udsolgt") {
		return nil, true, nil
	}

	delocalized := strings.ReplaceAll(tag, ".", "")
	delocalized = strings.ReplaceAll(delocalized, ",", ".")

	number := reNumber.FindString(delocalized)
	if number == "" {
		return nil, false, fmt.Errorf("%w in %q", errNoPrice, tag)
	}

	price, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return nil, false, err
	}

	return &price, false, nil
}

// FormatPrice formats a price the Danish way, e.g. "1.295 kr." or "99,50 kr.".
func FormatPrice(price float64) string {
	decimals := uint64(0)
	if price != float64(int64(price)) {
		decimals = 2
	}

	return danish.FmtNumber(price, decimals) + " kr."
}

// translateDanish replaces Danish month and weekday names with the English
// names Go layouts understand.
func translateDanish(value string) string {
	fields := strings.Fields(strings.ToLower(value))

	for i, field := range fields {
		word := strings.TrimSuffix(field, ".")
		if word == "" {
			continue
		}

		for month := time.January; month <= time.December; month++ {
			wide := strings.ToLower(danish.MonthWide(month))
			abbreviated := strings.TrimSuffix(
				strings.ToLower(danish.MonthAbbreviated(month)),
				".",
			)

			if word == wide || word == abbreviated {
				fields[i] = month.String()
			}
		}

		for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
			if word == strings.ToLower(danish.WeekdayWide(weekday)) {
				fields[i] = weekday.String()
			}
		}
	}

	return strings.Join(fields, " ")
}

// ParseDanishDate parses a date written with Danish month or weekday names
// using a Go layout with English names.
func ParseDanishDate(value string, layout string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layout, translateDanish(value), loc)
}

//nolint:gochecknoglobals //parse order matters
var isoFormats = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseISO parses ISO-8601 timestamps. Timestamps with an offset are
// converted to loc, those without are read in loc.
func parseISO(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), nil
	}

	for _, format := range isoFormats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse ISO date %q", value)
}

// withInferredYear moves a date parsed without a year into the next year
// when it lies more than a month in the past.
func withInferredYear(date time.Time, now time.Time) time.Time {
	if date.Before(now.AddDate(0, -1, 0)) {
		return date.AddDate(1, 0, 0)
	}

	return date
}

// firstText returns the first non-empty text node below the selection.
func firstText(sel *goquery.Selection) string {
	for _, node := range sel.Nodes {
		if text := findText(node, nil); text != "" {
			return text
		}
	}

	return ""
}

// findTextMatching returns the first text node below the selection that
// matches re.
func findTextMatching(sel *goquery.Selection, re *regexp.Regexp) string {
	for _, node := range sel.Nodes {
		if text := findText(node, re); text != "" {
			return text
		}
	}

	return ""
}

func findText(node *html.Node, re *regexp.Regexp) string {
	if node.Type == html.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" && (re == nil || re.MatchString(text)) {
			return text
		}
		return ""
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if text := findText(child, re); text != "" {
			return text
		}
	}

	return ""
}

func priceOrWarn(s *base, title string, tag string) (*float64, bool) {
	price, soldOut, err := ParsePrice(tag)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("no price for %s", title), "tag", tag)
	}

	return price, soldOut
}

// FormatDate formats a date the Danish way, e.g. "lørdag den 24. oktober 2026".
func FormatDate(date time.Time) string {
	return danish.FmtDateFull(date)
}
