package visibility

import "strings"

// TextSource extracts the search text from whatever triggered the search.
type TextSource interface {
	Text() (string, error)
}

// TextSourceFunc adapts a function to a TextSource.
type TextSourceFunc func() (string, error)

func (f TextSourceFunc) Text() (string, error) {
	return f()
}

// StaticText is a TextSource that always yields the same text.
type StaticText string

func (s StaticText) Text() (string, error) {
	return string(s), nil
}

// Matches reports whether title contains text, ignoring case.
// The empty text matches every title.
func Matches(title string, text string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(text))
}

// Search shows the entities whose title matches text and hides the rest.
func Search[E Entity](entities []E, text string) {
	for _, entity := range entities {
		entity.SetHidden(!Matches(entity.Title(), text))
	}
}

// Apply reads the text from source and runs Search with it.
func Apply[E Entity](entities []E, source TextSource) (string, error) {
	text, err := source.Text()
	if err != nil {
		return "", err
	}

	Search(entities, text)

	return text, nil
}
