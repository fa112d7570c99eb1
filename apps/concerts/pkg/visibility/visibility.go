// Package visibility hides rendered concert entities. The entity collection
// is always passed in by the caller and only the hidden flag is touched.
package visibility

// Entity is a rendered item with a title, a date marker and a hidden flag.
type Entity interface {
	Title() string
	DateMarker() string
	SetHidden(hidden bool)
}
