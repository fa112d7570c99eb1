package dtos

// SearchResultDto splits concert ids by whether their card should be shown.
type SearchResultDto struct {
	Visible []string `json:"visible"`
	Hidden  []string `json:"hidden"`
}
