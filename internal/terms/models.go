package terms

import "strings"

const (
	// DefaultSlug is the only slug populated today; the store is keyed by (lang, slug).
	DefaultSlug = "terms"
	// DefaultLang is used when a request carries no language at all.
	DefaultLang = "sv"
)

// Document is a single persisted terms record.
type Document struct {
	Lang    string `json:"lang" bson:"lang"`
	Slug    string `json:"slug" bson:"slug"`
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

// Section is one entry of Response.Sections.
type Section struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Response is the envelope returned by GET /api/terms. The frontend reads
// sections even though only one is ever present.
type Response struct {
	Lang     string    `json:"lang"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Sections []Section `json:"sections"`
}

// NewResponse wraps a stored document for the given (normalized) language.
func NewResponse(lang string, d *Document) *Response {
	return &Response{
		Lang:    lang,
		Title:   d.Title,
		Content: d.Content,
		Sections: []Section{{
			Slug:    DefaultSlug,
			Title:   d.Title,
			Content: d.Content,
		}},
	}
}

// NormalizeLang trims and lowercases raw and keeps its first two characters.
// An empty value falls back to fallback.
func NormalizeLang(raw, fallback string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		s = strings.ToLower(strings.TrimSpace(fallback))
	}
	r := []rune(s)
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}
