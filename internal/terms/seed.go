package terms

import (
	"embed"
	"fmt"
)

//go:embed seeddata/*.html
var seedFiles embed.FS

var seedTitles = []struct {
	lang  string
	title string
}{
	{lang: "sv", title: "Användarvillkor"},
	{lang: "en", title: "Terms of Service"},
}

// Defaults returns the built-in seed set, one document per supported language.
func Defaults() []Document {
	out := make([]Document, 0, len(seedTitles))
	for _, st := range seedTitles {
		b, err := seedFiles.ReadFile("seeddata/" + st.lang + ".html")
		if err != nil {
			// embedded at build time; a missing file is a packaging bug
			panic(fmt.Sprintf("terms: missing seed content for %q: %v", st.lang, err))
		}
		out = append(out, Document{
			Lang:    st.lang,
			Slug:    DefaultSlug,
			Title:   st.title,
			Content: string(b),
		})
	}
	return out
}
