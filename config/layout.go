package config

const (
	LayoutCurrent = "current"
	LayoutLegacy  = "legacy"
)

// Selectors locate the chapter title and body on a chapter page.
type Selectors struct {
	Title string
	Body  string
}

var Layouts = map[string]Selectors{
	LayoutCurrent: {Title: ".p-novel__title", Body: ".p-novel__text"},
	LayoutLegacy:  {Title: ".novel_subtitle", Body: "#novel_honbun"},
}
