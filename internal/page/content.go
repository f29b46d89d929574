package page

import (
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/sections"
)

// Item is one card inside a section.
type Item struct {
	Title string
	Body  string
}

// Content is the localized text of one section. Both the HTML page and the
// terminal preview render from it.
type Content struct {
	ID       string
	Title    string
	Subtitle string
	Items    []Item
}

// Technologies shown in the stack section. Names are not translated.
var Technologies = []string{
	"Go", "TypeScript", "React", "Next.js", "Flutter", "Laravel",
	"PostgreSQL", "MySQL", "Docker", "Figma",
}

// SectionContent returns the content for a registered section id. Unknown ids
// yield a Content with only the id set.
func SectionContent(t *i18n.Translator, id string) Content {
	switch id {
	case sections.Home:
		return Content{
			ID:       id,
			Title:    t.T("hero.title1") + " " + t.T("hero.title2"),
			Subtitle: t.T("hero.summarize"),
		}
	case sections.WhyUs:
		return Content{
			ID:    id,
			Title: t.T("whyus.title1"),
			Items: []Item{
				{Title: t.T("whyus.subtitle1"), Body: t.T("whyus.summarize1")},
				{Title: t.T("whyus.subtitle2"), Body: t.T("whyus.summarize2")},
			},
		}
	case sections.Portfolio:
		return Content{
			ID:    id,
			Title: t.T("portofolio.title1"),
			Items: numbered(t, "portofolio.portotitle", "portofolio.porto", 4),
		}
	case sections.Services:
		return Content{
			ID:    id,
			Title: t.T("service.title1"),
			Items: numbered(t, "service.serviceTitle", "service.service", 4),
		}
	case sections.Technologies:
		items := make([]Item, len(Technologies))
		for i, name := range Technologies {
			items[i] = Item{Title: name}
		}
		return Content{
			ID:       id,
			Title:    t.T("stack.title1"),
			Subtitle: t.T("stack.title2"),
			Items:    items,
		}
	}
	return Content{ID: id}
}

func numbered(t *i18n.Translator, titlePrefix, bodyPrefix string, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		suffix := string(rune('1' + i))
		items[i] = Item{Title: t.T(titlePrefix + suffix), Body: t.T(bodyPrefix + suffix)}
	}
	return items
}

// AllContent returns the content of every section in registry order.
func AllContent(t *i18n.Translator, reg *sections.Registry) []Content {
	out := make([]Content, 0, reg.Len())
	for _, id := range reg.IDs() {
		out = append(out, SectionContent(t, id))
	}
	return out
}
