// Package page renders the landing page, its fragments and the not found page.
package page

import (
	_ "embed"

	"github.com/a-h/templ"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/sections"
)

//go:embed style.css
var stylesheet string

// Data is everything a page render needs.
type Data struct {
	Locale      string
	Locales     []string
	T           *i18n.Translator
	Registry    *sections.Registry
	Active      string
	Scrolled    bool
	MenuOpen    bool
	Contact     contact.State
	ScheduleURL string
	ContactURL  string
	LiveURL     string
	ScriptURL   string
}

// HeaderClass is the class list of the sticky header.
func HeaderClass(scrolled bool) string {
	if scrolled {
		return classes("site-header", ScrolledClass)
	}
	return "site-header"
}

// Page renders the full landing page document.
func Page(d Data) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", d.Locale)
		h.open("head")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", d.T.T("meta.title"))
		h.open("meta", "name", "description", "content", d.T.T("meta.description"))
		for _, locale := range d.Locales {
			h.open("link", "rel", "alternate", "hreflang", locale, "href", LocaleHref(locale, ""))
		}
		h.raw("<style>", stylesheet, "</style>")
		h.close("head")

		h.open("body")
		h.render(Header(d))
		h.render(MobileMenu(d))

		h.open("main")
		for _, c := range AllContent(d.T, d.Registry) {
			h.render(Section(c))
		}
		h.render(CallToAction(d))
		h.render(ContactForm(d.T, d.Contact, d.ContactURL))
		h.close("main")

		h.render(Footer(d))
		if d.ScriptURL != "" {
			h.open("script", "src", d.ScriptURL, "defer", "true", "data-live", d.LiveURL)
			h.close("script")
		}
		h.close("body")
		h.close("html")
	})
}

// Header renders the sticky header with nav, language switch and schedule link.
func Header(d Data) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("header", "id", HeaderID, "class", HeaderClass(d.Scrolled))
		h.element("a", "Byteik", "href", sections.Fragment(d.Registry.First()), "class", "brand")
		h.render(Nav(d.Registry, d.T, d.Active))
		h.render(LanguageSwitch(d))
		if d.ScheduleURL != "" {
			h.element("a", d.T.T("menu.letstalk"), "href", d.ScheduleURL, "class", "btn btn-primary",
				"target", "_blank", "rel", "noopener")
		}
		h.open("button", "type", "button", "class", "menu-toggle", "data-live-menu", "open",
			"aria-controls", MobileMenuID, "aria-label", d.T.T("menu.open"))
		h.raw("&#9776;")
		h.close("button")
		h.close("header")
	})
}

// Section renders one registered section. The element id is the section id
// so fragments and bounds reports resolve to it.
func Section(c Content) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("section", "id", c.ID, "class", "section", "data-section", c.ID)
		if c.ID == sections.Home {
			h.element("h1", c.Title)
		} else {
			h.element("h2", c.Title)
		}
		if c.Subtitle != "" {
			h.element("p", c.Subtitle, "class", "lead")
		}
		if len(c.Items) > 0 {
			h.open("div", "class", "cards")
			for _, item := range c.Items {
				h.open("article", "class", "card")
				h.element("h3", item.Title)
				if item.Body != "" {
					h.element("p", item.Body)
				}
				h.close("article")
			}
			h.close("div")
		}
		h.close("section")
	})
}

// CallToAction renders the banner above the contact form.
func CallToAction(d Data) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("section", "id", "cta", "class", "cta")
		h.element("h2", d.T.T("cta.title1"))
		h.element("p", d.T.T("cta.summarize1"))
		if d.ScheduleURL != "" {
			h.element("a", d.T.T("cta.schedule"), "href", d.ScheduleURL, "class", "btn",
				"target", "_blank", "rel", "noopener")
		}
		h.close("section")
	})
}

// Footer renders the site footer.
func Footer(d Data) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("footer", "id", "footer", "class", "site-footer")
		h.element("h4", d.T.T("footer.about"))
		h.element("p", d.T.T("footer.summarize"))
		h.open("ul")
		for _, link := range []struct{ key, href string }{
			{"footer.whyus", sections.Fragment(sections.WhyUs)},
			{"footer.service", sections.Fragment(sections.Services)},
			{"footer.stack", sections.Fragment(sections.Technologies)},
			{"footer.contact", "#" + ContactFormID},
		} {
			h.open("li")
			h.element("a", d.T.T(link.key), "href", link.href)
			h.close("li")
		}
		h.close("ul")
		h.close("footer")
	})
}

// NotFound renders the 404 document.
func NotFound(t *i18n.Translator, home string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", t.Locale())
		h.open("head")
		h.raw(`<meta charset="utf-8">`)
		h.element("title", "404 | "+t.T("notfound.title"))
		h.raw("<style>", stylesheet, "</style>")
		h.close("head")
		h.open("body", "class", "not-found")
		h.element("h1", "404")
		h.element("p", t.T("notfound.title"), "class", "lead")
		h.element("p", t.T("notfound.body"))
		h.element("a", t.T("notfound.back"), "href", home, "class", "btn btn-primary")
		h.close("body")
		h.close("html")
	})
}
