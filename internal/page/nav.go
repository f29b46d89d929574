package page

import (
	"github.com/a-h/templ"

	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/sections"
)

// Element ids the live session patches.
const (
	HeaderID       = "site-header"
	MobileMenuID   = "mobile-menu"
	AlertID        = "contact-alert"
	SubmitID       = "contact-submit"
	ContactFormID  = "contact-form"
	navItemPrefix  = "nav-"
	mnavItemPrefix = "mnav-"
)

// CSS classes toggled by the live session.
const (
	ActiveClass   = "active"
	ScrolledClass = "scrolled"
	OpenClass     = "open"
)

// NavItemID is the element id of the desktop nav link for a section.
func NavItemID(id string) string { return navItemPrefix + id }

// MobileNavItemID is the element id of the mobile nav link for a section.
func MobileNavItemID(id string) string { return mnavItemPrefix + id }

// NavClass is the class list of a nav link. Exactly one link, the active
// one, carries ActiveClass.
func NavClass(id, active string) string {
	if id == active {
		return classes("nav-link", ActiveClass)
	}
	return "nav-link"
}

// LocaleHref is the language switch target: the same page in locale, keeping
// the current fragment.
func LocaleHref(locale, fragment string) string {
	href := "/" + locale
	if fragment != "" && fragment != "#" {
		if fragment[0] != '#' {
			fragment = "#" + fragment
		}
		href += fragment
	}
	return href
}

// Nav renders the desktop navigation.
func Nav(reg *sections.Registry, t *i18n.Translator, active string) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("nav", "class", "site-nav", "aria-label", "primary")
		writeNavLinks(h, reg, t, active, navItemPrefix)
		h.close("nav")
	})
}

// MobileMenu renders the collapsible navigation. Its links close the menu.
func MobileMenu(d Data) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "id", MobileMenuID, "class", classes("mobile-menu", openClass(d.MenuOpen)),
			"hidden", boolAttr(!d.MenuOpen))
		h.open("button", "type", "button", "class", "menu-close", "data-live-menu", "close",
			"aria-label", d.T.T("menu.close"))
		h.raw("&times;")
		h.close("button")
		h.open("nav", "class", "mobile-nav", "aria-label", "mobile")
		writeNavLinks(h, d.Registry, d.T, d.Active, mnavItemPrefix)
		h.close("nav")
		h.render(LanguageSwitch(d))
		h.close("div")
	})
}

func writeNavLinks(h *htmlWriter, reg *sections.Registry, t *i18n.Translator, active, prefix string) {
	for _, e := range reg.Entries() {
		h.element("a", t.T(e.LabelKey),
			"id", prefix+e.ID,
			"href", sections.Fragment(e.ID),
			"class", NavClass(e.ID, active),
			"data-section", e.ID)
	}
}

// LanguageSwitch renders one link per locale that keeps the active section.
func LanguageSwitch(d Data) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "class", "lang-switch")
		fragment := ""
		if d.Active != "" {
			fragment = sections.Fragment(d.Active)
		}
		for _, locale := range d.Locales {
			cls := "lang"
			if locale == d.Locale {
				cls = classes("lang", ActiveClass)
			}
			h.element("a", i18n.Label(locale),
				"href", LocaleHref(locale, fragment),
				"class", cls,
				"data-locale", locale,
				"hreflang", locale)
		}
		h.close("div")
	})
}

func openClass(open bool) string {
	if open {
		return OpenClass
	}
	return ""
}
