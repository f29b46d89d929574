// Package live runs one server-side session per open page. The browser
// script reports scroll, fragment and form events over a websocket and
// applies the patches the session sends back.
package live

import (
	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/navsync"
	"github.com/byteik/site/internal/sections"
)

// Event types sent by the browser.
const (
	EventScroll     = "scroll"
	EventHashChange = "hashchange"
	EventInput      = "input"
	EventSubmit     = "submit"
	EventMenu       = "menu"
)

// Event is one message from the browser. Scroll and hashchange events carry
// the viewport and the measured section bounds.
type Event struct {
	Type     string             `json:"type"`
	Viewport navsync.Viewport   `json:"viewport"`
	Sections []sections.Section `json:"sections,omitempty"`
	Fragment string             `json:"fragment,omitempty"`
	Field    string             `json:"field,omitempty"`
	Value    string             `json:"value,omitempty"`
	Open     bool               `json:"open,omitempty"`
}

// Patch operations sent to the browser.
const (
	OpNav      = "nav"
	OpFragment = "fragment"
	OpHeader   = "header"
	OpMenu     = "menu"
	OpForm     = "form"
	OpAlert    = "alert"
	OpError    = "error"
)

// Patch is one DOM update. Boolean fields that are absent mean false.
type Patch struct {
	Op            string          `json:"op"`
	Active        string          `json:"active,omitempty"`
	Fragment      string          `json:"fragment,omitempty"`
	Scrolled      bool            `json:"scrolled,omitempty"`
	Open          bool            `json:"open,omitempty"`
	Form          *contact.Form   `json:"form,omitempty"`
	SubmitEnabled bool            `json:"submitEnabled,omitempty"`
	SubmitLabel   string          `json:"submitLabel,omitempty"`
	Alert         *contact.Banner `json:"alert,omitempty"`
	Message       string          `json:"message,omitempty"`
}
