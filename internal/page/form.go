package page

import (
	"github.com/a-h/templ"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/i18n"
)

// AlertBanner renders the form's alert. Nothing but the empty placeholder is
// written when there is no message.
func AlertBanner(b contact.Banner) templ.Component {
	return component(func(h *htmlWriter) {
		if !b.Visible() {
			h.open("div", "id", AlertID, "role", "status", "hidden", "true")
			h.close("div")
			return
		}
		h.element("div", b.Message, "id", AlertID, "role", "status", "class", b.Class)
	})
}

// SubmitLabel is the submit button text for a state.
func SubmitLabel(t *i18n.Translator, s contact.State) string {
	if s.Status == contact.StatusSending {
		return t.T("cta.form.sending")
	}
	return t.T("cta.form.button")
}

// SubmitButton renders the submit control. It is only disabled while a
// request is in flight: a plain post is checked by the server, and the live
// session applies the full predicate once connected.
func SubmitButton(t *i18n.Translator, s contact.State) templ.Component {
	return component(func(h *htmlWriter) {
		h.element("button", SubmitLabel(t, s),
			"id", SubmitID,
			"type", "submit",
			"class", "btn btn-primary",
			"disabled", boolAttr(s.Status == contact.StatusSending))
	})
}

// ContactForm renders the contact section. Without JavaScript the form posts
// to action; the live session takes over when connected.
func ContactForm(t *i18n.Translator, s contact.State, action string) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("section", "id", ContactFormID, "class", "contact")
		h.element("h2", t.T("cta.form.title1"))
		h.element("p", t.T("cta.form.summarize1"))
		h.render(AlertBanner(contact.Present(s.Alert)))

		h.open("form", "method", "post", "action", action, "data-live-form", "contact", "novalidate", "true")
		input(h, t.T("cta.form.field1"), "text", contact.FieldName, s.Form.Name, "")
		input(h, t.T("cta.form.field2"), "email", contact.FieldEmail, s.Form.Email, "")

		h.element("label", t.T("cta.form.field3"), "for", string(contact.FieldMessage))
		h.element("textarea", s.Form.Message,
			"id", string(contact.FieldMessage),
			"name", string(contact.FieldMessage),
			"rows", "5",
			"placeholder", t.T("cta.form.field3placeholder"),
			"data-live-input", string(contact.FieldMessage))

		h.open("p", "class", "policy")
		h.text(t.T("cta.form.policy") + " ")
		h.element("a", t.T("cta.form.policyButton"), "href", "#", "class", "policy-link")
		h.close("p")

		h.render(SubmitButton(t, s))
		h.close("form")
		h.close("section")
	})
}

func input(h *htmlWriter, label, kind string, field contact.Field, value, placeholder string) {
	name := string(field)
	h.element("label", label, "for", name)
	h.open("input",
		"id", name,
		"name", name,
		"type", kind,
		"value", value,
		"placeholder", placeholder,
		"data-live-input", name)
}
