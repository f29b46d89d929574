package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/errors"
	"github.com/byteik/site/internal/page"
	"github.com/byteik/site/internal/version"
)

// maxContactBody caps the contact request body.
const maxContactBody = 64 << 10

// handleRoot sends visitors to their best matching locale. The fragment never
// reaches the server; browsers carry it across the redirect.
func (s *SiteServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	locale := s.bundle.Negotiate(r.Header.Get("Accept-Language"))
	w.Header().Add("Vary", "Accept-Language")
	http.Redirect(w, r, page.LocaleHref(locale, ""), http.StatusFound)
}

func (s *SiteServer) handleLocale(w http.ResponseWriter, r *http.Request) {
	locale := r.PathValue("locale")
	if !s.bundle.Has(locale) {
		s.handleNotFound(w, r)
		return
	}
	s.renderPage(w, r, locale, contact.State{}, http.StatusOK)
}

func (s *SiteServer) renderPage(w http.ResponseWriter, r *http.Request, locale string, state contact.State, status int) {
	data := page.Data{
		Locale:      locale,
		Locales:     s.bundle.Locales(),
		T:           s.bundle.Translator(locale),
		Registry:    s.registry,
		Active:      s.registry.First(),
		Contact:     state,
		ScheduleURL: s.config.Site.ScheduleURL,
		ContactURL:  ContactPath + "?locale=" + url.QueryEscape(locale),
		LiveURL:     LivePath + "?locale=" + url.QueryEscape(locale),
		ScriptURL:   ScriptPath,
	}
	templ.Handler(page.Page(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *SiteServer) handleNotFound(w http.ResponseWriter, r *http.Request) {
	locale := s.bundle.Negotiate(r.Header.Get("Accept-Language"))
	t := s.bundle.Translator(locale)
	templ.Handler(page.NotFound(t, page.LocaleHref(locale, "")), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}

// handleHealth returns the server health status for health checks
func (s *SiteServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   version.Short(),
		"timestamp": time.Now().UTC(),
		"backend":   s.config.Contact.Backend,
	})
}

// handleContact accepts a contact submission as JSON, or as a plain form post
// from browsers running without the live script. Form posts get the page back
// with the outcome in the alert banner.
func (s *SiteServer) handleContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	isForm := mediaType == "application/x-www-form-urlencoded"

	form, err := decodeContact(r, isForm)
	if err != nil {
		s.logger.Debug(ctx, "Malformed contact request", "error", err.Error())
		writeJSON(w, http.StatusBadRequest, contact.Response{Error: "Malformed request"})
		return
	}

	locale := r.URL.Query().Get("locale")
	if !s.bundle.Has(locale) {
		locale = s.bundle.Negotiate(r.Header.Get("Accept-Language"))
	}
	messages := contact.MessagesFrom(s.bundle.Translator(locale).T)

	if err := contact.Validate(form); err != nil {
		if isForm {
			s.renderPage(w, r, locale, contact.State{
				Form:  form,
				Alert: contact.Alert{Message: messages.ForValidation(errors.CodeOf(err)), Kind: contact.AlertError},
			}, http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusBadRequest, contact.Response{Error: errors.CodeOf(err)})
		return
	}

	record, err := s.store.Save(ctx, form)
	if err != nil {
		s.errs.Handle(ctx, errors.Wrap(err, errors.ErrorTypeStorage, errors.ErrCodeStoreFailed, "save contact submission").
			WithContext("backend", s.config.Contact.Backend))
		if isForm {
			s.renderPage(w, r, locale, contact.State{
				Form:  form,
				Alert: contact.Alert{Message: messages.Failure, Kind: contact.AlertError},
			}, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusInternalServerError, contact.Response{Error: "Internal Server Error"})
		return
	}

	s.logger.Info(ctx, "Contact submission saved", "id", record.ID, "backend", s.config.Contact.Backend)
	if isForm {
		s.renderPage(w, r, locale, contact.State{
			Alert: contact.Alert{Message: messages.Success, Kind: contact.AlertSuccess},
		}, http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, contact.Response{Success: true})
}

func decodeContact(r *http.Request, isForm bool) (contact.Form, error) {
	if isForm {
		if err := r.ParseForm(); err != nil {
			return contact.Form{}, err
		}
		return contact.Form{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Message: r.PostForm.Get("message"),
		}, nil
	}

	var form contact.Form
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		return contact.Form{}, err
	}
	if dec.More() {
		return contact.Form{}, errors.NewValidationError(errors.ErrCodeMalformedRequest, "trailing data after JSON body")
	}
	return form, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
