// Package internal contains the packages behind the byteik binary.
//
// # Package Organization
//
//   - sections: the ordered section registry shared by every surface
//   - navsync: viewport tracking and URL fragment synchronization
//   - contact: form state, validation and the submission controller
//   - i18n: en and id message catalogs and locale negotiation
//   - page: templ components for the page, its nav and its contact form
//   - live: websocket session that drives navsync and contact for a browser
//   - store: Notion, diskv, SQLite and in-memory submission backends
//   - server: HTTP routes, rate limiting and security headers
//   - terminal: bubbletea preview of the page
//   - config, logging, errors, version: ambient plumbing
//
// # Data Flow
//
// The browser reports section bounds, scroll positions and hash changes over
// /live. The session feeds them to a navsync.Tracker and navsync.HashSync and
// sends back the active nav item and fragment. Form input and submit events
// drive a contact.Controller whose submitter writes to the configured store.
// The terminal preview runs the same tracker and controller with lines as
// the unit of length.
//
// Without JavaScript the page still works: nav links are plain anchors and
// the contact form posts to /api/contact and gets the page back with an
// alert.
package internal
