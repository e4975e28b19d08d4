// Package compose builds Chatwork message bodies for classified GitHub events.
//
// Each notifiable event kind has exactly one template. The composer fills a
// fixed set of named fields from the event and the room's member directory
// and renders the template selected by the event kind. Templates ship
// embedded in the binary and can be overridden per template id by dropping a
// "<id>.tmpl" file into a configured directory.
package compose
