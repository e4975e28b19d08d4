// Package events turns raw GitHub webhook payloads into the typed core.Event
// union and classifies them into notification kinds.
package events
