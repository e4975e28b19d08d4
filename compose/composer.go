package compose

import (
	"errors"
	"strings"

	"github.com/goliatone/go-hook-notify/core"
)

var ErrNoTemplate = errors.New("compose: no template for event")

type Composer struct {
	renderer Renderer
}

// NewComposer returns a composer over renderer. A nil renderer falls back to
// the embedded templates.
func NewComposer(renderer Renderer) (*Composer, error) {
	if renderer == nil {
		embedded, err := NewTemplateRenderer(nil)
		if err != nil {
			return nil, err
		}
		renderer = embedded
	}
	return &Composer{renderer: renderer}, nil
}

// TemplateFor returns the template id for kind. Unrecognized events have no
// template.
func TemplateFor(kind core.EventKind) (string, bool) {
	if !kind.IsPullRequest() && !kind.IsComment() {
		return "", false
	}
	return string(kind), true
}

// Fields builds the template fields for kind.
func Fields(kind core.EventKind, event core.Event, room core.Room, receivers string) (core.TemplateFields, error) {
	switch {
	case kind.IsPullRequest():
		return PullRequestFields(event, room, receivers), nil
	case kind.IsComment():
		return CommentFields(event, room, receivers), nil
	default:
		return nil, ErrNoTemplate
	}
}

// Compose renders the message for kind addressed to room.
func (c *Composer) Compose(kind core.EventKind, event core.Event, room core.Room, receivers string) (core.OutboundMessage, error) {
	templateID, ok := TemplateFor(kind)
	if !ok {
		return core.OutboundMessage{}, ErrNoTemplate
	}
	fields, err := Fields(kind, event, room, receivers)
	if err != nil {
		return core.OutboundMessage{}, err
	}
	body, err := c.renderer.Render(templateID, fields.Strings())
	if err != nil {
		return core.OutboundMessage{}, err
	}
	return core.OutboundMessage{
		RoomID: strings.TrimSpace(room.RoomID),
		Body:   body,
	}, nil
}
