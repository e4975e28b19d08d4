package core

import (
	"strings"
)

// GitHub event kinds as delivered in the X-GitHub-Event header.
const (
	GitHubEventPullRequest              = "pull_request"
	GitHubEventPullRequestReviewComment = "pull_request_review_comment"
)

// GitHub actions the classifier understands.
const (
	ActionOpened   = "opened"
	ActionClosed   = "closed"
	ActionReopened = "reopened"
	ActionCreated  = "created"
	ActionEdited   = "edited"
)

// EventKind is the symbolic application event a payload classifies into.
type EventKind string

const (
	EventUnrecognized        EventKind = ""
	EventPullRequestOpened   EventKind = "pull_request_opened"
	EventPullRequestMerged   EventKind = "pull_request_merged"
	EventPullRequestClosed   EventKind = "pull_request_closed"
	EventPullRequestReopened EventKind = "pull_request_reopened"
	EventCommentCreated      EventKind = "comment_created"
	EventCommentEdited       EventKind = "comment_edited"
)

func (k EventKind) String() string {
	if k == EventUnrecognized {
		return "unrecognized"
	}
	return string(k)
}

func (k EventKind) IsPullRequest() bool {
	switch k {
	case EventPullRequestOpened, EventPullRequestMerged, EventPullRequestClosed, EventPullRequestReopened:
		return true
	default:
		return false
	}
}

func (k EventKind) IsComment() bool {
	return k == EventCommentCreated || k == EventCommentEdited
}

// Optional carries a value that may be absent. Absent values render as an
// empty string.
type Optional struct {
	Value   string
	Present bool
}

func Some(value string) Optional {
	return Optional{Value: value, Present: true}
}

func None() Optional {
	return Optional{}
}

func (o Optional) String() string {
	if !o.Present {
		return ""
	}
	return o.Value
}

func (o Optional) Get() (string, bool) {
	return o.Value, o.Present
}

type Member struct {
	GithubID   string `json:"github_id"`
	ChatworkID string `json:"chatwork_id"`
}

type Room struct {
	RoomID  string   `json:"room_id"`
	Members []Member `json:"members"`
}

// ChatworkIDFor returns the chatwork id of the first member whose github id
// matches login exactly.
func (r Room) ChatworkIDFor(login string) Optional {
	for _, member := range r.Members {
		if member.GithubID == login {
			return Some(member.ChatworkID)
		}
	}
	return None()
}

type BotCredentials struct {
	ChatworkToken Optional
	SlackToken    Optional
}

// WebhookConfig identifies a tenant: the room a service key notifies and the
// bot credentials used to post there.
type WebhookConfig struct {
	ID         string
	ServiceKey string
	Bot        BotCredentials
	Room       *Room
}

func (c WebhookConfig) Validate() error {
	if strings.TrimSpace(c.ServiceKey) == "" {
		return ConfigurationError(MessageWebhookNotFound, nil)
	}
	if c.Room == nil || strings.TrimSpace(c.Room.RoomID) == "" {
		return ConfigurationError(MessageRoomUndefined, map[string]any{"service_key": c.ServiceKey})
	}
	return nil
}

type Repository struct {
	Name     string
	FullName string
}

type PullRequest struct {
	Number       int
	Title        string
	Body         string
	HTMLURL      string
	Author       string
	Assignees    []string
	Merged       bool
	ChangedFiles *int
	Additions    *int
	Deletions    *int
}

type ReviewComment struct {
	Body    string
	HTMLURL string
	Author  string
}

// Event is the typed inbound payload. Kind selects which of PullRequest and
// Comment are populated: pull_request events carry PullRequest only, review
// comment events carry Comment plus the parent PullRequest.
type Event struct {
	Kind        string
	Action      string
	DeliveryID  string
	Repository  Repository
	PullRequest *PullRequest
	Comment     *ReviewComment
}

func (e Event) IsZero() bool {
	return strings.TrimSpace(e.Kind) == "" && e.PullRequest == nil && e.Comment == nil
}

// RecipientSet is the sender plus the ordered tag directives for a notification.
type RecipientSet struct {
	Sender    string
	Receivers []string
}

// Joined concatenates the tag directives with no separator.
func (s RecipientSet) Joined() string {
	return strings.Join(s.Receivers, "")
}

func (s RecipientSet) Empty() bool {
	return s.Joined() == ""
}

// TemplateFields maps placeholder names to values.
type TemplateFields map[string]Optional

// Strings flattens the fields for rendering, absent values become "".
func (f TemplateFields) Strings() map[string]string {
	out := make(map[string]string, len(f))
	for key, value := range f {
		out[key] = value.String()
	}
	return out
}

type OutboundMessage struct {
	RoomID string
	Body   string
}
