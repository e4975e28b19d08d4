package events

import (
	"bytes"
	"strings"

	"github.com/goliatone/go-hook-notify/core"
	"github.com/google/go-github/v56/github"
)

var emptyBodies = [][]byte{[]byte("{}"), []byte("null"), []byte("[]")}

// Decode parses a GitHub webhook body for the given X-GitHub-Event kind.
// Empty bodies fail with a validation error; kinds outside the supported
// union fail with an unsupported-event error.
func Decode(kind string, body []byte) (core.Event, error) {
	kind = strings.TrimSpace(kind)
	if isEmptyBody(body) {
		return core.Event{}, core.ValidationError(core.MessageRequestBodyRequired, nil)
	}
	if kind != core.GitHubEventPullRequest && kind != core.GitHubEventPullRequestReviewComment {
		return core.Event{}, core.UnsupportedEventError(kind)
	}

	parsed, err := github.ParseWebHook(kind, body)
	if err != nil {
		return core.Event{}, core.ValidationError("invalid github payload: "+err.Error(), map[string]any{"event": kind})
	}

	switch payload := parsed.(type) {
	case *github.PullRequestEvent:
		return fromPullRequestEvent(payload)
	case *github.PullRequestReviewCommentEvent:
		return fromReviewCommentEvent(payload)
	default:
		return core.Event{}, core.UnsupportedEventError(kind)
	}
}

func fromPullRequestEvent(payload *github.PullRequestEvent) (core.Event, error) {
	if payload.PullRequest == nil {
		return core.Event{}, core.ValidationError("pull_request payload is required", map[string]any{
			"event": core.GitHubEventPullRequest,
		})
	}
	return core.Event{
		Kind:        core.GitHubEventPullRequest,
		Action:      payload.GetAction(),
		Repository:  toRepository(payload.GetRepo()),
		PullRequest: toPullRequest(payload.PullRequest),
	}, nil
}

func fromReviewCommentEvent(payload *github.PullRequestReviewCommentEvent) (core.Event, error) {
	if payload.Comment == nil {
		return core.Event{}, core.ValidationError("comment payload is required", map[string]any{
			"event": core.GitHubEventPullRequestReviewComment,
		})
	}
	if payload.PullRequest == nil {
		return core.Event{}, core.ValidationError("pull_request payload is required", map[string]any{
			"event": core.GitHubEventPullRequestReviewComment,
		})
	}
	return core.Event{
		Kind:        core.GitHubEventPullRequestReviewComment,
		Action:      payload.GetAction(),
		Repository:  toRepository(payload.GetRepo()),
		PullRequest: toPullRequest(payload.PullRequest),
		Comment: &core.ReviewComment{
			Body:    payload.Comment.GetBody(),
			HTMLURL: payload.Comment.GetHTMLURL(),
			Author:  payload.Comment.GetUser().GetLogin(),
		},
	}, nil
}

func toRepository(repo *github.Repository) core.Repository {
	return core.Repository{
		Name:     repo.GetName(),
		FullName: repo.GetFullName(),
	}
}

func toPullRequest(pr *github.PullRequest) *core.PullRequest {
	assignees := make([]string, 0, len(pr.Assignees))
	for _, assignee := range pr.Assignees {
		if login := assignee.GetLogin(); login != "" {
			assignees = append(assignees, login)
		}
	}
	return &core.PullRequest{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		HTMLURL:      pr.GetHTMLURL(),
		Author:       pr.GetUser().GetLogin(),
		Assignees:    assignees,
		Merged:       pr.GetMerged(),
		ChangedFiles: copyInt(pr.ChangedFiles),
		Additions:    copyInt(pr.Additions),
		Deletions:    copyInt(pr.Deletions),
	}
}

func copyInt(value *int) *int {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func isEmptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return true
	}
	for _, empty := range emptyBodies {
		if bytes.Equal(trimmed, empty) {
			return true
		}
	}
	return false
}
