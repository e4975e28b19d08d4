package events

import (
	"testing"

	"github.com/goliatone/go-hook-notify/core"
)

func TestClassify_PullRequestActions(t *testing.T) {
	cases := []struct {
		name   string
		action string
		merged bool
		want   core.EventKind
	}{
		{name: "opened", action: "opened", want: core.EventPullRequestOpened},
		{name: "closed merged", action: "closed", merged: true, want: core.EventPullRequestMerged},
		{name: "closed unmerged", action: "closed", want: core.EventPullRequestClosed},
		{name: "reopened", action: "reopened", want: core.EventPullRequestReopened},
		{name: "synchronize", action: "synchronize", want: core.EventUnrecognized},
		{name: "edited", action: "edited", want: core.EventUnrecognized},
		{name: "empty", action: "", want: core.EventUnrecognized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(core.Event{
				Kind:        core.GitHubEventPullRequest,
				Action:      tc.action,
				PullRequest: &core.PullRequest{Merged: tc.merged},
			})
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClassify_ReviewCommentActions(t *testing.T) {
	cases := map[string]core.EventKind{
		"created": core.EventCommentCreated,
		"edited":  core.EventCommentEdited,
		"deleted": core.EventUnrecognized,
		"opened":  core.EventUnrecognized,
	}
	for action, want := range cases {
		got := Classify(core.Event{
			Kind:        core.GitHubEventPullRequestReviewComment,
			Action:      action,
			PullRequest: &core.PullRequest{},
			Comment:     &core.ReviewComment{},
		})
		if got != want {
			t.Fatalf("action %q: expected %s, got %s", action, want, got)
		}
	}
}

func TestClassify_UnknownKindIsUnrecognized(t *testing.T) {
	if got := Classify(core.Event{Kind: "push", Action: "opened"}); got != core.EventUnrecognized {
		t.Fatalf("expected unrecognized, got %s", got)
	}
	if got := Classify(core.Event{}); got != core.EventUnrecognized {
		t.Fatalf("expected unrecognized for zero event, got %s", got)
	}
}

func TestClassify_ClosedWithoutPullRequestIsClosed(t *testing.T) {
	got := Classify(core.Event{Kind: core.GitHubEventPullRequest, Action: "closed"})
	if got != core.EventPullRequestClosed {
		t.Fatalf("expected closed, got %s", got)
	}
}

func TestClassify_ActionsMatchExactly(t *testing.T) {
	cases := []core.Event{
		{Kind: core.GitHubEventPullRequest, Action: " opened "},
		{Kind: core.GitHubEventPullRequest, Action: "Opened"},
		{Kind: core.GitHubEventPullRequestReviewComment, Action: "created\n"},
		{Kind: " " + core.GitHubEventPullRequest, Action: "opened"},
		{Kind: core.GitHubEventPullRequest, Action: "synchronize"},
	}
	for _, event := range cases {
		if got := Classify(event); got != core.EventUnrecognized {
			t.Fatalf("kind %q action %q: expected unrecognized, got %s", event.Kind, event.Action, got)
		}
	}
}
