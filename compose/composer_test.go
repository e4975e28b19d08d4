package compose

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-hook-notify/core"
)

func intPtr(value int) *int {
	return &value
}

func testRoom() core.Room {
	return core.Room{
		RoomID: "room-1",
		Members: []core.Member{
			{GithubID: "alice", ChatworkID: "101"},
			{GithubID: "bob", ChatworkID: "202"},
		},
	}
}

func TestPullRequestFields_DefaultsMissingCountsToZero(t *testing.T) {
	event := core.Event{
		Kind:        core.GitHubEventPullRequest,
		Repository:  core.Repository{Name: "widgets"},
		PullRequest: &core.PullRequest{Title: "Add widget", Author: "alice"},
	}
	fields := PullRequestFields(event, testRoom(), "[To:202]").Strings()
	for _, key := range []string{FieldEditedFiles, FieldAddedLines, FieldDeletedLines} {
		if fields[key] != "0" {
			t.Fatalf("expected %s to be \"0\", got %q", key, fields[key])
		}
	}
	if fields[FieldPullRequestOwner] != "101" {
		t.Fatalf("expected owner 101, got %q", fields[FieldPullRequestOwner])
	}
	if fields[FieldReceivers] != "[To:202]" {
		t.Fatalf("unexpected receivers %q", fields[FieldReceivers])
	}
}

func TestPullRequestFields_RendersCounts(t *testing.T) {
	event := core.Event{
		PullRequest: &core.PullRequest{
			ChangedFiles: intPtr(4),
			Additions:    intPtr(120),
			Deletions:    intPtr(0),
		},
	}
	fields := PullRequestFields(event, testRoom(), "").Strings()
	if fields[FieldEditedFiles] != "4" || fields[FieldAddedLines] != "120" || fields[FieldDeletedLines] != "0" {
		t.Fatalf("unexpected counts %#v", fields)
	}
}

func TestCommentFields_UnknownLoginsStayAbsent(t *testing.T) {
	event := core.Event{
		Kind:        core.GitHubEventPullRequestReviewComment,
		Repository:  core.Repository{Name: "widgets"},
		PullRequest: &core.PullRequest{Title: "Add widget", Author: "mallory"},
		Comment:     &core.ReviewComment{Author: "bob", Body: "nit", HTMLURL: "https://example.test/c/1"},
	}
	fields := CommentFields(event, testRoom(), "[To:101]")
	if owner := fields[FieldPullRequestOwner]; owner.Present {
		t.Fatalf("expected owner to be absent, got %q", owner.Value)
	}
	if commentator := fields[FieldCommentator]; !commentator.Present || commentator.Value != "202" {
		t.Fatalf("expected commentator 202, got %#v", commentator)
	}
	if _, ok := fields[FieldEditedFiles]; ok {
		t.Fatalf("comment fields must not carry pull request counts")
	}
	if got := fields.Strings()[FieldPullRequestOwner]; got != "" {
		t.Fatalf("expected absent owner to render empty, got %q", got)
	}
}

func TestComposer_SelectsTemplatePerKind(t *testing.T) {
	composer, err := NewComposer(nil)
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	event := core.Event{
		Repository:  core.Repository{Name: "widgets"},
		PullRequest: &core.PullRequest{Title: "Add widget", Author: "alice", HTMLURL: "https://example.test/pr/7"},
		Comment:     &core.ReviewComment{Author: "bob", Body: "looks good"},
	}
	cases := map[core.EventKind]string{
		core.EventPullRequestOpened:   "Pull request opened: Add widget",
		core.EventPullRequestMerged:   "Pull request merged: Add widget",
		core.EventPullRequestClosed:   "Pull request closed: Add widget",
		core.EventPullRequestReopened: "Pull request reopened: Add widget",
		core.EventCommentCreated:      "[piconname:202] commented on: Add widget",
		core.EventCommentEdited:       "[piconname:202] edited a comment on: Add widget",
	}
	for kind, want := range cases {
		msg, err := composer.Compose(kind, event, testRoom(), "[To:101]")
		if err != nil {
			t.Fatalf("%s: compose: %v", kind, err)
		}
		if msg.RoomID != "room-1" {
			t.Fatalf("%s: unexpected room %q", kind, msg.RoomID)
		}
		if !strings.HasPrefix(msg.Body, "[To:101]\n") {
			t.Fatalf("%s: expected receivers first, got %q", kind, msg.Body)
		}
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("%s: expected %q in %q", kind, want, msg.Body)
		}
		if strings.Contains(msg.Body, "<no value>") {
			t.Fatalf("%s: unexpected placeholder in %q", kind, msg.Body)
		}
	}
}

func TestComposer_UnrecognizedHasNoTemplate(t *testing.T) {
	composer, err := NewComposer(nil)
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	_, err = composer.Compose(core.EventUnrecognized, core.Event{}, testRoom(), "[To:1]")
	if !errors.Is(err, ErrNoTemplate) {
		t.Fatalf("expected ErrNoTemplate, got %v", err)
	}
}

func TestTemplateRenderer_OverridesFromFS(t *testing.T) {
	overrides := fstest.MapFS{
		"comment_created.tmpl": &fstest.MapFile{Data: []byte("{{.receivers}} {{.commentator}} said {{.comment_body}}\n")},
	}
	renderer, err := NewTemplateRenderer(overrides)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render("comment_created", map[string]string{
		FieldReceivers:   "[To:1]",
		FieldCommentator: "202",
		FieldCommentBody: "hi",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "[To:1] 202 said hi" {
		t.Fatalf("unexpected override output %q", out)
	}

	out, err = renderer.Render("pull_request_closed", map[string]string{FieldPullRequestTitle: "T"})
	if err != nil {
		t.Fatalf("render embedded: %v", err)
	}
	if !strings.Contains(out, "Pull request closed: T") {
		t.Fatalf("expected embedded template to remain, got %q", out)
	}
}

func TestTemplateRenderer_MissingFieldsRenderEmpty(t *testing.T) {
	renderer, err := NewTemplateRenderer(fstest.MapFS{
		"comment_edited.tmpl": &fstest.MapFile{Data: []byte("owner=[{{.pull_request_owner}}]")},
	})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render("comment_edited", map[string]string{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "owner=[]" {
		t.Fatalf("expected empty substitution, got %q", out)
	}
}

func TestTemplateRenderer_BadOverrideFails(t *testing.T) {
	_, err := NewTemplateRenderer(fstest.MapFS{
		"pull_request_opened.tmpl": &fstest.MapFile{Data: []byte("{{.receivers")},
	})
	if err == nil {
		t.Fatalf("expected parse error for malformed override")
	}
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer, err := NewTemplateRenderer(nil)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render("push", nil); !errors.Is(err, ErrNoTemplate) {
		t.Fatalf("expected ErrNoTemplate, got %v", err)
	}
}
