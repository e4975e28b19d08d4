package compose

import (
	"strconv"

	"github.com/goliatone/go-hook-notify/core"
)

const (
	FieldRepositoryName   = "repository_name"
	FieldPullRequestTitle = "pull_request_title"
	FieldPullRequestOwner = "pull_request_owner"
	FieldPullRequestURL   = "pull_request_url"
	FieldPullRequestBody  = "pull_request_body"
	FieldEditedFiles      = "pull_request_edited_files"
	FieldAddedLines       = "pull_request_added_lines"
	FieldDeletedLines     = "pull_request_deleted_lines"
	FieldCommentator      = "commentator"
	FieldCommentBody      = "comment_body"
	FieldCommentURL       = "comment_url"
	FieldReceivers        = "receivers"
)

// PullRequestFields builds the pull request field shape. Owner is looked up
// in the room by author login and stays absent when nobody matches.
func PullRequestFields(event core.Event, room core.Room, receivers string) core.TemplateFields {
	pr := pullRequestOf(event)
	return core.TemplateFields{
		FieldRepositoryName:   core.Some(event.Repository.Name),
		FieldPullRequestTitle: core.Some(pr.Title),
		FieldPullRequestOwner: room.ChatworkIDFor(pr.Author),
		FieldPullRequestURL:   core.Some(pr.HTMLURL),
		FieldPullRequestBody:  core.Some(pr.Body),
		FieldEditedFiles:      count(pr.ChangedFiles),
		FieldAddedLines:       count(pr.Additions),
		FieldDeletedLines:     count(pr.Deletions),
		FieldReceivers:        core.Some(receivers),
	}
}

// CommentFields builds the review comment field shape.
func CommentFields(event core.Event, room core.Room, receivers string) core.TemplateFields {
	pr := pullRequestOf(event)
	comment := event.Comment
	if comment == nil {
		comment = &core.ReviewComment{}
	}
	return core.TemplateFields{
		FieldRepositoryName:   core.Some(event.Repository.Name),
		FieldPullRequestTitle: core.Some(pr.Title),
		FieldPullRequestOwner: room.ChatworkIDFor(pr.Author),
		FieldCommentator:      room.ChatworkIDFor(comment.Author),
		FieldCommentBody:      core.Some(comment.Body),
		FieldCommentURL:       core.Some(comment.HTMLURL),
		FieldReceivers:        core.Some(receivers),
	}
}

func pullRequestOf(event core.Event) *core.PullRequest {
	if event.PullRequest == nil {
		return &core.PullRequest{}
	}
	return event.PullRequest
}

func count(value *int) core.Optional {
	if value == nil {
		return core.Some("0")
	}
	return core.Some(strconv.Itoa(*value))
}
