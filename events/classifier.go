package events

import "github.com/goliatone/go-hook-notify/core"

// Classifier maps an inbound event to the notification it represents.
type Classifier interface {
	Classify(event core.Event) core.EventKind
}

type ClassifierFunc func(event core.Event) core.EventKind

func (f ClassifierFunc) Classify(event core.Event) core.EventKind {
	return f(event)
}

// DefaultClassifier is the rule table used by the notifier.
var DefaultClassifier Classifier = ClassifierFunc(Classify)

// Classify is pure and total: any combination it does not know maps to
// core.EventUnrecognized. Kind and action must match exactly.
func Classify(event core.Event) core.EventKind {
	switch event.Kind {
	case core.GitHubEventPullRequest:
		switch event.Action {
		case core.ActionOpened:
			return core.EventPullRequestOpened
		case core.ActionClosed:
			if event.PullRequest != nil && event.PullRequest.Merged {
				return core.EventPullRequestMerged
			}
			return core.EventPullRequestClosed
		case core.ActionReopened:
			return core.EventPullRequestReopened
		}
	case core.GitHubEventPullRequestReviewComment:
		switch event.Action {
		case core.ActionCreated:
			return core.EventCommentCreated
		case core.ActionEdited:
			return core.EventCommentEdited
		}
	}
	return core.EventUnrecognized
}
