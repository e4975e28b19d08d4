package recipients

import (
	"github.com/goliatone/go-hook-notify/core"
)

type Resolver interface {
	Resolve(kind core.EventKind, event core.Event, members []core.Member) core.RecipientSet
}

type ResolverFunc func(kind core.EventKind, event core.Event, members []core.Member) core.RecipientSet

func (f ResolverFunc) Resolve(kind core.EventKind, event core.Event, members []core.Member) core.RecipientSet {
	return f(kind, event, members)
}

var DefaultResolver Resolver = ResolverFunc(Resolve)

// Resolve computes the sender and receivers for a classified event.
//
// Comment events tag the members mentioned in the comment body. Pull request
// events tag the assigned members, or every member when nobody is assigned.
// Receivers always follow room member order and members that are not
// selected contribute nothing. Unrecognized events resolve to an empty set.
func Resolve(kind core.EventKind, event core.Event, members []core.Member) core.RecipientSet {
	switch {
	case kind.IsComment():
		if event.Comment == nil {
			return core.RecipientSet{}
		}
		return core.RecipientSet{
			Sender:    event.Comment.Author,
			Receivers: tag(members, toSet(ExtractMentions(event.Comment.Body))),
		}
	case kind.IsPullRequest():
		if event.PullRequest == nil {
			return core.RecipientSet{}
		}
		set := core.RecipientSet{Sender: event.PullRequest.Author}
		if len(event.PullRequest.Assignees) == 0 {
			set.Receivers = tag(members, nil)
			return set
		}
		set.Receivers = tag(members, toSet(event.PullRequest.Assignees))
		return set
	default:
		return core.RecipientSet{}
	}
}

// tag returns directives for members whose github id is in selected, or for
// every member when selected is nil.
func tag(members []core.Member, selected map[string]struct{}) []string {
	receivers := make([]string, 0, len(members))
	for _, member := range members {
		if selected != nil {
			if _, ok := selected[member.GithubID]; !ok {
				continue
			}
		}
		receivers = append(receivers, Directive(member.ChatworkID))
	}
	return receivers
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
