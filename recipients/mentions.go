package recipients

import (
	"fmt"
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@\S+`)

// ExtractMentions returns the handles mentioned in body with the leading "@"
// removed. A handle repeated later in the body only counts at its last
// occurrence, so the result holds each handle once, ordered by that final
// position. Handles compare as whole tokens: "@bob" is kept when "@bobby"
// follows it.
func ExtractMentions(body string) []string {
	tokens := mentionPattern.FindAllString(body, -1)
	if len(tokens) == 0 {
		return nil
	}
	last := make(map[string]int, len(tokens))
	for idx, token := range tokens {
		last[token] = idx
	}
	mentions := make([]string, 0, len(last))
	for idx, token := range tokens {
		if last[token] != idx {
			continue
		}
		mentions = append(mentions, strings.TrimPrefix(token, "@"))
	}
	return mentions
}

// Directive renders the Chatwork "to" tag for a member.
func Directive(chatworkID string) string {
	return fmt.Sprintf("[To:%s]", chatworkID)
}
