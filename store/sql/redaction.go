package sqlstore

import (
	"strings"

	"github.com/goliatone/go-hook-notify/core"
)

const redactedValue = "[REDACTED]"

// WebhookConfigView renders config as a plain map with credentials redacted,
// suitable for logs and CLI output.
func WebhookConfigView(config core.WebhookConfig) map[string]any {
	view := map[string]any{
		"id":          config.ID,
		"service_key": config.ServiceKey,
		"bot": map[string]any{
			"chatwork_token": optionalView(config.Bot.ChatworkToken),
			"slack_token":    optionalView(config.Bot.SlackToken),
		},
	}
	if config.Room != nil {
		members := make([]any, 0, len(config.Room.Members))
		for _, member := range config.Room.Members {
			members = append(members, map[string]any{
				"github_id":   member.GithubID,
				"chatwork_id": member.ChatworkID,
			})
		}
		view["room"] = map[string]any{
			"room_id": config.Room.RoomID,
			"members": members,
		}
	}
	return RedactMetadata(view)
}

func optionalView(value core.Optional) any {
	if !value.Present {
		return nil
	}
	return value.Value
}

func RedactMetadata(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return map[string]any{}
	}
	return redactMap(metadata)
}

func redactMap(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	for key, value := range source {
		if isSensitiveKey(key) {
			if value == nil {
				target[key] = nil
				continue
			}
			target[key] = redactedValue
			continue
		}
		target[key] = redactValue(value)
	}
	return target
}

func redactValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return redactMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = redactValue(typed[i])
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	for _, token := range []string{"password", "secret", "token", "authorization", "api_key", "credential"} {
		if strings.Contains(key, token) {
			return true
		}
	}
	return false
}
