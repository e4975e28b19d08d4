package command

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-hook-notify/core"
)

const (
	TypeNotify          = "hook_notify.command.notify"
	TypeRegisterWebhook = "hook_notify.command.webhook.register"
)

// NotifyMessage asks for one GitHub event to be delivered to the room
// configured for ServiceKey.
type NotifyMessage struct {
	ServiceKey string
	Event      core.Event
}

func (NotifyMessage) Type() string { return TypeNotify }

func (m NotifyMessage) Validate() error {
	if strings.TrimSpace(m.ServiceKey) == "" {
		return commandValidationError("service_key", "service key is required")
	}
	if m.Event.IsZero() {
		return core.ValidationError(core.MessageRequestBodyRequired, map[string]any{
			"service_key": strings.TrimSpace(m.ServiceKey),
		})
	}
	return nil
}

type RegisterWebhookMessage struct {
	Input core.CreateWebhookInput
}

func (RegisterWebhookMessage) Type() string { return TypeRegisterWebhook }

func (m RegisterWebhookMessage) Validate() error {
	if strings.TrimSpace(m.Input.ServiceKey) == "" {
		return commandValidationError("service_key", "service key is required")
	}
	if strings.TrimSpace(m.Input.Room.RoomID) == "" {
		return commandValidationError("room.room_id", "room id is required")
	}
	for idx, member := range m.Input.Room.Members {
		if strings.TrimSpace(member.GithubID) == "" || strings.TrimSpace(member.ChatworkID) == "" {
			return commandValidationError("room.members", "member "+strconv.Itoa(idx)+" needs github_id and chatwork_id")
		}
	}
	return nil
}
