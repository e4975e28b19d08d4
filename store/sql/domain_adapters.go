package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-hook-notify/core"
)

func newWebhookRecord(in core.CreateWebhookInput, now time.Time) *webhookRecord {
	members := make([]core.Member, 0, len(in.Room.Members))
	for _, member := range in.Room.Members {
		members = append(members, core.Member{
			GithubID:   strings.TrimSpace(member.GithubID),
			ChatworkID: strings.TrimSpace(member.ChatworkID),
		})
	}
	record := &webhookRecord{
		ServiceKey: strings.TrimSpace(in.ServiceKey),
		Bot: botDocument{
			ChatworkToken: optionalString(in.ChatworkToken),
			SlackToken:    optionalString(in.SlackToken),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if roomID := strings.TrimSpace(in.Room.RoomID); roomID != "" {
		record.Room = &roomDocument{RoomID: roomID, Members: members}
	}
	return record
}

func (r *webhookRecord) toDomain() core.WebhookConfig {
	if r == nil {
		return core.WebhookConfig{}
	}
	config := core.WebhookConfig{
		ID:         r.ID,
		ServiceKey: r.ServiceKey,
		Bot: core.BotCredentials{
			ChatworkToken: fromPointer(r.Bot.ChatworkToken),
			SlackToken:    fromPointer(r.Bot.SlackToken),
		},
	}
	if r.Room != nil {
		config.Room = &core.Room{
			RoomID:  r.Room.RoomID,
			Members: append([]core.Member(nil), r.Room.Members...),
		}
	}
	return config
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func fromPointer(value *string) core.Optional {
	if value == nil {
		return core.None()
	}
	return core.Some(*value)
}

func cloneWebhookConfig(config core.WebhookConfig) core.WebhookConfig {
	cloned := config
	if config.Room != nil {
		room := *config.Room
		room.Members = append([]core.Member(nil), config.Room.Members...)
		cloned.Room = &room
	}
	return cloned
}
