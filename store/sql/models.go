package sqlstore

import (
	"time"

	"github.com/goliatone/go-hook-notify/core"
	"github.com/uptrace/bun"
)

type webhookRecord struct {
	bun.BaseModel `bun:"table:webhooks,alias:wh"`

	ID         string        `bun:"id,pk"`
	ServiceKey string        `bun:"service_key,notnull"`
	Bot        botDocument   `bun:"bot,type:jsonb,notnull"`
	Room       *roomDocument `bun:"room,type:jsonb"`
	CreatedAt  time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type botDocument struct {
	ChatworkToken *string `json:"chatwork_token,omitempty"`
	SlackToken    *string `json:"slack_token,omitempty"`
}

type roomDocument struct {
	RoomID  string        `json:"room_id"`
	Members []core.Member `json:"members"`
}
