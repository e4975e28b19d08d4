// Package webhooks contains the notifier that turns one GitHub webhook
// delivery into at most one Chatwork message.
//
// Each call walks a fixed lifecycle:
// start -> config_resolved -> event_classified -> recipients_resolved ->
// suppressed | composed -> dispatched | failed.
// Nothing is persisted between calls and no step is retried.
package webhooks
