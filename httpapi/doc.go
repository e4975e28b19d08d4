// Package httpapi exposes the notification pipeline over HTTP.
//
// GitHub delivers to POST /webhooks/{serviceKey}/github; the X-GitHub-Event
// header selects the payload shape. Errors are rendered as go-errors
// envelopes: {"text_code": ..., "message": ...} with the mapped status.
package httpapi
