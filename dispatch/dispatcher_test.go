package dispatch

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-hook-notify/chatwork"
	"github.com/goliatone/go-hook-notify/core"
)

type recordingPoster struct {
	calls      int
	token      string
	roomID     string
	body       string
	selfUnread bool
	res        chatwork.PostMessageResponse
	err        error
}

func (p *recordingPoster) PostMessage(
	_ context.Context,
	token string,
	roomID string,
	body string,
	selfUnread bool,
) (chatwork.PostMessageResponse, error) {
	p.calls++
	p.token = token
	p.roomID = roomID
	p.body = body
	p.selfUnread = selfUnread
	return p.res, p.err
}

func TestDispatcher_SendReturnsResponseUnchanged(t *testing.T) {
	poster := &recordingPoster{res: chatwork.PostMessageResponse{MessageID: "99", StatusCode: http.StatusOK}}
	d := NewDispatcher(poster)

	res, err := d.Send(context.Background(), core.OutboundMessage{RoomID: "42", Body: "hello"}, core.BotCredentials{
		ChatworkToken: core.Some("token"),
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.MessageID != "99" {
		t.Fatalf("unexpected response %#v", res)
	}
	if poster.calls != 1 || poster.token != "token" || poster.roomID != "42" || poster.body != "hello" {
		t.Fatalf("unexpected call %#v", poster)
	}
	if poster.selfUnread {
		t.Fatalf("expected unread suppression by default")
	}
}

func TestDispatcher_RejectionsBecomeDeliveryRejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest} {
		poster := &recordingPoster{err: &chatwork.APIError{StatusCode: status, Errors: []string{"Invalid API token"}}}
		d := NewDispatcher(poster)

		_, err := d.Send(context.Background(), core.OutboundMessage{RoomID: "42", Body: "hello"}, core.BotCredentials{})
		if !core.IsDeliveryRejected(err) {
			t.Fatalf("status %d: expected delivery rejected, got %v", status, err)
		}
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) {
			t.Fatalf("status %d: expected go-errors envelope", status)
		}
		if rich.Code != http.StatusBadRequest {
			t.Fatalf("status %d: expected code 400, got %d", status, rich.Code)
		}
		if !strings.Contains(rich.Message, "chatwork request failure: Invalid API token") {
			t.Fatalf("status %d: unexpected message %q", status, rich.Message)
		}
		if poster.calls != 1 {
			t.Fatalf("status %d: expected exactly one call, got %d", status, poster.calls)
		}
		if poster.token != "" {
			t.Fatalf("status %d: expected empty token for missing credentials", status)
		}
	}
}

func TestDispatcher_OtherFailuresPropagateUnchanged(t *testing.T) {
	serverErr := &chatwork.APIError{StatusCode: http.StatusInternalServerError, Errors: []string{"boom"}}
	poster := &recordingPoster{err: serverErr}
	d := NewDispatcher(poster)

	_, err := d.Send(context.Background(), core.OutboundMessage{RoomID: "42"}, core.BotCredentials{})
	if err != serverErr {
		t.Fatalf("expected the original error, got %v", err)
	}
	if core.IsDeliveryRejected(err) {
		t.Fatalf("server errors must not be translated")
	}

	networkErr := errors.New("connection reset")
	poster = &recordingPoster{err: networkErr}
	d = NewDispatcher(poster)
	_, err = d.Send(context.Background(), core.OutboundMessage{RoomID: "42"}, core.BotCredentials{})
	if err != networkErr {
		t.Fatalf("expected network error unchanged, got %v", err)
	}
	if poster.calls != 1 {
		t.Fatalf("expected no retry, got %d calls", poster.calls)
	}
}

func TestDispatcher_WithSelfUnread(t *testing.T) {
	poster := &recordingPoster{}
	d := NewDispatcher(poster, WithSelfUnread(true))
	if _, err := d.Send(context.Background(), core.OutboundMessage{RoomID: "1"}, core.BotCredentials{}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !poster.selfUnread {
		t.Fatalf("expected self_unread to be forwarded")
	}
}

func TestDispatcher_RequiresClient(t *testing.T) {
	d := NewDispatcher(nil)
	if _, err := d.Send(context.Background(), core.OutboundMessage{}, core.BotCredentials{}); err == nil {
		t.Fatalf("expected error without client")
	}
}
