package api

import (
	"context"
	"time"
)

// Community message moderation states, assigned server-side.
const (
	CommunityPending  = "pending"
	CommunityApproved = "approved"
	CommunityRejected = "rejected"
	CommunityNotFound = "not_found"
)

// CommunityMessage is the caller's own wall message with its moderation
// verdict. Moderation happens entirely on the server; the client only
// surfaces the status and reason.
type CommunityMessage struct {
	Text      string    `json:"text"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ApprovedMessages fetches the texts on the community wall.
func (c *Client) ApprovedMessages(ctx context.Context) ([]string, error) {
	var messages []string
	if err := c.get(ctx, "/api/community/messages/approved", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MyCommunityMessage fetches the caller's own message and its moderation
// status. Status is CommunityNotFound when nothing has been posted yet.
func (c *Client) MyCommunityMessage(ctx context.Context) (CommunityMessage, error) {
	var msg CommunityMessage
	if err := c.get(ctx, "/api/community/message", &msg); err != nil {
		return CommunityMessage{}, err
	}
	return msg, nil
}

// PostCommunityMessage submits a message for moderation and returns the
// verdict.
func (c *Client) PostCommunityMessage(ctx context.Context, text string) (CommunityMessage, error) {
	var msg CommunityMessage
	body := map[string]string{"message_text": text}
	if err := c.post(ctx, "/api/community/message", body, &msg); err != nil {
		return CommunityMessage{}, err
	}
	if msg.Text == "" {
		msg.Text = text
	}
	return msg, nil
}
