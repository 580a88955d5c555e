package messages

import "time"

// Message is a single message resource as returned by the API.
type Message struct {
	ID             string    `json:"id,omitempty"`
	ConversationID string    `json:"conversationId,omitempty"`
	Author         string    `json:"author,omitempty"`
	Text           string    `json:"text,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
}

// Draft is the payload for sending a new message. Absent fields are omitted
// from the wire format.
type Draft struct {
	ConversationID string `json:"conversationId,omitempty"`
	Text           string `json:"text"`
}

// Page is one page of listed messages.
type Page struct {
	Items      []Message `json:"items"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

// ListOptions narrows a List call. Zero values are not sent.
type ListOptions struct {
	ConversationID string
	Limit          int
	Cursor         string
}
