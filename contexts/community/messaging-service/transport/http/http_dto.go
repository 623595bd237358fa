package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ConversationDTO struct {
	ConversationID string `json:"conversation_id"`
	BrandID        string `json:"brand_id"`
	CreatorID      string `json:"creator_id"`
	CreatedAt      string `json:"created_at"`
	LastMessageAt  string `json:"last_message_at"`
}

type MessageDTO struct {
	MessageID      string `json:"message_id"`
	ConversationID string `json:"conversation_id"`
	SenderType     string `json:"sender_type"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	Read           bool   `json:"read"`
	CreatedAt      string `json:"created_at"`
}

type OpenConversationRequest struct {
	BrandID   string `json:"brand_id"`
	CreatorID string `json:"creator_id"`
}

type ConversationResponse struct {
	Conversation ConversationDTO `json:"conversation"`
}

type ListConversationsResponse struct {
	Items []ConversationDTO `json:"items"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type MessageResponse struct {
	Message MessageDTO `json:"message"`
}

type ListMessagesResponse struct {
	Items []MessageDTO `json:"items"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
