package dto

// ConversationTurn mirrors one prior message as the client stores it. The
// server is stateless; the client replays the history with every request.
type ConversationTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ConverseRequest struct {
	Query   string             `json:"query"`
	History []ConversationTurn `json:"history" validate:"dive"`
}

type ConverseResponse struct {
	Type string `json:"type"`
	Data string `json:"data"`
}
