package domain

// Chat is the public header of a chat board.
type Chat struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ChatMessage is a single append-only entry on a board.
type ChatMessage struct {
	ID     string `json:"id"`
	ChatID string `json:"chatId"`
	UserID string `json:"userId"`
	Text   string `json:"text"`
	TS     int64  `json:"ts"` // Unix milliseconds
}

// ChatBoard is a chat together with its messages, stored as one document.
type ChatBoard struct {
	Chat
	Messages []ChatMessage `json:"messages"`
}
