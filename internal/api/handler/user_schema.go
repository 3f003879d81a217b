package handler

type createUserRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"omitempty,email"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role"      validate:"omitempty,oneof=user admin"`
}

type createChatRequest struct {
	Title string `json:"title" validate:"required"`
}

type sendMessageRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}
