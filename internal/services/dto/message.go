package dto

type CreateMessageRequest struct {
	SenderName  string `json:"senderName" validate:"required,max=100"`
	SenderEmail string `json:"senderEmail" validate:"required,email"`
	Subject     string `json:"subject" validate:"max=200"`
	Body        string `json:"body" validate:"required,max=5000"`
}
