package models

// JarRequest selects a jar by its public send identifier.
type JarRequest struct {
	SendID string `query:"sendId" validate:"required"`
}

// ContactRequest is the contact form body.
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required"`
	Message string `json:"message" form:"message" validate:"required"`
}

// ToMessage converts the request to a domain message.
func (r *ContactRequest) ToMessage() *ContactMessage {
	return &ContactMessage{Name: r.Name, Email: r.Email, Message: r.Message}
}

// HistoryRequest queries stored snapshots of a jar.
type HistoryRequest struct {
	SendID string `query:"sendId" validate:"required"`
	Limit  int    `query:"limit" default:"50" validate:"gte=1,lte=1000"`
}

// StreamRequest opens a live jar stream.
type StreamRequest struct {
	SendID string `query:"sendId" validate:"required"`
	Source string `query:"source" default:"api" validate:"oneof=api scrape"`
}
