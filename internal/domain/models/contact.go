package models

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}
