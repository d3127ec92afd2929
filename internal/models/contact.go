package models

// ContactSubmission is the authoritative server-side shape of the contact form.
// It lives for one request and is never stored.
type ContactSubmission struct {
	Name    string `json:"name" binding:"min=2"`
	Email   string `json:"email" binding:"email"`
	Subject string `json:"subject" binding:"min=2"`
	Message string `json:"message" binding:"min=5"`
}

// EmailAddress is an address with an optional display name
type EmailAddress struct {
	Email string
	Name  string
}

// OutboundEmailMessage is one email derived from a submission
type OutboundEmailMessage struct {
	From     EmailAddress
	To       EmailAddress
	ReplyTo  *EmailAddress
	Subject  string
	HTMLBody string
}

// ContactResponse is the body returned by the contact endpoint
type ContactResponse struct {
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}
