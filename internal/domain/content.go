package domain

import "strings"

// NotAvailable replaces contact fields the shop left blank.
const NotAvailable = "Not available"

// ContactInfo is the shop's contact metaobject.
type ContactInfo struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// NewContactInfo builds ContactInfo, substituting NotAvailable for blank fields.
func NewContactInfo(address, phone, email string) ContactInfo {
	return ContactInfo{
		Address: orNotAvailable(address),
		Phone:   orNotAvailable(phone),
		Email:   orNotAvailable(email),
	}
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// FAQ is a single question and answer.
type FAQ struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewsItem is one slide of the news carousel.
type NewsItem struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"link"`
	Description string `json:"description"`
}
