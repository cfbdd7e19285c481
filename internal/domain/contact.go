package domain

import "time"

// ContactSubmission is a contact form entry. It is persisted locally and
// forwarded to the spreadsheet backend best-effort.
type ContactSubmission struct {
	ID          int64     `db:"id"           json:"id,omitempty"`
	Name        string    `db:"name"         json:"name"`
	Email       string    `db:"email"        json:"email"`
	Phone       string    `db:"phone"        json:"phone,omitempty"`
	City        string    `db:"city"         json:"city,omitempty"`
	PackageSlug string    `db:"package_slug" json:"package_slug,omitempty"`
	Message     string    `db:"message"      json:"message"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at,omitempty"`
}
