package entities

import "time"

type ErrorLog struct {
	ID        string    `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	Component string    `json:"component" db:"component"`
	User      string    `json:"user" db:"username"`
	URL       string    `json:"url" db:"url"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	Stack     string    `json:"stack" db:"stack"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}
