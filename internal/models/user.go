package models

import "time"

// User is an identity record. The password hash never leaves the service in JSON.
type User struct {
	ID       string    `json:"_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
	Avatar   string    `json:"avatar"`
	Date     time.Time `json:"date"`
}

// UserRef is the owner reference embedded in a Profile. Name and Avatar are only
// filled on joined reads.
type UserRef struct {
	ID     string `json:"_id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}
