package models

import "time"

type Profile struct {
	ID             string    `json:"_id"`
	User           UserRef   `json:"user"`
	Company        string    `json:"company,omitempty"`
	Website        string    `json:"website,omitempty"`
	Location       string    `json:"location,omitempty"`
	Status         string    `json:"status"`
	Skills         []string  `json:"skills"`
	Bio            string    `json:"bio,omitempty"`
	GithubUsername string    `json:"githubusername,omitempty"`
	Social         Social    `json:"social"`
	Date           time.Time `json:"date"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}
