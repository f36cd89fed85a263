// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// User is the authenticated GitHub account an aggregation run is performed for.
type User struct {
	ID              int64     `json:"id"`
	Login           string    `json:"login"`
	Name            string    `json:"name,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty"`
	Company         string    `json:"company,omitempty"`
	Blog            string    `json:"blog,omitempty"`
	Email           string    `json:"email,omitempty"`
	TwitterUsername string    `json:"twitter_username,omitempty"`
	Hireable        *bool     `json:"hireable,omitempty"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	PublicRepos     int       `json:"public_repos"`
	PublicGists     int       `json:"public_gists"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
