package model

import (
	"fmt"
	"strings"
	"time"
)

// Guild is a named roster of players
type Guild struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []Player  `json:"members"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Load returns the sum of member experience
func (g *Guild) Load() int {
	total := 0
	for i := range g.Members {
		total += g.Members[i].Experience
	}
	return total
}

// Business constraints
const (
	MaxGuildNameLength = 100
)

// CreateGuildRequest represents a request to create a guild
type CreateGuildRequest struct {
	Name string `json:"name"`
}

// Validate checks the request fields
func (r *CreateGuildRequest) Validate() []FieldError {
	return validateGuildName(r.Name)
}

// UpdateGuildRequest represents a request to rename a guild
type UpdateGuildRequest struct {
	Name string `json:"name"`
}

// Validate checks the request fields
func (r *UpdateGuildRequest) Validate() []FieldError {
	return validateGuildName(r.Name)
}

func validateGuildName(name string) []FieldError {
	name = strings.TrimSpace(name)
	if name == "" {
		return []FieldError{{Field: "name", Message: "name is required"}}
	}
	if len(name) > MaxGuildNameLength {
		return []FieldError{{Field: "name", Message: fmt.Sprintf("name must be %d characters or less", MaxGuildNameLength)}}
	}
	return nil
}
