package model

import (
	"fmt"
	"strings"
	"time"
)

// PlayerClass is the class label carried by every player
type PlayerClass string

const (
	ClassWarrior PlayerClass = "WARRIOR"
	ClassMage    PlayerClass = "MAGE"
	ClassCleric  PlayerClass = "CLERIC"
	ClassArcher  PlayerClass = "ARCHER"
)

// AllClasses lists the recognized classes in a fixed order
var AllClasses = []PlayerClass{ClassWarrior, ClassMage, ClassCleric, ClassArcher}

// IsValid returns true if the class is one of the recognized classes
func (c PlayerClass) IsValid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassCleric, ClassArcher:
		return true
	default:
		return false
	}
}

// Role is the macro-role a class fills in a guild
type Role string

const (
	RoleMelee   Role = "melee"
	RoleSupport Role = "support"
	RoleRanged  Role = "ranged"
)

// AllRoles lists the macro-roles every guild needs to be viable
var AllRoles = []Role{RoleMelee, RoleSupport, RoleRanged}

// Role returns the macro-role of the class, or "" for unknown classes
func (c PlayerClass) Role() Role {
	switch c {
	case ClassWarrior:
		return RoleMelee
	case ClassCleric:
		return RoleSupport
	case ClassMage, ClassArcher:
		return RoleRanged
	default:
		return ""
	}
}

// Player is a roster entry that can belong to at most one guild
type Player struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Class      PlayerClass `json:"class"`
	Experience int         `json:"experience"`
	GuildID    string      `json:"guild_id,omitempty"`
	CreatedOn  time.Time   `json:"created_on"`
	UpdatedOn  time.Time   `json:"updated_on"`
}

// HasGuild reports whether the player already references a guild
func (p *Player) HasGuild() bool {
	return p.GuildID != ""
}

// Business constraints
const (
	MinExperience       = 0
	MaxExperience       = 100
	MaxPlayerNameLength = 100
)

// PlayerFilter narrows a player listing. Zero values mean "no constraint".
type PlayerFilter struct {
	Name          string
	Class         PlayerClass
	MinExperience *int
	MaxExperience *int
}

// Matches reports whether a player satisfies the filter
func (f PlayerFilter) Matches(p *Player) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Class != "" && p.Class != f.Class {
		return false
	}
	if f.MinExperience != nil && p.Experience < *f.MinExperience {
		return false
	}
	if f.MaxExperience != nil && p.Experience > *f.MaxExperience {
		return false
	}
	return true
}

// CreatePlayerRequest represents a request to create a player
type CreatePlayerRequest struct {
	Name       string      `json:"name"`
	Class      PlayerClass `json:"class"`
	Experience *int        `json:"experience"`
	GuildID    string      `json:"guild_id,omitempty"`
}

// Validate checks the request fields
func (r *CreatePlayerRequest) Validate() []FieldError {
	var errors []FieldError

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxPlayerNameLength {
		errors = append(errors, FieldError{Field: "name", Message: fmt.Sprintf("name must be %d characters or less", MaxPlayerNameLength)})
	}
	if r.Class == "" {
		errors = append(errors, FieldError{Field: "class", Message: "class is required"})
	} else if !r.Class.IsValid() {
		errors = append(errors, FieldError{Field: "class", Message: "class must be WARRIOR, MAGE, CLERIC, or ARCHER"})
	}
	if r.Experience == nil {
		errors = append(errors, FieldError{Field: "experience", Message: "experience is required"})
	} else if fe := validateExperience(*r.Experience); fe != nil {
		errors = append(errors, *fe)
	}

	return errors
}

// UpdatePlayerRequest represents a request to update a player
type UpdatePlayerRequest struct {
	Name       *string      `json:"name,omitempty"`
	Class      *PlayerClass `json:"class,omitempty"`
	Experience *int         `json:"experience,omitempty"`
	GuildID    *string      `json:"guild_id,omitempty"`
}

// Validate checks the fields that are present
func (r *UpdatePlayerRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			errors = append(errors, FieldError{Field: "name", Message: "name cannot be empty"})
		} else if len(name) > MaxPlayerNameLength {
			errors = append(errors, FieldError{Field: "name", Message: fmt.Sprintf("name must be %d characters or less", MaxPlayerNameLength)})
		}
	}
	if r.Class != nil && !r.Class.IsValid() {
		errors = append(errors, FieldError{Field: "class", Message: "class must be WARRIOR, MAGE, CLERIC, or ARCHER"})
	}
	if r.Experience != nil {
		if fe := validateExperience(*r.Experience); fe != nil {
			errors = append(errors, *fe)
		}
	}

	return errors
}

func validateExperience(xp int) *FieldError {
	if xp < MinExperience {
		return &FieldError{Field: "experience", Message: "experience cannot be negative"}
	}
	if xp > MaxExperience {
		return &FieldError{Field: "experience", Message: fmt.Sprintf("experience cannot be over %d", MaxExperience)}
	}
	return nil
}
