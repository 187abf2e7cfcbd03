package identity

import (
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	EventUserRegistered = "identity.user.registered"
)

// UserRegisteredEvent is raised when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserRegisteredEvent creates a new user registered event
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserRegistered, "User", user.ID),
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
	}
}
