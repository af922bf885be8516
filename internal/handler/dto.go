package handler

import (
	"github.com/dmoren/saasbase/internal/domain"
)

// UserDTO is the JSON representation of a user. Timestamps are milliseconds
// since epoch, matching what the store persists.
type UserDTO struct {
	ID        int64  `json:"id"`
	ClerkID   string `json:"clerkId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		ClerkID:   u.ClerkID,
		Email:     u.Email,
		Name:      u.Name,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt.UnixMilli(),
		UpdatedAt: u.UpdatedAt.UnixMilli(),
	}
}
