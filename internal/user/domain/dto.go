package domain

import "time"

// UserDTO is the transfer shape of a User exchanged over the API boundary.
// ID, created_at and updated_at are output-only and ignored on input.
type UserDTO struct {
	ID        uint      `json:"id,omitempty"`
	Username  string    `json:"username" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDTO converts the stored entity into its transfer shape.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToDTOs converts a slice of entities.
func ToDTOs(users []User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	return dtos
}
