package user

import "time"

// UserResponse represents user data in API responses
type UserResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID *string   `json:"employee_id,omitempty"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		CompanyID:  u.CompanyID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
	}
}
