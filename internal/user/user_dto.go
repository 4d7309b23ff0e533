package user

type UpdateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=ADMIN USER"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type DeleteUserRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}
