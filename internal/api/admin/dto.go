package admin

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin leader teacher"`
	Active   *bool  `json:"active"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin leader teacher"`
	Active   *bool   `json:"active"`
}

type UserFilter struct {
	Role   string
	Search string
}
