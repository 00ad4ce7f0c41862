package request

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=client provider"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	City        string `json:"city" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
