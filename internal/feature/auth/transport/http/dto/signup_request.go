package dto

// SignupReq represents the request body for the /api/auth/register endpoint.
// It uses Gin's binding tags for validation (required, email format, length limits).
type SignupReq struct {
	Email     string `json:"email" binding:"required,email,max=50"`
	FirstName string `json:"firstName" binding:"required,min=3,max=20"`
	LastName  string `json:"lastName" binding:"required,min=3,max=20"`
	Password  string `json:"password" binding:"required,min=6,max=40"`
}
