package common

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"pwd" validate:"required"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"pwd" validate:"required"`
}

// CreateUserRequest carries no validate tags: schema constraints on users are
// enforced at the store layer, not at the HTTP boundary.
type CreateUserRequest struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type ListUsersRequest struct {
	Name string `query:"name"`
	Job  string `query:"job"`
}

type GetUserRequest struct {
	ID string `params:"id" validate:"required"`
}
