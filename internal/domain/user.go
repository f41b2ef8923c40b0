package domain

// Profile is the account view returned by the remote system.
type Profile struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName"`
	Role        Role    `json:"role"`
}

// LoginRequest carries credentials plus the guest cart to merge.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	CartID   string `json:"cartId"`
}

// LoginResponse carries the issued credential and the merged cart id.
type LoginResponse struct {
	Token  string `json:"token"`
	CartID string `json:"cartId"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
