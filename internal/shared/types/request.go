package types

// WaitlistRequest is the body of a waitlist submission
type WaitlistRequest struct {
	Email string `json:"email" form:"email"`
}

// SignInRequest is the body of a demo sign-in
type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Result is the structured outcome of a form submission
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WSMessage is a client message on the live search socket
type WSMessage struct {
	Type    string `json:"type"`
	Query   string `json:"query,omitempty"`
	View    string `json:"view,omitempty"`
	Columns int    `json:"columns,omitempty"`
}
