package apiclient

// Envelope is the {"data": ...} wrapper every collection and record
// endpoint answers with.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// LoginResponse covers both token placements seen from the login endpoint:
// {"authToken": ...} and {"data": {"authToken": ...}}.
type LoginResponse struct {
	AuthToken string `json:"authToken"`
	UserName  string `json:"userName"`
	Data      *struct {
		AuthToken string `json:"authToken"`
		UserName  string `json:"userName"`
	} `json:"data"`
}

// Token returns the top-level token, falling back to data.authToken.
func (r LoginResponse) Token() string {
	if r.AuthToken != "" {
		return r.AuthToken
	}
	if r.Data != nil {
		return r.Data.AuthToken
	}
	return ""
}

// User returns the user name echoed by the server, if any.
func (r LoginResponse) User() string {
	if r.UserName != "" {
		return r.UserName
	}
	if r.Data != nil {
		return r.Data.UserName
	}
	return ""
}
