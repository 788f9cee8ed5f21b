package api

// loginRequest is the JSON body of POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the successful response of POST /auth/login.
type LoginResult struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// registerRequest is the JSON body of POST /auth/register.
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// summarizeTextRequest is the JSON body of POST /text/summarize.
// Mode and SummaryLength carry the uppercase wire enumerations.
type summarizeTextRequest struct {
	Text          string `json:"text"`
	Mode          string `json:"mode"`
	SummaryLength string `json:"summaryLength"`
}

// errorBody is the JSON error envelope the backend uses on failures.
type errorBody struct {
	Message string `json:"message"`
}
