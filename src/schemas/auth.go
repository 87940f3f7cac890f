package schemas

type SyncGoogleUserRequest struct {
	IDToken string `json:"id_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type SyncUserResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	TokenResponse
	User UserResponse `json:"user"`
}

// StatusResponse acknowledges deletes.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func Success(message string) StatusResponse {
	return StatusResponse{Status: "success", Message: message}
}
