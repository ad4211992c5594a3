package auth

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	RegisterRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	TokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
)

func NewTokenResponse(token string) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "Bearer"}
}
