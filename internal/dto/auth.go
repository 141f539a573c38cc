package dto

import (
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/services"
)

// TokenPairDTO carries a signed access and refresh token
type TokenPairDTO struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	User   UserDTO      `json:"user"`
	Tokens TokenPairDTO `json:"tokens"`
}

func ToTokenPairDTO(pair services.TokenPair) TokenPairDTO {
	return TokenPairDTO{Access: pair.Access, Refresh: pair.Refresh}
}

func ToLoginResponse(user models.User, pair services.TokenPair) LoginResponse {
	return LoginResponse{
		User:   ToUserDTO(user),
		Tokens: ToTokenPairDTO(pair),
	}
}
