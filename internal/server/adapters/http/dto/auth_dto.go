// Package dto содержит объекты передачи данных HTTP слоя.
package dto

import "worklog/internal/server/domain/entities"

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse содержит публичные данные пользователя.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// RegisterResponse - ответ на успешную регистрацию.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse - ответ на успешный вход.
type LoginResponse struct {
	Message     string       `json:"message"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// NewUserResponse преобразует доменного пользователя в ответ без
// чувствительных полей.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}
