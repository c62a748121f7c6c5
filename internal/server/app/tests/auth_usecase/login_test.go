package authusecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"worklog/internal/server/app"
	"worklog/internal/server/domain/entities"
	"worklog/internal/server/domain/services"
)

var (
	errPasswordVerification = errors.New("password verification error")
	errTokenGeneration      = errors.New("token generation failed")
)

func TestLogin(t *testing.T) {
	testUsername := "testuser"
	testPassword := "password123"
	hashedPassword := "hashed_password"

	now := time.Now()
	accessExpiry := now.Add(15 * time.Minute)
	accessToken := "access-token-123"

	testUser := &entities.User{
		ID:           42,
		Username:     testUsername,
		PasswordHash: hashedPassword,
		CreatedAt:    now.Add(-24 * time.Hour),
		UpdatedAt:    now.Add(-24 * time.Hour),
	}

	tests := []struct {
		name        string
		username    string
		password    string
		setupMocks  func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService, mockTokenSvc *mockTokenService)
		expectedErr error
	}{
		{
			name:     "success - user logged in",
			username: testUsername,
			password: testPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService, mockTokenSvc *mockTokenService) {
				mockUserRepo.On("FindByUsername", mock.Anything, testUsername).Return(testUser, nil).Once()
				mockPasswordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
				mockTokenSvc.On("GenerateAccessToken", mock.Anything, testUser.ID, testUsername).
					Return(accessToken, accessExpiry, nil).Once()
			},
		},
		{
			name:     "error - unknown username yields generic credentials error",
			username: "nonexistent",
			password: testPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				mockUserRepo.On("FindByUsername", mock.Anything, "nonexistent").
					Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name:     "error - wrong password yields the same credentials error",
			username: testUsername,
			password: "wrongpassword",
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService, _ *mockTokenService) {
				mockUserRepo.On("FindByUsername", mock.Anything, testUsername).Return(testUser, nil).Once()
				mockPasswordSvc.On("Verify", mock.Anything, "wrongpassword", hashedPassword).
					Return(false, nil).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name:     "error - database error finding user",
			username: testUsername,
			password: testPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				mockUserRepo.On("FindByUsername", mock.Anything, testUsername).
					Return(nil, errDatabaseConnection).Once()
			},
			expectedErr: errDatabaseConnection,
		},
		{
			name:     "error - password verification failure",
			username: testUsername,
			password: testPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService, _ *mockTokenService) {
				mockUserRepo.On("FindByUsername", mock.Anything, testUsername).Return(testUser, nil).Once()
				mockPasswordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).
					Return(false, errPasswordVerification).Once()
			},
			expectedErr: errPasswordVerification,
		},
		{
			name:     "error - token generation fails",
			username: testUsername,
			password: testPassword,
			setupMocks: func(mockUserRepo *mockUserRepository, mockPasswordSvc *mockPasswordService, mockTokenSvc *mockTokenService) {
				mockUserRepo.On("FindByUsername", mock.Anything, testUsername).Return(testUser, nil).Once()
				mockPasswordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
				mockTokenSvc.On("GenerateAccessToken", mock.Anything, testUser.ID, testUsername).
					Return("", time.Time{}, errTokenGeneration).Once()
			},
			expectedErr: errTokenGeneration,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			mockUserRepo := new(mockUserRepository)
			mockPasswordSvc := new(mockPasswordService)
			mockTokenSvc := new(mockTokenService)

			ttt.setupMocks(mockUserRepo, mockPasswordSvc, mockTokenSvc)

			authUseCase := app.NewAuthUseCase(mockUserRepo, mockPasswordSvc, mockTokenSvc)

			result, err := authUseCase.Login(context.Background(), ttt.username, ttt.password)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, testUser.ID, result.User.ID)
				assert.Equal(t, accessToken, result.AccessToken)
				assert.Equal(t, accessExpiry, result.ExpiresAt)
			}

			mockUserRepo.AssertExpectations(t)
			mockPasswordSvc.AssertExpectations(t)
			mockTokenSvc.AssertExpectations(t)
		})
	}
}
