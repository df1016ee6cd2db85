package service

import (
	"context"
	"testing"
	"time"

	"pourpal/internal/auth"
	"pourpal/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Insert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, userID string, rec model.LoginRecord) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func testTokenManager() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func hashedUser(t *testing.T, email, password, role string) *model.User {
	t.Helper()
	encoded, err := auth.HashPassword(password)
	require.NoError(t, err)
	return model.NewUser(email, encoded, role)
}

func TestAuthService_Login_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	user := hashedUser(t, "maija@example.com", "hunter22", model.RoleCustomer)
	rec := model.LoginRecord{UserAgent: "go-test", RemoteAddr: "127.0.0.1:9999", Timestamp: time.Now().UTC()}

	mockUsers := new(MockUserRepository)
	mockMail := new(MockMailer)
	mockUsers.On("FindByEmail", ctx, "maija@example.com").Return(user, nil)
	mockUsers.On("RecordLogin", ctx, user.UserID, rec).Return(nil)

	tokens := testTokenManager()
	service := NewAuthService(mockUsers, tokens, mockMail, logger)

	token, err := service.Login(ctx, "maija@example.com", "hunter22", rec)

	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The token must decode back to the account it was issued for.
	userID, err := tokens.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, userID)

	mockUsers.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	user := hashedUser(t, "maija@example.com", "hunter22", model.RoleCustomer)

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByEmail", ctx, "maija@example.com").Return(user, nil)

	service := NewAuthService(mockUsers, testTokenManager(), new(MockMailer), logger)

	token, err := service.Login(ctx, "maija@example.com", "wrong", model.LoginRecord{})

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidCredential, err)
	assert.Empty(t, token)

	mockUsers.AssertNotCalled(t, "RecordLogin")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

	service := NewAuthService(mockUsers, testTokenManager(), new(MockMailer), logger)

	token, err := service.Login(ctx, "nobody@example.com", "whatever", model.LoginRecord{})

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidCredential, err)
	assert.Empty(t, token)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	user := hashedUser(t, "maija@example.com", "hunter22", model.RoleCustomer)
	user.IsActive = false

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByEmail", ctx, "maija@example.com").Return(user, nil)

	service := NewAuthService(mockUsers, testTokenManager(), new(MockMailer), logger)

	_, err := service.Login(ctx, "maija@example.com", "hunter22", model.LoginRecord{})

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidCredential, err)
}

func TestAuthService_RegisterCustomer(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUsers := new(MockUserRepository)
	mockMail := new(MockMailer)
	mockUsers.On("FindByEmail", ctx, "maija@example.com").Return(nil, nil)
	mockUsers.On("Insert", ctx, mock.AnythingOfType("*model.User")).Return(nil)
	mockMail.On("Send", ctx, []string{"maija@example.com"}, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	service := NewAuthService(mockUsers, testTokenManager(), mockMail, logger)

	user, err := service.RegisterCustomer(ctx, "maija@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	// The stored password must be a hash, never the plaintext.
	assert.NotEqual(t, "hunter22", user.EncodedPassword)
	assert.True(t, auth.CheckPassword("hunter22", user.EncodedPassword))

	mockUsers.AssertExpectations(t)
	mockMail.AssertExpectations(t)
}

func TestAuthService_RegisterCustomer_DuplicateEmail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	existing := hashedUser(t, "maija@example.com", "hunter22", model.RoleCustomer)

	mockUsers := new(MockUserRepository)
	mockMail := new(MockMailer)
	mockUsers.On("FindByEmail", ctx, "maija@example.com").Return(existing, nil)

	service := NewAuthService(mockUsers, testTokenManager(), mockMail, logger)

	user, err := service.RegisterCustomer(ctx, "maija@example.com", "hunter22")

	require.Error(t, err)
	assert.Equal(t, model.ErrEmailInUse, err)
	assert.Nil(t, user)

	mockUsers.AssertNotCalled(t, "Insert")
	mockMail.AssertNotCalled(t, "Send")
}

func TestAuthService_RegisterAdmin_MailsGeneratedPassword(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUsers := new(MockUserRepository)
	mockMail := new(MockMailer)
	mockUsers.On("FindByEmail", ctx, "admin@example.com").Return(nil, nil)
	mockUsers.On("Insert", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	var mailedBody string
	mockMail.On("Send", ctx, []string{"admin@example.com"}, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			mailedBody = args.String(3)
		}).
		Return(nil)

	service := NewAuthService(mockUsers, testTokenManager(), mockMail, logger)

	user, err := service.RegisterAdmin(ctx, "admin@example.com")

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NotEmpty(t, mailedBody)

	mockUsers.AssertExpectations(t)
	mockMail.AssertExpectations(t)
}

func TestAuthService_Profile(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	user := hashedUser(t, "maija@example.com", "hunter22", model.RoleCustomer)

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByID", ctx, user.UserID).Return(user, nil)

	service := NewAuthService(mockUsers, testTokenManager(), new(MockMailer), logger)

	profile, err := service.Profile(ctx, user.UserID)

	require.NoError(t, err)
	assert.Equal(t, "maija@example.com", profile.Email)
	assert.Equal(t, model.RoleCustomer, profile.Role)
}

func TestAuthService_Profile_UnknownUser(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByID", ctx, "user-404").Return(nil, nil)

	service := NewAuthService(mockUsers, testTokenManager(), new(MockMailer), logger)

	profile, err := service.Profile(ctx, "user-404")

	require.Error(t, err)
	assert.Equal(t, model.ErrUserNotFound, err)
	assert.Nil(t, profile)
}
