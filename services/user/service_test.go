package user

import (
	"context"
	"testing"

	"jenga/config"
	userRepo "jenga/database/repository/user"
	"jenga/models"
	"jenga/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, page models.PageOptions) ([]models.User, bool, error) {
	args := m.Called(ctx, page)
	var users []models.User
	if u := args.Get(0); u != nil {
		users = u.([]models.User)
	}
	return users, args.Bool(1), args.Error(2)
}

func (m *mockUserRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "test-secret"
	m.Run()
}

func TestRegisterSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	svc := &DefaultUserService{Repo: repo}

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*models.User)
			assert.Equal(t, "amina@example.com", account.Email)
			assert.NotEqual(t, "hunter2hunter2", account.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("hunter2hunter2")))
		}).
		Return(nil)

	result, err := svc.Register(context.Background(), "  Amina@Example.com ", "hunter2hunter2", "Amina", models.RoleClient)

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleClient, result.User.Role)
	repo.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	svc := &DefaultUserService{Repo: new(mockUserRepo)}

	cases := []struct {
		email, password, name, role string
	}{
		{"not-an-email", "hunter2hunter2", "Amina", models.RoleClient},
		{"amina@example.com", "short", "Amina", models.RoleClient},
		{"amina@example.com", "hunter2hunter2", "  ", models.RoleClient},
		{"amina@example.com", "hunter2hunter2", "Amina", models.RoleAdmin},
		{"amina@example.com", "hunter2hunter2", "Amina", "SUPERUSER"},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.email, tc.password, tc.name, tc.role)
		assert.Equalf(t, utils.KindValidation, utils.KindOf(err), "%+v", tc)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := &DefaultUserService{Repo: repo}
	repo.On("Create", mock.Anything, mock.Anything).Return(userRepo.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), "amina@example.com", "hunter2hunter2", "Amina", models.RoleClient)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestLoginSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	svc := &DefaultUserService{Repo: repo}

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "amina@example.com").Return(&models.User{
		ID:           "user-1",
		Email:        "amina@example.com",
		Role:         models.RoleClient,
		PasswordHash: string(hash),
	}, nil)

	result, err := svc.Login(context.Background(), "Amina@Example.com", "hunter2hunter2")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLoginRejectsUniformly(t *testing.T) {
	repo := new(mockUserRepo)
	svc := &DefaultUserService{Repo: repo}

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "known@example.com").Return(&models.User{
		ID:           "user-1",
		PasswordHash: string(hash),
	}, nil)
	repo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)

	_, errBadPassword := svc.Login(context.Background(), "known@example.com", "wrong-password")
	_, errUnknownEmail := svc.Login(context.Background(), "unknown@example.com", "whatever-password")

	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, utils.KindAuthorization, utils.KindOf(errBadPassword))
	assert.Equal(t, utils.KindAuthorization, utils.KindOf(errUnknownEmail))
	assert.Equal(t, errBadPassword.Error(), errUnknownEmail.Error())
}

func TestGetByIDMissing(t *testing.T) {
	repo := new(mockUserRepo)
	svc := &DefaultUserService{Repo: repo}
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.GetByID(context.Background(), "ghost")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestUpdateName(t *testing.T) {
	repo := new(mockUserRepo)
	svc := &DefaultUserService{Repo: repo}

	repo.On("UpdateName", mock.Anything, "user-1", "New Name").Return(nil)
	repo.On("GetByID", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Name: "New Name"}, nil)

	account, err := svc.UpdateName(context.Background(), "user-1", "  New Name  ")
	assert.NoError(t, err)
	assert.Equal(t, "New Name", account.Name)

	_, err = svc.UpdateName(context.Background(), "user-1", "   ")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
