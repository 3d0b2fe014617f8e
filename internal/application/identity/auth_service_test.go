package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/domain/identity"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/domain/society"
	"github.com/societyhub/backend/internal/domain/shared/valueobject"
	"github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/infrastructure/config"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindBySociety(ctx context.Context, societyID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSocietyRepository struct {
	mock.Mock
}

func (m *MockSocietyRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Society, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Society), args.Error(1)
}

func (m *MockSocietyRepository) FindAll(ctx context.Context) ([]society.Society, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Society), args.Error(1)
}

func (m *MockSocietyRepository) Save(ctx context.Context, soc *society.Society) error {
	args := m.Called(ctx, soc)
	return args.Error(0)
}

func (m *MockSocietyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFlatRepository struct {
	mock.Mock
}

func (m *MockFlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Flat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*society.Flat), args.Error(1)
}

func (m *MockFlatRepository) FindBySociety(ctx context.Context, societyID uuid.UUID) ([]society.Flat, error) {
	args := m.Called(ctx, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]society.Flat), args.Error(1)
}

func (m *MockFlatRepository) ExistsByNumber(ctx context.Context, societyID uuid.UUID, flatNumber string, block *string) (bool, error) {
	args := m.Called(ctx, societyID, flatNumber, block)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlatRepository) CountBySociety(ctx context.Context, societyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, societyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlatRepository) Save(ctx context.Context, flat *society.Flat) error {
	args := m.Called(ctx, flat)
	return args.Error(0)
}

func (m *MockFlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type authFixture struct {
	userRepo    *MockUserRepository
	societyRepo *MockSocietyRepository
	flatRepo    *MockFlatRepository
	blacklist   *auth.InMemoryTokenBlacklist
	service     *AuthService
}

func newAuthFixture() *authFixture {
	userRepo := new(MockUserRepository)
	societyRepo := new(MockSocietyRepository)
	flatRepo := new(MockFlatRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "societyhub-test",
	})
	return &authFixture{
		userRepo:    userRepo,
		societyRepo: societyRepo,
		flatRepo:    flatRepo,
		blacklist:   blacklist,
		service:     NewAuthService(userRepo, societyRepo, flatRepo, jwtService, blacklist, zap.NewNop()),
	}
}

func storedUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Priya Sharma", "priya@greenmeadows.in", "secret-password", role)
	require.NoError(t, err)
	return user
}

func storedSociety(t *testing.T) *society.Society {
	t.Helper()
	amount := valueobject.NewMoneyINRFromFloat(1500)
	soc, err := society.NewSociety("Green Meadows", "12 Outer Ring Road", "Bengaluru", "Karnataka", "560066", 48, amount)
	require.NoError(t, err)
	return soc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a resident", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("ExistsByEmail", ctx, "priya@greenmeadows.in").Return(false, nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		info, err := f.service.Register(ctx, RegisterInput{
			Name:     "Priya Sharma",
			Email:    "Priya@GreenMeadows.in",
			Password: "secret-password",
		})
		require.NoError(t, err)
		assert.Equal(t, "priya@greenmeadows.in", info.Email)
		assert.Equal(t, "RESIDENT", info.Role)
		assert.Nil(t, info.SocietyID)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("registers into a society and flat", func(t *testing.T) {
		f := newAuthFixture()
		soc := storedSociety(t)
		flat, err := society.NewFlat(soc.ID, "A-101", nil)
		require.NoError(t, err)

		f.userRepo.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil)
		f.societyRepo.On("FindByID", ctx, soc.ID).Return(soc, nil)
		f.flatRepo.On("FindByID", ctx, flat.ID).Return(flat, nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		info, err := f.service.Register(ctx, RegisterInput{
			Name:      "Priya Sharma",
			Email:     "priya@greenmeadows.in",
			Password:  "secret-password",
			Role:      "treasurer",
			SocietyID: &soc.ID,
			FlatID:    &flat.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "TREASURER", info.Role)
		require.NotNil(t, info.SocietyID)
		assert.Equal(t, soc.ID, *info.SocietyID)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("ExistsByEmail", ctx, mock.Anything).Return(true, nil)

		_, err := f.service.Register(ctx, RegisterInput{
			Name:     "Priya Sharma",
			Email:    "priya@greenmeadows.in",
			Password: "secret-password",
		})
		assert.True(t, shared.IsKind(err, "CONFLICT"))
	})

	t.Run("rejects admin self-registration", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Register(ctx, RegisterInput{
			Name:     "Priya Sharma",
			Email:    "priya@greenmeadows.in",
			Password: "secret-password",
			Role:     "ADMIN",
		})
		assert.True(t, shared.IsKind(err, "VALIDATION"))
	})

	t.Run("rejects flat from another society", func(t *testing.T) {
		f := newAuthFixture()
		soc := storedSociety(t)
		foreignFlat, err := society.NewFlat(uuid.New(), "B-202", nil)
		require.NoError(t, err)

		f.userRepo.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil)
		f.societyRepo.On("FindByID", ctx, soc.ID).Return(soc, nil)
		f.flatRepo.On("FindByID", ctx, foreignFlat.ID).Return(foreignFlat, nil)

		_, err = f.service.Register(ctx, RegisterInput{
			Name:      "Priya Sharma",
			Email:     "priya@greenmeadows.in",
			Password:  "secret-password",
			SocietyID: &soc.ID,
			FlatID:    &foreignFlat.ID,
		})
		assert.True(t, shared.IsKind(err, "INVALID_REFERENCE"))
	})

	t.Run("rejects flat without society", func(t *testing.T) {
		f := newAuthFixture()
		flatID := uuid.New()
		f.userRepo.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil)

		_, err := f.service.Register(ctx, RegisterInput{
			Name:     "Priya Sharma",
			Email:    "priya@greenmeadows.in",
			Password: "secret-password",
			FlatID:   &flatID,
		})
		assert.True(t, shared.IsKind(err, "VALIDATION"))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues token pair on valid credentials", func(t *testing.T) {
		f := newAuthFixture()
		user := storedUser(t, identity.RoleTreasurer)
		f.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		result, err := f.service.Login(ctx, LoginInput{Email: "PRIYA@greenmeadows.in", Password: "secret-password"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.userRepo.On("FindByEmail", ctx, mock.Anything).Return(nil, nil)

		_, err := f.service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret-password"})
		assert.True(t, shared.IsKind(err, "INVALID_CREDENTIALS"))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		f := newAuthFixture()
		user := storedUser(t, identity.RoleResident)
		f.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := f.service.Login(ctx, LoginInput{Email: user.Email, Password: "wrong-password"})
		assert.True(t, shared.IsKind(err, "INVALID_CREDENTIALS"))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh pair for a valid refresh token", func(t *testing.T) {
		f := newAuthFixture()
		user := storedUser(t, identity.RoleCommittee)
		f.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		login, err := f.service.Login(ctx, LoginInput{Email: user.Email, Password: "secret-password"})
		require.NoError(t, err)

		result, err := f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("rejects refresh after logout", func(t *testing.T) {
		f := newAuthFixture()
		user := storedUser(t, identity.RoleCommittee)
		f.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		login, err := f.service.Login(ctx, LoginInput{Email: user.Email, Password: "secret-password"})
		require.NoError(t, err)

		err = f.service.Logout(ctx, LogoutInput{UserID: user.ID, TokenTTL: time.Hour})
		require.NoError(t, err)

		_, err = f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		assert.True(t, shared.IsKind(err, "TOKEN_INVALID"))
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not.a.token"})
		assert.True(t, shared.IsKind(err, "TOKEN_INVALID"))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password and revokes sessions", func(t *testing.T) {
		f := newAuthFixture()
		user := storedUser(t, identity.RoleResident)
		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		err := f.service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "secret-password",
			NewPassword: "even-more-secret",
		})
		require.NoError(t, err)
		assert.True(t, user.CheckPassword("even-more-secret"))

		invalidated, err := f.blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), time.Now().Add(-time.Second))
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		f := newAuthFixture()
		user := storedUser(t, identity.RoleResident)
		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := f.service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong-password",
			NewPassword: "even-more-secret",
		})
		assert.True(t, shared.IsKind(err, "INVALID_CREDENTIALS"))
	})
}
