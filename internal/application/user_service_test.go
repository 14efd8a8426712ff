package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"identity-api/internal/domain/entity"
	"identity-api/internal/domain/repository"
	"identity-api/internal/domain/valueobject"
	"identity-api/internal/infrastructure/memory"
	"identity-api/pkg/helpers"
)

// countingRepo wraps the memory store to assert on store interactions.
type countingRepo struct {
	inner repository.UserRepository
	calls int
}

func (r *countingRepo) Create(ctx context.Context, u *entity.User) error {
	r.calls++
	return r.inner.Create(ctx, u)
}

func (r *countingRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.calls++
	return r.inner.GetByID(ctx, id)
}

func (r *countingRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.calls++
	return r.inner.GetByEmail(ctx, email)
}

func (r *countingRepo) Update(ctx context.Context, id string, f repository.UpdateFields) (*entity.User, error) {
	r.calls++
	return r.inner.Update(ctx, id, f)
}

func (r *countingRepo) Delete(ctx context.Context, id string) (*entity.DeletedUser, error) {
	r.calls++
	return r.inner.Delete(ctx, id)
}

func (r *countingRepo) ListAll(ctx context.Context) ([]entity.User, error) {
	r.calls++
	return r.inner.ListAll(ctx)
}

func newTestService(t *testing.T) (*Service, *countingRepo) {
	t.Helper()
	repo := &countingRepo{inner: memory.NewUserRepository()}
	svc := NewService(
		repo,
		helpers.NewBcryptHasher(bcrypt.MinCost),
		helpers.NewJWTManager("test-secret", 15*time.Minute),
		nil,
	)
	return svc, repo
}

func validSignUp() SignUpInput {
	return SignUpInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "secret123",
		Telephones: []valueobject.TelephoneInput{
			{Number: "12345678", AreaCode: "11"},
		},
	}
}

func strptr(s string) *string { return &s }

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions an account", func(t *testing.T) {
		svc, _ := newTestService(t)

		res, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.False(t, res.CreatedAt.IsZero())
		assert.False(t, res.UpdatedAt.IsZero())

		p, err := svc.GetProfile(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, "john@example.com", p.Email)
		assert.Equal(t, []entity.Telephone{{Number: 12345678, AreaCode: 11}}, p.Telephones)
	})

	t.Run("rejects a duplicate email and keeps a single record", func(t *testing.T) {
		svc, repo := newTestService(t)

		_, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		in := validSignUp()
		in.Name = "Second John"
		_, err = svc.SignUp(ctx, in)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("validation failures never reach the store", func(t *testing.T) {
		for name, mutate := range map[string]func(*SignUpInput){
			"bad email":      func(in *SignUpInput) { in.Email = "not-an-email" },
			"short name":     func(in *SignUpInput) { in.Name = "j" },
			"short password": func(in *SignUpInput) { in.Password = "123" },
			"no telephones":  func(in *SignUpInput) { in.Telephones = nil },
			"bad telephone":  func(in *SignUpInput) { in.Telephones[0].Number = "12ab" },
		} {
			t.Run(name, func(t *testing.T) {
				svc, repo := newTestService(t)
				in := validSignUp()
				mutate(&in)

				_, err := svc.SignUp(ctx, in)
				require.Error(t, err)
				assert.True(t, valueobject.IsValidation(err), "want validation error, got %v", err)
				assert.Zero(t, repo.calls, "store must not be touched on invalid input")
			})
		}
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token bound to id and email", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		res, err := svc.SignIn(ctx, "john@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.True(t, res.ExpiresAt.After(time.Now()))

		claims, err := helpers.NewJWTManager("test-secret", 15*time.Minute).Parse(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.UserID)
		assert.Equal(t, "john@example.com", claims.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		_, wrongPwd := svc.SignIn(ctx, "john@example.com", "wrong-password")
		_, unknown := svc.SignIn(ctx, "nobody@example.com", "secret123")

		assert.ErrorIs(t, wrongPwd, ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, ErrInvalidCredentials)
		assert.Equal(t, wrongPwd, unknown)
	})

	t.Run("malformed input is a validation error, not bad credentials", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.SignIn(ctx, "not-an-email", "secret123")
		assert.True(t, valueobject.IsValidation(err))

		_, err = svc.SignIn(ctx, "john@example.com", "   ")
		require.Error(t, err)
		assert.True(t, valueobject.IsValidation(err))
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	p, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "john@example.com", p.Email)
	assert.Len(t, p.Telephones, 1)

	_, err = svc.GetProfile(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListOthers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	caller, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	other := validSignUp()
	other.Name = "Ada King Lovelace"
	other.Email = "ada.lovelace@example.com"
	_, err = svc.SignUp(ctx, other)
	require.NoError(t, err)

	t.Run("excludes the caller and masks the rest", func(t *testing.T) {
		users, err := svc.ListOthers(ctx, caller.ID)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Ada K. L.", users[0].Name)
		assert.Equal(t, "ad***@ex***.com", users[0].Email)
	})

	t.Run("unknown caller fails", func(t *testing.T) {
		_, err := svc.ListOthers(ctx, "missing-id")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an empty field set before any store interaction", func(t *testing.T) {
		svc, repo := newTestService(t)
		_, err := svc.UpdateProfile(ctx, "any-id", UpdateInput{})
		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
		assert.Zero(t, repo.calls)
	})

	t.Run("merges only the provided fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		p, err := svc.UpdateProfile(ctx, created.ID, UpdateInput{Name: strptr("Johnny Doe")})
		require.NoError(t, err)
		assert.Equal(t, "Johnny Doe", p.Name)
		assert.Equal(t, "john@example.com", p.Email)
		assert.Len(t, p.Telephones, 1)
	})

	t.Run("allows updating email to its current value", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		p, err := svc.UpdateProfile(ctx, created.ID, UpdateInput{Email: strptr("john@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "john@example.com", p.Email)
	})

	t.Run("rejects an email owned by another account", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		other := validSignUp()
		other.Email = "ada@example.com"
		_, err = svc.SignUp(ctx, other)
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, created.ID, UpdateInput{Email: strptr("ada@example.com")})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("rehashes a changed password", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, created.ID, UpdateInput{Password: strptr("new-secret")})
		require.NoError(t, err)

		_, err = svc.SignIn(ctx, "john@example.com", "new-secret")
		assert.NoError(t, err)

		_, err = svc.SignIn(ctx, "john@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("re-validates present fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, created.ID, UpdateInput{Name: strptr(" x ")})
		assert.True(t, valueobject.IsValidation(err))

		_, err = svc.UpdateProfile(ctx, created.ID, UpdateInput{Telephones: []valueobject.TelephoneInput{}})
		require.Error(t, err)
		assert.True(t, valueobject.IsValidation(err))
	})

	t.Run("unknown user fails", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateProfile(ctx, "missing-id", UpdateInput{Name: strptr("Johnny")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	deleted, err := svc.DeleteAccount(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "John Doe", deleted.Name)

	_, err = svc.GetProfile(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.DeleteAccount(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
