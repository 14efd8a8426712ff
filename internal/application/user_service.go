package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"identity-api/internal/domain/entity"
	repo "identity-api/internal/domain/repository"
	"identity-api/internal/domain/valueobject"
	"identity-api/pkg/masking"
)

// Service orchestrates the identity use cases. It is stateless: every
// dependency is injected, so concurrent invocations are safe.
type Service struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Hasher: hasher, Tokens: tokens, Logger: logger}
}

type SignUpInput struct {
	Name       string
	Email      string
	Password   string
	Telephones []valueobject.TelephoneInput
}

type SignUpResult struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SignInResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

type Profile struct {
	ID         string
	Name       string
	Email      string
	Telephones []entity.Telephone
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MaskedUser is the listing shape shown to other accounts. Telephones and
// credentials never appear here.
type MaskedUser struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateInput is a partial profile change; nil fields are not touched.
// A non-nil empty telephone slice is an (invalid) explicit value, not absence.
type UpdateInput struct {
	Name       *string
	Email      *string
	Password   *string
	Telephones []valueobject.TelephoneInput
}

func (in UpdateInput) isEmpty() bool {
	return in.Name == nil && in.Email == nil && in.Password == nil && in.Telephones == nil
}

// SignUp provisions a new account. Ordering matters: validation, then the
// duplicate-email lookup, then hashing, then the write, so malformed input
// never costs a bcrypt round or a store round-trip.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	emailVO, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	nameVO, err := valueobject.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	passwordVO, err := valueobject.NewPassword(in.Password)
	if err != nil {
		return nil, err
	}
	telsVO, err := valueobject.NewTelephones(in.Telephones)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(ctx, emailVO.String())
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := s.Hasher.Hash(passwordVO.String())
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:         nameVO.String(),
		Email:        emailVO.String(),
		PasswordHash: hash,
		Telephones:   toEntityTelephones(telsVO),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The store's uniqueness constraint closes the check-then-write race.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("account provisioned")
	}
	return &SignUpResult{ID: u.ID, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}, nil
}

// SignIn authenticates by email/password and issues an access token.
// Malformed input surfaces as a validation error; an unknown email and a
// wrong password both collapse to ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	passwordVO, err := valueobject.NewPassword(password)
	if err != nil {
		return nil, err
	}

	u, err := s.Repo.GetByEmail(ctx, emailVO.String())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.Hasher.Compare(u.PasswordHash, passwordVO.String()) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Sign(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token signing failed")
		}
		return nil, err
	}
	return &SignInResult{AccessToken: token, ExpiresAt: exp}, nil
}

// GetProfile returns the full profile of the caller, minus the password hash.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return profileOf(u), nil
}

// ListOthers lists every account except the caller's, with name and email
// redacted for display.
func (s *Service) ListOthers(ctx context.Context, callerID string) ([]MaskedUser, error) {
	if _, err := s.Repo.GetByID(ctx, callerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	users, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MaskedUser, 0, len(users))
	for _, u := range users {
		if u.ID == callerID {
			continue
		}
		out = append(out, MaskedUser{
			ID:        u.ID,
			Name:      masking.Name(u.Name),
			Email:     masking.Email(u.Email),
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return out, nil
}

// UpdateProfile applies a partial merge. Each present field is re-validated;
// a changed email is re-checked for uniqueness against all other accounts
// (updating to one's own current email is not a conflict).
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateInput) (*Profile, error) {
	if in.isEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var fields repo.UpdateFields

	if in.Name != nil {
		nameVO, err := valueobject.NewName(*in.Name)
		if err != nil {
			return nil, err
		}
		v := nameVO.String()
		fields.Name = &v
	}

	if in.Email != nil {
		emailVO, err := valueobject.NewEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		owner, err := s.Repo.GetByEmail(ctx, emailVO.String())
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		if owner != nil && owner.ID != userID {
			return nil, ErrUserAlreadyExists
		}
		v := emailVO.String()
		fields.Email = &v
	}

	if in.Password != nil {
		passwordVO, err := valueobject.NewPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		hash, err := s.Hasher.Hash(passwordVO.String())
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &hash
	}

	if in.Telephones != nil {
		telsVO, err := valueobject.NewTelephones(in.Telephones)
		if err != nil {
			return nil, err
		}
		fields.Telephones = toEntityTelephones(telsVO)
	}

	u, err := s.Repo.Update(ctx, userID, fields)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return profileOf(u), nil
}

// DeleteAccount removes the caller's record and returns a minimal receipt.
func (s *Service) DeleteAccount(ctx context.Context, userID string) (*entity.DeletedUser, error) {
	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	deleted, err := s.Repo.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", deleted.ID).Info("account deleted")
	}
	return deleted, nil
}

func profileOf(u *entity.User) *Profile {
	return &Profile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Telephones: u.Telephones,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toEntityTelephones(tels []valueobject.Telephone) []entity.Telephone {
	out := make([]entity.Telephone, 0, len(tels))
	for _, t := range tels {
		out = append(out, entity.Telephone{Number: t.Number(), AreaCode: t.AreaCode()})
	}
	return out
}
