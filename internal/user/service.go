package user

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rentfold/service-core/internal/user/entity"
	userrepo "github.com/rentfold/service-core/internal/user/repo"
	"github.com/rentfold/service-core/pkg/storage"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrUsernameTaken  = errors.New("username already exists")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrUserInactive   = errors.New("account is inactive")
)

const (
	minUsernameLen = 3
	minPasswordLen = 4

	// resetPassword is what an admin reset sets the password to.
	resetPassword = "1234"

	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// Service orchestrates account registration, authentication and the admin
// account operations.
type Service struct {
	repo   *userrepo.UserRepo
	logger *zap.SugaredLogger
}

func NewService(r *userrepo.UserRepo, logger *zap.SugaredLogger) *Service {
	return &Service{repo: r, logger: logger}
}

// RegisterInput carries the fields collected at registration.
type RegisterInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
	Role     entity.Role
}

// Register validates the input, assigns the next id and appends the account.
// New accounts start active.
func (s *Service) Register(in RegisterInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if len(in.Username) < minUsernameLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLen)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if !IsValidEmail(in.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if !IsValidPhone(in.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", ErrValidation)
	}
	for _, v := range []string{in.Username, in.Password, in.FullName, in.Email, in.Phone} {
		if !storage.SafeField(v) {
			return nil, fmt.Errorf("%w: field may not contain '|' or line breaks", ErrValidation)
		}
	}
	if _, err := s.repo.GetByUsername(in.Username); err == nil {
		return nil, ErrUsernameTaken
	}

	u := entity.User{
		ID:       s.repo.NextID(),
		Username: in.Username,
		Password: in.Password,
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     in.Role,
		IsActive: true,
	}
	if err := s.repo.Insert(u); err != nil {
		return nil, err
	}
	s.persist()
	s.logger.Infow("user registered", "id", u.ID, "username", u.Username, "role", u.Role.String())
	return &u, nil
}

// Authenticate checks username/password and rejects inactive accounts.
// Passwords are compared as stored; hardening the scheme is out of scope
// because the snapshot file format carries them verbatim.
func (s *Service) Authenticate(username, password string) (*entity.User, error) {
	u, err := s.repo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, ErrBadCredentials
	}
	if u.Password != password {
		return nil, ErrBadCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	return u, nil
}

// GetByID fetches an account by id.
func (s *Service) GetByID(id int) (*entity.User, error) {
	return s.repo.GetByID(id)
}

// ListAll returns every account in insertion order.
func (s *Service) ListAll() []entity.User {
	return s.repo.List()
}

// ToggleActive flips an account's active flag and returns the updated record.
func (s *Service) ToggleActive(id int) (*entity.User, error) {
	if err := s.repo.Update(id, func(u *entity.User) {
		u.IsActive = !u.IsActive
	}); err != nil {
		return nil, err
	}
	s.persist()
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user active flag toggled", "id", id, "active", u.IsActive)
	return u, nil
}

// ResetPassword sets an account's password back to the fixed reset value.
func (s *Service) ResetPassword(id int) error {
	if err := s.repo.Update(id, func(u *entity.User) {
		u.Password = resetPassword
	}); err != nil {
		return err
	}
	s.persist()
	s.logger.Infow("user password reset", "id", id)
	return nil
}

// EnsureDefaultAdmin seeds the well-known admin account when no admin exists,
// so a fresh data directory is never unmanageable.
func (s *Service) EnsureDefaultAdmin() error {
	if s.repo.HasRole(entity.RoleAdmin) {
		return nil
	}
	admin := entity.User{
		ID:       s.repo.NextID(),
		Username: defaultAdminUsername,
		Password: defaultAdminPassword,
		FullName: "System Administrator",
		Email:    "admin@system.com",
		Phone:    "1234567890",
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
	if err := s.repo.Insert(admin); err != nil {
		return err
	}
	if err := s.repo.Save(); err != nil {
		return err
	}
	s.logger.Infow("default admin account created", "username", admin.Username)
	return nil
}

// persist saves the collection after a mutation. A failed save is reported
// and the in-memory state stays authoritative until the next successful one.
func (s *Service) persist() {
	if err := s.repo.Save(); err != nil {
		s.logger.Warnw("user snapshot save failed; in-memory state is ahead of disk", "err", err)
	}
}
