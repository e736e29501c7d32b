package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mercadito/internal/auth"
	"mercadito/internal/domain"
	"mercadito/internal/repos"
	"mercadito/internal/validate"
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *auth.Tokens
}

func NewAuthService(users *repos.UserRepo, tokens *auth.Tokens) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *AuthService) Register(in RegisterInput) (*domain.User, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, fmt.Errorf("%w: email", ErrValidation)
	}
	if !validate.Password(in.Password) {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleBuyer
	}
	if _, ok := validate.Role(role); !ok {
		return nil, fmt.Errorf("%w: role", ErrValidation)
	}

	if taken, err := s.Users.EmailTaken(email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  hash,
		Role:  role,
	}
	if err := s.Users.Insert(u); err != nil {
		// The unique index still wins a registration race.
		if repos.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// Login checks credentials and issues a signed bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", ErrBadCredentials
	}
	if !auth.CheckPassword(password, u.Hash) {
		return "", ErrBadCredentials
	}
	return s.Tokens.Issue(u.ID, u.Role, u.Name)
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateUser applies a partial field set to an existing account.
func (s *AuthService) UpdateUser(id string, in UpdateUserInput) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, ok := validate.Name(*in.Name)
		if !ok {
			return nil, fmt.Errorf("%w: name", ErrValidation)
		}
		u.Name = name
	}
	if in.Email != nil {
		email, ok := validate.Email(*in.Email)
		if !ok {
			return nil, fmt.Errorf("%w: email", ErrValidation)
		}
		u.Email = email
	}
	if in.Password != nil {
		if !validate.Password(*in.Password) {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Hash = hash
	}

	if err := s.Users.Update(*u); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		if repos.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}
