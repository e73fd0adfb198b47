package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
)

// Service authenticates against the user collection and maintains the
// current-user session snapshot inside the store.
type Service struct {
	store      *store.Store
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(st *store.Store, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:      st,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate verifies credentials, writes the session snapshot and
// issues the token pair. Inactive accounts are rejected even with a
// correct password.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (user.User, AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return user.User{}, AuthTokens{}, err
	}

	var found *user.User
	s.store.View(func(st *store.State) {
		if u := st.FindUserByEmail(dto.Email); u != nil {
			copied := *u
			found = &copied
		}
	})

	if found == nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return user.User{}, AuthTokens{}, internal.ErrInvalidCredentials
	}

	if found.Status != user.StatusActive {
		s.logger.Warn("login rejected: inactive account", "user_id", found.ID)
		return user.User{}, AuthTokens{}, internal.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", found.ID)
		return user.User{}, AuthTokens{}, internal.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(found.ID, found.Email, found.Name, found.Role)
	if err != nil {
		return user.User{}, AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(found.ID, found.Email, found.Name, found.Role)
	if err != nil {
		return user.User{}, AuthTokens{}, internal.NewInternalError("failed to sign refresh token", err)
	}

	s.store.Update(ctx, func(st *store.State) []storage.Key {
		u := st.FindUser(found.ID)
		if u == nil {
			return nil
		}
		snapshot := *u
		snapshot.PasswordHash = ""
		st.CurrentUser = &snapshot
		notifications.Record(st, u.Name, "log in", "", "auth")
		return []storage.Key{storage.KeyCurrentUser, storage.KeyActivityLog}
	})

	session := *found
	session.PasswordHash = ""

	s.logger.Info("user authenticated", "user_id", found.ID, "role", found.Role)
	return session, AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid refresh token for a new pair, re-checking
// that the account still exists and is active.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	var found *user.User
	s.store.View(func(st *store.State) {
		if u := st.FindUser(claims.UserID); u != nil {
			copied := *u
			found = &copied
		}
	})

	if found == nil {
		s.logger.Warn("refresh rejected: user no longer exists", "user_id", claims.UserID)
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if found.Status != user.StatusActive {
		s.logger.Warn("refresh rejected: inactive account", "user_id", found.ID)
		return AuthTokens{}, internal.ErrUserInactive
	}

	accessToken, err := s.tokens.GenerateAccessToken(found.ID, found.Email, found.Name, found.Role)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}
	newRefreshToken, err := s.tokens.GenerateRefreshToken(found.ID, found.Email, found.Name, found.Role)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign refresh token", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Logout clears the session snapshot. The token pair is stateless and
// simply ages out.
func (s *Service) Logout(ctx context.Context) {
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.CurrentUser == nil {
			return nil
		}
		st.CurrentUser = nil
		notifications.Record(st, actor, "log out", "", "auth")
		return []storage.Key{storage.KeyCurrentUser, storage.KeyActivityLog}
	})
	s.logger.Info("session cleared", "actor", actor)
}

// CurrentUser returns the stored session snapshot, if any.
func (s *Service) CurrentUser(ctx context.Context) (user.User, internal.Outcome) {
	if u, ok := s.store.CurrentUser(); ok {
		return u, internal.OutcomeOK
	}
	return user.User{}, internal.OutcomeNotFound
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

// HashPassword creates a bcrypt hash at the configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
