package api

import (
	"context"
	"errors"
	"net/http"

	"userseed/internal/auth"
	"userseed/internal/config"
	"userseed/internal/models"
	"userseed/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errIncorrectPassword = errors.New("incorrect password")

type Server struct {
	users      repository.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewServer(users repository.UserRepository, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		users:      users,
		jwtManager: auth.NewJWTManager(cfg),
		logger:     logger,
	}
}

// Authenticate logs a user in, registering the username first if it is
// unknown. Either way the response carries a fresh access token.
func (s *Server) Authenticate(c *gin.Context) {
	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := s.loginOrRegister(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, errIncorrectPassword) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}
	if err != nil {
		s.logger.Error("authenticate failed", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		s.logger.Error("generate token failed", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{AccessToken: token})
}

func (s *Server) loginOrRegister(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user, err = s.users.Create(ctx, username, hash)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserExists) {
			return nil, err
		}
		// lost a race with a concurrent registration; fall through to login
		user, err = s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, errIncorrectPassword
	}
	return user, nil
}

func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}
