package admin

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/pkg/cookie"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/secret"
	"github.com/dmitrymomot/newsroom/svc/auth"
)

const (
	msgAuthFailed = "Authentication failed"
	msgLoggedOut  = "You have successfully logged out."
)

type loginRequest struct {
	Username string        `form:"username"`
	Password secret.String `form:"password"`
}

func (s *Service) login(ctx handler.Context, req loginRequest) handler.Response {
	userID, err := s.validator.Validate(ctx, auth.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "login failed",
			logger.Username(req.Username),
			logger.Error(err),
			logger.Component("admin"),
		)
		return s.redirectWithFlash(cookie.Error(msgAuthFailed), auth.LoginPath)
	}

	if err := s.sessions.LogIn(ctx.Request(), userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to store session after login",
			logger.UserID(userID),
			logger.Error(err),
			logger.Component("admin"),
		)
		return s.redirectWithFlash(cookie.Error(msgAuthFailed), auth.LoginPath)
	}

	s.logger.InfoContext(ctx, "user logged in",
		logger.UserID(userID),
		logger.Component("admin"),
	)
	return handler.Redirect(DashboardPath)
}

func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	if err := s.sessions.LogOut(ctx.Request()); err != nil {
		return handler.Error(err)
	}
	return s.redirectWithFlash(cookie.Info(msgLoggedOut), auth.LoginPath)
}

type dashboardView struct {
	Username string `json:"username"`
}

func (s *Service) dashboard(ctx handler.Context, _ struct{}) handler.Response {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}

	username, err := s.users.GetUsername(ctx, userID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(dashboardView{Username: username})
}
