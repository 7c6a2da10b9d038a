package admin

import (
	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/pkg/cookie"
	"github.com/dmitrymomot/newsroom/svc/auth"
)

func (s *Service) changePassword(ctx handler.Context, req auth.PasswordChangeRequest) handler.Response {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}

	outcome, err := s.changer.ChangePassword(ctx, userID, req, s.sessions.Purger(ctx.Request()))
	if err != nil {
		return handler.Error(err)
	}

	if outcome == auth.OutcomeChanged {
		return s.redirectWithFlash(cookie.Info(outcome.Message()), auth.LoginPath)
	}
	return s.redirectWithFlash(cookie.Error(outcome.Message()), PasswordPath)
}
