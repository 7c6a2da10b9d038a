package api

import (
	"errors"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

type subscribeRequest struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

type statusView struct {
	Status newsletter.Status `json:"status"`
}

func (s *Service) subscribe(ctx handler.Context, req subscribeRequest) handler.Response {
	sub, err := s.newsletter.Subscribe(ctx, req.Name, req.Email)
	switch {
	case errors.Is(err, newsletter.ErrAlreadySubscribed):
		return handler.Error(errors.Join(handler.ErrConflict, err))
	case err != nil:
		return handler.Error(err)
	}
	return handler.JSON(statusView{Status: sub.Status})
}

func (s *Service) confirm(ctx handler.Context, _ struct{}) handler.Response {
	token := ctx.Request().URL.Query().Get(newsletter.TokenParam)

	err := s.newsletter.Confirm(ctx, token)
	switch {
	case errors.Is(err, newsletter.ErrMissingToken):
		return handler.Error(errors.Join(handler.ErrBadRequest, err))
	case errors.Is(err, newsletter.ErrTokenNotFound):
		return handler.Error(errors.Join(handler.ErrUnauthorized, err))
	case err != nil:
		return handler.Error(err)
	}
	return handler.JSON(statusView{Status: newsletter.StatusConfirmed})
}
