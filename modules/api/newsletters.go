package api

import (
	"log/slog"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/svc/auth"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

type publishRequest struct {
	Title   string `json:"title"`
	Content struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	} `json:"content"`
}

type reportView struct {
	Delivered int `json:"delivered"`
	Skipped   int `json:"skipped"`
}

func (s *Service) publish(ctx handler.Context, req publishRequest) handler.Response {
	report, err := s.newsletter.Publish(ctx, newsletter.Issue{
		Title: req.Title,
		HTML:  req.Content.HTML,
		Text:  req.Content.Text,
	})
	if err != nil {
		return handler.Error(err)
	}

	userID, _ := auth.UserIDFromContext(ctx)
	s.logger.InfoContext(ctx, "newsletter issue published via api",
		logger.UserID(userID),
		slog.Int("delivered", report.Delivered),
		slog.Int("skipped", report.Skipped),
		logger.Component("api"),
	)
	return handler.JSON(reportView{Delivered: report.Delivered, Skipped: report.Skipped})
}
