package admin

import (
	"log/slog"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/pkg/cookie"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/svc/auth"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

const msgPublished = "The newsletter issue has been published!"

type publishRequest struct {
	Title       string `form:"title"`
	HTMLContent string `form:"html_content"`
	TextContent string `form:"text_content"`
}

func (s *Service) publish(ctx handler.Context, req publishRequest) handler.Response {
	report, err := s.publisher.Publish(ctx, newsletter.Issue{
		Title: req.Title,
		HTML:  req.HTMLContent,
		Text:  req.TextContent,
	})
	if err != nil {
		return handler.Error(err)
	}

	userID, _ := auth.UserIDFromContext(ctx)
	s.logger.InfoContext(ctx, "newsletter issue published from admin",
		logger.UserID(userID),
		slog.Int("delivered", report.Delivered),
		slog.Int("skipped", report.Skipped),
		logger.Component("admin"),
	)
	return s.redirectWithFlash(cookie.Info(msgPublished), NewslettersPath)
}
