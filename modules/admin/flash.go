package admin

import (
	"net/http"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/pkg/cookie"
)

type flashView struct {
	Flash string       `json:"flash"`
	Level cookie.Level `json:"level,omitempty"`
}

// flashPage returns the pending flash message and clears it.
func (s *Service) flashPage(ctx handler.Context, _ struct{}) handler.Response {
	msg, _ := s.cookies.PopFlash(ctx.ResponseWriter(), ctx.Request())
	return handler.JSON(flashView{Flash: msg.Text, Level: msg.Level})
}

type flashRedirect struct {
	cookies *cookie.Manager
	msg     cookie.Flash
	url     string
}

func (f flashRedirect) Render(w http.ResponseWriter, r *http.Request) error {
	if err := f.cookies.SetFlash(w, f.msg); err != nil {
		return err
	}
	return handler.Redirect(f.url).Render(w, r)
}

func (s *Service) redirectWithFlash(msg cookie.Flash, url string) handler.Response {
	return flashRedirect{cookies: s.cookies, msg: msg, url: url}
}
