package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON renders v as the response body with status 200.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: v}
}

func JSONWithStatus(v any, status int) Response {
	return jsonResponse{status: status, body: v}
}

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty writes 200 with no body.
func Empty() Response {
	return emptyResponse{status: http.StatusOK}
}

func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type redirectResponse struct {
	url  string
	code int
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, rr.url, rr.code)
	return nil
}

// Redirect responds with 303 See Other.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the ErrorHandler configured on Wrap.
func Error(err error) Response {
	return errorResponse{err: err}
}
