package logger

import (
	"log/slog"
	"time"
)

func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

func Username(name string) slog.Attr {
	return slog.String("username", name)
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// HTTP groups request attributes under "http".
func HTTP(method, path string, status int) slog.Attr {
	return slog.Group("http",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
	)
}
