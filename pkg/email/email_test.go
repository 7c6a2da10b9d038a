package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsroom/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params email.SendEmailParams
		errMsg string
	}{
		{
			name:   "valid html",
			params: email.SendEmailParams{SendTo: "user@example.com", Subject: "Hi", BodyHTML: "<p>x</p>"},
		},
		{
			name:   "valid text only",
			params: email.SendEmailParams{SendTo: "test.user+tag@sub.example.com", Subject: "Hi", BodyText: "x"},
		},
		{
			name:   "empty recipient",
			params: email.SendEmailParams{SendTo: "  ", Subject: "Hi", BodyHTML: "x"},
			errMsg: "SendTo is required",
		},
		{
			name:   "invalid recipient",
			params: email.SendEmailParams{SendTo: "user@", Subject: "Hi", BodyHTML: "x"},
			errMsg: "SendTo must be a valid email address",
		},
		{
			name:   "missing local part",
			params: email.SendEmailParams{SendTo: "@example.com", Subject: "Hi", BodyHTML: "x"},
			errMsg: "SendTo must be a valid email address",
		},
		{
			name:   "empty subject",
			params: email.SendEmailParams{SendTo: "user@example.com", Subject: " ", BodyHTML: "x"},
			errMsg: "Subject is required",
		},
		{
			name:   "no body",
			params: email.SendEmailParams{SendTo: "user@example.com", Subject: "Hi", BodyHTML: " ", BodyText: ""},
			errMsg: "BodyHTML or BodyText is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("writes body and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "outbox")
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "reader@example.com",
			Subject:  "Issue #1",
			BodyHTML: "<p>Hello</p>",
			BodyText: "Hello",
			Tag:      "newsletter",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		var meta map[string]string
		for _, e := range entries {
			name := e.Name()
			assert.Contains(t, name, "newsletter")
			assert.Contains(t, name, "reader_at_example.com")

			if strings.HasSuffix(name, ".json") {
				raw, err := os.ReadFile(filepath.Join(dir, name))
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(raw, &meta))
			}
			if strings.HasSuffix(name, ".txt") {
				raw, err := os.ReadFile(filepath.Join(dir, name))
				require.NoError(t, err)
				assert.Equal(t, "Hello", string(raw))
			}
		}
		assert.Equal(t, "reader@example.com", meta["send_to"])
		assert.Equal(t, "Issue #1", meta["subject"])
		assert.Equal(t, "newsletter", meta["tag"])
	})

	t.Run("skips missing html body", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := email.NewDevSender(dir).SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "reader@example.com",
			Subject:  "Plain",
			BodyText: "only text",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := email.NewDevSender(dir).SendEmail(context.Background(), email.SendEmailParams{SendTo: "nope"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := email.NewDevSender(t.TempDir()).SendEmail(ctx, email.SendEmailParams{
			SendTo: "reader@example.com", Subject: "x", BodyText: "x",
		})
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "sender@example.com",
		SupportEmail:         "support@example.com",
	}

	client, err := email.NewPostmarkClient(valid)
	require.NoError(t, err)
	assert.NotNil(t, client)

	tests := []struct {
		name   string
		mutate func(*email.Config)
		errMsg string
	}{
		{"empty server token", func(c *email.Config) { c.PostmarkServerToken = "" }, "PostmarkServerToken is required"},
		{"empty account token", func(c *email.Config) { c.PostmarkAccountToken = "" }, "PostmarkAccountToken is required"},
		{"missing sender", func(c *email.Config) { c.SenderEmail = "" }, "SenderEmail is required"},
		{"invalid sender", func(c *email.Config) { c.SenderEmail = "invalid" }, "SenderEmail must be a valid email address"},
		{"missing support", func(c *email.Config) { c.SupportEmail = "" }, "SupportEmail is required"},
		{"invalid support", func(c *email.Config) { c.SupportEmail = "@invalid.com" }, "SupportEmail must be a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)
			client, err := email.NewPostmarkClient(cfg)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("send validates params before calling the api", func(t *testing.T) {
		t.Parallel()

		err := client.SendEmail(context.Background(), email.SendEmailParams{})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	sender, err := email.NewFromConfig(email.Config{SenderEmail: "a@example.com", SupportEmail: "b@example.com", DevDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, sender)

	_, err = email.NewFromConfig(email.Config{PostmarkServerToken: "x", SenderEmail: "a@example.com", SupportEmail: "b@example.com"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}
