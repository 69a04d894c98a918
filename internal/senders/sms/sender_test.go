package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tavakkoli/shop_events_system/internal/config"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

func newSender(baseURL string) *Sender {
	return NewSender(logger.SetupLogger("local"), config.SMSConfig{
		BaseURL:  baseURL,
		Username: "sms_user",
		Password: "sms_pass",
		From:     "5000",
		Timeout:  2 * time.Second,
	})
}

func TestSend_Success(t *testing.T) {
	var got gatewayRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/SendSMS", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := newSender(srv.URL + "/api/")

	result := sender.Send(context.Background(), Message{
		To:   "+989121234567",
		Text: "سفارش ORD-A1B2C3D4 ثبت شد",
	})

	require.True(t, result.IsSuccess)
	require.Equal(t, "sms_user", got.Username)
	require.Equal(t, "sms_pass", got.Password)
	require.Equal(t, "+989121234567", got.To)
	require.Equal(t, "5000", got.From)
	require.Equal(t, "سفارش ORD-A1B2C3D4 ثبت شد", got.Text)
	require.False(t, got.IsFlash)
}

func TestSend_AnyTwoXXIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	result := newSender(srv.URL + "/").Send(context.Background(), Message{To: "+989121234567", Text: "x"})

	require.True(t, result.IsSuccess)
}

func TestSend_GatewayErrorBodyCaptured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("invalid credentials"))
	}))
	defer srv.Close()

	result := newSender(srv.URL + "/").Send(context.Background(), Message{To: "+989121234567", Text: "x"})

	require.False(t, result.IsSuccess)
	require.Contains(t, result.Message, "500")
	require.Equal(t, "invalid credentials", result.ErrorMessage)
}

func TestSend_TransportErrorBecomesFailureResult(t *testing.T) {
	// Closed server: the connection is refused, not an HTTP error.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	result := newSender(srv.URL + "/").Send(context.Background(), Message{To: "+989121234567", Text: "x"})

	require.False(t, result.IsSuccess)
	require.NotEmpty(t, result.ErrorMessage)
}

func TestSend_MessageFromOverridesConfig(t *testing.T) {
	var got gatewayRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := newSender(srv.URL + "/").Send(context.Background(), Message{
		To:   "+989121234567",
		From: "3000",
		Text: "x",
	})

	require.True(t, result.IsSuccess)
	require.Equal(t, "3000", got.From)
}
