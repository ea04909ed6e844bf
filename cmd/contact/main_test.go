package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactCommandWithFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true,"message":"Message sent successfully!"}`))
	}))
	defer srv.Close()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--endpoint", srv.URL, "--name", "Ana", "--email", "ana@x.com", "-m", "Hi"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "Message sent successfully!", strings.TrimSpace(out.String()))
}

func TestContactCommandReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Failed to send message"}`))
	}))
	defer srv.Close()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--endpoint", srv.URL, "--name", "Ana", "--email", "ana@x.com", "-m", "Hi"})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Failed to send message")
}
