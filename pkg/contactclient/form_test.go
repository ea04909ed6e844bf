package contactclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(f *Form) {
	f.SetName("Ana")
	f.SetEmail("ana@x.com")
	f.SetMessage("Hi")
}

func serve(t *testing.T, status int, body string) (*httptest.Server, *Draft) {
	t.Helper()
	var got Draft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestSubmitSuccessClearsDraft(t *testing.T) {
	srv, got := serve(t, http.StatusCreated, `{"success":true,"message":"Message saved successfully"}`)
	f := New(srv.URL)
	fill(f)

	ack := f.Submit(context.Background())
	assert.Equal(t, Acknowledgment{Success: true, Message: "Message saved successfully"}, ack)
	assert.Equal(t, Draft{Name: "Ana", Email: "ana@x.com", Message: "Hi"}, *got)
	assert.Equal(t, Draft{}, f.Draft())
}

func TestSubmitSuccessDefaultMessage(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"success":true}`)
	f := New(srv.URL)
	fill(f)

	ack := f.Submit(context.Background())
	assert.Equal(t, Acknowledgment{Success: true, Message: DefaultSuccessMessage}, ack)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"bad request", http.StatusBadRequest, `{"success":false,"message":"All fields are required"}`, "All fields are required"},
		{"server error without message", http.StatusInternalServerError, `{"success":false}`, DefaultFailureMessage},
		{"ok but unsuccessful", http.StatusOK, `{"success":false,"message":"nope"}`, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body)
			f := New(srv.URL)
			fill(f)

			ack := f.Submit(context.Background())
			assert.Equal(t, Acknowledgment{Message: tt.want}, ack)
			assert.Equal(t, Draft{Name: "Ana", Email: "ana@x.com", Message: "Hi"}, f.Draft())
		})
	}
}

func TestSubmitNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := New(url)
	fill(f)
	ack := f.Submit(context.Background())
	assert.Equal(t, Acknowledgment{Message: NetworkErrorMessage}, ack)
	assert.Equal(t, "Ana", f.Draft().Name)
}

func TestSubmitUndecodableResponse(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `<html>oops</html>`)
	f := New(srv.URL, WithHTTPClient(srv.Client()))
	fill(f)

	ack := f.Submit(context.Background())
	assert.Equal(t, Acknowledgment{Message: NetworkErrorMessage}, ack)
	assert.Equal(t, "Hi", f.Draft().Message)
}

func TestSettersUpdateOneField(t *testing.T) {
	f := New("http://unused")
	fill(f)
	f.SetEmail("bo@x.com")
	assert.Equal(t, Draft{Name: "Ana", Email: "bo@x.com", Message: "Hi"}, f.Draft())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); f.SetName("N") }()
		go func() { defer wg.Done(); f.SetEmail("E") }()
		go func() { defer wg.Done(); f.SetMessage("M") }()
	}
	wg.Wait()
	assert.Equal(t, Draft{Name: "N", Email: "E", Message: "M"}, f.Draft())
}
