package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sam-eff/car-rental-site/internal/shared"
	tu "github.com/Sam-eff/car-rental-site/internal/testing"
	"github.com/google/uuid"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/api/", customClient)

			if srv.BaseURL() != "http://example.com/api" {
				t.Errorf("expected trailing slash to be trimmed, got %s", srv.BaseURL())
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.baseURL != "http://localhost:8000/api" {
				t.Errorf("expected default baseURL 'http://localhost:8000/api', got %s", srv.baseURL)
			}
		})

		t.Run("With Nil Client", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)

			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/test" {
					t.Errorf("expected path '/test', got %s", r.URL.Path)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "success"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK || !resp.OK() {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response to be JSON")
			}
			if resp.JSONData == nil {
				t.Error("expected JSONData to be populated")
			}
		})

		t.Run("Successful Request With Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if resp.JSONData != nil {
				t.Error("expected JSONData to be nil")
			}
			if string(resp.Body) != "plain text response" {
				t.Errorf("expected body 'plain text response', got %s", string(resp.Body))
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			_, err := srv.Get(context.Background(), "/test\x00invalid")

			if err == nil {
				t.Fatal("expected error for invalid URL")
			}
			if !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if err == nil {
				t.Fatal("expected error for failed request")
			}
			if !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if err == nil {
				t.Fatal("expected error for failed body read")
			}
			if !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			srv := NewAPIService(server.URL, nil)
			_, err := srv.Get(ctx, "/test")

			if err == nil {
				t.Error("expected error for canceled context")
			}
		})

		t.Run("Response Headers Are Preserved", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Custom-Header", "test-value")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("test"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.Headers.Get("X-Custom-Header") != "test-value" {
				t.Errorf("expected custom header 'test-value', got %s", resp.Headers.Get("X-Custom-Header"))
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
				}

				body, _ := io.ReadAll(r.Body)
				var data map[string]int64
				if err := json.Unmarshal(body, &data); err != nil {
					t.Errorf("failed to unmarshal request body: %v", err)
				}
				if data["car_id"] != 7 {
					t.Errorf("expected car_id 7, got %v", data)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]int64{"id": 123})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			requestData, _ := json.Marshal(map[string]int64{"car_id": 7})
			resp, err := srv.Post(context.Background(), "/wishlist/", requestData)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected status 201, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response to be JSON")
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Post(context.Background(), "/test", []byte("data"))

			if err == nil {
				t.Fatal("expected error for failed request")
			}
			if !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Empty Request Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				if len(body) != 0 {
					t.Errorf("expected empty body, got %d bytes", len(body))
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			_, err := srv.Post(context.Background(), "/test", []byte{})

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Patch And Delete", func(t *testing.T) {
		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
			if r.Method == http.MethodDelete && r.Header.Get("Content-Type") != "" {
				t.Errorf("expected no Content-Type on DELETE, got %s", r.Header.Get("Content-Type"))
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		srv := NewAPIService(server.URL, nil)
		if _, err := srv.Patch(context.Background(), "/users/profile/", []byte(`{"first_name":"A"}`)); err != nil {
			t.Fatalf("patch failed: %v", err)
		}
		resp, err := srv.Delete(context.Background(), "/wishlist/1/")
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		if !resp.OK() || resp.IsJSON {
			t.Errorf("expected empty 204 response, got %d json=%v", resp.StatusCode, resp.IsJSON)
		}
		if strings.Join(methods, ",") != "PATCH,DELETE" {
			t.Errorf("expected PATCH,DELETE, got %v", methods)
		}
	})

	t.Run("Headers", func(t *testing.T) {
		t.Run("Bearer Token", func(t *testing.T) {
			var auth []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				auth = append(auth, r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			srv.Get(context.Background(), "/cars/")

			srv.SetToken("abc.def.ghi")
			srv.Get(context.Background(), "/cars/")

			srv.SetToken("")
			srv.Get(context.Background(), "/cars/")

			if len(auth) != 3 {
				t.Fatalf("expected 3 requests, got %d", len(auth))
			}
			if auth[0] != "" || auth[2] != "" {
				t.Errorf("expected no Authorization header without a token, got %q and %q", auth[0], auth[2])
			}
			if auth[1] != "Bearer abc.def.ghi" {
				t.Errorf("expected bearer header, got %q", auth[1])
			}
		})

		t.Run("Request ID", func(t *testing.T) {
			var ids []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ids = append(ids, r.Header.Get("X-Request-ID"))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			srv.Get(context.Background(), "/a")
			srv.Get(context.Background(), "/b")

			for _, id := range ids {
				if _, err := uuid.Parse(id); err != nil {
					t.Errorf("expected uuid request id, got %q", id)
				}
			}
			if len(ids) == 2 && ids[0] == ids[1] {
				t.Error("expected a fresh request id per request")
			}
		})
	})

	t.Run("Rate Limit", func(t *testing.T) {
		t.Run("Canceled Wait", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			srv.SetRateLimit(0.001)

			if _, err := srv.Get(context.Background(), "/first"); err != nil {
				t.Fatalf("first request should use the burst, got %v", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			_, err := srv.Get(ctx, "/second")
			if err == nil || !strings.Contains(err.Error(), "rate limit") {
				t.Errorf("expected rate limit error, got %v", err)
			}
		})

		t.Run("Disabled", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			srv.SetRateLimit(2)
			srv.SetRateLimit(0)

			if srv.limiter != nil {
				t.Error("expected limiter to be removed")
			}
		})
	})

	t.Run("APIError", func(t *testing.T) {
		err := error(&APIError{StatusCode: http.StatusBadRequest, Message: "Car already in wishlist"})

		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Error("expected APIError to wrap ErrAPIRequest")
		}
		if ErrorMessage(err) != "Car already in wishlist" {
			t.Errorf("unexpected message %q", ErrorMessage(err))
		}
		if StatusCode(err) != http.StatusBadRequest {
			t.Errorf("unexpected status %d", StatusCode(err))
		}
		if ErrorMessage(errors.New("plain")) != "" || StatusCode(errors.New("plain")) != 0 {
			t.Error("expected zero values for non-API errors")
		}
	})

	t.Run("errorMessage", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			want string
		}{
			{"error field", `{"error":"Car not in wishlist"}`, "Car not in wishlist"},
			{"detail field", `{"detail":"Not found."}`, "Not found."},
			{"field errors", `{"username":["A user with that username already exists."],"password":["Too short."]}`, "password: Too short.; username: A user with that username already exists."},
			{"plain body", `Bad Gateway from proxy`, "Bad Gateway from proxy"},
			{"empty body", ``, "Internal Server Error"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp := &APIResponse{StatusCode: http.StatusInternalServerError, Body: []byte(tt.body)}
				var data any
				if err := json.Unmarshal(resp.Body, &data); err == nil {
					resp.IsJSON = true
					resp.JSONData = data
				}

				if got := errorMessage(resp); got != tt.want {
					t.Errorf("expected %q, got %q", tt.want, got)
				}
			})
		}
	})
}
