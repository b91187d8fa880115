package answerhub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantText string
	}{
		{
			name:     "answer_field",
			status:   http.StatusOK,
			body:     `{"answer": "Clean core keeps the ERP standard."}`,
			wantText: "Clean core keeps the ERP standard.",
		},
		{
			name:     "data_list",
			status:   http.StatusOK,
			body:     `{"data": [{"text": "first"}, {"text": "second"}, {"other": 1}]}`,
			wantText: "first\nsecond",
		},
		{
			name:     "answer_wins_over_data",
			status:   http.StatusOK,
			body:     `{"answer": "direct", "data": [{"text": "ignored"}]}`,
			wantText: "direct",
		},
		{
			name:     "empty_response",
			status:   http.StatusOK,
			body:     `{}`,
			wantText: "",
		},
		{
			name:    "rate_limit",
			status:  http.StatusTooManyRequests,
			body:    `{"error": "rate limit exceeded"}`,
			wantErr: "unexpected status 429",
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `{"error": "internal server error"}`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var req request
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "clean core", req.Query)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))

			ans, err := client.Ask(context.Background(), "clean core")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, ans)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, ans)
			assert.Equal(t, tt.wantText, ans.Text)
		})
	}
}

func TestAskMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"text":"a"},{"text":"b"},{"text":"c"},{"text":"d"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithMaxResults(2))
	ans, err := client.Ask(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", ans.Text)
}

func TestAskContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Ask(ctx, "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()
	c := NewClient("my-key")
	hc := c.(*httpClient)
	assert.Equal(t, "my-key", hc.apiKey)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.Equal(t, defaultMaxResults, hc.maxResults)
	assert.NotNil(t, hc.http)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()
	custom := &http.Client{}
	c := NewClient("test-key", WithHTTPClient(custom))
	hc := c.(*httpClient)
	assert.Equal(t, custom, hc.http)
}
