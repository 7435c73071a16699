package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kodekulture/cemantix-server/game"
	"github.com/kodekulture/cemantix-server/game/embedding"
	"github.com/kodekulture/cemantix-server/internal/mocks"
	"github.com/kodekulture/cemantix-server/internal/telemetry"
	"github.com/kodekulture/cemantix-server/service"
)

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService, *mocks.MockTokenHandler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	srv := mocks.NewMockService(ctrl)
	th := mocks.NewMockTokenHandler(ctrl)
	return New(srv, th), srv, th
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rec := serve(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDKey))
}

func expectModel(srv *mocks.MockService, state embedding.State) {
	srv.EXPECT().ModelState().Return(state)
	srv.EXPECT().ModelBackend().Return("local-ngram-384")
	srv.EXPECT().IsModelReady().Return(state == embedding.Ready)
	srv.EXPECT().IsModelLoading().Return(state == embedding.Loading)
}

func TestModel(t *testing.T) {
	h, srv, _ := newTestHandler(t)
	expectModel(srv, embedding.Loading)

	rec := serve(h, http.MethodGet, "/model", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"loading","backend":"local-ngram-384","ready":false,"loading":true}`, rec.Body.String())
}

func TestModelWait(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		expectCode int
		mockFn     func(*mocks.MockService)
	}{
		{
			name: "default timeout",
			mockFn: func(srv *mocks.MockService) {
				srv.EXPECT().WaitForModel(gomock.Any()).DoAndReturn(func(ctx context.Context) bool {
					deadline, ok := ctx.Deadline()
					assert.True(t, ok)
					assert.WithinDuration(t, time.Now().Add(defaultWait), deadline, time.Second)
					return true
				})
				expectModel(srv, embedding.Ready)
			},
			expectCode: http.StatusOK,
		},
		{
			name:  "timeout is capped",
			query: "?timeout=10m",
			mockFn: func(srv *mocks.MockService) {
				srv.EXPECT().WaitForModel(gomock.Any()).DoAndReturn(func(ctx context.Context) bool {
					deadline, _ := ctx.Deadline()
					assert.WithinDuration(t, time.Now().Add(maxWait), deadline, time.Second)
					return false
				})
				expectModel(srv, embedding.Failed)
			},
			expectCode: http.StatusOK,
		},
		{
			name:       "invalid timeout",
			query:      "?timeout=soon",
			expectCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, srv, _ := newTestHandler(t)
			if tt.mockFn != nil {
				tt.mockFn(srv)
			}
			rec := serve(h, http.MethodGet, "/model/wait"+tt.query, "")
			assert.Equal(t, tt.expectCode, rec.Code)
		})
	}
}

func TestValidate(t *testing.T) {
	h, srv, _ := newTestHandler(t)
	srv.EXPECT().IsValidWord("perro").Return(true)
	srv.EXPECT().IsValidWord("xyzzy").Return(false)

	rec := serve(h, http.MethodGet, "/validate/perro", "")
	assert.JSONEq(t, `{"word":"perro","valid":true}`, rec.Body.String())
	rec = serve(h, http.MethodGet, "/validate/xyzzy", "")
	assert.JSONEq(t, `{"word":"xyzzy","valid":false}`, rec.Body.String())
}

func TestGuess(t *testing.T) {
	played := game.NewGuess("casa", 850)
	tests := []struct {
		name       string
		body       string
		expectCode int
		mockFn     func(*mocks.MockService)
		check      func(*testing.T, game.GuessResponse)
	}{
		{
			name: "scored guess",
			body: `{"word":"casa","date":"2024-01-01"}`,
			mockFn: func(srv *mocks.MockService) {
				srv.EXPECT().Guess(gomock.Any(), "2024-01-01", "casa").Return(played, nil)
			},
			expectCode: http.StatusOK,
			check: func(t *testing.T, got game.GuessResponse) {
				assert.Equal(t, played.ID, got.ID)
				assert.Equal(t, 850, got.Score)
				assert.Equal(t, "excellent", got.Bucket)
				assert.Equal(t, "score-excellent", got.Color)
				assert.Equal(t, "🔥", got.Emoji)
			},
		},
		{
			name: "invalid word",
			body: `{"word":"xyzzy"}`,
			mockFn: func(srv *mocks.MockService) {
				srv.EXPECT().Guess(gomock.Any(), "", "xyzzy").Return(game.Guess{}, service.ErrInvalidWord)
			},
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "missing word",
			body:       `{"date":"2024-01-01"}`,
			expectCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, srv, _ := newTestHandler(t)
			if tt.mockFn != nil {
				tt.mockFn(srv)
			}
			rec := serve(h, http.MethodPost, "/guess", tt.body)
			require.Equal(t, tt.expectCode, rec.Code)
			if tt.check != nil {
				var got game.GuessResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				tt.check(t, got)
			}
		})
	}
}

func TestStats(t *testing.T) {
	h, srv, _ := newTestHandler(t)
	srv.EXPECT().Stats().Return(telemetry.Snapshot{
		Counters: map[telemetry.Counter]int64{telemetry.SemanticScore: 3},
		Timings:  map[telemetry.Timing]string{telemetry.ModelLoad: "1.5s"},
	})
	expectModel(srv, embedding.Ready)

	rec := serve(h, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Counters map[string]int64  `json:"counters"`
		Timings  map[string]string `json:"timings"`
		Model    modelResponse     `json:"model"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.Counters["semantic_score"])
	assert.Equal(t, "1.5s", got.Timings["model_load"])
	assert.True(t, got.Model.Ready)
}

func TestLogin(t *testing.T) {
	admin := game.Admin{Name: "admin"}
	tests := []struct {
		name       string
		body       string
		expectCode int
		mockFn     func(*mocks.MockService, *mocks.MockTokenHandler)
	}{
		{
			name: "valid password",
			body: `{"password":"s3cret"}`,
			mockFn: func(srv *mocks.MockService, th *mocks.MockTokenHandler) {
				gomock.InOrder(
					srv.EXPECT().Login(gomock.Any(), "s3cret").Return(admin, nil),
					th.EXPECT().Generate(gomock.Any(), admin, adminTokenTTL).Return("valid_token", nil),
				)
			},
			expectCode: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"password":"nope"}`,
			mockFn: func(srv *mocks.MockService, _ *mocks.MockTokenHandler) {
				srv.EXPECT().Login(gomock.Any(), "nope").Return(game.Admin{}, ErrUnauthenticated)
			},
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{}`,
			expectCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, srv, th := newTestHandler(t)
			if tt.mockFn != nil {
				tt.mockFn(srv, th)
			}
			rec := serve(h, http.MethodPost, "/admin/login", tt.body)
			require.Equal(t, tt.expectCode, rec.Code)
			if tt.expectCode != http.StatusOK {
				return
			}
			assert.JSONEq(t, `{"token":"valid_token"}`, rec.Body.String())
			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, adminTokenKey, cookies[0].Name)
			assert.Equal(t, "valid_token", cookies[0].Value)
		})
	}
}

func TestLogout(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rec := serve(h, http.MethodPost, "/admin/logout", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestWordOfDay(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		expectCode int
		expectBody string
		mockFn     func(*mocks.MockService)
	}{
		{
			name: "today",
			mockFn: func(srv *mocks.MockService) {
				srv.EXPECT().Today().Return("2024-01-01")
				srv.EXPECT().WordOfDay("2024-01-01").Return("gato", nil)
			},
			expectCode: http.StatusOK,
			expectBody: `{"date":"2024-01-01","word":"gato"}`,
		},
		{
			name:  "explicit date",
			query: "?date=2025-06-15",
			mockFn: func(srv *mocks.MockService) {
				srv.EXPECT().WordOfDay("2025-06-15").Return("casa", nil)
			},
			expectCode: http.StatusOK,
			expectBody: `{"date":"2025-06-15","word":"casa"}`,
		},
		{
			name:       "invalid date",
			query:      "?date=tomorrow",
			expectCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, srv, th := newTestHandler(t)
			th.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(game.Admin{Name: "admin"}, nil)
			if tt.mockFn != nil {
				tt.mockFn(srv)
			}
			req := httptest.NewRequest(http.MethodGet, "/admin/word"+tt.query, nil)
			req.Header.Set(authHeaderKey, "Bearer valid_token")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.expectCode, rec.Code)
			if tt.expectBody != "" {
				assert.JSONEq(t, tt.expectBody, rec.Body.String())
			}
		})
	}
}

func TestLive(t *testing.T) {
	h, srv, _ := newTestHandler(t)
	var done <-chan struct{} = make(chan struct{})
	srv.EXPECT().Today().Return("2024-01-01")
	srv.EXPECT().ModelDone().Return(done).AnyTimes()
	srv.EXPECT().IsModelReady().Return(false).AnyTimes()
	srv.EXPECT().Guess(gomock.Any(), "2024-01-01", "perro").Return(game.NewGuess("perro", 320), nil)

	ts := httptest.NewServer(h)
	defer ts.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/live", nil)
	require.NoError(t, err)
	defer conn.Close()

	type message struct {
		Event game.Event      `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	read := func() message {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var m message
		require.NoError(t, conn.ReadJSON(&m))
		return m
	}

	m := read()
	require.Equal(t, game.CData, m.Event)

	require.NoError(t, conn.WriteJSON(game.Payload{Type: game.SPlay, Data: "perro"}))
	m = read()
	require.Equal(t, game.CResult, m.Event)
	var res game.PlayResponse
	require.NoError(t, json.Unmarshal(m.Data, &res))
	assert.Equal(t, 320, res.Result.Score)
	assert.Equal(t, "Lejos", res.Result.Label)
}

func TestLive_InvalidDate(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rec := serve(h, http.MethodGet, "/live?date=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
