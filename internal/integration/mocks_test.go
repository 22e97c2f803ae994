// Package integration exercises the server and worker wiring end to end
// against a fake completion endpoint and in-memory storage.
package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/socialchef/leftover/internal/api"
	"github.com/socialchef/leftover/internal/config"
	"github.com/socialchef/leftover/internal/feedback"
	"github.com/socialchef/leftover/internal/middleware"
	"github.com/socialchef/leftover/internal/services/openai"
	"github.com/socialchef/leftover/internal/services/recipe"
	"github.com/socialchef/leftover/internal/session"
)

const (
	testSecret  = "integration-secret"
	testService = "leftover-integration"
)

// ============================================================================
// Fake completion endpoint
// ============================================================================

type completionServer struct {
	*httptest.Server
	mu       sync.Mutex
	prompts  []string
	status   int
	response string
}

func newCompletionServer(t *testing.T, recipeText string) *completionServer {
	t.Helper()
	cs := &completionServer{status: http.StatusOK}
	cs.setRecipe(recipeText)
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		cs.mu.Lock()
		if len(body.Messages) > 0 {
			cs.prompts = append(cs.prompts, body.Messages[0].Content)
		}
		status, response := cs.status, cs.response
		cs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *completionServer) setRecipe(text string) {
	content, _ := json.Marshal(text)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.status = http.StatusOK
	cs.response = `{"id":"chatcmpl-test","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` + string(content) + `},"finish_reason":"stop"}]}`
}

func (cs *completionServer) fail(status int, message string) {
	msg, _ := json.Marshal(message)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.status = status
	cs.response = `{"error":{"message":` + string(msg) + `,"type":"invalid_request_error"}}`
}

func (cs *completionServer) calls() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.prompts)
}

// ============================================================================
// Application under test
// ============================================================================

type app struct {
	handler   http.Handler
	sessions  *middleware.Sessions
	histories *session.Store
}

func newApp(t *testing.T, cs *completionServer, testMode bool, recorder feedback.Recorder) *app {
	t.Helper()
	cfg := &config.Config{
		Env:           "test",
		ServiceName:   testService,
		SessionSecret: testSecret,
		OpenAIKey:     "sk-integration",
		OpenAIBaseURL: cs.URL + "/v1/",
		TestMode:      testMode,
		Session:       config.SessionConfig{CookieName: "leftover_session", TTL: time.Hour},
	}

	client := openai.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, openai.WithHTTPClient(cs.Client()))
	histories := session.NewStore()
	sessions := middleware.NewSessions(cfg)
	srv := api.NewServer(cfg, recipe.NewGenerator(client), histories, recorder)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		srv.Register(r)
	})

	return &app{handler: r, sessions: sessions, histories: histories}
}

func (a *app) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func signToken(t *testing.T, secret, issuer, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iss": issuer,
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// ============================================================================
// In-memory queue and database
// ============================================================================

type memoryQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (q *memoryQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: task.Type(), Type: task.Type()}, nil
}

func (q *memoryQueue) drain() []*asynq.Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	tasks := q.tasks
	q.tasks = nil
	return tasks
}

// memoryDB records rating inserts keyed by ID, mimicking ON CONFLICT DO NOTHING.
type memoryDB struct {
	mu      sync.Mutex
	ddl     int
	ratings map[string][]any
}

func newMemoryDB() *memoryDB {
	return &memoryDB{ratings: make(map[string][]any)}
}

func (m *memoryDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(args) == 0 {
		m.ddl++
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}
	id, _ := args[0].(string)
	if _, ok := m.ratings[id]; ok {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	m.ratings[id] = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (m *memoryDB) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ratings)
}
