package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"items-backend/internal/auth"
	"items-backend/internal/config"
	"items-backend/internal/database"
	"items-backend/internal/logging"
	"items-backend/internal/storage"
	"items-backend/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSecret = "api_test_secret_with_enough_length_for_prod"

var (
	testServer  *Server
	testHandler http.Handler
	testStorage *storage.LocalStore
	// testStorageBase is the directory behind testStorage.
	testStorageBase string
	emailSeq    atomic.Int64
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(context.Background())

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Could not apply migrations: %s", err)
	}

	tempDir, err := os.MkdirTemp("", "api-storage-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}
	defer os.RemoveAll(tempDir)
	testStorageBase = tempDir

	testStorage, err = storage.NewLocalStore(tempDir, "")
	if err != nil {
		log.Fatalf("Could not create local storage: %s", err)
	}

	logger := logging.Nop()
	wsHub := websocket.NewHub(logger)
	go wsHub.Run(ctx)

	store := database.NewStore(pool, wsHub)
	cfg := &config.Config{
		Env:    "test",
		JWT:    config.JWTConfig{Secret: testSecret, TTL: time.Hour},
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	authority, err := auth.NewAuthority(store, cfg.JWT.Secret, auth.WithTTL(cfg.JWT.TTL), auth.WithLogger(logger))
	if err != nil {
		log.Fatalf("Could not create authority: %s", err)
	}

	testServer = NewServer(cfg, store, testStorage, wsHub, authority, logger)
	testHandler = testServer.Routes()

	return m.Run()
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().UnixNano(), emailSeq.Add(1))
}

type apiResponse struct {
	Code int
	Body map[string]any
	Raw  []byte
}

func (r apiResponse) errorCode() string {
	code, _ := r.Body["code"].(string)
	return code
}

func (r apiResponse) decode(t *testing.T, key string, target any) {
	t.Helper()
	raw, err := json.Marshal(r.Body[key])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}

func doRequest(t *testing.T, method, path, token string, body any) apiResponse {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "api-test")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	testHandler.ServeHTTP(rr, req)

	resp := apiResponse{Code: rr.Code, Raw: rr.Body.Bytes()}
	if len(resp.Raw) > 0 && rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(resp.Raw, &resp.Body), string(resp.Raw))
	}
	return resp
}

type testAccount struct {
	Email    string
	Password string
	Token    string
	UserID   int64
}

func signup(t *testing.T, prefix string) testAccount {
	t.Helper()
	account := testAccount{Email: uniqueEmail(prefix), Password: "Test123!"}

	resp := doRequest(t, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email:    account.Email,
		Password: account.Password,
	})
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Raw))

	account.Token = resp.Body["token"].(string)
	user := resp.Body["user"].(map[string]any)
	account.UserID = int64(user["id"].(float64))
	return account
}

func sessionCount(t *testing.T, userID int64) int {
	t.Helper()
	count, err := testServer.store.CountSessionsForUser(context.Background(), userID)
	require.NoError(t, err)
	return count
}
