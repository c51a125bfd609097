package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/blogverse/blogverse/internal/blogservice"
	"github.com/blogverse/blogverse/internal/common"
	"github.com/blogverse/blogverse/internal/mailservice"
	"github.com/blogverse/blogverse/internal/mediaservice"
	"github.com/blogverse/blogverse/internal/userservice"
)

const testMediaURL = "https://media.test/image.png"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, env
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	rabbitURI := common.TestRabbitMQ(t)
	broker, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)

	err = common.SetupUserExchange(broker)
	assert.NoError(t, err)

	media := new(mediaservice.MockUploader)
	media.On("Upload", mock.Anything, mock.Anything).Return(testMediaURL, nil)

	cfg := &Config{
		Port:        ":4000",
		Environment: "test",
		Version:     "1.0.0",
	}
	cfg.JWT.Secret = "testsecret"
	cfg.Limiter.Enabled = false

	tokens := userservice.NewTokenIssuer(cfg.JWT.Secret, time.Hour, time.Hour)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, broker, media, tokens),
		blogService: blogservice.NewBlogService(db, cache, media),
		broker:      broker,
		mailService: mailservice.NewMailService(broker, "localhost", "user", "password", "noreply@blogverse.test", 1025, logger),
	}

	return app, db
}

func (ts *testServer) postJSON(t *testing.T, path string, data any) (int, http.Header, envelope) {
	return ts.doJSON(t, http.MethodPost, path, data)
}

func (ts *testServer) putJSON(t *testing.T, path string, data any) (int, http.Header, envelope) {
	return ts.doJSON(t, http.MethodPut, path, data)
}

func (ts *testServer) deleteJSON(t *testing.T, path string, data any) (int, http.Header, envelope) {
	return ts.doJSON(t, http.MethodDelete, path, data)
}

func (ts *testServer) doJSON(t *testing.T, method, path string, data any) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(jsonPayload))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

// postForm sends a multipart form with the given fields and, when fileField
// is non-empty, a small file attachment under that field name.
func (ts *testServer) postForm(t *testing.T, path string, fields map[string]string, fileField string) (int, http.Header, envelope) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		err := writer.WriteField(key, value)
		if err != nil {
			t.Fatal(err)
		}
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, "test.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatal(err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

// registerTestUser registers a user through the API so handler tests can
// build on a real account.
func (ts *testServer) registerTestUser(t *testing.T, username, email string) {
	status, _, _ := ts.postForm(t, "/v1/users/register", map[string]string{
		"name":     "Test " + username,
		"username": username,
		"email":    email,
		"password": "Password123!",
	}, "avatar")

	assert.Equal(t, http.StatusOK, status)
}
