package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpServer "notemark/internal/adapters/http"
	"notemark/internal/adapters/services"
	"notemark/internal/app"
	"notemark/internal/domain/entities"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app      *fiber.App
	userRepo *memoryUserRepository
	noteRepo *memoryNoteRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	userRepo := newMemoryUserRepository()
	noteRepo := newMemoryNoteRepository()

	svcFactory := services.NewServiceFactory("test-secret-key", time.Hour, 4)

	authUseCase := app.NewAuthUseCase(userRepo, svcFactory.PasswordService(), svcFactory.TokenService())
	userUseCase := app.NewUserUseCase(userRepo, nil)
	noteUseCase := app.NewNoteUseCase(noteRepo)

	fiberApp := fiber.New()
	httpServer.SetupRouter(fiberApp, authUseCase, userUseCase, noteUseCase, svcFactory.TokenService())

	return &testServer{app: fiberApp, userRepo: userRepo, noteRepo: noteRepo}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", string(raw))

	return resp, env
}

func (s *testServer) register(t *testing.T, name, email, password string) string {
	t.Helper()

	resp, env := s.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, env.Token)

	return env.Token
}

func TestRegister_HTTP(t *testing.T) {
	tests := []struct {
		name            string
		body            map[string]string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "success",
			body:           map[string]string{"name": "Alice", "email": "alice@example.com", "password": "secret123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "missing fields",
			body:            map[string]string{"email": "alice@example.com"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Please provide name, email, and password",
		},
		{
			name:            "short password",
			body:            map[string]string{"name": "Alice", "email": "alice@example.com", "password": "12345"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Password must be at least 6 characters",
		},
		{
			name:            "invalid email",
			body:            map[string]string{"name": "Alice", "email": "not-an-email", "password": "secret123"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Please provide a valid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)

			resp, env := server.request(t, http.MethodPost, "/api/auth/register", "", tt.body)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusCreated {
				assert.True(t, env.Success)
				assert.NotEmpty(t, env.Token)
				// Хэш пароля не должен попадать в ответ.
				assert.NotContains(t, string(env.Data), "password")
			} else {
				assert.False(t, env.Success)
				assert.Equal(t, tt.expectedMessage, env.Message)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	server := newTestServer(t)
	server.register(t, "Alice", "alice@example.com", "secret123")

	resp, env := server.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Another Alice",
		"email":    "Alice@Example.COM", // регистр не должен обходить уникальность
		"password": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", env.Message)
}

func TestLogin_HTTP(t *testing.T) {
	server := newTestServer(t)
	server.register(t, "Alice", "alice@example.com", "secret123")

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		respWrong, envWrong := server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "wrong-password",
		})
		respUnknown, envUnknown := server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "nobody@example.com", "password": "secret123",
		})

		assert.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
		assert.Equal(t, "Invalid email or password", envWrong.Message)
		assert.Equal(t, envWrong.Message, envUnknown.Message)
	})

	t.Run("success", func(t *testing.T) {
		resp, env := server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "secret123",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, env.Success)
		assert.NotEmpty(t, env.Token)
	})

	t.Run("missing credentials", func(t *testing.T) {
		resp, env := server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Please provide email and password", env.Message)
	})
}

func TestAuthMiddleware_Uniform401(t *testing.T) {
	server := newTestServer(t)
	token := server.register(t, "Alice", "alice@example.com", "secret123")

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "malformed header", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/notes", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := server.app.Test(req)
			require.NoError(t, err)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())

			var env envelope
			require.NoError(t, json.Unmarshal(raw, &env))

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Not authorized to access this route", env.Message)
		})
	}

	t.Run("valid token for deleted user", func(t *testing.T) {
		var user entities.User
		_, env := server.request(t, http.MethodGet, "/api/auth/me", token, nil)
		require.NoError(t, json.Unmarshal(env.Data, &user))

		server.userRepo.delete(user.ID)

		resp, env := server.request(t, http.MethodGet, "/api/notes", token, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Not authorized to access this route", env.Message)
	})
}

func TestMe_HTTP(t *testing.T) {
	server := newTestServer(t)
	token := server.register(t, "Alice", "alice@example.com", "secret123")

	resp, env := server.request(t, http.MethodGet, "/api/auth/me", token, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var user entities.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

// Полный сценарий: регистрация, неудачный вход, удачный вход, пустой список.
func TestRegisterLoginListScenario(t *testing.T) {
	server := newTestServer(t)

	resp, _ := server.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, env := server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, env.Token)

	resp, env = server.request(t, http.MethodGet, "/api/notes", env.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestNotesCRUD_HTTP(t *testing.T) {
	server := newTestServer(t)
	token := server.register(t, "Alice", "alice@example.com", "secret123")

	var created entities.Note

	t.Run("create", func(t *testing.T) {
		resp, env := server.request(t, http.MethodPost, "/api/notes", token, map[string]any{
			"title":   "Meeting notes",
			"content": "Discuss roadmap",
			"tags":    []string{"work", "planning"},
		})

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Note created successfully", env.Message)
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.NotEmpty(t, created.ID)
	})

	t.Run("create without title", func(t *testing.T) {
		resp, env := server.request(t, http.MethodPost, "/api/notes", token, map[string]any{
			"content": "No title",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Please provide title and content", env.Message)
	})

	t.Run("create with too many tags", func(t *testing.T) {
		resp, env := server.request(t, http.MethodPost, "/api/notes", token, map[string]any{
			"title":   "Tagged",
			"content": "Content",
			"tags":    make([]string, 11),
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "A note can have at most 10 tags", env.Message)
	})

	t.Run("get", func(t *testing.T) {
		resp, env := server.request(t, http.MethodGet, "/api/notes/"+created.ID, token, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var note entities.Note
		require.NoError(t, json.Unmarshal(env.Data, &note))
		assert.Equal(t, "Meeting notes", note.Title)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		resp, env := server.request(t, http.MethodPut, "/api/notes/"+created.ID, token, map[string]any{
			"title": "Updated meeting notes",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Note updated successfully", env.Message)

		var note entities.Note
		require.NoError(t, json.Unmarshal(env.Data, &note))
		assert.Equal(t, "Updated meeting notes", note.Title)
		assert.Equal(t, "Discuss roadmap", note.Content)
		assert.Equal(t, []string{"work", "planning"}, note.Tags)
	})

	t.Run("delete returns id and repeated delete is 404", func(t *testing.T) {
		resp, env := server.request(t, http.MethodDelete, "/api/notes/"+created.ID, token, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Note deleted successfully", env.Message)
		assert.JSONEq(t, `{"id":"`+created.ID+`"}`, string(env.Data))

		resp, env = server.request(t, http.MethodDelete, "/api/notes/"+created.ID, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Note not found", env.Message)
	})
}

func TestNotes_OwnershipIsolation(t *testing.T) {
	server := newTestServer(t)
	aliceToken := server.register(t, "Alice", "alice@example.com", "secret123")
	bobToken := server.register(t, "Bob", "bob@example.com", "secret123")

	_, env := server.request(t, http.MethodPost, "/api/notes", aliceToken, map[string]any{
		"title": "Private", "content": "Alice only",
	})
	var note entities.Note
	require.NoError(t, json.Unmarshal(env.Data, &note))

	t.Run("foreign get is 404", func(t *testing.T) {
		resp, env := server.request(t, http.MethodGet, "/api/notes/"+note.ID, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Note not found", env.Message)
	})

	t.Run("foreign update is 404", func(t *testing.T) {
		resp, _ := server.request(t, http.MethodPut, "/api/notes/"+note.ID, bobToken, map[string]any{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("foreign delete is 404", func(t *testing.T) {
		resp, _ := server.request(t, http.MethodDelete, "/api/notes/"+note.ID, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("foreign notes never listed", func(t *testing.T) {
		resp, env := server.request(t, http.MethodGet, "/api/notes", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, env.Count)
		assert.Equal(t, 0, *env.Count)
	})
}

func TestNotes_SearchAndTagFilter(t *testing.T) {
	server := newTestServer(t)
	token := server.register(t, "Alice", "alice@example.com", "secret123")

	seed := []map[string]any{
		{"title": "Meeting notes", "content": "c", "tags": []string{"work"}},
		{"title": "Groceries", "content": "c", "tags": []string{"home", "shopping"}},
		{"title": "Ideas", "content": "c", "tags": []string{"work", "brainstorm"}},
	}
	for _, body := range seed {
		resp, _ := server.request(t, http.MethodPost, "/api/notes", token, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	countOf := func(t *testing.T, path string) int {
		t.Helper()
		resp, env := server.request(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, env.Count)
		return *env.Count
	}

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		assert.Equal(t, 1, countOf(t, "/api/notes?search=MEETING"))
	})

	t.Run("search matches tags", func(t *testing.T) {
		assert.Equal(t, 1, countOf(t, "/api/notes?search=shop"))
	})

	t.Run("tag filter is exact", func(t *testing.T) {
		assert.Equal(t, 2, countOf(t, "/api/notes?tag=work"))
		assert.Equal(t, 0, countOf(t, "/api/notes?tag=wor"))
	})

	t.Run("search and tag are combined with AND", func(t *testing.T) {
		assert.Equal(t, 1, countOf(t, "/api/notes?search=ideas&tag=work"))
		assert.Equal(t, 0, countOf(t, "/api/notes?search=groceries&tag=work"))
	})

	t.Run("no matches is an empty list, not an error", func(t *testing.T) {
		assert.Equal(t, 0, countOf(t, "/api/notes?search=nothing-here"))
	})
}

// Список всегда отдает заметки от самой свежей по updated_at к самой старой.
func TestNotes_ListOrderedByUpdatedAt(t *testing.T) {
	server := newTestServer(t)
	token := server.register(t, "Alice", "alice@example.com", "secret123")

	createNote := func(t *testing.T, title string) entities.Note {
		t.Helper()
		resp, env := server.request(t, http.MethodPost, "/api/notes", token, map[string]any{
			"title": title, "content": "c",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var note entities.Note
		require.NoError(t, json.Unmarshal(env.Data, &note))
		return note
	}

	listTitles := func(t *testing.T) []string {
		t.Helper()
		resp, env := server.request(t, http.MethodGet, "/api/notes", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notes []entities.Note
		require.NoError(t, json.Unmarshal(env.Data, &notes))

		titles := make([]string, 0, len(notes))
		for _, note := range notes {
			titles = append(titles, note.Title)
		}
		return titles
	}

	first := createNote(t, "First")
	createNote(t, "Second")

	t.Run("newest note comes first", func(t *testing.T) {
		assert.Equal(t, []string{"Second", "First"}, listTitles(t))
	})

	t.Run("update advances updatedAt and moves the note to the front", func(t *testing.T) {
		resp, env := server.request(t, http.MethodPut, "/api/notes/"+first.ID, token, map[string]any{
			"content": "refreshed",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated entities.Note
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))
		assert.True(t, updated.CreatedAt.Equal(first.CreatedAt))

		assert.Equal(t, []string{"First", "Second"}, listTitles(t))
	})
}

func TestNotes_TagsEndpoint(t *testing.T) {
	server := newTestServer(t)
	token := server.register(t, "Alice", "alice@example.com", "secret123")

	seed := []map[string]any{
		{"title": "A", "content": "c", "tags": []string{"work", "ideas"}},
		{"title": "B", "content": "c", "tags": []string{"work", "home"}},
	}
	for _, body := range seed {
		resp, _ := server.request(t, http.MethodPost, "/api/notes", token, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, env := server.request(t, http.MethodGet, "/api/notes/tags/all", token, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)

	var tags []string
	require.NoError(t, json.Unmarshal(env.Data, &tags))
	assert.Equal(t, []string{"home", "ideas", "work"}, tags)
}

func TestUnknownRoute_HTTP(t *testing.T) {
	server := newTestServer(t)

	resp, env := server.request(t, http.MethodGet, "/api/unknown", "", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route not found", env.Message)
}
