package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MovieKeeper/internal/cli/api"
	"MovieKeeper/internal/cli/session"
	"MovieKeeper/internal/cli/state"
)

const testUserID = "7a3b7a2e-3a65-4a6e-b9a3-25a6dbd41111"
const serverMovieID = "4f7c3a1d-9a4b-4a8a-8c8e-6a8f9b3c2222"

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

// newMoviesAgainst wires a Movies use-case against a stub server.
func newMoviesAgainst(ts *httptest.Server) *Movies {
	return NewMovies(api.NewClient(ts.URL), state.NewCollection(), testUserID)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}

func TestMovies_RefreshReplacesCache(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/"+testUserID+"/movies", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("favorite"))
		assert.Equal(t, "title", r.URL.Query().Get("sort"))

		_ = json.NewEncoder(w).Encode(map[string]any{"items": []state.Snapshot{
			{ID: serverMovieID, Title: "Alien", IsFavorite: true},
		}})
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	m.Collection().ReplaceAll([]state.Snapshot{{ID: "stale", Title: "Stale"}})

	require.NoError(t, m.Refresh(context.Background(), boolptr(true), "title", ""))

	items := m.Collection().Items()
	require.Len(t, items, 1)
	assert.Equal(t, serverMovieID, items[0].ID)
	assert.Equal(t, "Alien", items[0].Title)
}

func TestMovies_AddReconcilesProvisionalEntry(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "the matrix", body["title"])
		// постер клиентский, на сервер не уходит
		assert.NotContains(t, body, "poster")

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(state.Snapshot{
			ID:    serverMovieID,
			Title: "The Matrix",
			Year:  strptr("1999"),
		})
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	got, err := m.Add(context.Background(), AddRequest{
		Title:  "the matrix",
		Year:   strptr("1999"),
		Poster: strptr("http://img/local.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, serverMovieID, got.ID)

	items := m.Collection().Items()
	require.Len(t, items, 1)
	assert.Equal(t, serverMovieID, items[0].ID)
	assert.Equal(t, "The Matrix", items[0].Title)
	// сервер не прислал постер, оптимистичный сохраняется
	require.NotNil(t, items[0].Poster)
	assert.Equal(t, "http://img/local.jpg", *items[0].Poster)
}

func TestMovies_AddFailureRemovesProvisionalEntry(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusConflict, "A movie with the same name already exists.")
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	m.Collection().ReplaceAll([]state.Snapshot{{ID: serverMovieID, Title: "The Matrix"}})

	_, err := m.Add(context.Background(), AddRequest{Title: "The Matrix"})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "A movie with the same name already exists.", apiErr.Message)

	// провизорная запись убрана, существующая не тронута
	items := m.Collection().Items()
	require.Len(t, items, 1)
	assert.Equal(t, serverMovieID, items[0].ID)
}

func TestMovies_FavoriteFailureRollsBack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	m.Collection().ReplaceAll([]state.Snapshot{{ID: serverMovieID, Title: "Alien", IsFavorite: false}})

	err := m.Favorite(context.Background(), serverMovieID, nil)
	require.Error(t, err)

	got, ok := m.Collection().Get(serverMovieID)
	require.True(t, ok)
	assert.False(t, got.IsFavorite, "флаг должен откатиться после ошибки")
	assert.Zero(t, m.Collection().PendingRollbacks())
}

func TestMovies_FavoriteConfirmedByServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/"+testUserID+"/movies/"+serverMovieID+"/favorite", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": serverMovieID, "isFavorite": true})
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	m.Collection().ReplaceAll([]state.Snapshot{{ID: serverMovieID, Title: "Alien"}})

	require.NoError(t, m.Favorite(context.Background(), serverMovieID, nil))

	got, _ := m.Collection().Get(serverMovieID)
	assert.True(t, got.IsFavorite)
	assert.Zero(t, m.Collection().PendingRollbacks())
}

func TestMovies_EditFailureRestoresSnapshot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "User movie not found")
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	m.Collection().ReplaceAll([]state.Snapshot{{
		ID: serverMovieID, Title: "Alien", Year: strptr("1979"), Genre: strptr("Horror"),
	}})

	err := m.Edit(context.Background(), serverMovieID, state.EditFields{Title: "Aliens"})
	require.Error(t, err)

	got, _ := m.Collection().Get(serverMovieID)
	assert.Equal(t, "Alien", got.Title)
	require.NotNil(t, got.Year)
	assert.Equal(t, "1979", *got.Year)
	require.NotNil(t, got.Genre)
	assert.Equal(t, "Horror", *got.Genre)
}

func TestMovies_DeleteWaitsForServerConfirmation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": serverMovieID, "deleted": true})
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	m.Collection().ReplaceAll([]state.Snapshot{{ID: serverMovieID, Title: "Alien"}})

	require.NoError(t, m.Delete(context.Background(), serverMovieID))
	assert.Empty(t, m.Collection().Items())
	assert.False(t, m.Collection().IsDeleting(serverMovieID))
}

func TestMovies_DeleteFailureKeepsEntry(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "User movie not found")
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	m.Collection().ReplaceAll([]state.Snapshot{{ID: serverMovieID, Title: "Alien"}})

	require.Error(t, m.Delete(context.Background(), serverMovieID))

	_, ok := m.Collection().Get(serverMovieID)
	assert.True(t, ok)
	assert.False(t, m.Collection().IsDeleting(serverMovieID))
}

// Операции над неподтверждёнными записями отклоняются локально,
// без единого сетевого вызова.
func TestMovies_TempIDRejectedWithoutNetwork(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	m := newMoviesAgainst(ts)
	tempID := state.TempID("a1b2c3")
	m.Collection().ReplaceAll([]state.Snapshot{{ID: tempID, Title: "Pending"}})

	assert.ErrorIs(t, m.Delete(context.Background(), tempID), ErrTempID)
	assert.ErrorIs(t, m.Favorite(context.Background(), tempID, boolptr(true)), ErrTempID)
	assert.ErrorIs(t, m.Edit(context.Background(), tempID, state.EditFields{Title: "Renamed"}), ErrTempID)

	assert.Zero(t, calls.Load())
	got, _ := m.Collection().Get(tempID)
	assert.Equal(t, "Pending", got.Title)
}

func TestSearch_PassesQueryAndPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(SearchResult{
			Items: []SearchItem{{OMDBID: "tt0133093", Title: "The Matrix", Year: "1999"}},
			Total: 11,
			Page:  2,
		})
	}))
	defer ts.Close()

	res, err := Search(context.Background(), api.NewClient(ts.URL), "matrix", 2)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "tt0133093", res.Items[0].OMDBID)
	assert.Equal(t, 11, res.Total)
}

func TestSearch_ServerErrorSurfaces(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadGateway, "metadata provider is unavailable")
	}))
	defer ts.Close()

	_, err := Search(context.Background(), api.NewClient(ts.URL), "matrix", 1)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestEnsureUser_SavesSession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/session/ensure-user", r.URL.Path)
		var body ensureUserBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body.Username)
		_ = json.NewEncoder(w).Encode(ensureUserResponse{UserID: testUserID, Username: "alice"})
	}))
	defer ts.Close()

	s, err := EnsureUser(context.Background(), api.NewClient(ts.URL), " alice ")
	require.NoError(t, err)
	assert.Equal(t, testUserID, s.UserID)

	loaded, err := (session.Store{}).Load()
	require.NoError(t, err)
	assert.Equal(t, testUserID, loaded.UserID)
	assert.Equal(t, "alice", loaded.Username)
}
