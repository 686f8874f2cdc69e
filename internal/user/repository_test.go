package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"teabloom-be/internal/recordstore"

	"github.com/stretchr/testify/assert"
)

func newStubStore(t *testing.T, handler http.HandlerFunc) Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRepository(recordstore.NewClient(srv.URL))
}

func TestRepository_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/collections/users/records", r.URL.Path)
			assert.Equal(t, "-created", r.URL.Query().Get("sort"))

			_, _ = w.Write([]byte(`{"page":1,"perPage":200,"totalItems":2,"items":[{"id":"u2","username":"theo","role":"admin"},{"id":"u1","username":"mira","role":"user"}]}`))
		})

		users, err := repo.List(context.Background())

		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "theo", users[0].Username)
		assert.True(t, users[0].IsAdmin())
		assert.False(t, users[1].IsAdmin())
	})

	t.Run("Error - Server Failure", func(t *testing.T) {
		repo := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
		})

		users, err := repo.List(context.Background())

		assert.Nil(t, users)
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/collections/users/records/u1", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":"u1","username":"mira","email":"mira@example.com","verified":true}`))
		})

		u, err := repo.GetByID(context.Background(), "u1")

		assert.NoError(t, err)
		assert.Equal(t, "mira", u.Username)
		assert.True(t, u.Verified)
	})

	t.Run("Maps 404 to ErrUserNotFound", func(t *testing.T) {
		repo := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
		})

		_, err := repo.GetByID(context.Background(), "ghost")
		assert.Equal(t, ErrUserNotFound, err)
	})
}
