package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoTrueIdentityClientListUsers(t *testing.T) {
	pages := [][]IdentityUser{
		make([]IdentityUser, identityPageSize),
		{{ID: "identity-1", Email: "student@example.com"}},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		page := r.URL.Query().Get("page")
		users := []IdentityUser{}
		if page == "1" {
			users = pages[0]
		} else if page == "2" {
			users = pages[1]
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"users": users})
	}))
	defer server.Close()

	client := NewGoTrueIdentityClient(server.URL, "service-key")
	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, identityPageSize+1)
	require.Equal(t, "identity-1", users[identityPageSize].ID)
}

func TestGoTrueIdentityClientUpdatePassword(t *testing.T) {
	var gotPath, gotPassword string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPassword = body["password"]
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "{}")
	}))
	defer server.Close()

	client := NewGoTrueIdentityClient(server.URL, "service-key")
	err := client.UpdatePassword(context.Background(), "identity-1", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "/admin/users/identity-1", gotPath)
	require.Equal(t, "hunter22", gotPassword)
}

func TestGoTrueIdentityClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"forbidden"}`)
	}))
	defer server.Close()

	client := NewGoTrueIdentityClient(server.URL, "service-key")
	_, err := client.ListUsers(context.Background())
	require.Error(t, err)

	err = client.UpdatePassword(context.Background(), "identity-1", "hunter22")
	require.Error(t, err)

	unconfigured := NewGoTrueIdentityClient("", "")
	_, err = unconfigured.ListUsers(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}
