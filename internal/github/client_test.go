package github

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListUserRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "Promptfolio-Universe", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))

		_, _ = io.WriteString(w, `[
			{"id":1,"name":"hello","description":"hi","html_url":"https://github.com/octocat/hello","homepage":null,"language":"Go","stargazers_count":3,"fork":false},
			{"id":2,"name":"forked","description":null,"html_url":"https://github.com/octocat/forked","homepage":"","language":null,"stargazers_count":0,"fork":true}
		]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "gh-token", time.Second)
	repos, err := client.ListUserRepos(context.Background(), "octocat")

	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, int64(1), repos[0].ID)
	assert.Equal(t, "Go", *repos[0].Language)
	assert.Nil(t, repos[0].Homepage)
	assert.True(t, repos[1].Fork)
	assert.Nil(t, repos[1].Description)
}

func TestClient_ListUserRepos_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.ListUserRepos(context.Background(), "ghost")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, map[string]any{"message": "Not Found"}, apiErr.Body)
	assert.Equal(t, "GitHub API error: 404", apiErr.Error())
}

func TestClient_ListUserRepos_UnparsableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.ListUserRepos(context.Background(), "octocat")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, map[string]any{}, apiErr.Body)
}
