package faculty_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facultyai/mlflow-faculty/pkg/faculty"
)

func TestAuthenticatedUserID(t *testing.T) {
	session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hudson."+testDomain, r.Host)
		assert.Equal(t, "/authenticate", r.URL.Path)
		_, _ = io.WriteString(w, `{"account": {"userId": "0b6c3b55-6a2c-4c3f-8ae4-2d3d7f3f1f0e", "username": "joe_bloggs"}}`)
	}), faculty.Config{})

	userID, err := session.Account().AuthenticatedUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0b6c3b55-6a2c-4c3f-8ae4-2d3d7f3f1f0e", userID.String())
}

func TestAuthenticatedUserIDErrors(t *testing.T) {
	scenarios := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error": "Invalid token", "errorCode": "unauthorized"}`,
			check: func(t *testing.T, err error) {
				var httpErr *faculty.HTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
				assert.Equal(t, "Invalid token", httpErr.Message)
				assert.Equal(t, "unauthorized", httpErr.ErrorCode)
			},
		},
		{
			name:   "missing user id",
			status: http.StatusOK,
			body:   `{"account": {}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "no account.userId")
			},
		},
		{
			name:   "malformed user id",
			status: http.StatusOK,
			body:   `{"account": {"userId": "not-a-uuid"}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, `invalid user id "not-a-uuid"`)
			},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(scenario.status)
				_, _ = io.WriteString(w, scenario.body)
			}), faculty.Config{})

			_, err := session.Account().AuthenticatedUserID(context.Background())
			require.Error(t, err)
			scenario.check(t, err)
		})
	}
}
