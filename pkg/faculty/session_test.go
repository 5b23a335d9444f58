package faculty_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facultyai/mlflow-faculty/pkg/faculty"
)

const testDomain = "faculty.test"

// rewriteTransport sends every request to the test server while leaving the
// Host header untouched, so handlers can tell which service was addressed.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host

	return http.DefaultTransport.RoundTrip(req)
}

func newTestSession(t *testing.T, handler http.Handler, cfg faculty.Config) *faculty.Session {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	cfg.Domain = testDomain
	cfg.Protocol = "http"
	cfg.Transport = rewriteTransport{target: target}

	session, err := faculty.NewSession(context.Background(), logger, cfg)
	require.NoError(t, err)

	return session
}

func TestNewSessionValidation(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := faculty.NewSession(context.Background(), logger, faculty.Config{Protocol: "ftp"})
	require.ErrorContains(t, err, `unsupported protocol "ftp"`)

	_, err = faculty.NewSession(context.Background(), logger, faculty.Config{ClientID: "id"})
	require.ErrorContains(t, err, "must be configured together")

	_, err = faculty.NewSession(context.Background(), logger, faculty.Config{})
	require.NoError(t, err)
}

func TestSessionAuthenticatesWithClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/access_token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hudson."+testDomain, r.Host)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token": "token-value", "token_type": "bearer", "expires_in": 3600}`)
	})
	mux.HandleFunc("/authenticate", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-value" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"account": {"userId": "8fe6b0f9-1bd2-4b43-9e0a-6f1bb4a1e1c4", "username": "joe_bloggs"}}`)
	})

	session := newTestSession(t, mux, faculty.Config{ClientID: "client-id", ClientSecret: "client-secret"})

	userID, err := session.Account().AuthenticatedUserID(context.Background())
	require.NoError(t, err)
	require.Equal(t, "8fe6b0f9-1bd2-4b43-9e0a-6f1bb4a1e1c4", userID.String())
}
