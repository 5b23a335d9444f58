package faculty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	experimentService = "atlas"
	accountService    = "hudson"

	DefaultDomain   = "services.cloud.my.faculty.ai"
	DefaultProtocol = "https"
)

type Config struct {
	Domain       string
	Protocol     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	// Transport is the round tripper used for all requests, including token
	// requests. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Session holds the authenticated HTTP client shared by the service clients.
type Session struct {
	config     Config
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewSession creates a session for the given configuration. When client
// credentials are configured, requests carry a bearer token obtained from the
// account service with the OAuth2 client-credentials grant.
func NewSession(ctx context.Context, logger *logrus.Logger, cfg Config) (*Session, error) {
	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}

	if cfg.Protocol == "" {
		cfg.Protocol = DefaultProtocol
	}

	if cfg.Protocol != "http" && cfg.Protocol != "https" {
		return nil, fmt.Errorf("unsupported protocol %q", cfg.Protocol)
	}

	if (cfg.ClientID == "") != (cfg.ClientSecret == "") {
		return nil, errors.New("client id and client secret must be configured together")
	}

	session := &Session{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		logger:     logger,
	}

	if cfg.ClientID != "" {
		credentials := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     session.serviceURL(accountService) + "/access_token",
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, session.httpClient)
		session.httpClient = credentials.Client(tokenCtx)
		session.httpClient.Timeout = cfg.Timeout
	}

	return session, nil
}

func (s *Session) serviceURL(service string) string {
	return fmt.Sprintf("%s://%s.%s", s.config.Protocol, service, s.config.Domain)
}

// Experiment returns a client for the experiment service.
func (s *Session) Experiment() *HTTPExperimentClient {
	return &HTTPExperimentClient{service: s.service(experimentService)}
}

// Account returns a client for the account service.
func (s *Session) Account() *HTTPAccountClient {
	return &HTTPAccountClient{service: s.service(accountService)}
}

func (s *Session) service(name string) serviceClient {
	return serviceClient{
		baseURL:    s.serviceURL(name),
		httpClient: s.httpClient,
		logger:     s.logger,
	}
}

type serviceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func (c serviceClient) url(segments ...string) (string, error) {
	joined, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return "", fmt.Errorf("failed to build url from %v: %w", segments, err)
	}

	return joined, nil
}

// do sends a JSON request and returns the raw response body of a 2xx reply.
// Any other reply is returned as an *HTTPError.
func (c serviceClient) do(ctx context.Context, method string, target string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	began := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, target, err)
	}

	c.logger.WithFields(logrus.Fields{
		"method":  method,
		"url":     target,
		"status":  resp.StatusCode,
		"elapsed": time.Since(began).String(),
	}).Debug("Faculty API request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newHTTPError(resp.StatusCode, responseBody)
	}

	return responseBody, nil
}

func (c serviceClient) doJSON(ctx context.Context, method string, target string, payload interface{}, out interface{}) error {
	body, err := c.do(ctx, method, target, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, target, err)
	}

	return nil
}
