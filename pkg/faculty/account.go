package faculty

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type AccountClient interface {
	AuthenticatedUserID(ctx context.Context) (uuid.UUID, error)
}

type HTTPAccountClient struct {
	service serviceClient
}

var _ AccountClient = (*HTTPAccountClient)(nil)

// AuthenticatedUserID returns the id of the user the session authenticates as.
func (c *HTTPAccountClient) AuthenticatedUserID(ctx context.Context) (uuid.UUID, error) {
	target, err := c.service.url("authenticate")
	if err != nil {
		return uuid.Nil, err
	}

	body, err := c.service.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return uuid.Nil, err
	}

	userID := gjson.GetBytes(body, "account.userId")
	if !userID.Exists() {
		return uuid.Nil, fmt.Errorf("authentication response has no account.userId: %s", body)
	}

	id, err := uuid.Parse(userID.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", userID.String(), err)
	}

	return id, nil
}
