package onecontext

import (
	"context"
	"net/http"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/internal/validation"
	"github.com/onecontext/onecontext-go/octypes"
)

// Service endpoints, relative to the base URL.
const (
	endpointContext        = "context"
	endpointChunkSearch    = "context/chunk/search"
	endpointChunk          = "context/chunk"
	endpointFile           = "context/file"
	endpointFileDownload   = "context/file/download"
	endpointUpdateUserMeta = "user/updateUserMeta"
)

// call sends one authenticated request and wraps transport failures with op.
func (c *Client) call(
	ctx context.Context,
	op, method, endpoint string,
	body any,
	contextName string,
) (*octypes.Response, error) {
	resp, err := c.api.Request(ctx, method, endpoint, body, nil)
	if err != nil {
		return nil, errors.NewContextError(op, contextName, err)
	}
	return resp, nil
}

// CreateContext creates a named context.
func (c *Client) CreateContext(ctx context.Context, in octypes.CreateContextInput) (*octypes.Response, error) {
	if err := validation.Struct("createContext", &in); err != nil {
		return nil, err
	}
	return c.call(ctx, "createContext", http.MethodPost, endpointContext, in, in.ContextName)
}

// DeleteContext deletes a context and everything uploaded to it.
func (c *Client) DeleteContext(ctx context.Context, in octypes.DeleteContextInput) (*octypes.Response, error) {
	if err := validation.Struct("deleteContext", &in); err != nil {
		return nil, err
	}
	return c.call(ctx, "deleteContext", http.MethodDelete, endpointContext, in, in.ContextName)
}

// ListContexts lists the contexts owned by the API key.
func (c *Client) ListContexts(ctx context.Context) (*octypes.Response, error) {
	return c.call(ctx, "listContexts", http.MethodGet, endpointContext, nil, "")
}
