package onecontext

import (
	"context"
	"net/http"

	"github.com/onecontext/onecontext-go/internal/validation"
	"github.com/onecontext/onecontext-go/octypes"
)

// Search runs a hybrid semantic and full-text search over a context's chunks.
// The two rankings are fused with reciprocal rank fusion; unset weights
// default to 0.5 and RRFK to 60.
//
// Example:
//
//	resp, err := client.Search(ctx, octypes.SearchInput{
//	    Query:       "what is the refund policy?",
//	    ContextName: "handbook",
//	    TopK:        octypes.Int(10),
//	})
func (c *Client) Search(ctx context.Context, in octypes.SearchInput) (*octypes.Response, error) {
	if err := validation.ValidateSearch(&in); err != nil {
		return nil, err
	}
	return c.call(ctx, "search", http.MethodPost, endpointChunkSearch, in, in.ContextName)
}

// GetChunks retrieves chunks matching metadata filters, without a query.
func (c *Client) GetChunks(ctx context.Context, in octypes.GetChunksInput) (*octypes.Response, error) {
	if err := validation.ValidateGetChunks(&in); err != nil {
		return nil, err
	}
	return c.call(ctx, "getChunks", http.MethodPost, endpointChunk, in, in.ContextName)
}
