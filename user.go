package onecontext

import (
	"context"
	"net/http"

	"github.com/onecontext/onecontext-go/internal/validation"
	"github.com/onecontext/onecontext-go/octypes"
)

// SetOpenAIKey stores an OpenAI API key on the account, for use by the
// service when embedding uploaded files.
func (c *Client) SetOpenAIKey(ctx context.Context, in octypes.SetOpenAIKeyInput) (*octypes.Response, error) {
	if err := validation.Struct("setOpenAIKey", &in); err != nil {
		return nil, err
	}
	return c.call(ctx, "setOpenAIKey", http.MethodPost, endpointUpdateUserMeta, in, "")
}
