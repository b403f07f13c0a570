package upload

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/internal/metrics"
	"github.com/onecontext/onecontext-go/internal/resolver"
	"github.com/onecontext/onecontext-go/internal/transport"
	"github.com/onecontext/onecontext-go/internal/validation"
	"github.com/onecontext/onecontext-go/octypes"
)

// Service endpoints used by a batch upload, relative to the base URL.
const (
	EndpointPresign         = "context/file/presigned-upload-url"
	EndpointProcessUploaded = "context/file/process-uploaded"
)

const op = "uploadFiles"

// Request describes one batch upload. Inputs are expected to be validated.
type Request struct {
	Files        []octypes.File
	ContextName  string
	MaxChunkSize int
	MetadataJSON map[string]any
}

// Outcome is the result of transferring one file to its presigned URL.
// Exactly one of Uploaded and Err is set.
type Outcome struct {
	// Name is the display name the file was presigned under
	Name string

	// Uploaded is the record sent for processing when the transfer succeeded
	Uploaded *octypes.UploadedFile

	// Err describes why the transfer failed; it wraps errors.ErrUploadFailed
	Err error

	// Bytes is the number of body bytes sent
	Bytes int64
}

// Config holds optional Uploader settings.
type Config struct {
	// Logger receives per-file failures and batch summaries
	Logger *slog.Logger

	// Metrics records per-file and per-batch results
	Metrics *metrics.Collector

	// Concurrency bounds in-flight transfers; 0 or less means one goroutine per file
	Concurrency int
}

// Uploader runs batch uploads.
type Uploader struct {
	api         transport.API
	resolver    *resolver.Resolver
	logger      *slog.Logger
	metrics     *metrics.Collector
	concurrency int
}

// New creates a new Uploader instance.
func New(api transport.API, res *resolver.Resolver, cfg Config) *Uploader {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Uploader{
		api:         api,
		resolver:    res,
		logger:      logger,
		metrics:     cfg.Metrics,
		concurrency: cfg.Concurrency,
	}
}

// Upload runs a batch and returns the process-uploaded response unchanged.
//
// It returns ErrPresignRequestFailed or ErrInvalidServerResponse when no
// usable presigned URLs were issued, and ErrNoFilesUploaded when every
// transfer failed. Which files failed is only reported through the logger
// and metrics.
func (u *Uploader) Upload(ctx context.Context, req Request) (*octypes.Response, error) {
	start := time.Now()

	resp, err := u.upload(ctx, req)
	u.metrics.ObserveBatch(err)
	if err != nil {
		u.logger.Error("upload batch failed",
			slog.String("context", req.ContextName),
			slog.Int("files", len(req.Files)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	u.logger.Debug("upload batch complete",
		slog.String("context", req.ContextName),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func (u *Uploader) upload(ctx context.Context, req Request) (*octypes.Response, error) {
	names := make([]string, len(req.Files))
	for i, f := range req.Files {
		names[i] = resolver.DisplayName(f)
	}

	slots, err := u.presign(ctx, names, req.ContextName)
	if err != nil {
		return nil, err
	}

	outcomes := u.transferAll(ctx, req, names, slots)

	uploaded := make([]octypes.UploadedFile, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Uploaded != nil {
			uploaded = append(uploaded, *o.Uploaded)
		}
	}

	u.logger.Info("files uploaded",
		slog.String("context", req.ContextName),
		slog.Int("succeeded", len(uploaded)),
		slog.Int("failed", len(outcomes)-len(uploaded)),
	)

	if len(uploaded) == 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.NewContextError(op, req.ContextName, ctxErr)
		}
		return nil, errors.NewContextError(op, req.ContextName, errors.ErrNoFilesUploaded)
	}

	resp, err := u.api.Request(ctx, http.MethodPost, EndpointProcessUploaded, octypes.ProcessUploadedRequest{
		Files:        uploaded,
		ContextName:  req.ContextName,
		MaxChunkSize: req.MaxChunkSize,
	}, nil)
	if err != nil {
		return nil, errors.NewContextError(op, req.ContextName, err)
	}

	return resp, nil
}

// presign requests one slot per name and checks the slots line up with names.
func (u *Uploader) presign(ctx context.Context, names []string, contextName string) ([]octypes.PresignedSlot, error) {
	resp, err := u.api.Request(ctx, http.MethodPost, EndpointPresign, octypes.PresignRequest{
		FileNames:   names,
		ContextName: contextName,
	}, nil)
	if err != nil {
		return nil, errors.NewContextError(op, contextName, err)
	}
	if !resp.OK() {
		return nil, errors.NewContextError(op, contextName, errors.ErrPresignRequestFailed).
			WithMessage(fmt.Sprintf("service returned %d: %s", resp.StatusCode, resp.String()))
	}

	var slots []octypes.PresignedSlot
	if err := resp.Decode(&slots); err != nil {
		return nil, errors.NewContextError(op, contextName, errors.ErrInvalidServerResponse).
			WithMessage(err.Error())
	}

	if err := validation.ValidatePresignResponse(slots, len(names)); err != nil {
		var opErr *errors.Error
		if stderrors.As(err, &opErr) {
			return nil, opErr.WithContext(contextName)
		}
		return nil, err
	}

	return slots, nil
}

// transferAll sends every file to its slot and returns the outcomes in
// request order. It never returns early: every file is attempted.
func (u *Uploader) transferAll(
	ctx context.Context,
	req Request,
	names []string,
	slots []octypes.PresignedSlot,
) []Outcome {
	outcomes := make([]Outcome, len(req.Files))

	var sem chan struct{}
	if u.concurrency > 0 {
		sem = make(chan struct{}, u.concurrency)
	}

	var wg sync.WaitGroup
	for i := range req.Files {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					outcomes[i] = u.failed(req.ContextName, names[i], 0, ctx.Err())
					return
				}
			}

			outcomes[i] = u.transfer(ctx, req, req.Files[i], names[i], slots[i])
		}()
	}
	wg.Wait()

	return outcomes
}

// transfer resolves one file and sends it to its presigned URL.
func (u *Uploader) transfer(
	ctx context.Context,
	req Request,
	file octypes.File,
	name string,
	slot octypes.PresignedSlot,
) Outcome {
	res, err := u.resolver.Resolve(file, name)
	if err != nil {
		return u.failed(req.ContextName, name, 0, err)
	}

	body := &countingReader{r: res.Body}
	resp, err := u.api.Put(ctx, slot.PresignedURL, res.ContentType, body, res.Size)
	if err != nil {
		return u.failed(req.ContextName, name, body.n, err)
	}
	if !resp.OK() {
		return u.failed(req.ContextName, name, body.n, fmt.Errorf("presigned upload returned %d", resp.StatusCode))
	}

	u.metrics.ObserveFileUpload(body.n, nil)
	return Outcome{
		Name:  name,
		Bytes: body.n,
		Uploaded: &octypes.UploadedFile{
			FileID:       slot.FileID,
			FileName:     name,
			FileType:     res.ContentType,
			GCSURI:       slot.GCSURI,
			MetadataJSON: req.MetadataJSON,
		},
	}
}

// failed records and logs a per-file failure.
func (u *Uploader) failed(contextName, name string, sent int64, cause error) Outcome {
	err := &errors.Error{
		Op:          op,
		ContextName: contextName,
		File:        name,
		Err:         fmt.Errorf("%w: %w", errors.ErrUploadFailed, cause),
	}

	u.metrics.ObserveFileUpload(sent, err)
	u.logger.Warn("file upload failed",
		slog.String("context", contextName),
		slog.String("file", name),
		slog.String("error", cause.Error()),
	)

	return Outcome{Name: name, Err: err, Bytes: sent}
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
