package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilRegisterer(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	// A nil collector must be usable.
	assert.NotPanics(t, func() {
		c.ObserveRequest("context", "GET", 200, time.Millisecond)
		c.ObserveFileUpload(10, nil)
		c.ObserveBatch(errors.New("x"))
	})
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.ObserveRequest("context", "POST", 200, 5*time.Millisecond)
	c.ObserveRequest("context", "POST", 200, 5*time.Millisecond)
	c.ObserveRequest("presigned-put", "PUT", 0, time.Millisecond)

	c.ObserveFileUpload(100, nil)
	c.ObserveFileUpload(50, nil)
	c.ObserveFileUpload(0, errors.New("put failed"))

	c.ObserveBatch(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("context", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("presigned-put", "PUT", "0")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.fileUploads.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fileUploads.WithLabelValues(ResultError)))
	assert.Equal(t, 150.0, testutil.ToFloat64(c.uploadedBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.batches.WithLabelValues(ResultOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.batches.WithLabelValues(ResultError)))
}
