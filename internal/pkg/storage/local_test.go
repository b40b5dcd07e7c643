package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	key, err := s.Upload(ctx, strings.NewReader("receipt"), "receipts/c1/a.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "receipts/c1/a.pdf", key)
	assert.Equal(t, "http://localhost:8080/uploads/receipts/c1/a.pdf", s.URL(key))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(body))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_StaysInsideBase(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "..", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
