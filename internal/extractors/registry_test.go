package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func TestRegistry_Supports(t *testing.T) {
	r := NewDefaultRegistry()

	assert.True(t, r.Supports("text/plain"))
	assert.True(t, r.Supports("text/csv"))
	assert.True(t, r.Supports("text/markdown"))
	assert.True(t, r.Supports("application/pdf"))
	assert.False(t, r.Supports("image/png"))
	assert.False(t, r.Supports(""))
}

func TestRegistry_Extract_UnsupportedType(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Extract(context.Background(), []byte("data"), "application/zip")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestRegistry_Extract_Plaintext(t *testing.T) {
	r := NewDefaultRegistry()

	text, err := r.Extract(context.Background(), []byte("hello\r\nworld"), "text/plain")

	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", text)
}

func TestPlaintext_InvalidUTF8(t *testing.T) {
	p := NewPlaintext()

	text, err := p.Extract(context.Background(), []byte{'o', 'k', 0xff, '!'})

	require.NoError(t, err)
	assert.Contains(t, text, "ok")
	assert.Contains(t, text, "!")
}

func TestPlaintext_CSV(t *testing.T) {
	p := NewPlaintext()

	text, err := p.Extract(context.Background(), []byte("name,age\nsam,3\n"))

	require.NoError(t, err)
	assert.Equal(t, "name,age\nsam,3\n", text)
}
