//go:build unit
// +build unit

package pdfinfo

import (
	"testing"

	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPages(t *testing.T) {
	counter := NewPageCounter()

	for _, pages := range []int{1, 3} {
		count, err := counter.CountPages(testutil.MinimalPDF(pages))
		require.NoError(t, err)
		assert.Equal(t, pages, count)
	}
}

func TestCountPages_NotPDF(t *testing.T) {
	counter := NewPageCounter()

	_, err := counter.CountPages([]byte("plain text"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestCountPages_Truncated(t *testing.T) {
	counter := NewPageCounter()

	_, err := counter.CountPages([]byte("%PDF-1.4\n1 0 obj\n"))
	assert.Error(t, err)
}
