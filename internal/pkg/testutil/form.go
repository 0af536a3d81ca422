package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewUploadRequest builds a multipart request carrying one file under fileField plus plain form fields.
func NewUploadRequest(t *testing.T, target, fileField, fileName string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)

		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// NewFileHeader parses a single file part into a *multipart.FileHeader, as gin's FormFile would.
func NewFileHeader(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	req := NewUploadRequest(t, "/upload", "file", fileName, content, nil)
	require.NoError(t, req.ParseMultipartForm(32<<20))

	headers := req.MultipartForm.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}
