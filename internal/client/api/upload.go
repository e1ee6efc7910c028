package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// MultipartPayload assembles a multipart/form-data body from the given form
// fields plus a single file part. The returned content type carries the
// boundary and must be passed through RequestOptions.ContentType unchanged —
// callers never set a JSON content type on an upload.
func MultipartPayload(fields map[string]string, fileField, filename string, file io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copy file payload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart payload: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
