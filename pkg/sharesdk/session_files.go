package sharesdk

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// ListFiles lists the files of the session's department, newest first.
func (s *Session) ListFiles(ctx context.Context) (*FilesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/files", nil, nil)
	if err != nil {
		return nil, err
	}

	var out FilesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// UploadFile uploads content as filename. The file is shared with the
// session's department.
func (s *Session) UploadFile(ctx context.Context, filename string, content io.Reader) (*UploadResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, content)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	headers := map[string]string{"Content-Type": mw.FormDataContentType()}
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/files", pr, headers)
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}

	var out UploadResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetFile returns the metadata of one file.
func (s *Session) GetFile(ctx context.Context, id string) (*File, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/files/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out File
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// DownloadFile copies the content of one file to w and returns the number of
// bytes written.
func (s *Session) DownloadFile(ctx context.Context, id string, w io.Writer) (int64, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/files/"+url.PathEscape(id)+"/content", nil, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return 0, parseErrorResponse(resp, bodyBytes)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read file content: %w", err)
	}
	return n, nil
}
