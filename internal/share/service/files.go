package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/blob"
	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
	"github.com/aussiebroadwan/deptshare/pkg/idx"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"
)

// DefaultMaxFileSize is 10 MiB.
const DefaultMaxFileSize int64 = 10 << 20

// LocatorPrefix is prepended to a blob key to form a file's locator.
const LocatorPrefix = "/uploads/"

// allowedTypes maps accepted extensions to the content type recorded for them.
var allowedTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".txt":  "text/plain",
	".csv":  "text/csv",
}

// ContentTypeFor returns the content type for filename's extension, and false
// when the extension is not accepted.
func ContentTypeFor(filename string) (string, bool) {
	ct, ok := allowedTypes[strings.ToLower(filepath.Ext(filename))]
	return ct, ok
}

// UploadInput is one file as received from the caller.
type UploadInput struct {
	Filename string
	Size     int64 // as declared by the caller, -1 if unknown; the stored size is measured
	Body     io.Reader
}

type FileService struct {
	Store       store.Store
	Blobs       *blob.LocalStore
	Policy      AccessPolicy
	MaxFileSize int64
}

// List returns the files of the caller's department, newest first.
func (s *FileService) List(ctx context.Context, p domain.Principal) ([]domain.Resource, error) {
	dept, err := s.Policy.ListScope(p)
	if err != nil {
		return nil, err
	}

	files, err := s.Store.Resources().ListByDepartment(ctx, dept)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Upload stores a file in the caller's department. The body is written before
// the record; if the record cannot be written the body is removed again.
func (s *FileService) Upload(ctx context.Context, p domain.Principal, in UploadInput) (domain.Resource, error) {
	l := slogx.FromContext(ctx)

	dept, err := s.Policy.AuthorizeUpload(p)
	if err != nil {
		return domain.Resource{}, err
	}

	res, err := s.upload(ctx, p, dept, in)
	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, ErrNoFile), errors.Is(err, ErrUnsupportedFileType), errors.Is(err, ErrFileTooLarge):
			result = "rejected"
		}
		uploadsTotal.WithLabelValues(result).Inc()
		return domain.Resource{}, err
	}

	uploadsTotal.WithLabelValues("success").Inc()
	uploadedBytesTotal.Add(float64(res.Size))
	l.Info("file uploaded",
		slog.String("file_id", res.ID),
		slog.String("department", dept.String()),
		slog.Int64("size", res.Size),
	)
	return res, nil
}

func (s *FileService) upload(ctx context.Context, p domain.Principal, dept domain.Department, in UploadInput) (domain.Resource, error) {
	name := strings.TrimSpace(filepath.Base(in.Filename))
	if in.Body == nil || in.Size == 0 || name == "" || name == "." || name == string(filepath.Separator) {
		return domain.Resource{}, ErrNoFile
	}

	contentType, ok := ContentTypeFor(name)
	if !ok {
		return domain.Resource{}, ErrUnsupportedFileType
	}

	limit := s.maxFileSize()
	if in.Size > limit {
		return domain.Resource{}, ErrFileTooLarge
	}

	obj, err := s.Blobs.Put(ctx, io.LimitReader(in.Body, limit+1), name)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("store file body: %w", err)
	}
	if obj.Size > limit || obj.Size == 0 {
		s.discard(ctx, obj.Key)
		if obj.Size == 0 {
			return domain.Resource{}, ErrNoFile
		}
		return domain.Resource{}, ErrFileTooLarge
	}

	now := time.Now().UTC()
	res := domain.Resource{
		ID:           idx.New().String(),
		StoredName:   obj.Key,
		OriginalName: name,
		Locator:      LocatorPrefix + obj.Key,
		ContentType:  contentType,
		Size:         obj.Size,
		Checksum:     obj.Checksum,
		Department:   dept,
		OwnerID:      p.AccountID,
		CreatedAt:    now,
		UpdatedAt:    now,
		Owner: domain.Owner{
			FullName:   p.FullName,
			Identifier: p.Identifier,
		},
	}

	if err := s.Store.Resources().Create(ctx, res); err != nil {
		s.discard(ctx, obj.Key)
		return domain.Resource{}, fmt.Errorf("record file: %w", err)
	}
	return res, nil
}

// Get returns one file's metadata if the caller may see it.
func (s *FileService) Get(ctx context.Context, p domain.Principal, id string) (domain.Resource, error) {
	if err := s.Policy.RequireAuthenticated(p); err != nil {
		return domain.Resource{}, err
	}

	if !idx.Valid(id) {
		return domain.Resource{}, ErrFileNotFound
	}

	res, err := s.Store.Resources().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Resource{}, ErrFileNotFound
		}
		return domain.Resource{}, fmt.Errorf("get file: %w", err)
	}

	if err := s.Policy.AuthorizeRead(p, res); err != nil {
		slogx.FromContext(ctx).Warn("cross-department read denied",
			slog.String("file_id", id),
			slog.String("account_id", p.AccountID),
		)
		return domain.Resource{}, err
	}
	return res, nil
}

// Open returns a file's metadata and body. The caller closes the body.
func (s *FileService) Open(ctx context.Context, p domain.Principal, id string) (domain.Resource, io.ReadSeekCloser, error) {
	res, err := s.Get(ctx, p, id)
	if err != nil {
		return domain.Resource{}, nil, err
	}

	f, err := s.Blobs.Open(res.StoredName)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			slogx.FromContext(ctx).Error("file body missing", slog.String("file_id", id))
			return domain.Resource{}, nil, ErrFileNotFound
		}
		return domain.Resource{}, nil, fmt.Errorf("open file body: %w", err)
	}
	return res, f, nil
}

func (s *FileService) discard(ctx context.Context, key string) {
	if err := s.Blobs.Remove(key); err != nil {
		slogx.FromContext(ctx).Error("failed to remove orphaned file body",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func (s *FileService) maxFileSize() int64 {
	if s.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return s.MaxFileSize
}
