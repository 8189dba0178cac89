package http

import (
	"errors"
	"mime"
	"net/http"

	"github.com/aussiebroadwan/deptshare/internal/share/service"
	"github.com/aussiebroadwan/deptshare/pkg/httpx"
	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
)

// multipartOverhead is allowed on top of the file size limit for boundaries
// and part headers.
const multipartOverhead = 1 << 20

// multipartMemory is how much of a form is held in memory before spilling
// to a temporary file.
const multipartMemory = 1 << 20

type FilesHandler struct {
	FileService *service.FileService
}

// HandleList lists the files of the caller's department.
//
//	@Summary		List files
//	@Description	Lists every file uploaded by the caller's department, newest first.
//	@Tags			Files
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	sharesdk.FilesResponse	"Files of the caller's department"
//	@Failure		401	{object}	sharesdk.ErrorResponse	"Missing or invalid token"
//	@Router			/v1/files [get].
func (h *FilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	files, err := h.FileService.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sharesdk.FilesResponse{Files: toFiles(files)})
}

// HandleUpload stores a file for the caller's department.
//
//	@Summary		Upload a file
//	@Description	Accepts one multipart field named "file". Allowed types are images, PDF, Office documents, text and CSV.
//	@Tags			Files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file					true	"File to upload"
//	@Success		201		{object}	sharesdk.UploadResponse	"File stored"
//	@Failure		400		{object}	sharesdk.ErrorResponse	"No file, invalid type or too large"
//	@Failure		401		{object}	sharesdk.ErrorResponse	"Missing or invalid token"
//	@Router			/v1/files [post].
func (h *FilesHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize()+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, service.ErrFileTooLarge)
			return
		}
		writeError(w, r, service.ErrNoFile)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, service.ErrNoFile)
		return
	}
	defer f.Close()

	res, err := h.FileService.Upload(r.Context(), p, service.UploadInput{
		Filename: hdr.Filename,
		Size:     hdr.Size,
		Body:     f,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sharesdk.UploadResponse{
		Message: "File uploaded successfully",
		File:    toFile(res),
	})
}

// HandleGet returns one file's metadata.
//
//	@Summary		Get file metadata
//	@Tags			Files
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"File ID"
//	@Success		200	{object}	sharesdk.File			"File metadata"
//	@Failure		401	{object}	sharesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	sharesdk.ErrorResponse	"File belongs to another department"
//	@Failure		404	{object}	sharesdk.ErrorResponse	"File not found"
//	@Router			/v1/files/{id} [get].
func (h *FilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.FileService.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toFile(res))
}

// HandleContent streams a file's content as an attachment.
//
//	@Summary		Download a file
//	@Tags			Files
//	@Produce		octet-stream
//	@Security		BearerAuth
//	@Param			id	path		string					true	"File ID"
//	@Success		200	{file}		binary					"File content"
//	@Failure		401	{object}	sharesdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	sharesdk.ErrorResponse	"File belongs to another department"
//	@Failure		404	{object}	sharesdk.ErrorResponse	"File not found"
//	@Router			/v1/files/{id}/content [get].
func (h *FilesHandler) HandleContent(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, body, err := h.FileService.Open(r.Context(), p, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer body.Close()

	httpx.NoCache(w)
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": res.OriginalName,
	}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, "", res.CreatedAt, body)
}

func (h *FilesHandler) maxFileSize() int64 {
	if h.FileService.MaxFileSize > 0 {
		return h.FileService.MaxFileSize
	}
	return service.DefaultMaxFileSize
}
