package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"dining-reviews/internal/logging"
	"dining-reviews/internal/service"
)

const multipartMemory = 32 << 20

type ImageRequest struct {
	ID string `json:"id" validate:"required" example:"V1StGXR8_Z5jdHi6B-myT"`
}

type ImageResponse struct {
	ID string `json:"id" example:"V1StGXR8_Z5jdHi6B-myT"`
}

// imageError reports missing images as bad requests, as image clients expect.
func imageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "Image not exist")
		return
	}
	handleError(w, r, err)
}

// @Summary      Upload an image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  ImageResponse
// @Failure      400    {object}  ErrorResponse "Missing file"
// @Failure      413    {object}  ErrorResponse "File too large"
// @Failure      500    {object}  ErrorResponse "Internal Server Error"
// @Router       /image/create [post]
func (s *Server) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Storage.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image exceeds the upload limit")
			return
		}
		writeError(w, http.StatusBadRequest, "Error parsing multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, handler, err := r.FormFile("image")
	if err != nil {
		handleError(w, r, missingParam("image"))
		return
	}
	defer file.Close()

	img, err := s.services.Images.Upload(r.Context(), handler.Filename, handler.Header.Get("Content-Type"), file)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ImageResponse{ID: img.ID})
}

// @Summary      Download an image
// @Tags         images
// @Produce      octet-stream
// @Param        id   query     string  true  "Image ID"
// @Success      200  {file}    file
// @Failure      400  {object}  ErrorResponse "Missing id or image does not exist"
// @Failure      500  {object}  ErrorResponse "Internal Server Error"
// @Router       /image [get]
func (s *Server) GetImageHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		handleError(w, r, missingParam("id"))
		return
	}

	img, stream, err := s.services.Images.Open(r.Context(), id)
	if err != nil {
		imageError(w, r, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(img.Length, 10))
	if img.Filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": img.Filename}))
	}

	if _, err := io.Copy(w, stream); err != nil {
		logging.Warn().Err(err).Str("image_id", id).Msg("image stream interrupted")
	}
}

// @Summary      Delete an image
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        image  body      ImageRequest  true  "Image to delete"
// @Success      200    {object}  ImageResponse
// @Failure      400    {object}  ErrorResponse "Missing id or image does not exist"
// @Failure      500    {object}  ErrorResponse "Internal Server Error"
// @Router       /image/delete [delete]
func (s *Server) DeleteImageHandler(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.services.Images.Delete(r.Context(), req.ID); err != nil {
		imageError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ImageResponse{ID: req.ID})
}
