package controllers

import (
	"io"
	"net/http"

	"github.com/lumina-accesorios/lumina-backend/api/responses"
	mediasvc "github.com/lumina-accesorios/lumina-backend/internal/media"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

// AdminUploadProductImage accepts a multipart upload under the "image" field,
// pipes it through the compression pipeline, and attaches it to the product.
func AdminUploadProductImage(svc mediasvc.Service, cfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image file is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading image file"))
			return
		}

		result, err := svc.UploadProductImage(r.Context(), productID, header.Header.Get("Content-Type"), data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
