package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UploadHandler receives image uploads for products and the store profile.
type UploadHandler struct {
	uc usecase.UploadUsecase
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(uc usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// DeleteImageRequest names the image handle to remove.
type DeleteImageRequest struct {
	Path string `json:"path" query:"path"`
}

// Upload stores the multipart "file" under the "folder" form value.
// The result may be a locally encoded fallback; see entity.UploadResult.IsLocalOnly.
func (h *UploadHandler) Upload(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "MISSING_FILE", "Multipart field \"file\" is required")
	}

	file, err := readUpload(header)
	if err != nil {
		return response.BindingError(c, "INVALID_FILE", "Could not read uploaded file")
	}

	result, err := h.uc.UploadImage(c.Request().Context(), actor, file, c.FormValue("folder"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result, "Imagem enviada com sucesso")
}

// Delete removes an uploaded image by its path.
func (h *UploadHandler) Delete(c echo.Context) error {
	actor, err := middleware.Actor(c)
	if err != nil {
		return err
	}

	input := new(DeleteImageRequest)
	if err := c.Bind(input); err != nil || input.Path == "" {
		return response.BindingError(c, "INVALID_INPUT", "Image path is required")
	}

	if err := h.uc.DeleteImage(c.Request().Context(), actor, input.Path); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Imagem excluída com sucesso")
}

// readUpload loads the part into memory. Parts sent without a usable content type are sniffed.
func readUpload(header *multipart.FileHeader) (entity.UploadFile, error) {
	src, err := header.Open()
	if err != nil {
		return entity.UploadFile{}, errors.Wrap(err, "failed to open upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return entity.UploadFile{}, errors.Wrap(err, "failed to read upload")
	}

	contentType := header.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = mimetype.Detect(data).String()
	}

	return entity.UploadFile{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
