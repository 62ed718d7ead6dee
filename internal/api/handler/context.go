package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/middleware"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const maxUploadFiles = 10

// ctxPrincipal returns the caller stored by the Authenticate middleware. Its
// absence means the route was registered without authentication.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

// bindAndValidate runs the echo binder then the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// formUploads opens the files sent under field. The returned closer must be
// called once the uploads have been consumed.
func formUploads(c echo.Context, field string) ([]ports.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "expected multipart form data")
	}

	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "at least one file is required in "+field)
	}
	if len(headers) > maxUploadFiles {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "too many files")
	}

	var files []io.Closer
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]ports.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read "+fh.Filename)
		}
		files = append(files, f)
		uploads = append(uploads, ports.Upload{Name: fh.Filename, Reader: f})
	}
	return uploads, closeAll, nil
}

const dateLayout = "2006-01-02"

// parseDate reads a calendar day in UTC. Values are validated with the
// datetime tag before this runs.
func parseDate(value string) time.Time {
	t, _ := time.ParseInLocation(dateLayout, value, time.UTC)
	return t
}
