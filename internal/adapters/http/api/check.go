package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/okian/smurfwatch/internal/adapters/sheet"
	service "github.com/okian/smurfwatch/internal/app"
	"github.com/okian/smurfwatch/pkg/logger"
)

const (
	defaultMaxUploadBytes = 10 << 20
	uploadField           = "file"
	rawUploadName         = "upload.csv"
	batchIDHeader         = "X-Batch-ID"
)

// CheckHandler handles spreadsheet uploads.
type CheckHandler struct {
	factory        CheckerFactory
	maxUploadBytes int64
	column         string
	logger         logger.Logger
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(factory CheckerFactory, o serverOptions) *CheckHandler {
	return &CheckHandler{
		factory:        factory,
		maxUploadBytes: o.maxUploadBytes,
		column:         o.column,
		logger:         o.logger,
	}
}

// checkResponse is the JSON shape of POST /check.
type checkResponse struct {
	Column string `json:"column"`
	service.Report
}

// HandleCheck handles POST /check requests. The table is either the "file"
// field of a multipart form or the raw CSV request body.
func (h *CheckHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	const op = "api.check"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()

	format := sheet.Format(strings.ToLower(strings.TrimSpace(q.Get("format"))))
	switch format {
	case "":
		format = sheet.FormatJSON
	case sheet.FormatJSON, sheet.FormatCSV:
	default:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, invalidParam("format", string(format))))
		return
	}

	params, err := paramsFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	name, body, err := h.upload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrReadUpload, err))
		return
	}
	defer func() { _ = body.Close() }()

	table, err := sheet.Read(ctx, name, body, q.Get("sheet"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrReadUpload, err))
		return
	}

	column := q.Get("column")
	if column == "" {
		column = h.column
	}
	col, err := sheet.DetectColumn(table, column)
	if err != nil {
		writeError(w, http.StatusBadRequest, "no_column", err)
		return
	}

	checker, err := h.factory(params)
	if err != nil {
		if errors.Is(err, service.ErrMissingAPIKey) {
			writeError(w, http.StatusUnauthorized, "missing_api_key", err)
			return
		}
		h.logger.Error(ctx, "failed to build checker", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
		return
	}

	h.logger.Info(ctx, "checking upload",
		logger.String("file", name),
		logger.String("column", table.Header[col]),
		logger.Int("rows", len(table.Rows)),
	)
	rep := checker.CheckAll(ctx, table.Values(col), nil)
	w.Header().Set(batchIDHeader, rep.BatchID)

	if format == sheet.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": sheet.ResultFileName}))
		w.WriteHeader(http.StatusOK)
		if err := sheet.WriteCSV(w, rep.Rows, rep.Acts); err != nil {
			h.logger.Warn(ctx, "failed to write csv result", logger.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{Column: table.Header[col], Report: rep})
}

// upload returns the uploaded file name and content.
func (h *CheckHandler) upload(r *http.Request) (string, io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return rawUploadName, r.Body, nil
	}
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return "", nil, err
	}
	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		return "", nil, err
	}
	return hdr.Filename, f, nil
}
