package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
	"github.com/JonnyRank/bigdataball-data/internal/usecase"
)

const maxJobRequestBytes = 64 << 10

type ViewReader interface {
	ReadView(ctx context.Context, name string) (summary.Extract, error)
}

type PipelineRunner interface {
	Run(ctx context.Context, input usecase.PipelineInput) (usecase.PipelineResult, error)
}

type Handler struct {
	views     ViewReader
	pipeline  PipelineRunner
	base      usecase.PipelineInput
	logger    *logging.Logger
	validator *validator.Validate
}

// NewHandler serves views from views and triggers pipeline runs built from
// base; a job request only toggles sync and export.
func NewHandler(views ViewReader, pipeline PipelineRunner, base usecase.PipelineInput, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		views:     views,
		pipeline:  pipeline,
		base:      base,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type viewQuery struct {
	Name  string `validate:"required,startswith=vw_"`
	Limit int    `validate:"gte=0,lte=10000"`
}

type viewDTO struct {
	View    string              `json:"view"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Total   int                 `json:"total"`
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetView")
	defer span.End()

	query := viewQuery{Name: strings.TrimSpace(r.PathValue("view"))}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		query.Limit = limit
	}
	if err := h.validator.StructCtx(ctx, query); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	extract, err := h.views.ReadView(ctx, query.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "read view failed", "view", query.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toViewDTO(query.Name, extract, query.Limit))
}

func toViewDTO(name string, extract summary.Extract, limit int) viewDTO {
	rows := extract.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := viewDTO{
		View:    name,
		Columns: extract.Columns,
		Rows:    make([]map[string]string, 0, len(rows)),
		Total:   len(extract.Rows),
	}
	for _, row := range rows {
		item := make(map[string]string, len(extract.Columns))
		for i, col := range extract.Columns {
			if i < len(row) {
				item[col] = row[i]
			}
		}
		out.Rows = append(out.Rows, item)
	}
	return out
}

type pipelineJobRequest struct {
	SkipSync bool `json:"skip_sync"`
	Export   bool `json:"export"`
}

// RunPipelineJob runs the pipeline synchronously. The run is detached from
// the request context so a dropped caller cannot stop it between files.
func (h *Handler) RunPipelineJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPipelineJob")
	defer span.End()

	req, err := decodePipelineJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := h.base
	input.SkipSync = input.SkipSync || req.SkipSync
	input.Export = req.Export

	result, err := h.pipeline.Run(context.WithoutCancel(ctx), input)
	if err != nil {
		h.logger.WarnContext(ctx, "run pipeline job failed", "run_id", result.RunID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodePipelineJobRequest(r *http.Request) (pipelineJobRequest, error) {
	var req pipelineJobRequest
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxJobRequestBytes))
	if err != nil {
		return req, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return req, nil
	}
	if err := sonic.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: invalid JSON body", usecase.ErrInvalidInput)
	}
	return req, nil
}
