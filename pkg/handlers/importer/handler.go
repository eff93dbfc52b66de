package importer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/assetorbit/engine/pkg/adapters"
	"github.com/assetorbit/engine/pkg/models/api"
	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/catalog"
	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/services/transform"
)

type Handler struct {
	registry transform.Registry
	engine   *rules.Engine
	catalog  catalog.Service
}

func NewHandler(registry transform.Registry, engine *rules.Engine, cat catalog.Service) *Handler {
	return &Handler{
		registry: registry,
		engine:   engine,
		catalog:  cat,
	}
}

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	var response []api.Source
	for _, src := range h.registry.Sources() {
		response = append(response, api.Source{ID: string(src)})
	}
	writeJSON(r.Context(), w, response)
}

func (h *Handler) GetColumnMappings(w http.ResponseWriter, r *http.Request) {
	src := domain.Source(chi.URLParam(r, "source"))

	mappings, err := h.registry.ColumnMappings(src)
	if err != nil {
		h.writeRegistryError(w, r, err)
		return
	}

	response := make([]api.ColumnMapping, 0, len(mappings))
	for _, m := range mappings {
		response = append(response, adapters.MapColumnMappingDomainToApi(m))
	}
	writeJSON(r.Context(), w, response)
}

func (h *Handler) TransformRows(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	src := domain.Source(chi.URLParam(r, "source"))

	var req api.TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rows := make([]*domain.RawRow, len(req.Rows))
	for i, columns := range req.Rows {
		rows[i] = domain.RawRowFrom(columns)
	}

	results, err := h.registry.TransformBatch(ctx, src, rows)
	if err != nil {
		h.writeRegistryError(w, r, err)
		return
	}

	response := api.TransformResponse{
		Source:  string(src),
		Results: make([]api.TransformationResult, 0, len(results)),
	}
	for _, res := range results {
		response.Results = append(response.Results, adapters.MapTransformationResultDomainToApi(res))
	}
	writeJSON(ctx, w, response)
}

func (h *Handler) ValidateFields(w http.ResponseWriter, r *http.Request) {
	src := domain.Source(chi.URLParam(r, "source"))

	var req api.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registry.Validate(src, adapters.MapApiDirectFieldsToDomain(req.DirectFields))
	if err != nil {
		h.writeRegistryError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, adapters.MapValidationResultDomainToApi(result))
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ruleSet, err := h.resolveRules(r, req.Rules)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bags := make([]domain.FieldBag, len(req.Assets))
	for i, fields := range req.Assets {
		bags[i] = domain.NewFieldBag(fields)
	}

	classifications, err := h.engine.ClassifyBatch(ctx, bags, ruleSet)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("classification aborted")
		writeError(w, http.StatusInternalServerError, "classification aborted")
		return
	}

	response := api.ClassifyResponse{
		Results: make([]api.Classification, 0, len(classifications)),
	}
	for _, c := range classifications {
		response.Results = append(response.Results, adapters.MapClassificationDomainToApi(c))
	}
	writeJSON(ctx, w, response)
}

func (h *Handler) TestRule(w http.ResponseWriter, r *http.Request) {
	var req api.RuleTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	op := domain.Operator(req.Operator)
	if !op.Valid() {
		writeError(w, http.StatusBadRequest, "unknown operator "+req.Operator)
		return
	}

	result := h.engine.TestRule(domain.RuleCondition{
		SourceField: req.SourceField,
		Operator:    op,
		Value:       req.Value,
	}, domain.NewFieldBag(req.Sample))

	writeJSON(r.Context(), w, adapters.MapRuleTestDomainToApi(result))
}

// resolveRules uses rules supplied inline, falling back to the stored active
// rule set.
func (h *Handler) resolveRules(r *http.Request, supplied []api.Rule) ([]domain.WorkloadCategoryRule, error) {
	if len(supplied) == 0 {
		return h.catalog.ActiveRules(r.Context())
	}

	ruleSet := make([]domain.WorkloadCategoryRule, 0, len(supplied))
	for _, apiRule := range supplied {
		rule, err := adapters.MapApiRuleToDomain(apiRule)
		if err != nil {
			return nil, err
		}
		ruleSet = append(ruleSet, rule)
	}
	return ruleSet, nil
}

func (h *Handler) writeRegistryError(w http.ResponseWriter, r *http.Request, err error) {
	var unsupported *transform.UnsupportedSourceError
	if errors.As(err, &unsupported) {
		writeError(w, http.StatusNotFound, unsupported.Error())
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("registry call failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(ctx context.Context, w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
