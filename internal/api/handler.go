package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eugenenazirov/knapsack/internal/knapsack"
	"github.com/eugenenazirov/knapsack/internal/runner"
	"github.com/eugenenazirov/knapsack/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the solver runner and item storage into HTTP handlers.
type Handler struct {
	runner   *runner.Runner
	storage  storage.Storage
	validate *validator.Validate

	clock func() time.Time

	mu             sync.RWMutex
	itemsUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(run *runner.Runner, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		runner:   run,
		storage:  store,
		validate: newValidator(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.itemsUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetItems(w http.ResponseWriter, r *http.Request) {
	_ = r
	sizes, err := h.storage.GetItemSizes()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := itemsResponse{
		ItemSizes: sizes,
		Items:     knapsack.NewItems(sizes),
		UpdatedAt: h.currentItemsUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutItems(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item sizes", describeValidationError(err))
		return
	}

	if err := h.storage.SetItemSizes(req.ItemSizes); err != nil {
		if errors.Is(err, storage.ErrInvalidItemSizes) {
			writeError(w, http.StatusBadRequest, "Invalid item sizes", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markItemsUpdated()

	sizes, err := h.storage.GetItemSizes()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := itemsResponse{
		ItemSizes: sizes,
		Items:     knapsack.NewItems(sizes),
		UpdatedAt: h.currentItemsUpdatedAt(),
		Message:   "Item sizes updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", describeValidationError(err))
		return
	}

	algorithms := make([]knapsack.Algorithm, 0, len(req.Algorithms))
	for _, name := range req.Algorithms {
		algorithm, err := knapsack.ParseAlgorithm(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if slices.Contains(algorithms, algorithm) {
			writeError(w, http.StatusBadRequest, "Invalid request", fmt.Sprintf("algorithm %q requested more than once", algorithm))
			return
		}
		algorithms = append(algorithms, algorithm)
	}

	// An absent itemSizes solves the stored set; an explicit empty list is the empty instance.
	var sizes []int
	if req.ItemSizes != nil {
		sizes = *req.ItemSizes
	} else {
		stored, err := h.storage.GetItemSizes()
		if err != nil {
			writeInternalError(w, err)
			return
		}
		sizes = stored
	}

	capacity := *req.Capacity
	results, err := h.runner.Run(knapsack.NewItems(sizes), capacity, algorithms...)
	if err != nil {
		switch {
		case errors.Is(err, knapsack.ErrTooManyItems):
			suggestion := fmt.Sprintf("Use the dp algorithm only or reduce the item set (currently %d items)", len(sizes))
			writeError(w, http.StatusUnprocessableEntity, "Instance too large", err.Error(), suggestion)
		case errors.Is(err, knapsack.ErrCapacityTooLarge):
			writeError(w, http.StatusUnprocessableEntity, "Instance too large", err.Error(), "Reduce the capacity or the number of items")
		case errors.Is(err, knapsack.ErrInvalidCapacity),
			errors.Is(err, knapsack.ErrInvalidItemSize),
			errors.Is(err, knapsack.ErrUnknownAlgorithm):
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		default:
			writeInternalError(w, err)
		}
		return
	}

	resp := solveResponse{
		Capacity:  capacity,
		ItemCount: len(sizes),
		Results:   make([]solveResult, 0, len(results)),
	}
	for _, res := range results {
		items := res.Solution.Items()
		if items == nil {
			items = []knapsack.Item{}
		}
		resp.Results = append(resp.Results, solveResult{
			Algorithm: string(res.Algorithm),
			Label:     res.Label,
			Items:     items,
			TotalSize: res.Solution.TotalSize(),
			ElapsedNs: res.Elapsed.Nanoseconds(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentItemsUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.itemsUpdatedAt
}

func (h *Handler) markItemsUpdated() {
	h.mu.Lock()
	h.itemsUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type itemsRequest struct {
	ItemSizes []int `json:"itemSizes" validate:"required,min=1,max=1000,dive,gt=0"`
}

type solveRequest struct {
	Capacity   *int     `json:"capacity" validate:"required,gte=0"`
	Algorithms []string `json:"algorithms" validate:"omitempty,max=2,unique"`
	ItemSizes  *[]int   `json:"itemSizes" validate:"omitempty,max=1000,dive,gt=0"`
}

type solveResponse struct {
	Capacity  int           `json:"capacity"`
	ItemCount int           `json:"itemCount"`
	Results   []solveResult `json:"results"`
}

type solveResult struct {
	Algorithm string          `json:"algorithm"`
	Label     string          `json:"label"`
	Items     []knapsack.Item `json:"items"`
	TotalSize int             `json:"totalSize"`
	ElapsedNs int64           `json:"elapsedNs"`
}

type itemsResponse struct {
	ItemSizes []int           `json:"itemSizes"`
	Items     []knapsack.Item `json:"items"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Message   string          `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
