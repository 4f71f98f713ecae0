package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockdesk/internal/allocation"
	"stockdesk/internal/domain"
	"stockdesk/internal/dto"
	apperrors "stockdesk/internal/errors"
)

const (
	maxLinesPerOrder = 100
	maxBodyBytes     = 1 << 20
)

type AllocationUseCase interface {
	GetOrder(ctx context.Context, id string) (*dto.OrderResult, error)
	ListOrders(ctx context.Context) ([]dto.OrderResult, error)
	CreateOrder(ctx context.Context, id string, lines []domain.OrderLine) (*dto.OrderResult, error)
	ReplaceLines(ctx context.Context, id string, lines []domain.OrderLine) (*dto.OrderResult, error)
	AllocateLine(ctx context.Context, id, productCode string, qty int) (*dto.OrderResult, error)
	RefreshAvailability(ctx context.Context, id string) (*dto.OrderResult, error)
	Classify(lines []domain.OrderLine) (*allocation.Evaluation, error)
}

type OrderController struct {
	useCase AllocationUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase AllocationUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	results, err := c.useCase.ListOrders(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, "", err, logger)
		return
	}

	orders := make([]dto.OrderResponse, 0, len(results))
	for i := range results {
		orders = append(orders, toOrderResponse("", &results[i]))
	}

	c.writeJSON(w, http.StatusOK, dto.OrderListResponse{
		TraceID:   traceID,
		Orders:    orders,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	orderID := chi.URLParam(r, "orderId")

	result, err := c.useCase.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, traceID, orderID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(traceID, result))
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if !c.decodeBody(w, r, traceID, &req, logger) {
		return
	}

	if err := validateLines(req.Lines); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	result, err := c.useCase.CreateOrder(r.Context(), req.ID, toDomainLines(req.Lines))
	if err != nil {
		c.handleUseCaseError(w, traceID, req.ID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toOrderResponse(traceID, result))
}

func (c *OrderController) ReplaceLines(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	orderID := chi.URLParam(r, "orderId")

	var req dto.ReplaceLinesRequest
	if !c.decodeBody(w, r, traceID, &req, logger) {
		return
	}

	if err := validateLines(req.Lines); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	result, err := c.useCase.ReplaceLines(r.Context(), orderID, toDomainLines(req.Lines))
	if err != nil {
		c.handleUseCaseError(w, traceID, orderID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(traceID, result))
}

func (c *OrderController) AllocateLine(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	orderID := chi.URLParam(r, "orderId")
	productCode := chi.URLParam(r, "productCode")
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("orderId", orderID))

	var req dto.AllocateLineRequest
	if !c.decodeBody(w, r, traceID, &req, logger) {
		return
	}

	if req.AllocatedQty == nil {
		c.writeValidationError(w, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "allocatedQty",
			Message: "allocatedQty is required",
		})
		return
	}

	result, err := c.useCase.AllocateLine(r.Context(), orderID, productCode, *req.AllocatedQty)
	if err != nil {
		c.handleUseCaseError(w, traceID, orderID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(traceID, result))
}

func (c *OrderController) RefreshAvailability(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	orderID := chi.URLParam(r, "orderId")

	result, err := c.useCase.RefreshAvailability(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, traceID, orderID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(traceID, result))
}

func (c *OrderController) Classify(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ClassifyRequest
	if !c.decodeBody(w, r, traceID, &req, logger) {
		return
	}

	if err := validateLines(req.Lines); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	eval, err := c.useCase.Classify(toDomainLines(req.Lines))
	if err != nil {
		c.handleUseCaseError(w, traceID, "", err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toEvaluationResponse(traceID, eval))
}

// decodeBody reads at most maxBodyBytes of JSON into dst. It writes the
// error response itself and reports whether the handler should continue.
func (c *OrderController) decodeBody(w http.ResponseWriter, r *http.Request, traceID string, dst interface{}, logger *zap.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.Warn("request body too large", zap.Int64("limit", tooLarge.Limit))
		c.writeErrorResponse(w, traceID, "", http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
			"request body exceeds "+strconv.Itoa(maxBodyBytes)+" bytes", nil)
		return false
	}

	logger.Warn("invalid JSON body", zap.Error(err))
	c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
	return false
}

// validateLines checks request shape only. Quantity rules belong to the
// allocation engine and come back as InvalidQuantity errors.
func validateLines(lines []dto.LineRequest) error {
	var details []apperrors.ValidationDetail

	if len(lines) > maxLinesPerOrder {
		details = append(details, apperrors.ValidationDetail{
			Field:   "lines",
			Message: "lines exceeds maximum of " + strconv.Itoa(maxLinesPerOrder),
		})
	}

	seen := make(map[string]bool, len(lines))
	for idx, line := range lines {
		field := "lines[" + strconv.Itoa(idx) + "]"

		if line.ProductCode == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".productCode",
				Message: "productCode is required",
			})
			continue
		}

		if seen[line.ProductCode] {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".productCode",
				Message: "productCode must not be duplicated",
			})
		}
		seen[line.ProductCode] = true

		if line.UnitPrice.IsNegative() {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".unitPrice",
				Message: "unitPrice must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, traceID string, orderID string, err error, logger *zap.Logger) {
	if qe, ok := apperrors.IsInvalidQuantityError(err); ok {
		c.writeErrorResponse(w, traceID, orderID, http.StatusUnprocessableEntity, "INVALID_QUANTITY", err.Error(), &dto.ErrorDetails{
			ProductCode: qe.ProductCode,
			Field:       qe.Field,
			Value:       qe.Value,
			Limit:       qe.Limit,
		})
		return
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, orderID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, orderID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		c.writeErrorResponse(w, traceID, orderID, http.StatusConflict, "DEADLOCK", err.Error(), nil)
		return
	}

	logger.Error("unexpected error", zap.String("orderId", orderID), zap.Error(err))
	c.writeErrorResponse(w, traceID, orderID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (c *OrderController) writeErrorResponse(w http.ResponseWriter, traceID string, orderID string, statusCode int, code string, message string, details *dto.ErrorDetails) {
	response := dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Message:   message,
		Code:      code,
		OrderID:   orderID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	c.writeJSON(w, statusCode, response)
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}

	c.writeJSON(w, http.StatusBadRequest, response)
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
