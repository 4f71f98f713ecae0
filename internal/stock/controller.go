package stock

import (
	"encoding/json"
	"net/http"

	apperrors "stockdesk/internal/errors"

	"go.uber.org/zap"
)

const (
	maxSearchCodes     = 100
	maxSearchBodyBytes = 64 << 10
)

type Controller struct {
	useCase SearchUseCase
	logger  *zap.Logger
}

func NewController(useCase SearchUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleSearchStock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchBodyBytes)

	var req SearchStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateSearchRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	resp, err := c.useCase.SearchStock(r.Context(), req)
	if err != nil {
		c.logger.Error("search stock failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) validateSearchRequest(req SearchStockRequest) error {
	if len(req.ProductCodes) == 0 {
		return apperrors.NewValidationError("productCodes is required", apperrors.ValidationDetail{
			Field:   "productCodes",
			Message: "productCodes must not be empty",
		})
	}

	if len(req.ProductCodes) > maxSearchCodes {
		msg := "productCodes exceeds maximum of 100"
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "productCodes",
			Message: msg,
		})
	}

	for _, code := range req.ProductCodes {
		if code == "" {
			msg := "each productCode must be non-empty"
			return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
				Field:   "productCodes",
				Message: msg,
			})
		}
	}

	return nil
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
