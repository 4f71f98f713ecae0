package controller

import (
	"time"

	"stockdesk/internal/allocation"
	"stockdesk/internal/domain"
	"stockdesk/internal/dto"
)

func toDomainLines(lines []dto.LineRequest) []domain.OrderLine {
	out := make([]domain.OrderLine, len(lines))
	for i, line := range lines {
		out[i] = domain.OrderLine{
			ProductCode:  line.ProductCode,
			RequestedQty: line.RequestedQty,
			AvailableQty: line.AvailableQty,
			AllocatedQty: line.AllocatedQty,
			UnitPrice:    line.UnitPrice,
		}
	}
	return out
}

func toOrderResponse(traceID string, result *dto.OrderResult) dto.OrderResponse {
	resp := toEvaluationResponse(traceID, result.Evaluation)
	resp.OrderID = result.Order.ID

	if !result.Order.CreatedAt.IsZero() {
		createdAt := result.Order.CreatedAt.UTC()
		resp.CreatedAt = &createdAt
	}
	if !result.Order.UpdatedAt.IsZero() {
		updatedAt := result.Order.UpdatedAt.UTC()
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

func toEvaluationResponse(traceID string, eval *allocation.Evaluation) dto.OrderResponse {
	lines := make([]dto.LineResponse, len(eval.Lines))
	for i, le := range eval.Lines {
		lines[i] = dto.LineResponse{
			ProductCode:    le.Line.ProductCode,
			RequestedQty:   le.Line.RequestedQty,
			AvailableQty:   le.Line.AvailableQty,
			AllocatedQty:   le.Line.AllocatedQty,
			OutstandingQty: le.OutstandingQty,
			UnitPrice:      le.Line.UnitPrice,
			Value:          le.Value,
			Status:         string(le.Status),
			StatusLabel:    le.Status.Label(),
		}
	}

	return dto.OrderResponse{
		TraceID:     traceID,
		Status:      string(eval.Status),
		StatusLabel: eval.Status.Label(),
		Lines:       lines,
		Summary: dto.SummaryResponse{
			LineCount:          len(eval.Lines),
			FullyAllocated:     eval.FullyAllocated,
			PartiallyAllocated: eval.PartiallyAllocated,
			NotAllocated:       eval.NotAllocated,
			RequestedQty:       eval.RequestedQty,
			AllocatedQty:       eval.AllocatedQty,
			OutstandingQty:     eval.OutstandingQty,
			TotalValue:         eval.TotalValue,
		},
		Timestamp: time.Now().UTC(),
	}
}
