package allocation

import (
	"github.com/shopspring/decimal"

	"stockdesk/internal/domain"
)

type LineEvaluation struct {
	Line           domain.OrderLine
	Status         domain.LineStatus
	OutstandingQty int
	Value          decimal.Decimal
}

// Evaluation is everything an order screen renders about allocation,
// computed in one pass over the lines.
type Evaluation struct {
	Status             domain.OrderStatus
	Lines              []LineEvaluation
	FullyAllocated     int
	PartiallyAllocated int
	NotAllocated       int
	RequestedQty       int
	AllocatedQty       int
	OutstandingQty     int
	TotalValue         decimal.Decimal
}

// Evaluate classifies every line and the order as a whole. It fails on the
// first line with invalid quantities, leaving no partial result.
func (e *Engine) Evaluate(lines []domain.OrderLine) (*Evaluation, error) {
	eval := &Evaluation{
		Lines:      make([]LineEvaluation, 0, len(lines)),
		TotalValue: decimal.Zero,
	}

	for _, line := range lines {
		status, err := e.ClassifyLine(line)
		if err != nil {
			return nil, err
		}

		switch status {
		case domain.LineStatusFullyAllocated:
			eval.FullyAllocated++
		case domain.LineStatusPartiallyAllocated:
			eval.PartiallyAllocated++
		default:
			eval.NotAllocated++
		}

		value := lineValue(line)
		eval.Lines = append(eval.Lines, LineEvaluation{
			Line:           line,
			Status:         status,
			OutstandingQty: line.OutstandingQty(),
			Value:          value,
		})
		eval.RequestedQty += line.RequestedQty
		eval.AllocatedQty += line.AllocatedQty
		eval.OutstandingQty += line.OutstandingQty()
		eval.TotalValue = eval.TotalValue.Add(value)
	}

	eval.Status = orderStatus(len(lines), eval.FullyAllocated, eval.PartiallyAllocated)
	return eval, nil
}
