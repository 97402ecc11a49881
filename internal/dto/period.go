package dto

import "github.com/sokofin/corebank/internal/core/domain"

// ClosePeriodRequest advances a period to SOFT_CLOSE or HARD_CLOSE.
type ClosePeriodRequest struct {
	Year      int    `json:"year" binding:"required"`
	Month     int    `json:"month" binding:"required,min=1,max=12"`
	CloseType string `json:"closeType" binding:"required,oneof=SOFT_CLOSE HARD_CLOSE"`
}

// PeriodResponse mirrors a financial period.
type PeriodResponse struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Status string `json:"status"`
}

func ToPeriodResponse(p *domain.FinancialPeriod) PeriodResponse {
	return PeriodResponse{Year: p.Year, Month: int(p.Month), Status: string(p.Status)}
}
