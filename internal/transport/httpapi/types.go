package httpapi

import "arbicalc/internal/usecase"

// success=false: ни один источник не ответил, price взят из кэша или дефолта.
type P2PPriceResponse struct {
	Price     float64 `json:"price"`
	Suggested float64 `json:"suggested"`
	Source    string  `json:"source"`
	Success   bool    `json:"success"`
	Degraded  bool    `json:"degraded"`
	Error     string  `json:"error,omitempty"`
}

type CalculateResponse usecase.Outcome

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
