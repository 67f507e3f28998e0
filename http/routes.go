package http

import "net/http"

// NewRouter registers every endpoint on a ServeMux behind the rate limiter.
func NewRouter(
	limiter *RateLimiter,
	projection *ProjectionHandler,
	loan *LoanHandler,
	reinvestment *ReinvestmentHandler,
) http.Handler {

	mux := http.NewServeMux()
	mux.HandleFunc("/projection/run", projection.Run)
	mux.HandleFunc("/projection/runs/{id}", projection.Get)
	mux.HandleFunc("/projection/runs/{id}/export", projection.Export)
	mux.HandleFunc("/loan/quote", loan.Quote)
	mux.HandleFunc("/etf/reinvestment", reinvestment.Compare)

	return RateLimitMiddleware(limiter, mux)
}
