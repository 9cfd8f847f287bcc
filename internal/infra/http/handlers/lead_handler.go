package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/abhishekdhull21/pos-server/internal/entity"
	"github.com/abhishekdhull21/pos-server/internal/infra/http/middleware"
	"github.com/abhishekdhull21/pos-server/internal/usecase"
)

// LeadStepService e RepaymentInfoService são os dois casos de uso que o
// handler de leads conhece.
type LeadStepService interface {
	Execute(ctx context.Context, pancard string, payload usecase.StepPayload) error
}

type RepaymentInfoService interface {
	Execute(ctx context.Context, pancard string) (*entity.RepaymentDetails, error)
}

type LeadHandler struct {
	steps       LeadStepService
	repayments  RepaymentInfoService
	rateLimiter *RateLimiter
}

func NewLeadHandler(steps LeadStepService, repayments RepaymentInfoService) *LeadHandler {
	return &LeadHandler{
		steps:       steps,
		repayments:  repayments,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type SaveStepRequest struct {
	Step    int             `json:"step"`
	Pancard string          `json:"pancard"`
	Data    json.RawMessage `json:"data"`
}

type SaveStepResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SaveStep é a entrada HTTP da máquina de estados do funil.
func (h *LeadHandler) SaveStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, SaveStepResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req SaveStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, SaveStepResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	payload, err := usecase.DecodeStepPayload(req.Step, req.Data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, SaveStepResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if err := h.steps.Execute(ctx, req.Pancard, payload); err != nil {
		middleware.RecordLeadStep(req.Step, "error")
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, SaveStepResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		// sem detalhe interno para o cliente
		writeJSON(w, http.StatusInternalServerError, SaveStepResponse{
			Success: false,
			Message: "Failed to save lead step",
		})
		return
	}

	middleware.RecordLeadStep(req.Step, "ok")
	if usecase.Step(req.Step) == usecase.StepFinalize {
		middleware.RecordLeadFinalized()
	}

	writeJSON(w, http.StatusOK, SaveStepResponse{Success: true})
}

// GetCustomerDisbursement devolve o resumo de desembolso/repagamento do
// pancard informado.
func (h *LeadHandler) GetCustomerDisbursement(w http.ResponseWriter, r *http.Request) {
	pancard := r.URL.Query().Get("pancard")
	if pancard == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing pancard"})
		return
	}

	data, err := h.repayments.Execute(r.Context(), pancard)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}
	if data == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Lead not found or no data available"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  http.StatusOK,
		"data":    data,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
