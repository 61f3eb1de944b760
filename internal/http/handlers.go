package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"cashchange/internal/core"
	applog "cashchange/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().BodyJSON(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.metrics.startedAt).String(),
	}).Write(w)
}

// handleReady reports whether templates and the register are usable
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.register.Denominations.Len() == 0 {
		checks["register"] = "failed: no denominations configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["register"] = map[string]interface{}{
			"currency":      s.register.Currency.Code,
			"denominations": s.register.Denominations.String(),
			"canonical":     s.register.Denominations.IsCanonical(),
		}
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.rateLimiter.ActiveClients(),
	}

	NewHTMXResponse().Status(httpStatus).BodyJSON(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.tracer.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	securityMetrics := s.detector.GetMetrics()
	outcomes, pieces := s.metrics.snapshot()

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP settlements_total Form submissions by outcome\n")
	fmt.Fprintf(w, "# TYPE settlements_total counter\n")
	for _, outcome := range []core.Outcome{core.Accepted, core.ExactPayment, core.Rejected} {
		fmt.Fprintf(w, "settlements_total{outcome=%q} %d\n", outcome, outcomes[outcome])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "# HELP change_pieces_total Notes and coins handed back\n")
	fmt.Fprintf(w, "# TYPE change_pieces_total counter\n")
	fmt.Fprintf(w, "change_pieces_total %d\n\n", pieces)

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitMetrics.TotalHits)

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests detected\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", securityMetrics.SuspiciousRequests)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", time.Since(s.metrics.startedAt).Seconds())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, formView{}, nil)
}

// handleChange settles one form submission. htmx requests get the calculator
// partial (form and result); plain form posts get the whole page back.
func (s *Server) handleChange(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(w, r)
	if err := parser.Parse(); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Parse form error",
			applog.FieldOperation, applog.OpParse,
			applog.FieldError, err.Error())
		BadRequestError("Invalid request format").Write(w)
		return
	}

	sub := ParseSubmission(parser)
	settlement := s.settle(r.Context(), sub)
	result := newResultView(settlement, s.register.Currency)

	status := http.StatusOK
	if settlement.Validation.Outcome == core.Rejected {
		status = http.StatusUnprocessableEntity
	}

	form := formView{Bill: sub.BillRaw, Cash: sub.CashRaw}
	if !isHTMX(r) {
		s.renderPage(w, r, status, form, result)
		return
	}

	var buf bytes.Buffer
	if err := s.executeTemplate(r.Context(), &buf, "calculator", s.page(form, result)); err != nil {
		InternalServerError("Rendering failed").Write(w)
		return
	}

	resp := NewHTMXResponse().Status(status).BodyHTML(buf.Bytes())
	var pieces int64
	if settlement.Breakdown != nil {
		pieces = settlement.Breakdown.TotalNoteCount
	}
	resp.TriggerChangeSettled(result.Outcome, pieces)
	if result.Notice != "" {
		duration := s.noticeDuration
		if result.NoticeType == NotificationError {
			duration = 0
		}
		resp.TriggerNotification(result.NoticeType, result.Notice, duration)
	}
	resp.Write(w)
}

// apiResponse is the JSON form of a settlement.
type apiResponse struct {
	core.Settlement
	Notice string `json:"notice,omitempty"`
}

// handleAPIChange settles a JSON or form body and answers in JSON.
func (s *Server) handleAPIChange(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(w, r)
	if err := parser.Parse(); err != nil {
		NewHTMXResponse().Status(http.StatusBadRequest).
			BodyJSON(map[string]string{"error": "invalid request body"}).
			Write(w)
		return
	}

	settlement := s.settle(r.Context(), ParseSubmission(parser))
	status := http.StatusOK
	if settlement.Validation.Outcome == core.Rejected {
		status = http.StatusUnprocessableEntity
	}
	NewHTMXResponse().Status(status).
		BodyJSON(apiResponse{Settlement: settlement, Notice: settlement.Notice(s.register.Currency)}).
		Write(w)
}

// settle runs the register on a submission and records the outcome.
func (s *Server) settle(ctx context.Context, sub Submission) core.Settlement {
	bill, cash := sub.Amounts()
	settlement := s.register.Settle(bill, cash)
	s.metrics.record(settlement)

	var reasons []string
	for _, reason := range settlement.Validation.Reasons {
		reasons = append(reasons, string(reason.Code))
	}
	fields := applog.NewFields()
	if b := settlement.Breakdown; b != nil {
		fields.WithBreakdown(settlement.Change.Fixed(), b.TotalNoteCount, b.Dropped.Fixed())
	}
	s.events.LogSettlement(ctx, bill.String(), cash.String(), string(settlement.Validation.Outcome), reasons, fields)
	return settlement
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, form formView, result *resultView) {
	if s.templates == nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded",
			applog.FieldPath, r.URL.Path,
			"error_type", applog.ErrorTypeConfiguration)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.executeTemplate(r.Context(), &buf, "index.html", s.page(form, result)); err != nil {
		http.Error(w, "rendering failed", http.StatusInternalServerError)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(buf.Bytes()).Write(w)
}

func (s *Server) page(form formView, result *resultView) pageView {
	page := newPageView(s.register, form, result)
	page.DismissMs = s.noticeDuration.Milliseconds()
	return page
}

func (s *Server) executeTemplate(ctx context.Context, buf *bytes.Buffer, name string, data interface{}) error {
	if s.templates == nil {
		return fmt.Errorf("templates not loaded")
	}
	if err := s.templates.ExecuteTemplate(buf, name, data); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Template execution failed",
			applog.FieldOperation, applog.OpRender,
			applog.FieldError, err.Error(),
			"template", name)
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return nil
}
