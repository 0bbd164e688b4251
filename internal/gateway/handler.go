package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/rxrelay/rxrelay/internal/submission"
	"github.com/rxrelay/rxrelay/pkg/clientip"
	"github.com/rxrelay/rxrelay/pkg/email"
	"github.com/rxrelay/rxrelay/pkg/hashid"
	"github.com/rxrelay/rxrelay/pkg/logger"
	"github.com/rxrelay/rxrelay/pkg/sanitize"
	"github.com/rxrelay/rxrelay/pkg/token"
)

// handlePreflight answers CORS preflights with no content. Allow
// headers are granted only when the declared origin passes validation;
// an unknown origin still gets 204, just without the grant.
func (g *Gateway) handlePreflight(w http.ResponseWriter, r *http.Request) {
	if declared := r.Header.Get("Origin"); g.origins.IsAllowed(declared) {
		setCORSHeaders(w, declared)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmit runs the per-request state machine: origin, rate limit,
// content type, required fields, sanitize, render, deliver. Each check
// is a terminal early exit producing exactly one response. Submitted
// field values never reach a log record on any path.
func (g *Gateway) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	declared := r.Header.Get("Origin")
	hashed := hashid.Hash(clientip.FromRequest(r))

	if !g.origins.IsAllowed(declared) {
		g.log.WarnContext(ctx, "submission denied: origin not allowed",
			logger.Component("gateway"),
			logger.HashedID(hashed),
			logger.Origin(declared),
		)
		writeError(w, http.StatusForbidden, errorResponse{
			Error: "Origin not allowed",
		})
		return
	}
	setCORSHeaders(w, declared)

	res, err := g.limiter.Allow(ctx, hashed)
	if err != nil {
		g.log.ErrorContext(ctx, "rate limit check failed",
			logger.Component("gateway"),
			logger.HashedID(hashed),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, errorResponse{
			Error: "Internal error",
		})
		return
	}
	if !res.Allowed {
		retryAfter := int64(res.RetryAfter().Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		g.log.WarnContext(ctx, "submission denied: rate limit exceeded",
			logger.Component("gateway"),
			logger.HashedID(hashed),
		)
		w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
		writeError(w, http.StatusTooManyRequests, errorResponse{
			Error:      "Too many submissions. Please try again later.",
			RetryAfter: retryAfter,
		})
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, errorResponse{
			Error: "Content-Type must be application/json",
		})
		return
	}

	var body map[string]any
	r.Body = http.MaxBytesReader(w, r.Body, g.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{
			Error: "Request body must be a valid JSON object",
		})
		return
	}

	if missing := submission.MissingFields(body, g.required); len(missing) > 0 {
		writeError(w, http.StatusBadRequest, errorResponse{
			Error:         "Missing required fields",
			MissingFields: missing,
		})
		return
	}

	sub := submission.FromMap(sanitize.Map(body))

	if g.sessionSecret != "" && sub.SessionToken != "" {
		if _, err := token.ParseSession(sub.SessionToken, g.sessionSecret); err != nil {
			g.log.WarnContext(ctx, "submission denied: invalid session token",
				logger.Component("gateway"),
				logger.HashedID(hashed),
			)
			writeError(w, http.StatusForbidden, errorResponse{
				Error: "Invalid or expired form session",
			})
			return
		}
	}

	msg := submission.Render(sub)

	sendCtx, cancel := context.WithTimeout(ctx, g.mailTimeout)
	defer cancel()

	requestID, err := g.sender.Send(sendCtx, email.SendParams{
		SendTo:   g.recipient,
		Subject:  sub.Subject(),
		BodyHTML: msg.HTML,
		BodyText: msg.Text,
		Tag:      "prescription-transfer",
	})
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			g.log.ErrorContext(ctx, "mail transport not configured",
				logger.Component("gateway"),
				logger.HashedID(hashed),
			)
			writeError(w, http.StatusInternalServerError, errorResponse{
				Error: "Service is temporarily unable to accept submissions",
			})
			return
		}
		// The transport error message is loggable; field values are not.
		g.log.ErrorContext(ctx, "delivery failed",
			logger.Component("gateway"),
			logger.HashedID(hashed),
			logger.Error(err),
		)
		writeError(w, http.StatusBadGateway, errorResponse{
			Error: "Delivery failed. Please try again.",
		})
		return
	}

	g.log.InfoContext(ctx, "submission delivered",
		logger.Component("gateway"),
		logger.HashedID(hashed),
		logger.RequestID(requestID),
	)
	writeJSON(w, http.StatusOK, successResponse{
		Success:              true,
		Message:              "Submission delivered",
		RequestID:            requestID,
		RemainingSubmissions: res.Remaining,
	})
}
