package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dynoinc/shiftboard/internal/dashboard"
	tracing "github.com/dynoinc/shiftboard/internal/otel/trace"
	"github.com/dynoinc/shiftboard/internal/report"
)

type httpHandlers struct {
	svc     *dashboard.Service
	reports *report.Generator
}

var validate = validator.New()

// New serves the dashboard API. metrics may be nil, in which case
// /metrics is not mounted.
func New(svc *dashboard.Service, metrics http.Handler) http.Handler {
	handlers := &httpHandlers{
		svc:     svc,
		reports: report.NewGenerator(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handlers.healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	mux.HandleFunc("GET /api/months", handlers.months)
	mux.HandleFunc("GET /api/months/{month}/overview", handlers.overview)
	mux.HandleFunc("GET /api/months/{month}/compare", handlers.compare)
	mux.HandleFunc("GET /api/months/{month}/shifts/{shift}", handlers.shift)
	mux.HandleFunc("GET /api/months/{month}/shifts/{shift}/ytd", handlers.shiftYTD)
	mux.HandleFunc("GET /api/months/{month}/shifts/{shift}/metrics/{metric}/weekly", handlers.weekly)
	mux.HandleFunc("GET /api/months/{month}/shifts/{shift}/metrics/{metric}/history", handlers.history)
	mux.HandleFunc("GET /api/months/{month}/breadcrumb", handlers.breadcrumb)

	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return otelhttp.NewHandler(sentryHandler.Handle(forceTrace(mux)), "shiftboard",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return operation + " " + r.Method
		}),
	)
}

// forceTrace honours ?trace=true so a single request can be traced in full
// regardless of the sample rate.
func forceTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if forced, _ := strconv.ParseBool(request.URL.Query().Get("trace")); forced {
			request = request.WithContext(tracing.Force(request.Context()))
		}
		next.ServeHTTP(writer, request)
	})
}

func (h *httpHandlers) healthz(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = writer.Write([]byte("ok\n"))
}

func (h *httpHandlers) months(writer http.ResponseWriter, request *http.Request) {
	cards, err := h.svc.Months(request.Context())
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	writeJSON(writer, cards)
}

func (h *httpHandlers) overview(writer http.ResponseWriter, request *http.Request) {
	text, ok := h.wantsText(writer, request)
	if !ok {
		return
	}

	view, err := h.svc.Overview(request.Context(), request.PathValue("month"))
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	if text {
		writeText(writer, h.reports.Overview(view).String())
		return
	}
	writeJSON(writer, view)
}

func (h *httpHandlers) shift(writer http.ResponseWriter, request *http.Request) {
	text, ok := h.wantsText(writer, request)
	if !ok {
		return
	}

	detail, err := h.svc.ShiftDetail(request.Context(), request.PathValue("month"), request.PathValue("shift"))
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	if text {
		writeText(writer, h.reports.Shift(detail).String())
		return
	}
	writeJSON(writer, detail)
}

func (h *httpHandlers) shiftYTD(writer http.ResponseWriter, request *http.Request) {
	snap, err := h.svc.ShiftYTD(request.Context(), request.PathValue("month"), request.PathValue("shift"))
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	writeJSON(writer, snap)
}

func (h *httpHandlers) weekly(writer http.ResponseWriter, request *http.Request) {
	text, ok := h.wantsText(writer, request)
	if !ok {
		return
	}

	w, err := h.svc.Weekly(request.Context(),
		request.PathValue("month"),
		request.PathValue("shift"),
		request.PathValue("metric"),
	)
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	if text {
		writeText(writer, h.reports.Weekly(w))
		return
	}
	writeJSON(writer, w)
}

func (h *httpHandlers) history(writer http.ResponseWriter, request *http.Request) {
	entries, err := h.svc.History(request.Context(),
		request.PathValue("month"),
		request.PathValue("shift"),
		request.PathValue("metric"),
	)
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	writeJSON(writer, entries)
}

// breadcrumb takes ?view=shifts|overview|shift|comparison and one shift
// parameter per opened or selected shift.
func (h *httpHandlers) breadcrumb(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	crumb, err := h.svc.Breadcrumb(request.Context(),
		request.PathValue("month"),
		dashboard.View(query.Get("view")),
		query["shift"],
	)
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	writeJSON(writer, crumb)
}

func (h *httpHandlers) compare(writer http.ResponseWriter, request *http.Request) {
	text, ok := h.wantsText(writer, request)
	if !ok {
		return
	}

	res, err := h.svc.Compare(request.Context(), request.PathValue("month"), request.URL.Query()["shift"])
	if err != nil {
		h.fail(writer, request, err)
		return
	}
	if text {
		writeText(writer, h.reports.Comparison(res).String())
		return
	}
	writeJSON(writer, res)
}

// wantsText reads the optional format parameter. It writes a 400 and
// reports false when the value is not recognised.
func (h *httpHandlers) wantsText(writer http.ResponseWriter, request *http.Request) (bool, bool) {
	format := request.URL.Query().Get("format")
	if err := validate.Var(format, "omitempty,oneof=json text"); err != nil {
		http.Error(writer, "format must be json or text", http.StatusBadRequest)
		return false, false
	}
	return format == "text", true
}

func (h *httpHandlers) fail(writer http.ResponseWriter, request *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(request.Context(), "request failed", "path", request.URL.Path, "error", err)
		if hub := sentry.GetHubFromContext(request.Context()); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.AddBreadcrumb(&sentry.Breadcrumb{
					Category: "http",
					Message:  request.Pattern,
					Level:    sentry.LevelInfo,
				}, 100)
				hub.CaptureException(err)
			})
		}
	}
	http.Error(writer, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownMonth),
		errors.Is(err, dashboard.ErrUnknownShift),
		errors.Is(err, dashboard.ErrUnknownMetric),
		errors.Is(err, dashboard.ErrNoYearToDate):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrInvalidSelection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(writer http.ResponseWriter, v any) {
	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeText(writer http.ResponseWriter, s string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = writer.Write([]byte(s))
}
