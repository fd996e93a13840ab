package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"calbase/internal/calendar"
	appLog "calbase/internal/log"
)

// Server exposes a read-only JSON view of one built calendar tree. The
// tree is mutated only before the server starts; no endpoint writes.
type Server struct {
	cal *calendar.Calendar
	mux *http.ServeMux
}

// NewServer constructs a new Server over the given tree.
func NewServer(cal *calendar.Calendar) *Server {
	s := &Server{
		cal: cal,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// shutdownTimeout bounds how long in-flight requests may run after the
// context is cancelled.
const shutdownTimeout = 5 * time.Second

// StartServer serves the view on the given address until the listener
// fails or ctx is cancelled. Cancellation drains in-flight requests
// before returning.
func StartServer(ctx context.Context, listen string, cal *calendar.Calendar) error {
	s := NewServer(cal)
	srv := &http.Server{Addr: listen, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		appLog.Info("shutting down HTTP server", "listen", listen)
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/month", s.handleMonth)
	s.mux.HandleFunc("/api/day", s.handleDay)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type dayResponse struct {
	Date        string          `json:"date"`
	Weekday     int             `json:"weekday"`
	DayOfMonth  int             `json:"day_of_month"`
	Event       string          `json:"event,omitempty"`
	BankHoliday string          `json:"bankholiday,omitempty"`
	Title       string          `json:"title,omitempty"`
	Sunrise     string          `json:"sunrise,omitempty"`
	Sunset      string          `json:"sunset,omitempty"`
	Entries     []entryResponse `json:"entries,omitempty"`
}

type entryResponse struct {
	TimeStart string `json:"time_start,omitempty"`
	TimeEnd   string `json:"time_end,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Title     string `json:"title,omitempty"`
}

type monthResponse struct {
	Year  int           `json:"year"`
	N     int           `json:"n"`
	Title string        `json:"title"`
	Days  []dayResponse `json:"days"`
}

// handleMonth serves one month of the tree: GET /api/month?n=12
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	n := parseIntDefault(r.URL.Query().Get("n"), 0)
	month, err := s.cal.Month(n)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calendar.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	resp := monthResponse{Year: s.cal.Year, N: month.N, Title: month.Title}
	for _, d := range month.Days {
		resp.Days = append(resp.Days, dayJSON(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDay serves one day: GET /api/day?month=12&day=25
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	month := parseIntDefault(r.URL.Query().Get("month"), 0)
	dom := parseIntDefault(r.URL.Query().Get("day"), 0)

	day, err := s.cal.Day(month, dom)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calendar.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dayJSON(day))
}

func dayJSON(d *calendar.Day) dayResponse {
	resp := dayResponse{
		Date:        d.Date.Format("2006-01-02"),
		Weekday:     d.WeekdayIndex(),
		DayOfMonth:  d.DayOfMonth(),
		Event:       d.Scalar(calendar.FieldEvent),
		BankHoliday: d.Scalar(calendar.FieldBankHoliday),
		Title:       d.Scalar(calendar.FieldTitle),
		Sunrise:     d.Scalar(calendar.FieldSunrise),
		Sunset:      d.Scalar(calendar.FieldSunset),
	}
	for _, e := range d.Entries {
		resp.Entries = append(resp.Entries, entryResponse(e))
	}
	return resp
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
