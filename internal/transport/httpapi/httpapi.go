package httpapi

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang/glog"
)

//go:embed webui/*
var embeddedFS embed.FS

// maxFillBody — предел тела POST /api/fill и /api/preview.
const maxFillBody = 1 << 20

// MarketFacade — то, что HTTP-слой ждёт от use-case покупателя.
type MarketFacade interface {
	Sellers(ctx context.Context) (SellersResponse, error)
	BestPrice(ctx context.Context, product string) (BestPriceResponse, error)
	Listings(ctx context.Context, product, strategy string) (ListingsResponse, error)
	Fill(ctx context.Context, req FillRequest, dryRun bool) (FillResponse, error)
}

type Server struct {
	addr    string
	flow    MarketFacade
	timeout time.Duration
	server  *http.Server
}

func New(addr string, flow MarketFacade, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Server{addr: addr, flow: flow, timeout: timeout}
}

// Handler — маршруты сервера (удобно для httptest).
func (s *Server) Handler() http.Handler { return s.routes() }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// API
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/sellers", s.handleSellers)
	mux.HandleFunc("/api/best-price", s.handleBestPrice)
	mux.HandleFunc("/api/listings", s.handleListings)
	mux.HandleFunc("/api/rate", s.handleRate)
	mux.HandleFunc("/api/fill", s.handleFill(false))
	mux.HandleFunc("/api/preview", s.handleFill(true))

	// static
	sub, err := fs.Sub(embeddedFS, "webui")
	if err != nil {
		glog.Warningf("embed sub error: %v", err)
		mux.Handle("/", http.FileServer(http.FS(embeddedFS)))
	} else {
		mux.Handle("/", http.FileServer(http.FS(sub)))
	}

	return withCORS(withLogging(mux))
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	glog.Infof("HTTP server listening on %s", s.addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError — 400 для ошибок ввода, 500 для остального.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	default:
		glog.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSellers(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.flow.Sellers(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBestPrice(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.flow.BestPrice(ctx, r.URL.Query().Get("product"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	q := r.URL.Query()
	res, err := s.flow.Listings(ctx, q.Get("product"), q.Get("strategy"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFill(dryRun bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allow(w, r, http.MethodPost) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFillBody)
		var req FillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
				return
			}
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()

		res, err := s.flow.Fill(ctx, req, dryRun)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		glog.V(1).Infof("%s %s %s", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
