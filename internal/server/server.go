// Package server serves identicons over HTTP.
//
// Routes:
//
//	GET /a?a=<text>       identicon of the hashed, normalized text
//	GET /i/<hex>.png      identicon of a hex digest, used as is
//	GET /healthz          liveness
package server

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/flavioheleno/identicon"
	"github.com/flavioheleno/identicon/internal/digest"
)

// Options configures a Server.
type Options struct {
	Hash   string // algorithm applied to /a text
	MaxAge int    // Cache-Control max-age in seconds
}

// Server renders identicons for HTTP requests.
type Server struct {
	opts   Options
	logger *slog.Logger
	router *mux.Router
}

// New returns a Server. The hash algorithm is checked up front.
func New(opts Options, logger *slog.Logger) (*Server, error) {
	if _, err := digest.Sum(opts.Hash, nil); err != nil {
		return nil, err
	}
	s := &Server{opts: opts, logger: logger, router: mux.NewRouter()}

	getters := s.router.Methods(http.MethodGet, http.MethodHead).Subrouter()
	getters.HandleFunc("/a", s.avatar)
	getters.HandleFunc("/i/{digest:[[:xdigit:]]+}.png", s.digest)
	getters.HandleFunc("/healthz", s.healthz)
	s.router.Use(s.logRequests)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) avatar(w http.ResponseWriter, r *http.Request) {
	sum, err := digest.Sum(s.opts.Hash, digest.Identity(r.FormValue("a")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.serveSource(w, r, sum)
}

func (s *Server) digest(w http.ResponseWriter, r *http.Request) {
	source, err := digest.ParseHex(mux.Vars(r)["digest"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.serveSource(w, r, source)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) serveSource(w http.ResponseWriter, r *http.Request, source []byte) {
	etag := `"` + hex.EncodeToString(source) + `"`
	w.Header().Set("Cache-Control", "max-age="+strconv.Itoa(s.opts.MaxAge))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img, err := identicon.Render(source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.logger.Error("encoding png", "error", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}
