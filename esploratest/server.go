// Package esploratest provides a fake Esplora server for tests.
//
//	srv := esploratest.New(t)
//	srv.Text("/blocks/tip/height", "840000")
//	client, _ := esplora.NewBlockingClient(esplora.Config{BaseURL: srv.URL})
//
// Unregistered paths answer 404 with Esplora's plain-text body. Every
// request is counted per method and path.
package esploratest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Response is a canned answer.
type Response struct {
	Status      int
	Body        []byte
	ContentType string
	// Delay holds the response back; a canceled request ends it early.
	Delay time.Duration
}

// Request is a recorded request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Server is an httptest server routing through gin.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string][]Response
	hits     map[string]int
	requests []Request
}

// New starts a server that is closed on test cleanup.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		routes: make(map[string][]Response),
		hits:   make(map[string]int),
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.NoRoute(s.serve)
	s.Server = httptest.NewServer(engine)
	t.Cleanup(s.Close)
	return s
}

// Handle registers responses for method and path. With several responses
// each request consumes the next one and the last one repeats.
func (s *Server) Handle(method, path string, responses ...Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[key(method, path)] = responses
}

// JSON answers GET path with 200 and a JSON body.
func (s *Server) JSON(path, body string) {
	s.Handle(http.MethodGet, path, Response{Status: http.StatusOK, Body: []byte(body), ContentType: "application/json"})
}

// Text answers GET path with 200 and a plain-text body.
func (s *Server) Text(path, body string) {
	s.Handle(http.MethodGet, path, Response{Status: http.StatusOK, Body: []byte(body), ContentType: "text/plain"})
}

// Bytes answers GET path with 200 and a binary body.
func (s *Server) Bytes(path string, body []byte) {
	s.Handle(http.MethodGet, path, Response{Status: http.StatusOK, Body: body, ContentType: "application/octet-stream"})
}

// Status answers method and path with status and a plain-text body.
func (s *Server) Status(method, path string, status int, body string) {
	s.Handle(method, path, Response{Status: status, Body: []byte(body), ContentType: "text/plain"})
}

// Hits returns how many requests reached method and path.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key(method, path)]
}

// TotalHits returns the number of requests served.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Reset drops all routes and counters.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = make(map[string][]Response)
	s.hits = make(map[string]int)
	s.requests = nil
}

func (s *Server) serve(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	path := c.Request.URL.EscapedPath()
	k := key(c.Request.Method, path)

	s.mu.Lock()
	s.hits[k]++
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   path,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	resp, ok := s.next(k)
	s.mu.Unlock()

	if !ok {
		c.Data(http.StatusNotFound, "text/plain", []byte("Not Found"))
		return
	}
	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}
	c.Data(resp.Status, contentType, resp.Body)
}

// next pops the next response for k. Callers hold mu.
func (s *Server) next(k string) (Response, bool) {
	queue := s.routes[k]
	if len(queue) == 0 {
		return Response{}, false
	}
	resp := queue[0]
	if len(queue) > 1 {
		s.routes[k] = queue[1:]
	}
	return resp, true
}

func key(method, path string) string {
	return method + " " + path
}
