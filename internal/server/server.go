// Package server exposes the tool catalog over MCP. It is the only place
// where apperr values are turned into wire results.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/comigor/korea-opendata-go/internal/apperr"
	"github.com/comigor/korea-opendata-go/pkg/tools"
)

const (
	Name    = "korea-opendata-mcp"
	Version = "1.1.0"
)

const msgInternal = "요청을 처리하는 중 내부 오류가 발생했습니다."

const instructions = `이 서버는 한국 공공데이터 API를 도구로 제공합니다.

- check_business_status: 국세청 사업자등록 상태(계속/휴업/폐업)와 과세유형 조회
- validate_business_registration: 사업자등록정보 진위확인
- get_korean_holidays: 한국천문연구원 특일(공휴일, 국경일, 기념일, 24절기, 잡절) 조회

모든 도구는 읽기 전용입니다.`

// shutdownTimeout bounds graceful shutdown of the HTTP transport.
const shutdownTimeout = 10 * time.Second

type Server struct {
	mcp    *mcpsrv.MCPServer
	tools  *tools.ToolManager
	logger *slog.Logger
}

// New registers every tool of manager on a new MCP server.
func New(manager *tools.ToolManager, lg *slog.Logger) *Server {
	if lg == nil {
		lg = slog.Default()
	}
	s := &Server{
		tools:  manager,
		logger: lg,
	}

	s.mcp = mcpsrv.NewMCPServer(
		Name,
		Version,
		mcpsrv.WithInstructions(instructions),
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithRecovery(),
	)
	for _, t := range manager.List() {
		s.mcp.AddTool(t.Definition(), s.dispatch)
	}
	return s
}

// dispatch runs one tool call and renders its outcome.
func (s *Server) dispatch(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name := req.Params.Name
	lg := s.logger.With("tool", name, "call_id", uuid.NewString())
	start := time.Now()

	text, err := s.tools.Call(ctx, name, req.GetArguments())
	if err != nil {
		kind := apperr.KindOf(err)
		switch kind {
		case apperr.KindInvalidParameter, apperr.KindUnknownTool:
			lg.WarnContext(ctx, "tool call rejected", "kind", kind, "error", err)
		default:
			lg.ErrorContext(ctx, "tool call failed", "kind", kind, "error", err, "cause", errors.Unwrap(err))
		}
		return resultErr(err), nil
	}

	lg.InfoContext(ctx, "tool call done", "duration", time.Since(start))
	return resultText(text), nil
}

// ServeStdio serves MCP on stdin/stdout until ctx is done or the peer hangs up.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	srv.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// Handler routes the streamable MCP endpoint and a liveness probe.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","name":%q,"version":%q}`, Name, Version)
	})
	r.Handle("/mcp", mcpsrv.NewStreamableHTTPServer(s.mcp, mcpsrv.WithEndpointPath("/mcp")))
	return r
}

// ServeHTTP serves Handler on addr until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr renders err with its kind. Internal errors never leak their text.
func resultErr(err error) *mcplib.CallToolResult {
	kind := apperr.KindOf(err)
	msg := err.Error()
	if kind == apperr.KindInternal {
		msg = msgInternal
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		StructuredContent: map[string]any{
			"kind":    string(kind),
			"message": msg,
		},
		IsError: true,
	}
}
