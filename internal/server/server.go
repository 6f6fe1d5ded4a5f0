package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/image-borders-mcp/internal/imaging"
)

// Config holds process-wide server settings.
type Config struct {
	// Debug enables per-call timing logs on stderr.
	Debug bool

	// DefaultMaxSize caps the longer image side for border detection when a
	// call does not pass "size". 0 disables resizing.
	DefaultMaxSize int
}

// ConfigFromEnv reads IMAGE_MCP_LOG_LEVEL and IMAGE_MCP_MAX_SIZE.
func ConfigFromEnv() Config {
	cfg := Config{Debug: os.Getenv("IMAGE_MCP_LOG_LEVEL") == "debug"}
	if v := os.Getenv("IMAGE_MCP_MAX_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("Ignoring invalid IMAGE_MCP_MAX_SIZE=%q", v)
		} else {
			cfg.DefaultMaxSize = n
		}
	}
	return cfg
}

// Server handles MCP protocol communication
type Server struct {
	cache *imaging.ImageCache
	cfg   Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance configured from the environment
func New() *Server {
	return NewWithConfig(ConfigFromEnv())
}

// NewWithConfig creates a new MCP server instance with explicit settings
func NewWithConfig(cfg Config) *Server {
	return &Server{
		cache: imaging.NewImageCache(),
		cfg:   cfg,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF,
// writing responses to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "image-borders-mcp",
				"version": "0.1.0",
			},
		},
	}
}
