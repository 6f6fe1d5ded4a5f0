package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/ironsheep/image-borders-mcp/internal/borders"
	"github.com/ironsheep/image-borders-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_detect_borders").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Out-of-range tunables return a JSON-RPC error with code -32602; every other
// tool execution error returns code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.cfg.Debug {
		log.Printf("tool %s finished in %v (err=%v)", params.Name, time.Since(start), err)
	}
	if err != nil {
		if errors.Is(err, borders.ErrInvalidParameter) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/borders function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Border Detection
	case "image_detect_borders":
		return s.handleImageDetectBorders(args)
	case "image_region_entropy":
		return s.handleImageRegionEntropy(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Border Detection Handlers ===

type imageDetectBordersArgs struct {
	Path      string   `json:"path"`
	Frames    int      `json:"frames"`
	Size      *int     `json:"size,omitempty"`
	Columns   int      `json:"columns"`
	Depth     *float64 `json:"depth,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Deep      *bool    `json:"deep,omitempty"`
	Luma      string   `json:"luma"`
}

// DetectBordersResult is the image_detect_borders response.
type DetectBordersResult struct {
	borders.Borders

	// Width and Height are the original image dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// FrameCount is the number of frames in the source image.
	FrameCount int `json:"frame_count"`

	// Content is the region left inside the borders.
	Content imaging.Region `json:"content"`
}

func (s *Server) handleImageDetectBorders(args json.RawMessage) (interface{}, error) {
	var a imageDetectBordersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	size := s.cfg.DefaultMaxSize
	if a.Size != nil {
		size = *a.Size
	}
	depth := borders.DefaultDepth
	if a.Depth != nil {
		depth = *a.Depth
	}
	threshold := borders.DefaultThreshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	deep := true
	if a.Deep != nil {
		deep = *a.Deep
	}
	luma, err := imaging.ParseLumaModel(a.Luma)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", borders.ErrInvalidParameter, err)
	}

	b, src, err := borders.DetectFile(context.Background(), s.cache, a.Path,
		borders.WithFrameLimit(a.Frames),
		borders.WithMaxSize(size),
		borders.WithColumnLimit(a.Columns),
		borders.WithDepth(depth),
		borders.WithThreshold(threshold),
		borders.WithDeep(deep),
		borders.WithLumaModel(luma),
	)
	if err != nil {
		return nil, err
	}

	content := b.Content(src.Width, src.Height)
	return &DetectBordersResult{
		Borders:    b,
		Width:      src.Width,
		Height:     src.Height,
		FrameCount: src.FrameCount(),
		Content:    imaging.Region{X1: content.Min.X, Y1: content.Min.Y, X2: content.Max.X, Y2: content.Max.Y},
	}, nil
}

type imageRegionEntropyArgs struct {
	Path  string `json:"path"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	X2    int    `json:"x2"`
	Y2    int    `json:"y2"`
	Frame int    `json:"frame"`
	Luma  string `json:"luma"`
}

// RegionEntropyResult is the image_region_entropy response.
type RegionEntropyResult struct {
	EntropyBits float64        `json:"entropy_bits"`
	Uniform     bool           `json:"uniform"`
	Region      imaging.Region `json:"region"`
	Frame       int            `json:"frame"`
}

func (s *Server) handleImageRegionEntropy(args json.RawMessage) (interface{}, error) {
	var a imageRegionEntropyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	luma, err := imaging.ParseLumaModel(a.Luma)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", borders.ErrInvalidParameter, err)
	}

	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Frame < 0 || a.Frame >= src.FrameCount() {
		return nil, fmt.Errorf("%w: frame %d outside [0,%d)", borders.ErrInvalidParameter, a.Frame, src.FrameCount())
	}
	frames, err := src.Frames(func(i int) bool { return i == a.Frame })
	if err != nil {
		return nil, fmt.Errorf("%w: %w", borders.ErrDecodeFailure, err)
	}

	gray := imaging.Grayscale(frames[0], luma)
	region := imaging.Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}
	if err := region.Validate(gray.Bounds()); err != nil {
		return nil, err
	}

	e := borders.Entropy(gray, a.X1, a.Y1, a.X2-a.X1, a.Y2-a.Y1)
	return &RegionEntropyResult{
		EntropyBits: math.Round(e*10000) / 10000,
		Uniform:     e == 0,
		Region:      region,
		Frame:       a.Frame,
	}, nil
}
