package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and frame count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Border Detection
		{
			Name:        "image_detect_borders",
			Description: "Detect uniform (blank or whitespace) margins around the image content using an entropy heuristic. Returns the offset in pixels of each edge and the remaining content rectangle. Animated GIFs are scanned frame by frame and the smallest margin per edge wins.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"frames": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of animation frames to scan, chosen at random. 0 scans every frame",
						"default":     0,
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale so the longer side is at most this many pixels before scanning. 0 disables resizing; omitted uses the server default",
					},
					"columns": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of columns to scan per edge, chosen at random. 0 scans every column",
						"default":     0,
					},
					"depth": map[string]interface{}{
						"type":        "number",
						"description": "Fraction of the image height searched for each edge (0-1)",
						"default":     0.25,
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Entropy ratio threshold; smaller is more conservative",
						"default":     0.5,
					},
					"deep": map[string]interface{}{
						"type":        "boolean",
						"description": "Iteratively refine each border (slower, more accurate)",
						"default":     true,
					},
					"luma": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rec601", "lightness"},
						"description": "Grayscale conversion: Rec.601 luma or CIE L* lightness",
						"default":     "rec601",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_region_entropy",
			Description: "Compute the Shannon entropy (bits) of the grayscale values in a rectangular region. 0 means the region is a single flat color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"frame": map[string]interface{}{
						"type":        "integer",
						"description": "Animation frame index (0-based)",
						"default":     0,
					},
					"luma": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rec601", "lightness"},
						"description": "Grayscale conversion: Rec.601 luma or CIE L* lightness",
						"default":     "rec601",
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
