package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_detect_borders",
		"image_region_entropy",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			requiredList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range requiredList {
				if r == "path" {
					hasPath = true
					break
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"image_detect_borders": {
			"frames":    0,
			"columns":   0,
			"depth":     0.25,
			"threshold": 0.5,
			"deep":      true,
			"luma":      "rec601",
		},
		"image_region_entropy": {"frame": 0, "luma": "rec601"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props := tool.InputSchema["properties"].(map[string]interface{})
		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}
			if actualDefault != expectedDefault {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expectedDefault)
			}
		}
	}
}

func TestToolDefinitions_SizeHasNoDefault(t *testing.T) {
	// "size" falls back to the server-wide IMAGE_MCP_MAX_SIZE, so the schema
	// must not advertise a fixed default.
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "image_detect_borders" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		size := props["size"].(map[string]interface{})
		if _, ok := size["default"]; ok {
			t.Error("size should not declare a default")
		}
		return
	}
	t.Fatal("image_detect_borders not found")
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	if expected := GetToolDefinitions(); len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
