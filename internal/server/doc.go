// Package server implements the MCP (Model Context Protocol) server for image border detection.
//
// This package provides a JSON-RPC 2.0 server that exposes entropy-based
// border detection through the MCP protocol, so MCP-compatible clients can
// find the uniform margins around the content of an image before cropping it.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata, including frame count
//   - image_dimensions: Get width and height
//
// Border Detection:
//   - image_detect_borders: Detect the four borders of a still or animated image
//   - image_region_entropy: Shannon entropy of a region of one frame
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls. The cache
// persists for the lifetime of the server process.
//
// # Configuration
//
// Environment variables read by ConfigFromEnv:
//   - IMAGE_MCP_LOG_LEVEL=debug: log per-call timing to stderr
//   - IMAGE_MCP_MAX_SIZE: default downscale bound for image_detect_borders
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for out-of-range parameters, -32000 for any other failure
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
