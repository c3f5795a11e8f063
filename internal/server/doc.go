// Package server implements the MCP (Model Context Protocol) server for image
// recoloring.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - Input: JSON-RPC requests on stdin
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
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Inspection:
//   - image_sample_color: Pixel color, gray classification and recolored value
//
// Recoloring:
//   - image_recolor: Recolor with N parallel bands and save the result
//   - image_recolor_benchmark: Latency and speedup per worker count
//
// # Image Caching
//
// Source images are cached by path for the lifetime of the process. Results
// are always written to a new file; the cached source is never modified.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string. A partially failed recolor lists every
//     band that did not complete; nothing is saved in that case.
package server
