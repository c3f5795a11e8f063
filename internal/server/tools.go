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
			Description: "Load an image file and return its dimensions, format, color depth and alpha presence.",
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

		// Inspection
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel, whether it counts as a shade of gray, and the color it becomes after recoloring.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Recoloring
		{
			Name:        "image_recolor",
			Description: "Shift near-gray pixels of an image toward purple using parallel horizontal bands and save the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the result. Format follows the extension (png, jpg, gif, tif, bmp, webp). Default: <name>-purple<ext> next to the source",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Number of horizontal bands processed in parallel (>= 1)",
						"minimum":     1,
					},
					"max_concurrent": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum bands running at once. Default: number of CPUs",
					},
					"keep_row_gap": map[string]interface{}{
						"type":        "boolean",
						"description": "Leave the last height%workers rows unprocessed instead of giving them to the last band",
						"default":     false,
					},
					"include_preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the result as base64-encoded PNG as well",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_recolor_benchmark",
			Description: "Measure recoloring latency for several worker counts and report the speedup curve. Nothing is written to disk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"worker_counts": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer", "minimum": 1},
						"description": "Worker counts to measure. Default [1, 2, 6, 16, 40]",
					},
					"runs": map[string]interface{}{
						"type":        "integer",
						"description": "Runs per worker count; the best and mean are reported. Default 3",
						"default":     3,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
