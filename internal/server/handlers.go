package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/image-recolor/internal/config"
	"github.com/ironsheep/image-recolor/internal/imaging"
	"github.com/ironsheep/image-recolor/internal/recolor"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_recolor").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Inspection
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Recoloring
	case "image_recolor":
		return s.handleImageRecolor(ctx, args)
	case "image_recolor_benchmark":
		return s.handleImageRecolorBenchmark(ctx, args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadBuffer loads path through the cache and packs it for recoloring.
func (s *Server) loadBuffer(path string) (*recolor.Buffer, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return recolor.FromImage(img), nil
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

// === Inspection Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// SampleColorResult reports a pixel before and after recoloring.
type SampleColorResult struct {
	X           int                 `json:"x"`
	Y           int                 `json:"y"`
	Color       imaging.ColorResult `json:"color"`
	ShadeOfGray bool                `json:"shade_of_gray"`
	Recolored   imaging.ColorResult `json:"recolored"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := imaging.SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}

	r, g, b := recolor.Recolor(c.RGB.R, c.RGB.G, c.RGB.B)
	return &SampleColorResult{
		X:           a.X,
		Y:           a.Y,
		Color:       *c,
		ShadeOfGray: recolor.IsShadeOfGray(c.RGB.R, c.RGB.G, c.RGB.B),
		Recolored:   imaging.NewColorResult(r, g, b, 255),
	}, nil
}

// === Recoloring Handlers ===

type imageRecolorArgs struct {
	Path           string `json:"path"`
	OutputPath     string `json:"output_path"`
	Workers        *int   `json:"workers"`
	MaxConcurrent  int    `json:"max_concurrent"`
	KeepRowGap     *bool  `json:"keep_row_gap"`
	IncludePreview bool   `json:"include_preview"`
}

// RecolorResult summarizes a completed recolor run.
type RecolorResult struct {
	Source     string           `json:"source"`
	OutputPath string           `json:"output_path"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	Workers    int              `json:"workers"`
	Bands      []recolor.Region `json:"bands"`

	// UncoveredRows counts trailing rows no band processed (keep_row_gap only).
	UncoveredRows int `json:"uncovered_rows"`

	// ChangedPixels counts processed pixels whose RGB differs from the source.
	ChangedPixels int     `json:"changed_pixels"`
	DurationMs    float64 `json:"duration_ms"`

	PreviewBase64 string `json:"preview_base64,omitempty"`
	MimeType      string `json:"mime_type,omitempty"`
}

func (s *Server) handleImageRecolor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRecolorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := recolor.Options{
		Workers:       s.defaults.Workers,
		MaxConcurrent: s.defaults.MaxConcurrent,
		KeepRowGap:    s.defaults.KeepRowGap,
	}
	if a.Workers != nil {
		opts.Workers = *a.Workers
	}
	if a.MaxConcurrent > 0 {
		opts.MaxConcurrent = a.MaxConcurrent
	}
	if a.KeepRowGap != nil {
		opts.KeepRowGap = *a.KeepRowGap
	}
	if a.OutputPath == "" {
		a.OutputPath = config.DerivedDestination(a.Path)
	}

	src, err := s.loadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	bands, err := recolor.Bands(src.Width, src.Height, opts.Workers, opts.KeepRowGap)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	dst, err := recolor.RecolorBuffer(ctx, src, opts)
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}

	out := dst.Image()
	if err := imaging.Save(out, a.OutputPath, s.defaults.JPEGQuality); err != nil {
		return nil, err
	}
	if s.defaults.Debug() {
		log.Printf("recolored %s -> %s with %d workers in %v", a.Path, a.OutputPath, opts.Workers, elapsed)
	}

	last := bands[len(bands)-1]
	covered := last.Top + last.Height
	result := &RecolorResult{
		Source:        a.Path,
		OutputPath:    a.OutputPath,
		Width:         src.Width,
		Height:        src.Height,
		Workers:       opts.Workers,
		Bands:         bands,
		UncoveredRows: src.Height - covered,
		ChangedPixels: countChanged(src, dst, covered),
		DurationMs:    float64(elapsed.Microseconds()) / 1000,
	}

	if a.IncludePreview {
		preview, err := imaging.EncodePNGBase64(out)
		if err != nil {
			return nil, err
		}
		result.PreviewBase64 = preview
		result.MimeType = "image/png"
	}
	return result, nil
}

// countChanged counts pixels in the first rows rows whose RGB channels
// differ between src and dst. Rows no band covered are not counted.
func countChanged(src, dst *recolor.Buffer, rows int) int {
	n := 0
	end := min(rows, src.Height) * src.Width
	for i, v := range src.Pix[:end] {
		if (v^dst.Pix[i])&0x00FFFFFF != 0 {
			n++
		}
	}
	return n
}

type imageRecolorBenchmarkArgs struct {
	Path         string `json:"path"`
	WorkerCounts []int  `json:"worker_counts"`
	Runs         int    `json:"runs"`
}

// BenchmarkTiming is one point of the scaling curve in milliseconds.
type BenchmarkTiming struct {
	Workers int     `json:"workers"`
	BestMs  float64 `json:"best_ms"`
	MeanMs  float64 `json:"mean_ms"`
	Speedup float64 `json:"speedup"`
}

// BenchmarkResult is the scaling curve for one image.
type BenchmarkResult struct {
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Runs    int               `json:"runs"`
	Timings []BenchmarkTiming `json:"timings"`
}

func (s *Server) handleImageRecolorBenchmark(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRecolorBenchmarkArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Runs <= 0 {
		a.Runs = 3
	}

	src, err := s.loadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	timings, err := recolor.MeasureScaling(ctx, src, a.WorkerCounts, a.Runs)
	if err != nil {
		return nil, err
	}

	result := &BenchmarkResult{Width: src.Width, Height: src.Height, Runs: a.Runs}
	for _, t := range timings {
		result.Timings = append(result.Timings, BenchmarkTiming{
			Workers: t.Workers,
			BestMs:  toMillis(t.Best),
			MeanMs:  toMillis(t.Mean),
			Speedup: t.Speedup,
		})
	}
	return result, nil
}

func toMillis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
