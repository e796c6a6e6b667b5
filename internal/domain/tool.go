package domain

import "strings"

// ToolID enumerates the fixed set of image-editing tools.
type ToolID string

const (
	ToolWatermark  ToolID = "WATERMARK"
	ToolBackground ToolID = "BACKGROUND"
	ToolEnhance    ToolID = "ENHANCE"
	ToolUpscale    ToolID = "UPSCALE"
)

// Tool is one entry of the static catalog. The catalog is read-only and
// never changes at runtime.
type Tool struct {
	ID          ToolID
	Title       string
	Description string
	Icon        string
	Credits     int
}

var tools = []Tool{
	{
		ID:          ToolWatermark,
		Title:       "Watermark Remover",
		Description: "Erase watermarks, text overlays, and logos without a trace.",
		Icon:        "eraser",
		Credits:     2,
	},
	{
		ID:          ToolBackground,
		Title:       "Background Remover",
		Description: "Isolate the subject onto a clean transparent background.",
		Icon:        "scissors",
		Credits:     1,
	},
	{
		ID:          ToolEnhance,
		Title:       "Photo Enhancer",
		Description: "Boost colors, brightness, and contrast for a professional finish.",
		Icon:        "sparkles",
		Credits:     1,
	},
	{
		ID:          ToolUpscale,
		Title:       "Image Upscaler",
		Description: "Rebuild fine detail at high resolution with razor sharpness.",
		Icon:        "maximize",
		Credits:     2,
	},
}

// Tools returns the catalog in display order.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// ToolByID looks up a catalog entry. The boolean is false for unknown ids.
func ToolByID(id ToolID) (Tool, bool) {
	for _, t := range tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// ParseToolID normalizes free-form input into a catalog id.
func ParseToolID(s string) (ToolID, bool) {
	id := ToolID(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := ToolByID(id); !ok {
		return "", false
	}
	return id, true
}

// DownloadName returns the deterministic filename offered for a processed
// result, e.g. "visionary_ai_watermark.png".
func DownloadName(id ToolID) string {
	return "visionary_ai_" + strings.ToLower(string(id)) + ".png"
}
