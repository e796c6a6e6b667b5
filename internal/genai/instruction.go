package genai

import "github.com/faraz1977/ai-visionary/internal/domain"

// instructions maps each tool to the fixed natural-language edit
// instruction sent alongside the image. One instruction per tool; the
// model receives nothing else about the requested operation.
var instructions = map[domain.ToolID]string{
	domain.ToolWatermark:  "Please analyze this image and generate an identical version but remove any visible watermarks, text overlays, or logos. Output ONLY the edited image.",
	domain.ToolBackground: "Please generate an identical version of this image but with a solid, pure transparent background (or pure white if transparency is not possible). Focus on isolating the main subject.",
	domain.ToolEnhance:    "Please enhance the colors, brightness, and contrast of this image to make it look professionally shot and edited. Maintain natural look but boost vibrance.",
	domain.ToolUpscale:    "Please generate a high-fidelity, sharpened, and high-resolution version of this image, preserving and reconstructing fine details.",
}

// Instruction returns the edit instruction for a tool. Unknown tools fall
// back to the enhancement instruction rather than sending an empty prompt.
func Instruction(tool domain.ToolID) string {
	if s, ok := instructions[tool]; ok {
		return s
	}
	return instructions[domain.ToolEnhance]
}
