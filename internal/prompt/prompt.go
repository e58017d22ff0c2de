// Package prompt assembles the system prompt sent to the backends from the
// user's request plus whatever the host editor could tell us about the
// active document.
package prompt

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spriteforge/autopaint/internal/provider"
	"github.com/spriteforge/autopaint/internal/snapshot"
)

// maxPaletteEntries bounds the color table embedded into the prompt.
const maxPaletteEntries = 16

// RGBA is one palette entry.
type RGBA struct {
	R, G, B, A uint8
}

// Rect is a selection rectangle in canvas coordinates.
type Rect struct {
	X, Y, W, H int
}

// Hints carries the document context that gets textually embedded into the
// prompt. The zero value means "unknown"; each hint is only emitted when
// present.
type Hints struct {
	CanvasWidth  int
	CanvasHeight int
	Selection    *Rect
	Palette      []RGBA
}

// PaletteTable renders the palette as a Lua-style index table, capped at
// maxPaletteEntries. Fully transparent entries are forced opaque so the
// model never paints with the transparent index.
func PaletteTable(palette []RGBA) string {
	var b strings.Builder
	b.WriteString("{")
	for i, c := range palette {
		if i >= maxPaletteEntries {
			break
		}
		a := c.A
		if a == 0 {
			a = 255
		}
		fmt.Fprintf(&b, "[%d]=Color{r=%d,g=%d,b=%d,a=%d},", i, c.R, c.G, c.B, a)
	}
	b.WriteString("}")
	return b.String()
}

// BuildSystemPrompt produces the full instruction text for one submission.
func BuildSystemPrompt(userPrompt string, h Hints) string {
	sizeHint := ""
	if h.CanvasWidth > 0 && h.CanvasHeight > 0 {
		sizeHint = fmt.Sprintf("CANVAS SIZE: %dx%d pixels. ", h.CanvasWidth, h.CanvasHeight)
	}

	selectionHint := ""
	if h.Selection != nil {
		selectionHint = fmt.Sprintf(
			"ACTIVE SELECTION: x=%d, y=%d, width=%d, height=%d. ONLY draw within this area! ",
			h.Selection.X, h.Selection.Y, h.Selection.W, h.Selection.H)
	}

	return "Context: You are Aseprite Assistant. Use Lua to script Aseprite.\n\n" +
		sizeHint + selectionHint + "\n\n" +
		"CRITICAL LAYER SAFETY: Always start by creating a new layer AND cel:\n" +
		"```lua\n" +
		"local sprite = app.activeSprite\n" +
		"local layer = sprite:newLayer()\n" +
		"layer.name = 'AI Generation'\n" +
		"app.activeLayer = layer\n" +
		"-- CRITICAL: Create a cel (image) in this layer\n" +
		"local cel = sprite:newCel(layer, app.activeFrame)\n" +
		"```\n\n" +
		"OPTIMIZED DRAWING METHOD - You have a helper function for efficient drawing:\n" +
		"```lua\n" +
		"-- drawHexGrid(startX, startY, width, hexString, palette)\n" +
		"-- hexString: each character (0-F) is a palette index\n" +
		"-- Example: \"0001112000011120\" draws a 4x4 grid\n" +
		"```\n\n" +
		"CURRENT PALETTE (use ONLY these indices 0-F):\n" + PaletteTable(h.Palette) + "\n\n" +
		"AVAILABLE METHODS:\n" +
		"1. PREFERRED: Use drawHexGrid() for efficient pixel-perfect drawing\n" +
		"   - Generate a hex string where each char is a palette index\n" +
		"   - Example: drawHexGrid(0, 0, 8, \"00112233...\", palette)\n" +
		"2. FALLBACK: Use app.activeImage:drawPixel(x, y, palette[index]) ONLY if needed\n" +
		"   - Always use palette[index], NEVER Color{r=...,g=...,b=...}\n" +
		"3. ANIMATION: Create frames with sprite:newFrame() or sprite:newEmptyFrame()\n\n" +
		"STYLE REQUIREMENTS:\n" +
		"- Create PROFESSIONAL, HIGH-QUALITY pixel art\n" +
		"- Use shading and lighting for depth (not flat colors)\n" +
		"- Maintain coherent color palette usage\n" +
		"- Ensure proper proportions for pixel art\n" +
		"- NO stray pixels or noise\n\n" +
		"ALWAYS end with `app.refresh()`\n\n" +
		"User Request: " + userPrompt + "\n\nOutput MUST be a complete Lua code block in markdown format."
}

// NewRequestContext packages the assembled prompt and an optional snapshot
// into the canonical request handed to the orchestrator. img may be nil.
func NewRequestContext(userPrompt string, h Hints, img *snapshot.Image) provider.RequestContext {
	rc := provider.RequestContext{
		Prompt: BuildSystemPrompt(userPrompt, h),
	}
	if img != nil {
		rc.ImageB64 = base64.StdEncoding.EncodeToString(img.Data)
		rc.ImageMIME = img.MIME
	}
	return rc
}
