// Package script wraps extracted Lua for safe execution and hands it to a
// script runner. The engine never inspects the script's own result beyond
// the runner's success or failure.
package script

import (
	"fmt"

	"github.com/spriteforge/autopaint/internal/prompt"
)

// helperScript is the drawHexGrid helper injected ahead of every generated
// script. Pixels outside the selection bounds are dropped.
const helperScript = `function drawHexGrid(startX, startY, width, hexString, palette, selX, selY, selW, selH)
    local x = 0
    local y = 0
    selX = selX or -1
    selY = selY or -1
    selW = selW or 999999
    selH = selH or 999999
    for i = 1, #hexString do
        local char = hexString:sub(i, i)
        local colorIndex = tonumber(char, 16)
        if colorIndex and palette[colorIndex] then
            local px = startX + x
            local py = startY + y
            if selX == -1 or (px >= selX and px < selX + selW and py >= selY and py < selY + selH) then
                app.activeImage:drawPixel(px, py, palette[colorIndex])
            end
        end
        x = x + 1
        if x >= width then
            x = 0
            y = y + 1
        end
    end
end
`

// WrapLua surrounds generated code with the drawing helper, the current
// palette, the selection bounds, and an app.transaction so the whole
// generation is one undo step.
func WrapLua(code string, h prompt.Hints) string {
	selX, selY, selW, selH := -1, -1, 999999, 999999
	if h.Selection != nil {
		selX, selY = h.Selection.X, h.Selection.Y
		selW, selH = h.Selection.W, h.Selection.H
	}

	return "app.transaction(function()\n" +
		helperScript + "\n" +
		"-- Current palette\n" +
		"local palette = " + prompt.PaletteTable(h.Palette) + "\n\n" +
		"-- Selection bounds (if any)\n" +
		fmt.Sprintf("local selX, selY, selW, selH = %d, %d, %d, %d\n\n", selX, selY, selW, selH) +
		code +
		"\nend)"
}
