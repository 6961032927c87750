package game

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var emptyColor = Color{0.8, 0.75, 0.7, 1.0}

var palette = []Color{
	emptyColor,
	{0.93, 0.89, 0.86, 1.0}, // 2
	{0.94, 0.89, 0.79, 1.0},
	{0.95, 0.69, 0.47, 1.0},
	{0.93, 0.55, 0.33, 1.0},
	{0.98, 0.48, 0.36, 1.0},
	{0.92, 0.35, 0.22, 1.0},
	{0.93, 0.81, 0.45, 1.0},
	{0.95, 0.82, 0.28, 1.0},
	{0.93, 0.78, 0.31, 1.0},
	{0.89, 0.73, 0.07, 1.0},
	{0.93, 0.77, 0.01, 1.0}, // 2048
	{0.38, 0.85, 0.57, 1.0},
}

var (
	darkText  = Color{0.46, 0.43, 0.40, 1.0}
	lightText = Color{0.97, 0.96, 0.94, 1.0}
)

// TileColor is the background for a tile value. Values past the palette
// fall back to the empty color.
func TileColor(value int8) Color {
	if value < 0 || int(value) >= len(palette) {
		return emptyColor
	}
	return palette[value]
}

// TextColor is the label color: dark on the pale low tiles, light after.
func TextColor(value int8) Color {
	if value <= 2 {
		return darkText
	}
	return lightText
}
