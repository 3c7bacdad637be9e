package notion

import "github.com/lox/d2wiki/internal/vocab"

type Color string

const (
	ColorDefault          Color = "default"
	ColorGray             Color = "gray"
	ColorBrown            Color = "brown"
	ColorOrange           Color = "orange"
	ColorYellow           Color = "yellow"
	ColorGreen            Color = "green"
	ColorBlue             Color = "blue"
	ColorPurple           Color = "purple"
	ColorPink             Color = "pink"
	ColorRed              Color = "red"
	ColorGrayBackground   Color = "gray_background"
	ColorBrownBackground  Color = "brown_background"
	ColorOrangeBackground Color = "orange_background"
	ColorYellowBackground Color = "yellow_background"
	ColorGreenBackground  Color = "green_background"
	ColorBlueBackground   Color = "blue_background"
	ColorPurpleBackground Color = "purple_background"
	ColorPinkBackground   Color = "pink_background"
	ColorRedBackground    Color = "red_background"
)

var Colors = vocab.New("color",
	vocab.E(ColorDefault, "default"),
	vocab.E(ColorGray, "gray"),
	vocab.E(ColorBrown, "brown"),
	vocab.E(ColorOrange, "orange"),
	vocab.E(ColorYellow, "yellow"),
	vocab.E(ColorGreen, "green"),
	vocab.E(ColorBlue, "blue"),
	vocab.E(ColorPurple, "purple"),
	vocab.E(ColorPink, "pink"),
	vocab.E(ColorRed, "red"),
	vocab.E(ColorGrayBackground, "gray_background"),
	vocab.E(ColorBrownBackground, "brown_background"),
	vocab.E(ColorOrangeBackground, "orange_background"),
	vocab.E(ColorYellowBackground, "yellow_background"),
	vocab.E(ColorGreenBackground, "green_background"),
	vocab.E(ColorBlueBackground, "blue_background"),
	vocab.E(ColorPurpleBackground, "purple_background"),
	vocab.E(ColorPinkBackground, "pink_background"),
	vocab.E(ColorRedBackground, "red_background"),
)

// ansiColors is an approximation; Discord's ansi blocks only render a handful
// of foreground and background codes.
var ansiColors = map[Color]string{
	ColorGray:             "30",
	ColorRed:              "31",
	ColorGreen:            "32",
	ColorYellow:           "33",
	ColorBlue:             "34",
	ColorPink:             "35",
	ColorDefault:          "37",
	ColorOrangeBackground: "41",
	ColorGrayBackground:   "44",
	ColorBlueBackground:   "45",
}

const ansiDefaultColor = "37"

// ANSICode returns the color code for c, falling back to the default color.
func (c Color) ANSICode() string {
	if code, ok := ansiColors[c]; ok {
		return code
	}
	return ansiDefaultColor
}
