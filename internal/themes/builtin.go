package themes

const DefaultThemeName = "CosmicVoyager"

var builtinThemes = map[string]Theme{
	"CosmicVoyager": {
		Name:           "CosmicVoyager",
		BaseBackground: "#0b0e1a",
		AltBackground:  "#151a30",
		Accent:         "#7b68ee",
		PrimaryText:    "#f0f0ff",
		SecondaryText:  "#9aa0c0",
		SliderTrack:    "#2a3050",
		SliderFill:     "#7b68ee",
		SliderHandle:   "#b0a4ff",
		Success:        "#3ddc84",
		Warning:        "#ffb74d",
		Error:          "#ff5370",
	},
	"MidnightDrive": {
		Name:           "MidnightDrive",
		BaseBackground: "#10141c",
		AltBackground:  "#1b212e",
		Accent:         "#00b4d8",
		PrimaryText:    "#e8ecf4",
		SecondaryText:  "#8a93a6",
		SliderTrack:    "#263043",
		SliderFill:     "#00b4d8",
		Success:        "#2ecc71",
		Warning:        "#f39c12",
		Error:          "#e74c3c",
	},
	"Sunburst": {
		Name:           "Sunburst",
		BaseBackground: "#1f1408",
		AltBackground:  "#2e1f10",
		Accent:         "#ff9f1c",
		PrimaryText:    "#fff3e0",
		SecondaryText:  "#c0a080",
		Success:        "#9ccc65",
		Warning:        "#ffd54f",
		Error:          "#ef5350",
	},
	"ArcticDawn": {
		Name:           "ArcticDawn",
		BaseBackground: "#eef2f7",
		AltBackground:  "#dde5ef",
		Accent:         "#2b6cb0",
		PrimaryText:    "#1a202c",
		SecondaryText:  "#4a5568",
		SliderTrack:    "#c3ceda",
		SliderFill:     "#2b6cb0",
		Success:        "#2f855a",
		Warning:        "#b7791f",
		Error:          "#c53030",
	},
	"Monochrome": {
		Name:           "Monochrome",
		BaseBackground: "#000000",
		AltBackground:  "#181818",
		Accent:         "#ffffff",
		PrimaryText:    "#ffffff",
		SecondaryText:  "#a0a0a0",
	},
}
