package tui

// This file re-exports colors from the centralized colors package
// so zone code can refer to them without the extra import.

import "personix/internal/colors"

const (
	Red       = colors.Red
	Orange    = colors.Orange
	Yellow    = colors.Yellow
	Green     = colors.Green
	Turquoise = colors.Turquoise
	DeepBlue  = colors.DeepBlue
	LightBlue = colors.LightBlue
	Blue      = colors.Blue
	Grey      = colors.Grey
	LightGrey = colors.LightGrey
	DarkGrey  = colors.DarkGrey
	White     = colors.White
	OffWhite  = colors.OffWhite
	HotPink   = colors.HotPink
)
