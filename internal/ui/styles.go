package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"

	"github.com/idlab-discover/salarypred-cli/internal/label"
)

// Color palette for the application (single source of truth)
var (
	ColorPrimary   = lipgloss.Color("#2E86C1") // Blue
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorHighlight = lipgloss.Color("#F4D03F") // Gold

	ColorText     = lipgloss.Color("#F9FAFB") // White
	ColorTextDim  = lipgloss.Color("#9CA3AF") // Light gray
	ColorTextMute = lipgloss.Color("#6B7280") // Muted gray
)

// LabelColor is the result background for an income class.
func LabelColor(l label.Label) color.Color { return lipgloss.Color(l.Color()) }

// styleWrapper wraps a lipgloss style
type styleWrapper struct {
	style lipgloss.Style
}

func (s styleWrapper) Render(str string) string { return s.style.Render(str) }

// Bold returns a new style with bold set to v
func (s styleWrapper) Bold(v bool) styleWrapper { return styleWrapper{s.style.Bold(v)} }

// Text styles
var (
	Bold      = styleWrapper{lipgloss.NewStyle().Bold(true)}
	Dim       = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim)}
	Muted     = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextMute)}
	Success   = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	Warning   = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
	Error     = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	Primary   = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary)}
	Secondary = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	Highlight = styleWrapper{lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)}

	Title         = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)}
	Subtitle      = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim).Italic(true)}
	SectionHeader = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)}
)

// Status marks
var (
	CheckMark = Success.Render("✓")
	CrossMark = Error.Render("✗")
	WarnMark  = Warning.Render("⚠")
	InfoMark  = Secondary.Render("ℹ")
	Bullet    = Muted.Render("•")
)

// Workflow step styles
var (
	StepPending  = styleWrapper{lipgloss.NewStyle().Foreground(ColorMuted)}
	StepRunning  = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	StepComplete = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	StepFailed   = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
)

type boxWrapper struct {
	style lipgloss.Style
}

func (b boxWrapper) Render(str string) string { return b.style.Render(str) }

// Bordered panels
var (
	Box = boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)}

	SuccessBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)}

	ErrorBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)}
)

// ResultBox is the filled, centred panel that shows a prediction.
func ResultBox(l label.Label) boxWrapper {
	return boxWrapper{lipgloss.NewStyle().
		Background(LabelColor(l)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(1, 4).
		Align(lipgloss.Center)}
}

// FormatKeyValue formats a key-value pair with styling
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// FangColorScheme returns a Fang color scheme based on the application's palette
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#1F2937"), lipgloss.Color("#2F2E36")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorHighlight,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is printed at the top of the root help.
const BannerASCII = `
           _                                         _
 ___  __ _| | __ _ _ __ _   _ _ __  _ __ ___  __| |
/ __|/ _' | |/ _' | '__| | | | '_ \| '__/ _ \/ _' |
\__ \ (_| | | (_| | |  | |_| | |_) | | |  __/ (_| |
|___/\__,_|_|\__,_|_|   \__, | .__/|_|  \___|\__,_|
                        |___/|_|
`

// RenderBanner renders the banner in the secondary color
func RenderBanner(banner string) string {
	return Secondary.Render(banner)
}
