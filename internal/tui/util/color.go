package util

import (
    "os"

    "github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
    if explicit {
        return true
    }
    return os.Getenv("NO_COLOR") != ""
}

// Palette defines a small set of colors used across widgets.
type Palette struct {
    Background lipgloss.Color
    Foreground lipgloss.Color
    Primary    lipgloss.Color
    Success    lipgloss.Color
    Danger     lipgloss.Color
    Warning    lipgloss.Color
    Muted      lipgloss.Color
    MutedDark  lipgloss.Color
}

// Theme is an editor theme selectable from the theme menu.
type Theme struct {
    ID      string
    Name    string
    Palette Palette
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
    return solarizedDark
}

var solarizedDark = Palette{
    Background: lipgloss.Color("#002B36"),
    Foreground: lipgloss.Color("#93A1A1"),
    Primary:    lipgloss.Color("#268BD2"),
    Success:    lipgloss.Color("#859900"),
    Danger:     lipgloss.Color("#DC322F"),
    Warning:    lipgloss.Color("#B58900"),
    Muted:      lipgloss.Color("#586E75"),
    MutedDark:  lipgloss.Color("#073642"),
}

var themes = []Theme{
    {ID: "ace/theme/chrome", Name: "Chrome", Palette: Palette{
        Background: "#FFFFFF", Foreground: "#000000", Primary: "#3D6DFF", Success: "#2AA876",
        Danger: "#D9534F", Warning: "#F0AD4E", Muted: "#6C757D", MutedDark: "#E8E8E8",
    }},
    {ID: "ace/theme/clouds", Name: "Clouds", Palette: Palette{
        Background: "#FFFFFF", Foreground: "#000000", Primary: "#5D90CD", Success: "#46A609",
        Danger: "#C52727", Warning: "#AF956F", Muted: "#BCC8BA", MutedDark: "#EBEBEB",
    }},
    {ID: "ace/theme/github", Name: "GitHub", Palette: Palette{
        Background: "#FFFFFF", Foreground: "#24292E", Primary: "#0366D6", Success: "#22863A",
        Danger: "#D73A49", Warning: "#E36209", Muted: "#6A737D", MutedDark: "#F6F8FA",
    }},
    {ID: "ace/theme/monokai", Name: "Monokai", Palette: Palette{
        Background: "#272822", Foreground: "#F8F8F2", Primary: "#66D9EF", Success: "#A6E22E",
        Danger: "#F92672", Warning: "#E6DB74", Muted: "#75715E", MutedDark: "#3E3D32",
    }},
    {ID: "ace/theme/solarized_dark", Name: "Solarized Dark", Palette: solarizedDark},
    {ID: "ace/theme/solarized_light", Name: "Solarized Light", Palette: Palette{
        Background: "#FDF6E3", Foreground: "#586E75", Primary: "#268BD2", Success: "#859900",
        Danger: "#DC322F", Warning: "#B58900", Muted: "#93A1A1", MutedDark: "#EEE8D5",
    }},
    {ID: "ace/theme/tomorrow", Name: "Tomorrow", Palette: Palette{
        Background: "#FFFFFF", Foreground: "#4D4D4C", Primary: "#4271AE", Success: "#718C00",
        Danger: "#C82829", Warning: "#EAB700", Muted: "#8E908C", MutedDark: "#EFEFEF",
    }},
    {ID: "ace/theme/tomorrow_night", Name: "Tomorrow Night", Palette: Palette{
        Background: "#1D1F21", Foreground: "#C5C8C6", Primary: "#81A2BE", Success: "#B5BD68",
        Danger: "#CC6666", Warning: "#F0C674", Muted: "#969896", MutedDark: "#282A2E",
    }},
    {ID: "ace/theme/twilight", Name: "Twilight", Palette: Palette{
        Background: "#141414", Foreground: "#F8F8F8", Primary: "#7587A6", Success: "#8F9D6A",
        Danger: "#CF6A4C", Warning: "#F9EE98", Muted: "#5F5A60", MutedDark: "#202020",
    }},
    {ID: "ace/theme/xcode", Name: "Xcode", Palette: Palette{
        Background: "#FFFFFF", Foreground: "#000000", Primary: "#0000A2", Success: "#008000",
        Danger: "#C41A16", Warning: "#826B28", Muted: "#6C757D", MutedDark: "#E8F2FF",
    }},
}

// Themes lists the selectable themes in menu order.
func Themes() []Theme {
    out := make([]Theme, len(themes))
    copy(out, themes)
    return out
}

// ThemeIndex returns the menu position of id, or -1.
func ThemeIndex(id string) int {
    for i, t := range themes {
        if t.ID == id {
            return i
        }
    }
    return -1
}

// ThemeByID returns the theme with id. Unknown ids fall back to Solarized Dark.
func ThemeByID(id string) (Theme, bool) {
    if i := ThemeIndex(id); i >= 0 {
        return themes[i], true
    }
    return Theme{ID: "ace/theme/solarized_dark", Name: "Solarized Dark", Palette: solarizedDark}, false
}
