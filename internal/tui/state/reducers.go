package state

// Open shows o, replacing any other overlay. Scrolling restarts at the top.
func Open(s UIState, o Overlay) UIState {
    s.Overlay = o
    s.ScrollV = 0
    return s
}

// Close hides the current overlay.
func Close(s UIState) UIState {
    s.Overlay = NONE
    s.ScrollV = 0
    return s
}

// Toggle opens o, or closes it when it is already shown.
func Toggle(s UIState, o Overlay) UIState {
    if s.Overlay == o {
        return Close(s)
    }
    return Open(s, o)
}

// Dialog reports whether a text-entry dialog owns the keyboard.
func Dialog(s UIState) bool {
    return s.Overlay == OPEN || s.Overlay == SAVE
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
    if s.View == Unified {
        s.View = SideBySide
    } else {
        s.View = Unified
    }
    return s
}

// Resize updates the size and sets a fallback notice if too narrow for side-by-side.
// Threshold heuristic: need at least 2*MinCol plus 3 chars for separator/gutters.
func Resize(s UIState, width, height int) UIState {
    s.Width = width
    s.Height = height
    threshold := 2*s.MinCol + 3
    if s.View == SideBySide && s.Width < threshold {
        s.View = Unified
        s.Notice = "Narrow width: using unified view"
    }
    return s
}

// ScrollUp moves the overlay viewport up.
func ScrollUp(s UIState, fast bool) UIState {
    delta := 1
    if fast {
        delta = 8
    }
    if s.ScrollV >= delta {
        s.ScrollV -= delta
    } else {
        s.ScrollV = 0
    }
    return s
}

// ScrollDown moves the overlay viewport down.
func ScrollDown(s UIState, fast bool) UIState {
    delta := 1
    if fast {
        delta = 8
    }
    s.ScrollV += delta
    return s
}

// MoveThemeCursor moves the theme menu cursor by delta, wrapping within n entries.
func MoveThemeCursor(s UIState, delta, n int) UIState {
    if n <= 0 {
        s.ThemeCursor = 0
        return s
    }
    s.ThemeCursor = ((s.ThemeCursor+delta)%n + n) % n
    return s
}

// SetNotice replaces the ephemeral message.
func SetNotice(s UIState, notice string) UIState {
    s.Notice = notice
    return s
}
