package view

// Panel is one of the mutually exclusive screens of the app.
type Panel string

const (
	PanelForm       Panel = "form"
	PanelSuccess    Panel = "success"
	PanelAdminLogin Panel = "admin_login"
	PanelAdmin      Panel = "admin"
)

// State carries the signals that select a panel.
type State struct {
	// AdminRequested is set by ?admin=true (the browser maps #admin onto it).
	AdminRequested bool
	// Requested is the panel named by the ?view= parameter, if any.
	Requested     Panel
	Authenticated bool
}

// ParseRequested maps a ?view= value onto a panel. Unknown values fall back to the form.
func ParseRequested(v string) Panel {
	switch Panel(v) {
	case PanelSuccess, PanelAdminLogin, PanelAdmin:
		return Panel(v)
	}
	return PanelForm
}

// Resolve picks exactly one panel for s.
// INVARIANT: PanelAdmin is returned only when s.Authenticated
func Resolve(s State) Panel {
	if s.AdminRequested || s.Requested == PanelAdmin || s.Requested == PanelAdminLogin {
		if s.Authenticated {
			return PanelAdmin
		}
		return PanelAdminLogin
	}
	if s.Requested == PanelSuccess {
		return PanelSuccess
	}
	return PanelForm
}

// IsAdminContext reports whether p belongs to the admin area.
func IsAdminContext(p Panel) bool {
	return p == PanelAdmin || p == PanelAdminLogin
}
