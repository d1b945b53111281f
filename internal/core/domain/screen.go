package domain

// Screen identifies one screen of the interactive order flow.
type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenRegister      Screen = "register"
	ScreenMenu          Screen = "menu"
	ScreenConfirmation  Screen = "confirmation"
	ScreenTicketHistory Screen = "ticket_history"
)

// validScreenTransitions defines the allowed navigation between screens.
// Menu, confirmation and ticket history additionally require an authenticated
// session; clients fall back to the login screen when there is none.
var validScreenTransitions = map[Screen][]Screen{
	ScreenLogin:         {ScreenRegister, ScreenMenu},
	ScreenRegister:      {ScreenLogin},
	ScreenMenu:          {ScreenConfirmation, ScreenTicketHistory, ScreenLogin},
	ScreenConfirmation:  {ScreenMenu, ScreenTicketHistory, ScreenLogin},
	ScreenTicketHistory: {ScreenMenu, ScreenLogin},
}

// CanTransitionTo reports whether navigating from s to next is valid.
func (s Screen) CanTransitionTo(next Screen) bool {
	for _, allowed := range validScreenTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates a navigation step and returns the new screen.
func (s Screen) TransitionTo(next Screen) (Screen, error) {
	if !s.CanTransitionTo(next) {
		return s, ErrInvalidTransition
	}
	return next, nil
}

// RequiresAuth reports whether the screen is gated behind a session.
func (s Screen) RequiresAuth() bool {
	switch s {
	case ScreenMenu, ScreenConfirmation, ScreenTicketHistory:
		return true
	}
	return false
}
