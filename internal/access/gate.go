// Package access decides what a visitor must do before joining a ranking,
// starting a mission or buying an event ticket.
package access

import "github.com/unclebandit/brandplay-backend/internal/model"

type Gate string

const (
	NeedsAuth    Gate = "needs_auth"
	NeedsTerms   Gate = "needs_terms"
	NeedsProfile Gate = "needs_profile"
	Allowed      Gate = "allowed"
)

// Resolve applies the onboarding checks in order: signed in, terms
// accepted, profile completed.
func Resolve(user *model.User) Gate {
	switch {
	case user == nil:
		return NeedsAuth
	case !user.HasAcceptedTerms:
		return NeedsTerms
	case !user.HasCompletedProfile:
		return NeedsProfile
	default:
		return Allowed
	}
}

// Outcome tells the client what to do next.
type Outcome struct {
	Gate     Gate   `json:"gate"`
	Action   string `json:"action"`
	Location string `json:"location,omitempty"`
	Modal    string `json:"modal,omitempty"`
}

const (
	ActionRedirect  = "redirect"
	ActionOpenModal = "open_modal"
	ActionNavigate  = "navigate"
)

// Decide resolves the gate and turns it into an outcome; allowed visitors
// are sent to the game route.
func Decide(user *model.User, gameID string) Outcome {
	gate := Resolve(user)
	switch gate {
	case NeedsAuth:
		return Outcome{Gate: gate, Action: ActionRedirect, Location: "/auth"}
	case NeedsTerms:
		return Outcome{Gate: gate, Action: ActionOpenModal, Modal: "terms"}
	case NeedsProfile:
		return Outcome{Gate: gate, Action: ActionOpenModal, Modal: "profile"}
	}
	return Outcome{Gate: gate, Action: ActionNavigate, Location: "/game/" + gameID}
}
