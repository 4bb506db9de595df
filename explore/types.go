package explore

import "context"

// ResponseType tags the shape of a navigation response.
type ResponseType string

const (
	// ResponseSubmenu indicates the response carries selectable items only.
	ResponseSubmenu ResponseType = "submenu"
	// ResponseContent indicates the response carries generated content,
	// optionally with further-exploration items.
	ResponseContent ResponseType = "content"
)

// StartResult is the server's answer to starting a session.
type StartResult struct {
	SessionID    string
	MenuItems    []string
	CurrentDepth *int
	MaxDepth     *int
}

// MenuResult is the server's answer to a select, go-back, or go-to-root
// operation. CurrentDepth and MaxDepth are nil when the response omitted them.
type MenuResult struct {
	Type         ResponseType
	MenuItems    []string
	Content      string
	CurrentDepth *int
	MaxDepth     *int
}

// Transport performs the remote exploration operations. Implementations
// normalize server-reported failures into *RemoteError.
type Transport interface {
	StartSession(ctx context.Context, topic string) (*StartResult, error)
	SelectItem(ctx context.Context, sessionID, selection string) (*MenuResult, error)
	GoBack(ctx context.Context, sessionID string) (*MenuResult, error)
	GoToRoot(ctx context.Context, sessionID string) (*MenuResult, error)
}

// State identifies where the controller is in the session lifecycle.
type State string

const (
	// StateIdle indicates no session exists.
	StateIdle State = "idle"
	// StateBrowsing indicates a session exists and a menu is shown.
	StateBrowsing State = "browsing"
	// StateViewing indicates a session exists and content is shown.
	StateViewing State = "viewing"
)

// DepthUnknown marks a depth field the server has not reported.
const DepthUnknown = -1

// Session tracks one exploration thread against the server. The server owns
// the topic tree; the session holds an opaque handle plus a local breadcrumb
// shadow of the steps taken.
type Session struct {
	// ID is the opaque token issued by the server at session creation.
	ID string
	// Topic is the original topic text, immutable for the session.
	Topic string
	// CurrentDepth is the server-reported distance from the root menu,
	// DepthUnknown when the last response omitted it.
	CurrentDepth int
	// MaxDepth is the server-reported depth ceiling, DepthUnknown when the
	// server has never reported one.
	MaxDepth int
	// Breadcrumb is the display trail: "Topic: X" followed by one
	// "Selected: Y" entry per descent.
	Breadcrumb []string
	// MenuItems are the selectable labels at the current position. Empty
	// means the current content is terminal.
	MenuItems []string
	// Content is the generated body at a content node, empty otherwise.
	Content string
}

// State derives the lifecycle state. A nil session is idle.
func (s *Session) State() State {
	if s == nil {
		return StateIdle
	}
	if s.Content != "" {
		return StateViewing
	}
	return StateBrowsing
}

// Depth returns the server-reported depth, falling back to the breadcrumb
// length when the server has not reported one. Server depth wins for
// navigation gating; the breadcrumb is display-only.
func (s *Session) Depth() int {
	if s == nil {
		return 0
	}
	if s.CurrentDepth != DepthUnknown {
		return s.CurrentDepth
	}
	if len(s.Breadcrumb) > 0 {
		return len(s.Breadcrumb) - 1
	}
	return 0
}

// AtRoot reports whether the session is at the topic's top-level menu.
func (s *Session) AtRoot() bool {
	return s == nil || len(s.Breadcrumb) <= 1
}

// CanGoDeeper reports whether descending should be offered, based on the
// server-reported ceiling.
func (s *Session) CanGoDeeper() bool {
	if s == nil || len(s.MenuItems) == 0 {
		return false
	}
	if s.MaxDepth == DepthUnknown {
		return true
	}
	return s.Depth() < s.MaxDepth
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Breadcrumb = append([]string(nil), s.Breadcrumb...)
	copied.MenuItems = append([]string(nil), s.MenuItems...)
	return &copied
}
