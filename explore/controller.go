// Package explore tracks a user's position in a server-held topic tree.
//
// The server is the source of truth: every transition is a round trip, and
// the controller reconciles the authoritative response (menu items, content,
// depth) with its local breadcrumb trail. The controller keeps no local copy
// of the tree; going back or jumping to the root re-fetches from the server.
package explore

import (
	"context"
	"errors"
	"strings"
)

// Controller mediates exploration operations against the remote backend and
// owns the session state between them. Operations are not safe for concurrent
// use: the embedding surface is expected to hold off new intents while
// Pending is set.
type Controller struct {
	transport Transport
	session   *Session
	pending   bool
	navErr    *NavError
}

// New creates a controller in the idle state.
func New(transport Transport) *Controller {
	return &Controller{transport: transport}
}

// View is a render snapshot of controller state.
type View struct {
	Session *Session
	State   State
	Pending bool
	Err     *NavError
}

// View returns a snapshot safe for the presentation surface to keep.
func (c *Controller) View() View {
	return View{
		Session: c.session.clone(),
		State:   c.session.State(),
		Pending: c.pending,
		Err:     c.navErr,
	}
}

// Session returns a copy of the current session, or nil when idle.
func (c *Controller) Session() *Session {
	return c.session.clone()
}

// Pending reports whether an operation is in flight. Advisory only.
func (c *Controller) Pending() bool {
	return c.pending
}

// Err returns the error from the most recent operation, if any.
func (c *Controller) Err() *NavError {
	return c.navErr
}

// Start begins a new session for the topic, replacing any existing session.
// A blank topic is rejected locally without a network call. After a failed
// start no session remains, partial or otherwise.
func (c *Controller) Start(ctx context.Context, topic string) error {
	defer c.begin()()

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return c.failValidation(ErrBlankTopic)
	}

	result, err := c.transport.StartSession(ctx, topic)
	if err != nil {
		c.session = nil
		return c.failRemote(err, false)
	}
	c.session = reconcileStart(topic, result)
	return nil
}

// Select descends one level by choosing one of the current menu items.
func (c *Controller) Select(ctx context.Context, item string) error {
	defer c.begin()()

	if c.session == nil {
		return c.failValidation(ErrNoSession)
	}

	result, err := c.transport.SelectItem(ctx, c.session.ID, item)
	if err != nil {
		return c.failRemote(err, true)
	}
	c.session = reconcileSelect(c.session, item, result)
	return nil
}

// Back ascends one level. Going back from the top-level menu is rejected
// locally; a content-shaped response is a protocol violation that clears the
// stale menu items and leaves the rest of the session as last known.
func (c *Controller) Back(ctx context.Context) error {
	defer c.begin()()

	if c.session == nil {
		return c.failValidation(ErrNoSession)
	}
	if c.session.AtRoot() {
		return c.failValidation(ErrAtRoot)
	}

	result, err := c.transport.GoBack(ctx, c.session.ID)
	if err != nil {
		return c.failRemote(err, true)
	}
	if result.Type != ResponseSubmenu {
		return c.failProtocol("go back returned a content response")
	}
	c.session = reconcileBack(c.session, result)
	return nil
}

// Root jumps to the topic's top-level menu regardless of current depth.
func (c *Controller) Root(ctx context.Context) error {
	defer c.begin()()

	if c.session == nil {
		return c.failValidation(ErrNoSession)
	}

	result, err := c.transport.GoToRoot(ctx, c.session.ID)
	if err != nil {
		return c.failRemote(err, true)
	}
	if result.Type != ResponseSubmenu {
		return c.failProtocol("go to root returned a content response")
	}
	c.session = reconcileRoot(c.session, result)
	return nil
}

// Reset discards the session, any pending flag, and any error. It is local,
// unconditional, and idempotent.
func (c *Controller) Reset() {
	c.session = nil
	c.navErr = nil
	c.pending = false
}

// begin marks an operation in flight and clears the previous operation's
// error; the returned func clears the pending flag on completion.
func (c *Controller) begin() func() {
	c.pending = true
	c.navErr = nil
	return func() { c.pending = false }
}

func (c *Controller) failValidation(err error) error {
	c.navErr = &NavError{Kind: KindValidation, Message: err.Error()}
	return err
}

func (c *Controller) failProtocol(message string) error {
	c.session.MenuItems = nil
	c.navErr = &NavError{Kind: KindProtocol, Message: message}
	return c.navErr
}

// failRemote classifies a transport failure. A not-found on a session-bound
// operation means the server no longer knows the session: the controller
// resets implicitly and surfaces a distinguished message. Every other
// failure leaves the session as last known so the same operation can be
// retried.
func (c *Controller) failRemote(err error, sessionBound bool) error {
	var remote *RemoteError
	if errors.As(err, &remote) {
		if sessionBound && remote.NotFound() {
			c.session = nil
			c.navErr = &NavError{
				Kind:    KindSessionNotFound,
				Message: "session expired or invalid: " + remote.Error(),
			}
			return c.navErr
		}
		c.navErr = &NavError{Kind: KindApplication, Message: remote.Error()}
		return c.navErr
	}
	c.navErr = &NavError{Kind: KindTransport, Message: "request failed: " + err.Error()}
	return c.navErr
}
