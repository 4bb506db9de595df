package explore

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeTransport struct {
	startFn  func(topic string) (*StartResult, error)
	selectFn func(sessionID, selection string) (*MenuResult, error)
	backFn   func(sessionID string) (*MenuResult, error)
	rootFn   func(sessionID string) (*MenuResult, error)
	calls    int
}

func (f *fakeTransport) StartSession(_ context.Context, topic string) (*StartResult, error) {
	f.calls++
	if f.startFn == nil {
		return nil, fmt.Errorf("unexpected StartSession call")
	}
	return f.startFn(topic)
}

func (f *fakeTransport) SelectItem(_ context.Context, sessionID, selection string) (*MenuResult, error) {
	f.calls++
	if f.selectFn == nil {
		return nil, fmt.Errorf("unexpected SelectItem call")
	}
	return f.selectFn(sessionID, selection)
}

func (f *fakeTransport) GoBack(_ context.Context, sessionID string) (*MenuResult, error) {
	f.calls++
	if f.backFn == nil {
		return nil, fmt.Errorf("unexpected GoBack call")
	}
	return f.backFn(sessionID)
}

func (f *fakeTransport) GoToRoot(_ context.Context, sessionID string) (*MenuResult, error) {
	f.calls++
	if f.rootFn == nil {
		return nil, fmt.Errorf("unexpected GoToRoot call")
	}
	return f.rootFn(sessionID)
}

func intp(v int) *int { return &v }

func startQuantum(t *testing.T) (*Controller, *fakeTransport) {
	t.Helper()
	transport := &fakeTransport{
		startFn: func(topic string) (*StartResult, error) {
			return &StartResult{
				SessionID:    "sess-1",
				MenuItems:    []string{"History", "Key Concepts", "Applications"},
				CurrentDepth: intp(0),
				MaxDepth:     intp(3),
			}, nil
		},
	}
	controller := New(transport)
	if err := controller.Start(context.Background(), "Quantum Computing"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	return controller, transport
}

func TestStart(t *testing.T) {
	controller, _ := startQuantum(t)

	session := controller.Session()
	if session == nil {
		t.Fatal("expected a session")
	}
	if session.ID != "sess-1" {
		t.Fatalf("expected session id sess-1, got %q", session.ID)
	}
	if session.State() != StateBrowsing {
		t.Fatalf("expected browsing state, got %q", session.State())
	}
	if len(session.Breadcrumb) != 1 || session.Breadcrumb[0] != "Topic: Quantum Computing" {
		t.Fatalf("unexpected breadcrumb: %v", session.Breadcrumb)
	}
	if len(session.MenuItems) != 3 {
		t.Fatalf("unexpected menu items: %v", session.MenuItems)
	}
	if controller.Pending() {
		t.Fatal("pending flag should clear after the operation")
	}
	if controller.Err() != nil {
		t.Fatalf("unexpected error: %v", controller.Err())
	}
}

func TestStartBlankTopic(t *testing.T) {
	transport := &fakeTransport{}
	controller := New(transport)

	err := controller.Start(context.Background(), "   ")
	if !errors.Is(err, ErrBlankTopic) {
		t.Fatalf("expected ErrBlankTopic, got %v", err)
	}
	if transport.calls != 0 {
		t.Fatalf("blank topic must not reach the network, got %d calls", transport.calls)
	}
	navErr := controller.Err()
	if navErr == nil || navErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %+v", navErr)
	}
	if controller.Session() != nil {
		t.Fatal("expected no session")
	}
}

func TestStartTrimsTopic(t *testing.T) {
	var seenTopic string
	transport := &fakeTransport{
		startFn: func(topic string) (*StartResult, error) {
			seenTopic = topic
			return &StartResult{SessionID: "sess-1", MenuItems: []string{"A"}}, nil
		},
	}
	controller := New(transport)
	if err := controller.Start(context.Background(), "  Jazz  "); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if seenTopic != "Jazz" {
		t.Fatalf("expected trimmed topic, got %q", seenTopic)
	}
	if got := controller.Session().Breadcrumb[0]; got != "Topic: Jazz" {
		t.Fatalf("unexpected breadcrumb: %q", got)
	}
}

func TestStartFailureDiscardsPreviousSession(t *testing.T) {
	controller, transport := startQuantum(t)
	transport.startFn = func(topic string) (*StartResult, error) {
		return nil, &RemoteError{StatusCode: 500, Message: "generation failed"}
	}

	if err := controller.Start(context.Background(), "Jazz"); err == nil {
		t.Fatal("expected an error")
	}
	if controller.Session() != nil {
		t.Fatal("failed start must not leave a partial session")
	}
	navErr := controller.Err()
	if navErr == nil || navErr.Kind != KindApplication || navErr.Message != "generation failed" {
		t.Fatalf("unexpected error: %+v", navErr)
	}
}

func TestSelectSubmenu(t *testing.T) {
	controller, transport := startQuantum(t)
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		if sessionID != "sess-1" {
			t.Fatalf("unexpected session id %q", sessionID)
		}
		return &MenuResult{
			Type:         ResponseSubmenu,
			MenuItems:    []string{"Early History", "Modern Era"},
			CurrentDepth: intp(1),
		}, nil
	}

	if err := controller.Select(context.Background(), "History"); err != nil {
		t.Fatalf("select: %v", err)
	}
	session := controller.Session()
	if session.State() != StateBrowsing {
		t.Fatalf("expected browsing state, got %q", session.State())
	}
	want := []string{"Topic: Quantum Computing", "Selected: History"}
	if len(session.Breadcrumb) != 2 || session.Breadcrumb[1] != want[1] {
		t.Fatalf("unexpected breadcrumb: %v", session.Breadcrumb)
	}
	if session.CurrentDepth != 1 {
		t.Fatalf("expected depth 1, got %d", session.CurrentDepth)
	}
	if len(session.MenuItems) != 2 {
		t.Fatalf("unexpected menu items: %v", session.MenuItems)
	}
}

func TestSelectContent(t *testing.T) {
	controller, transport := startQuantum(t)
	selectToDepth(t, controller, transport, "History", 1)
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return &MenuResult{
			Type:         ResponseContent,
			Content:      "Modern quantum computing began...",
			MenuItems:    []string{"Related: Qubits"},
			CurrentDepth: intp(2),
		}, nil
	}

	if err := controller.Select(context.Background(), "Modern Era"); err != nil {
		t.Fatalf("select: %v", err)
	}
	session := controller.Session()
	if session.State() != StateViewing {
		t.Fatalf("expected viewing state, got %q", session.State())
	}
	if session.Content == "" {
		t.Fatal("expected content")
	}
	if len(session.Breadcrumb) != 3 {
		t.Fatalf("expected breadcrumb length 3, got %v", session.Breadcrumb)
	}
	if len(session.MenuItems) != 1 || session.MenuItems[0] != "Related: Qubits" {
		t.Fatalf("unexpected further-exploration items: %v", session.MenuItems)
	}
}

func TestBreadcrumbTracksDepthAcrossSelects(t *testing.T) {
	controller, transport := startQuantum(t)
	for depth := 1; depth <= 4; depth++ {
		selectToDepth(t, controller, transport, fmt.Sprintf("Item %d", depth), depth)
		session := controller.Session()
		if len(session.Breadcrumb) != session.CurrentDepth+1 {
			t.Fatalf("depth %d: breadcrumb length %d != depth+1 %d",
				depth, len(session.Breadcrumb), session.CurrentDepth+1)
		}
	}
}

func TestBackIsLeftInverseOfSelect(t *testing.T) {
	controller, transport := startQuantum(t)
	before := len(controller.Session().Breadcrumb)
	selectToDepth(t, controller, transport, "History", 1)

	transport.backFn = func(sessionID string) (*MenuResult, error) {
		return &MenuResult{
			Type:         ResponseSubmenu,
			MenuItems:    []string{"History", "Key Concepts", "Applications"},
			CurrentDepth: intp(0),
		}, nil
	}
	if err := controller.Back(context.Background()); err != nil {
		t.Fatalf("back: %v", err)
	}
	session := controller.Session()
	if len(session.Breadcrumb) != before {
		t.Fatalf("expected breadcrumb length %d after back, got %d", before, len(session.Breadcrumb))
	}
	if session.State() != StateBrowsing {
		t.Fatalf("expected browsing state, got %q", session.State())
	}
}

func TestBackClearsContent(t *testing.T) {
	controller, transport := startQuantum(t)
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return &MenuResult{
			Type:         ResponseContent,
			Content:      "body",
			CurrentDepth: intp(1),
		}, nil
	}
	if err := controller.Select(context.Background(), "History"); err != nil {
		t.Fatalf("select: %v", err)
	}

	transport.backFn = func(sessionID string) (*MenuResult, error) {
		return &MenuResult{
			Type:         ResponseSubmenu,
			MenuItems:    []string{"History"},
			CurrentDepth: intp(0),
		}, nil
	}
	if err := controller.Back(context.Background()); err != nil {
		t.Fatalf("back: %v", err)
	}
	session := controller.Session()
	if session.Content != "" {
		t.Fatal("expected content cleared after back")
	}
	if session.State() != StateBrowsing {
		t.Fatalf("expected browsing state, got %q", session.State())
	}
}

func TestBackAtRoot(t *testing.T) {
	controller, transport := startQuantum(t)
	callsBefore := transport.calls

	err := controller.Back(context.Background())
	if !errors.Is(err, ErrAtRoot) {
		t.Fatalf("expected ErrAtRoot, got %v", err)
	}
	if transport.calls != callsBefore {
		t.Fatal("back at root must not reach the network")
	}
	if controller.Session() == nil {
		t.Fatal("session must survive a rejected back")
	}
}

func TestBackProtocolMismatch(t *testing.T) {
	controller, transport := startQuantum(t)
	selectToDepth(t, controller, transport, "History", 1)
	breadcrumbBefore := len(controller.Session().Breadcrumb)

	transport.backFn = func(sessionID string) (*MenuResult, error) {
		return &MenuResult{Type: ResponseContent, Content: "surprise"}, nil
	}
	if err := controller.Back(context.Background()); err == nil {
		t.Fatal("expected a protocol error")
	}
	navErr := controller.Err()
	if navErr == nil || navErr.Kind != KindProtocol {
		t.Fatalf("expected protocol error, got %+v", navErr)
	}
	session := controller.Session()
	if session == nil {
		t.Fatal("session must survive a protocol mismatch")
	}
	if len(session.MenuItems) != 0 {
		t.Fatalf("expected stale menu items cleared, got %v", session.MenuItems)
	}
	if len(session.Breadcrumb) != breadcrumbBefore {
		t.Fatalf("breadcrumb must stay as last known, got %v", session.Breadcrumb)
	}
}

func TestRoot(t *testing.T) {
	controller, transport := startQuantum(t)
	selectToDepth(t, controller, transport, "History", 1)
	selectToDepth(t, controller, transport, "Modern Era", 2)

	transport.rootFn = func(sessionID string) (*MenuResult, error) {
		return &MenuResult{
			Type:         ResponseSubmenu,
			MenuItems:    []string{"History", "Key Concepts", "Applications"},
			CurrentDepth: intp(0),
		}, nil
	}
	if err := controller.Root(context.Background()); err != nil {
		t.Fatalf("root: %v", err)
	}
	session := controller.Session()
	if len(session.Breadcrumb) != 1 {
		t.Fatalf("expected breadcrumb truncated to topic, got %v", session.Breadcrumb)
	}
	if session.CurrentDepth != 0 {
		t.Fatalf("expected depth 0, got %d", session.CurrentDepth)
	}
	if session.Content != "" {
		t.Fatal("expected content cleared")
	}
}

func TestRootWithoutReportedDepth(t *testing.T) {
	controller, transport := startQuantum(t)
	selectToDepth(t, controller, transport, "History", 1)

	transport.rootFn = func(sessionID string) (*MenuResult, error) {
		return &MenuResult{Type: ResponseSubmenu, MenuItems: []string{"History"}}, nil
	}
	if err := controller.Root(context.Background()); err != nil {
		t.Fatalf("root: %v", err)
	}
	session := controller.Session()
	if session.CurrentDepth != 0 {
		t.Fatalf("expected depth 0 when the server omits it, got %d", session.CurrentDepth)
	}
}

func TestNotFoundResetsToIdle(t *testing.T) {
	controller, transport := startQuantum(t)
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return nil, &RemoteError{StatusCode: 404, Message: "session not found"}
	}

	if err := controller.Select(context.Background(), "History"); err == nil {
		t.Fatal("expected an error")
	}
	if controller.Session() != nil {
		t.Fatal("not-found must reset to idle")
	}
	navErr := controller.Err()
	if navErr == nil || navErr.Kind != KindSessionNotFound {
		t.Fatalf("expected session-not-found error, got %+v", navErr)
	}
	if navErr.Message == "" {
		t.Fatal("expected a non-empty message")
	}
	if controller.View().State != StateIdle {
		t.Fatalf("expected idle state, got %q", controller.View().State)
	}
}

func TestApplicationErrorKeepsSession(t *testing.T) {
	controller, transport := startQuantum(t)
	before := controller.Session()
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return nil, &RemoteError{StatusCode: 502, Message: "upstream unavailable"}
	}

	if err := controller.Select(context.Background(), "History"); err == nil {
		t.Fatal("expected an error")
	}
	session := controller.Session()
	if session == nil {
		t.Fatal("session must survive so the user can retry")
	}
	if len(session.Breadcrumb) != len(before.Breadcrumb) || len(session.MenuItems) != len(before.MenuItems) {
		t.Fatal("failed operation must not change the session")
	}
	if controller.Err().Kind != KindApplication {
		t.Fatalf("expected application error, got %+v", controller.Err())
	}
}

func TestTransportErrorKeepsSession(t *testing.T) {
	controller, transport := startQuantum(t)
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return nil, fmt.Errorf("dial tcp: connection refused")
	}

	if err := controller.Select(context.Background(), "History"); err == nil {
		t.Fatal("expected an error")
	}
	if controller.Session() == nil {
		t.Fatal("session must survive a transport failure")
	}
	if controller.Err().Kind != KindTransport {
		t.Fatalf("expected transport error, got %+v", controller.Err())
	}
}

func TestErrClearedByNextOperation(t *testing.T) {
	controller, transport := startQuantum(t)
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return nil, fmt.Errorf("boom")
	}
	_ = controller.Select(context.Background(), "History")
	if controller.Err() == nil {
		t.Fatal("expected an error")
	}

	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return &MenuResult{Type: ResponseSubmenu, MenuItems: []string{"A"}, CurrentDepth: intp(1)}, nil
	}
	if err := controller.Select(context.Background(), "History"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if controller.Err() != nil {
		t.Fatalf("expected error cleared, got %+v", controller.Err())
	}
}

func TestResetIdempotent(t *testing.T) {
	controller, _ := startQuantum(t)

	for i := 0; i < 2; i++ {
		controller.Reset()
		view := controller.View()
		if view.State != StateIdle {
			t.Fatalf("reset %d: expected idle state, got %q", i, view.State)
		}
		if view.Session != nil {
			t.Fatalf("reset %d: expected no session", i)
		}
		if view.Err != nil || view.Pending {
			t.Fatalf("reset %d: expected clean flags, got %+v", i, view)
		}
	}
}

func TestSelectWithoutSession(t *testing.T) {
	controller := New(&fakeTransport{})
	if err := controller.Select(context.Background(), "History"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := controller.Back(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := controller.Root(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func selectToDepth(t *testing.T, controller *Controller, transport *fakeTransport, item string, depth int) {
	t.Helper()
	transport.selectFn = func(sessionID, selection string) (*MenuResult, error) {
		return &MenuResult{
			Type:         ResponseSubmenu,
			MenuItems:    []string{"Next A", "Next B"},
			CurrentDepth: intp(depth),
		}, nil
	}
	if err := controller.Select(context.Background(), item); err != nil {
		t.Fatalf("select %q: %v", item, err)
	}
}
