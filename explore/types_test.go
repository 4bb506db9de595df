package explore

import "testing"

func TestSessionState(t *testing.T) {
	var nilSession *Session
	if got := nilSession.State(); got != StateIdle {
		t.Fatalf("nil session: expected idle, got %q", got)
	}
	browsing := &Session{ID: "s", MenuItems: []string{"A"}}
	if got := browsing.State(); got != StateBrowsing {
		t.Fatalf("expected browsing, got %q", got)
	}
	viewing := &Session{ID: "s", Content: "body"}
	if got := viewing.State(); got != StateViewing {
		t.Fatalf("expected viewing, got %q", got)
	}
}

func TestSessionDepth(t *testing.T) {
	reported := &Session{CurrentDepth: 2, Breadcrumb: []string{"a"}}
	if got := reported.Depth(); got != 2 {
		t.Fatalf("expected server depth 2, got %d", got)
	}
	fallback := &Session{CurrentDepth: DepthUnknown, Breadcrumb: []string{"a", "b", "c"}}
	if got := fallback.Depth(); got != 2 {
		t.Fatalf("expected breadcrumb fallback depth 2, got %d", got)
	}
}

func TestSessionAtRoot(t *testing.T) {
	if !(&Session{Breadcrumb: []string{"Topic: X"}}).AtRoot() {
		t.Fatal("single-entry breadcrumb is the root")
	}
	if (&Session{Breadcrumb: []string{"Topic: X", "Selected: Y"}}).AtRoot() {
		t.Fatal("two entries is below the root")
	}
}

func TestSessionCanGoDeeper(t *testing.T) {
	cases := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"no items", &Session{CurrentDepth: 0, MaxDepth: 3}, false},
		{"below ceiling", &Session{CurrentDepth: 1, MaxDepth: 3, MenuItems: []string{"A"}}, true},
		{"at ceiling", &Session{CurrentDepth: 3, MaxDepth: 3, MenuItems: []string{"A"}}, false},
		{"unknown ceiling", &Session{CurrentDepth: 5, MaxDepth: DepthUnknown, MenuItems: []string{"A"}}, true},
	}
	for _, tc := range cases {
		if got := tc.session.CanGoDeeper(); got != tc.want {
			t.Errorf("%s: CanGoDeeper() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSessionCloneIsIndependent(t *testing.T) {
	original := &Session{
		ID:         "s",
		Breadcrumb: []string{"Topic: X"},
		MenuItems:  []string{"A", "B"},
	}
	copied := original.clone()
	copied.Breadcrumb = append(copied.Breadcrumb, "Selected: A")
	copied.MenuItems[0] = "changed"

	if len(original.Breadcrumb) != 1 {
		t.Fatalf("clone mutated the original breadcrumb: %v", original.Breadcrumb)
	}
	if original.MenuItems[0] != "A" {
		t.Fatalf("clone shares the menu items slice: %v", original.MenuItems)
	}
}
