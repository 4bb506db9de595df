package explore

// Reconciliation rules: pure functions from (session, server result) to a new
// session. Each successful round trip applies exactly one of these, so the
// session's fields always change together. Server-reported depth is adopted
// whenever a response carries one; the breadcrumb is maintained structurally
// (append, pop, truncate) and never rewritten to match depth.

const (
	topicLabelPrefix     = "Topic: "
	selectionLabelPrefix = "Selected: "
)

func reconcileStart(topic string, result *StartResult) *Session {
	return &Session{
		ID:           result.SessionID,
		Topic:        topic,
		CurrentDepth: depthOr(result.CurrentDepth, 0),
		MaxDepth:     depthOr(result.MaxDepth, DepthUnknown),
		Breadcrumb:   []string{topicLabelPrefix + topic},
		MenuItems:    append([]string(nil), result.MenuItems...),
	}
}

func reconcileSelect(current *Session, item string, result *MenuResult) *Session {
	next := applyMenu(current, result)
	next.Breadcrumb = append(next.Breadcrumb, selectionLabelPrefix+item)
	if result.Type == ResponseContent {
		next.Content = result.Content
	}
	return next
}

func reconcileBack(current *Session, result *MenuResult) *Session {
	next := applyMenu(current, result)
	next.Breadcrumb = next.Breadcrumb[:len(next.Breadcrumb)-1]
	return next
}

func reconcileRoot(current *Session, result *MenuResult) *Session {
	next := applyMenu(current, result)
	next.Breadcrumb = next.Breadcrumb[:1]
	if result.CurrentDepth == nil {
		next.CurrentDepth = 0
	}
	return next
}

// applyMenu carries over the authoritative fields common to every navigation
// response: menu items, depth, and depth ceiling. Content is cleared; select
// restores it for content-typed responses.
func applyMenu(current *Session, result *MenuResult) *Session {
	next := current.clone()
	next.MenuItems = append([]string(nil), result.MenuItems...)
	next.Content = ""
	next.CurrentDepth = depthOr(result.CurrentDepth, DepthUnknown)
	if result.MaxDepth != nil {
		next.MaxDepth = *result.MaxDepth
	}
	return next
}

func depthOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
