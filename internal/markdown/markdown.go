// Package markdown renders generated content for terminal output.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/ramble/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// renderer is the subset of glamour.TermRenderer the cache needs.
type renderer interface {
	Render(string) (string, error)
}

type rendererKey struct {
	width int
	style string
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]renderer{}
)

// Render formats markdown text for terminal output. Style selects a glamour
// standard style; empty means the plain ASCII style.
func Render(width, indent int, style string, input []byte) []byte {
	if len(input) == 0 {
		return nil
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	rendered := value
	if r := markdownRenderer(renderWidth, style); r != nil {
		formatted, err := r.Render(value)
		if err == nil {
			rendered = formatted
		}
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	if indent <= 0 {
		return []byte(rendered)
	}
	return []byte(indentBlock(rendered, indent))
}

// SafeRender is Render with a recover fallback to the unrendered input, so a
// renderer bug cannot take down the UI.
func SafeRender(width, indent int, style string, input []byte) (out []byte) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input)))
			out = []byte(value)
		}
	}()
	return Render(width, indent, style, input)
}

func markdownRenderer(width int, style string) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := rendererKey{width: width, style: style}
	if cached, ok := renderers[key]; ok {
		return cached
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "ascii" {
		styleConfig := styles.ASCIIStyleConfig
		styleConfig.Item.BlockPrefix = "- "
		options = append(options, glamour.WithStyles(styleConfig))
	} else {
		options = append(options, glamour.WithStandardStyle(style))
	}

	created, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}

func indentBlock(value string, spaces int) string {
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
