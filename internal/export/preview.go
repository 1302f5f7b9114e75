package export

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/charmbracelet/glamour"
)

// Previewer renders print pages in the terminal by converting the HTML to
// markdown and styling it with glamour.
type Previewer struct {
	converter *md.Converter
	renderer  *glamour.TermRenderer
}

type PreviewOption func(*previewOptions)

type previewOptions struct {
	width int
	style string
}

// WithWidth sets the word wrap width.
func WithWidth(width int) PreviewOption {
	return func(o *previewOptions) {
		if width > 0 {
			o.width = width
		}
	}
}

// WithStyle selects a named glamour style; empty means auto-detect.
func WithStyle(style string) PreviewOption {
	return func(o *previewOptions) {
		o.style = style
	}
}

func NewPreviewer(opts ...PreviewOption) (*Previewer, error) {
	options := previewOptions{width: 80}
	for _, opt := range opts {
		opt(&options)
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	converter.Remove("head")

	styleOpt := glamour.WithAutoStyle()
	if options.style != "" {
		styleOpt = glamour.WithStandardStyle(options.style)
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(options.width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview renderer: %w", err)
	}

	return &Previewer{
		converter: converter,
		renderer:  renderer,
	}, nil
}

// Markdown converts a print page to markdown. The document head is dropped.
func (p *Previewer) Markdown(html []byte) (string, error) {
	markdown, err := p.converter.ConvertString(string(html))
	if err != nil {
		return "", fmt.Errorf("failed to convert print page: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// Render returns the terminal rendering of a print page.
func (p *Previewer) Render(html []byte) (string, error) {
	markdown, err := p.Markdown(html)
	if err != nil {
		return "", err
	}

	out, err := p.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return out, nil
}
