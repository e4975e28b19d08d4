package compose

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/goliatone/go-hook-notify/core"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const templateExt = ".tmpl"

// TemplateIDs lists the template id for every notifiable event kind.
var TemplateIDs = []string{
	string(core.EventPullRequestOpened),
	string(core.EventPullRequestMerged),
	string(core.EventPullRequestClosed),
	string(core.EventPullRequestReopened),
	string(core.EventCommentCreated),
	string(core.EventCommentEdited),
}

// Renderer substitutes named fields into the template identified by
// templateID.
type Renderer interface {
	Render(templateID string, fields map[string]string) (string, error)
}

type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses the embedded templates, replacing any template
// for which overrides holds a "<id>.tmpl" file. overrides may be nil.
func NewTemplateRenderer(overrides fs.FS) (*TemplateRenderer, error) {
	renderer := &TemplateRenderer{templates: make(map[string]*template.Template, len(TemplateIDs))}
	for _, id := range TemplateIDs {
		source, err := loadTemplate(id, overrides)
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(id).Option("missingkey=zero").Parse(source)
		if err != nil {
			return nil, core.InternalError(fmt.Sprintf("compose: parse template %s", id), map[string]any{
				"template": id,
				"error":    err.Error(),
			})
		}
		renderer.templates[id] = tmpl
	}
	return renderer, nil
}

// NewTemplateRendererFromDir reads overrides from dir. An empty dir uses the
// embedded templates only.
func NewTemplateRendererFromDir(dir string) (*TemplateRenderer, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return NewTemplateRenderer(nil)
	}
	return NewTemplateRenderer(os.DirFS(dir))
}

func (r *TemplateRenderer) Render(templateID string, fields map[string]string) (string, error) {
	if r == nil {
		return "", ErrNoTemplate
	}
	tmpl, ok := r.templates[templateID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoTemplate, templateID)
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, fields); err != nil {
		return "", fmt.Errorf("compose: render %s: %w", templateID, err)
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

func loadTemplate(id string, overrides fs.FS) (string, error) {
	name := id + templateExt
	if overrides != nil {
		data, err := fs.ReadFile(overrides, name)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("compose: read template override %s: %w", name, err)
		}
	}
	data, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("compose: read embedded template %s: %w", name, err)
	}
	return string(data), nil
}

var _ Renderer = (*TemplateRenderer)(nil)
