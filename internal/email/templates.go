package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager is a TemplateRenderer over html/template.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager returns a manager preloaded with the built-in templates.
func NewDefaultTemplateManager() *TemplateManager {
	tm := NewTemplateManager()
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

var defaultTemplates = map[string]string{
	TemplateWelcome: `<p>Hi {{.Name}},</p>
<p>Welcome to GreenTech Nordics. You can now list your startup, claim an existing profile and post jobs.</p>
<p><a href="{{.SiteURL}}">{{.SiteURL}}</a></p>`,

	TemplateStartupClaimed: `<p>Hi {{.Name}},</p>
<p>You are now the owner of <strong>{{.StartupName}}</strong> on GreenTech Nordics.</p>
<p><a href="{{.SiteURL}}/startups/{{.StartupSlug}}">Manage your profile</a></p>`,
}
