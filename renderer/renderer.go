// Package renderer turns reports into markdown. Rendering is assembled
// from a main template plus named partials, all embedded next to the
// code, so the layout can be tweaked without touching Go.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// DashboardRenderOptions holds configuration for rendering a dashboard.
type DashboardRenderOptions struct {
	SkipUnavailable bool // Do not render the unavailable instruments section.
}

// RenderDashboard renders the Dashboard struct to a markdown string.
func RenderDashboard(d *Dashboard, opts DashboardRenderOptions) string {
	partials := map[string]string{
		"dashboard_title":     "dashboard_title.md",
		"dashboard_positions": "dashboard_positions.md",
		"dashboard_totals":    "dashboard_totals.md",
	}

	// An empty file name results in an empty template.
	if opts.SkipUnavailable {
		partials["dashboard_unavailable"] = ""
	} else {
		partials["dashboard_unavailable"] = "dashboard_unavailable.md"
	}

	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// RenderUsers renders the user list to a markdown string.
func RenderUsers(u *UserList) string {
	return renderTemplate("users", "users.md", nil, u)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
