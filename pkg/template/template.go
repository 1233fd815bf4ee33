package template

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var templates embed.FS

// Data holds the values available to message templates.
type Data struct {
	Name        string   // project name
	Directory   string   // directory the project was created in
	Framework   string   // selected web framework
	Host        string   // public host of the project
	Provisioned bool     // whether the environment was created
	Frameworks  []string // supported frameworks, in menu order
}

// Render renders the specified template with the given data.
func Render(name string, data Data) (string, error) {
	tmplData, err := templates.ReadFile(name + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(tmplData))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
