// Package templates holds the file bodies written into a new driver crate.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed files/*.tmpl
var files embed.FS

// Name identifies a template in the registry
type Name string

const (
	// ManifestAddition is appended to the Cargo.toml created by `cargo new`.
	ManifestAddition Name = "cargo_toml_addition"
	// Makefile is the cargo-make orchestration file.
	Makefile Name = "makefile_toml"
	// CargoConfig is .cargo/config.toml.
	CargoConfig Name = "cargo_config_toml"
	// BuildScript is build.rs.
	BuildScript Name = "build_rs"
	// LibEntry replaces src/lib.rs.
	LibEntry Name = "lib_rs"
	// InstallDescriptor is the <crate>.inx driver install file.
	InstallDescriptor Name = "install_descriptor_inx"
)

// Data carries the substitution values. Values are interpolated as given;
// callers pass already-normalized strings.
type Data struct {
	CrateName  string
	DriverType string
}

var registry = mustParse()

func mustParse() map[Name]*template.Template {
	parsed := make(map[Name]*template.Template)
	for _, name := range Names() {
		path := "files/" + string(name) + ".tmpl"
		body, err := files.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("templates: missing %s: %v", path, err))
		}
		tmpl, err := template.New(string(name)).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(string(body))
		if err != nil {
			panic(fmt.Sprintf("templates: parse %s: %v", path, err))
		}
		parsed[name] = tmpl
	}
	return parsed
}

// Names returns every registered template in scaffold order
func Names() []Name {
	return []Name{ManifestAddition, Makefile, CargoConfig, BuildScript, LibEntry, InstallDescriptor}
}

// ParseName resolves a template name given on the command line
func ParseName(s string) (Name, error) {
	for _, name := range Names() {
		if string(name) == s {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown template: %s", s)
}

// Render executes the named template with data
func Render(name Name, data Data) (string, error) {
	tmpl, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
