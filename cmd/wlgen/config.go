package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the contents of a wlgen.yaml file.
type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// Job describes the generation of one Go file from one protocol XML
// file.
type Job struct {
	XML     string   `yaml:"xml"`
	Out     string   `yaml:"out"`
	Package string   `yaml:"package"`
	Prefix  string   `yaml:"prefix"`
	Client  bool     `yaml:"client"`
	Imports []Import `yaml:"imports"`
}

// Import is a package of previously generated bindings that
// interfaces not defined by a protocol are resolved against. An
// interface belongs to the first import whose prefix it has.
type Import struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Prefix string `yaml:"prefix"`
}

// ParseImport parses an import in the form name=path:prefix.
func ParseImport(v string) (imp Import, err error) {
	name, rest, ok := strings.Cut(v, "=")
	if !ok {
		return imp, fmt.Errorf("import %q: missing '='", v)
	}
	path, prefix, ok := strings.Cut(rest, ":")
	if !ok {
		return imp, fmt.Errorf("import %q: missing ':'", v)
	}
	if (name == "") || (path == "") {
		return imp, fmt.Errorf("import %q: name and path are required", v)
	}

	return Import{Name: name, Path: path, Prefix: prefix}, nil
}

// LoadConfig reads a YAML configuration file. Relative paths in it are
// resolved against the directory that the file is in.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("decode %v: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range config.Jobs {
		job := &config.Jobs[i]
		if job.XML == "" {
			return nil, fmt.Errorf("%v: job %v has no xml file", path, i)
		}
		job.XML = resolve(dir, job.XML)
		job.Out = resolve(dir, job.Out)
		job.setDefaults()
	}

	return &config, nil
}

func resolve(dir, path string) string {
	if (path == "") || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (job *Job) setDefaults() {
	if job.Out == "" {
		job.Out = strings.TrimSuffix(job.XML, filepath.Ext(job.XML)) + ".go"
	}
	if job.Package == "" {
		job.Package = "wl"
	}
}
