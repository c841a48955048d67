package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project manifest file looked up by the CLI.
const ManifestName = "lang.yml"

// Manifest represents the parsed contents of lang.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Sources      []string
	Settings     Settings
	Dependencies map[string]*DependencySpec
}

// Settings tune how the CLI runs the project.
type Settings struct {
	// Echo overrides the terminal-based default when set.
	Echo     *bool
	LogLevel string
	History  string
}

// DependencySpec describes where a dependency's source files come from.
type DependencySpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
	Files  []string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses lang.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// SourcePaths resolves the manifest's sources against its directory.
func (m *Manifest) SourcePaths() []string {
	out := make([]string, 0, len(m.Sources))
	for _, src := range m.Sources {
		out = append(out, resolveFrom(m.Dir(), src))
	}
	return out
}

// DependencyNames returns the dependency names in sorted order.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resolveFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

var logLevels = map[string]struct{}{"": {}, "debug": {}, "info": {}, "warn": {}, "warning": {}, "error": {}}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Version != "" && !isValidVersion(m.Version) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("invalid version %q", m.Version))
	}
	if _, ok := logLevels[m.Settings.LogLevel]; !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("settings.log_level: unknown level %q", m.Settings.LogLevel))
	}
	for _, name := range m.DependencyNames() {
		dep := m.Dependencies[name]
		if dep == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: must be a mapping", name))
			continue
		}
		for _, issue := range dep.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: %s", name, issue))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (d *DependencySpec) validate() []string {
	var errs []string
	switch {
	case d.Git != "" && d.Path != "":
		errs = append(errs, "cannot specify both git and path")
	case d.Git == "" && d.Path == "":
		errs = append(errs, "must specify git or path")
	}
	pins := 0
	for _, pin := range []string{d.Rev, d.Tag, d.Branch} {
		if pin != "" {
			pins++
		}
	}
	if d.Path != "" && pins > 0 {
		errs = append(errs, "path dependencies cannot specify rev, tag or branch")
	}
	if pins > 1 {
		errs = append(errs, "specify at most one of rev, tag or branch")
	}
	if len(d.Files) == 0 {
		errs = append(errs, "files must list at least one source file")
	}
	for _, file := range d.Files {
		if filepath.IsAbs(file) || strings.HasPrefix(filepath.Clean(file), "..") {
			errs = append(errs, fmt.Sprintf("file %q must stay inside the dependency", file))
		}
	}
	return errs
}

// IsGit reports whether the dependency is fetched from a git repository.
func (d *DependencySpec) IsGit() bool { return d.Git != "" }

var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}([0-9A-Za-z\-\+\.]*)?$`)

func isValidVersion(input string) bool {
	return versionPattern.MatchString(strings.TrimSpace(input))
}

type manifestFile struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Sources      stringList    `yaml:"sources"`
	Settings     settingsYAML  `yaml:"settings"`
	Dependencies dependencyMap `yaml:"dependencies"`
}

type settingsYAML struct {
	Echo     *bool  `yaml:"echo"`
	LogLevel string `yaml:"log_level"`
	History  string `yaml:"history"`
}

type dependencyMap map[string]*DependencySpec

type stringList []string

func (mf manifestFile) toManifest(path string) *Manifest {
	return &Manifest{
		Path:    path,
		Name:    sanitizeSegment(mf.Name),
		Version: strings.TrimSpace(mf.Version),
		Sources: mf.Sources.Clone(),
		Settings: Settings{
			Echo:     mf.Settings.Echo,
			LogLevel: strings.ToLower(strings.TrimSpace(mf.Settings.LogLevel)),
			History:  strings.TrimSpace(mf.Settings.History),
		},
		Dependencies: cloneDependencyMap(mf.Dependencies),
	}
}

func cloneDependencyMap(src dependencyMap) map[string]*DependencySpec {
	out := make(map[string]*DependencySpec, len(src))
	for name, dep := range src {
		out[name] = dep.clone()
	}
	return out
}

func (d *DependencySpec) clone() *DependencySpec {
	if d == nil {
		return nil
	}
	copy := *d
	copy.Files = append([]string(nil), d.Files...)
	return &copy
}

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (dm *dependencyMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		*dm = make(dependencyMap)
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: dependencies must be a mapping")
	}
	result := make(dependencyMap, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = sanitizeSegment(key)
		if key == "" {
			return fmt.Errorf("manifest: dependency names must be non-empty")
		}
		var dep DependencySpec
		if err := dep.unmarshalYAML(value.Content[i+1]); err != nil {
			return fmt.Errorf("manifest: dependency %q: %w", key, err)
		}
		result[key] = &dep
	}
	*dm = result
	return nil
}

func (d *DependencySpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var raw struct {
			Git    string     `yaml:"git"`
			Rev    string     `yaml:"rev"`
			Tag    string     `yaml:"tag"`
			Branch string     `yaml:"branch"`
			Path   string     `yaml:"path"`
			Files  stringList `yaml:"files"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*d = DependencySpec{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Path:   strings.TrimSpace(raw.Path),
			Files:  raw.Files.Clone(),
		}
		return nil
	case yaml.AliasNode:
		return d.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected mapping, found %s", value.ShortTag())
	}
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "-", "_")
	return seg
}
