package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	appDirName       = "keynav"
	settingsFileName = "config.yaml"
	bindingsFileName = "bindings"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

// SettingsResult is a loaded settings file plus where each key came from.
type SettingsResult struct {
	Settings *Settings
	Sources  map[string]Source // YAML path -> position in File
	File     string           // empty when defaults were used
}

// DefaultSettingsPath returns $XDG_CONFIG_HOME/keynav/config.yaml.
func DefaultSettingsPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, settingsFileName)
}

// DefaultBindingsPath returns $XDG_CONFIG_HOME/keynav/bindings.
func DefaultBindingsPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, bindingsFileName)
}

// LocateSettings returns explicit when set, otherwise the first settings
// file found in the XDG config directories. An empty result means none
// exists.
func LocateSettings(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := xdg.SearchConfigFile(filepath.Join(appDirName, settingsFileName))
	if err != nil {
		return ""
	}
	return path
}

// LocateBindings works like LocateSettings for the bindings file.
func LocateBindings(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := xdg.SearchConfigFile(filepath.Join(appDirName, bindingsFileName))
	if err != nil {
		return ""
	}
	return path
}

// LoadSettings reads the settings file at path. A missing file, or an
// empty path, yields the defaults.
func LoadSettings(path string) (*SettingsResult, error) {
	if path == "" {
		return &SettingsResult{Settings: DefaultSettings(), Sources: map[string]Source{}}, nil
	}
	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &SettingsResult{Settings: DefaultSettings(), Sources: map[string]Source{}}, nil
	}

	canon, err := canonicalPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(canon)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", canon, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
	}
	var raw rawSettings
	if err := decodeStrictYAML(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", canon, err)
	}

	sources := collectSources(&doc, canon)
	settings := buildSettings(raw)
	if err := settings.Validate(); err != nil {
		return nil, attachSourceContext(err, sources)
	}
	return &SettingsResult{Settings: settings, Sources: sources, File: canon}, nil
}

// LoadBindings reads and parses the bindings file at path.
func LoadBindings(path string) (RawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	raw, err := Parse(string(data))
	if err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// LoadBindingsOrDefault loads the bindings at path. When path is empty,
// missing or fails to parse, the built-in bindings are returned instead and
// the problem is logged.
func LoadBindingsOrDefault(path string, logger *slog.Logger) RawConfig {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		logger.Debug("no bindings file, using built-in bindings")
		return Default()
	}
	raw, err := LoadBindings(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("bindings file not found, using built-in bindings", "path", path)
		} else {
			logger.Warn("bindings file is invalid, using built-in bindings", "path", path, "error", err)
		}
		return Default()
	}
	logger.Debug("loaded bindings", "path", path, "entries", raw.Len())
	return raw
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return real, nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func collectSources(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	collectSourcesRec(node, file, "", out)
	return out
}

func collectSourcesRec(node *yaml.Node, file string, prefix string, out map[string]Source) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		out[path] = Source{Kind: SourceFile, File: file, Line: val.Line, Column: val.Column}
		collectSourcesRec(val, file, path, out)
	}
}

func attachSourceContext(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}
