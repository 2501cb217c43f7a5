package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/splint/internal/model"
)

// RuleFileNames are looked up, in order, when no rules file is given.
var RuleFileNames = []string{
	"splint.json",
	".splint.json",
	"splint.toml",
	".splint.toml",
	"splint.yaml",
	".splint.yaml",
}

// ErrNoRulesFile is returned by Find when no default rules file exists.
var ErrNoRulesFile = errors.New("couldn't find rules file in current directory, you can specify one with -r")

// RuleLoader reads rule definitions from a rules file.
type RuleLoader interface {
	// Find returns the first default rules file present in dir.
	Find(dir m.Path) (m.Path, error)
	// Load decodes the file at path. Rules are returned in declaration order.
	Load(path m.Path) ([]m.RuleDef, error)
}

type rawRuleFile struct {
	Rules map[string]rawRule `json:"rules" toml:"rules" yaml:"rules"`
}

type rawRule struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Description string `json:"description" toml:"description" yaml:"description" validate:"required"`
	Help        string `json:"help" toml:"help" yaml:"help"`
	More        string `json:"more" toml:"more" yaml:"more"`
	Link        string `json:"link" toml:"link" yaml:"link"`
	Fail        *bool  `json:"fail" toml:"fail" yaml:"fail"`
	Fails       *bool  `json:"fails" toml:"fails" yaml:"fails"`
	Range       []int  `json:"range" toml:"range" yaml:"range" validate:"omitempty,len=2"`
	Pattern     []any  `json:"pattern" toml:"pattern" yaml:"pattern" validate:"required"`
}

// FileRuleLoader loads JSON, TOML and YAML rule files.
type FileRuleLoader struct {
	validate *validator.Validate
}

// NewFileRuleLoader constructs a FileRuleLoader.
func NewFileRuleLoader() *FileRuleLoader {
	return &FileRuleLoader{validate: validator.New()}
}

// Find implements RuleLoader.
func (l *FileRuleLoader) Find(dir m.Path) (m.Path, error) {
	for _, name := range RuleFileNames {
		candidate := filepath.Join(string(dir), name)

		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return m.Path(candidate), nil
		}

		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
	}

	return "", ErrNoRulesFile
}

// Load implements RuleLoader.
func (l *FileRuleLoader) Load(path m.Path) ([]m.RuleDef, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("couldn't read rules: %w", err)
	}

	return l.Decode(filepath.Ext(string(path)), content)
}

// Decode parses rule file content in the format named by ext.
func (l *FileRuleLoader) Decode(ext string, content []byte) ([]m.RuleDef, error) {
	var (
		file  rawRuleFile
		order []string
		err   error
	)

	switch strings.ToLower(ext) {
	case ".toml":
		order, err = decodeTOML(content, &file)
	case ".yaml", ".yml":
		order, err = decodeYAML(content, &file)
	case ".json", "":
		order, err = decodeJSON(content, &file)
	default:
		return nil, fmt.Errorf("unsupported rules format %q", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("couldn't parse rules: %w", err)
	}

	return l.toDefs(file, order)
}

func (l *FileRuleLoader) toDefs(file rawRuleFile, order []string) ([]m.RuleDef, error) {
	keys := declarationOrder(file.Rules, order)
	defs := make([]m.RuleDef, 0, len(keys))

	var errs []error

	for i, key := range keys {
		def, err := l.toDef(key, file.Rules[key])
		if err != nil {
			errs = append(errs, err)
			continue
		}

		def.Order = i
		defs = append(defs, def)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return defs, nil
}

func (l *FileRuleLoader) toDef(key string, raw rawRule) (m.RuleDef, error) {
	name := key
	if raw.Name != "" {
		name = raw.Name
	}

	if err := l.validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return m.RuleDef{}, m.RuleErrorf(name, m.ErrInvalidRule, "field %s failed %q validation", strings.ToLower(fe.Field()), fe.Tag())
		}

		return m.RuleDef{}, m.RuleErrorf(name, m.ErrInvalidRule, "%v", err)
	}

	def := m.RuleDef{
		Name:        name,
		Description: raw.Description,
		Help:        raw.Help,
		More:        firstNonEmpty(raw.More, raw.Link),
		Fail:        boolValue(raw.Fail, raw.Fails),
	}

	if raw.Range != nil {
		def.Range = &[2]int{raw.Range[0], raw.Range[1]}
	}

	for i, entry := range raw.Pattern {
		p, err := decodePatternEntry(entry)
		if err != nil {
			return m.RuleDef{}, m.RuleErrorf(name, m.ErrInvalidPattern, "entry %d: %v", i, err)
		}

		def.Pattern = append(def.Pattern, p)
	}

	return def, nil
}

// decodePatternEntry accepts [kind], [kind, value|null] and {kind, value}.
func decodePatternEntry(entry any) (m.PatternEntryDef, error) {
	switch e := entry.(type) {
	case []any:
		if len(e) == 0 || len(e) > 2 {
			return m.PatternEntryDef{}, fmt.Errorf("expected [kind, value], got %d elements", len(e))
		}

		kind, ok := e[0].(string)
		if !ok {
			return m.PatternEntryDef{}, fmt.Errorf("kind must be a string, got %T", e[0])
		}

		var value any
		if len(e) == 2 {
			value = e[1]
		}

		return patternEntry(kind, value)
	case map[string]any:
		kind, ok := e["kind"].(string)
		if !ok {
			return m.PatternEntryDef{}, fmt.Errorf("kind must be a string, got %T", e["kind"])
		}

		return patternEntry(kind, e["value"])
	default:
		return m.PatternEntryDef{}, fmt.Errorf("expected an array or table, got %T", entry)
	}
}

func patternEntry(kind string, value any) (m.PatternEntryDef, error) {
	switch v := value.(type) {
	case nil:
		return m.PatternEntryDef{Kind: kind}, nil
	case string:
		return m.PatternEntryDef{Kind: kind, Value: m.StrPtr(v)}, nil
	default:
		return m.PatternEntryDef{}, fmt.Errorf("value must be a string or null, got %T", value)
	}
}

func decodeJSON(content []byte, file *rawRuleFile) ([]string, error) {
	if err := json.Unmarshal(content, file); err != nil {
		return nil, err
	}

	return jsonRuleOrder(content)
}

// jsonRuleOrder walks the token stream to recover the key order of "rules".
func jsonRuleOrder(content []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(content))

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if key, _ := tok.(string); key != "rules" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}

			continue
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		var order []string

		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}

			name, _ := tok.(string)
			order = append(order, name)

			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}

		return order, nil
	}

	return nil, nil
}

func decodeTOML(content []byte, file *rawRuleFile) ([]string, error) {
	meta, err := toml.Decode(string(content), file)
	if err != nil {
		return nil, err
	}

	var order []string

	seen := make(map[string]struct{})

	for _, key := range meta.Keys() {
		if len(key) < 2 || key[0] != "rules" {
			continue
		}

		if _, ok := seen[key[1]]; ok {
			continue
		}

		seen[key[1]] = struct{}{}
		order = append(order, key[1])
	}

	return order, nil
}

func decodeYAML(content []byte, file *rawRuleFile) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	if err := doc.Decode(file); err != nil {
		return nil, err
	}

	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil
	}

	top := doc.Content[0]

	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value != "rules" || top.Content[i+1].Kind != yaml.MappingNode {
			continue
		}

		rules := top.Content[i+1]
		order := make([]string, 0, len(rules.Content)/2)

		for j := 0; j+1 < len(rules.Content); j += 2 {
			order = append(order, rules.Content[j].Value)
		}

		return order, nil
	}

	return nil, nil
}

// declarationOrder returns the rule keys in file order; keys the order scan
// missed follow in name order.
func declarationOrder(rules map[string]rawRule, order []string) []string {
	keys := make([]string, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))

	for _, key := range order {
		if _, ok := rules[key]; !ok {
			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	var rest []string

	for key := range rules {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}

	sort.Strings(rest)

	return append(keys, rest...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func boolValue(values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}

	return false
}
