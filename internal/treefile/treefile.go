// Package treefile loads element trees described in YAML and builds glint
// node trees from them, one frame at a time.
//
//	state:
//	  title: Disk
//	  items: [{name: a, size: 1}]
//	root:
//	  border:
//	    style: rounded
//	    width: "cols / 2"
//	    child:
//	      stack:
//	        gap: 1
//	        children:
//	          - text: "{{ title }}"
//	          - for: {each: items, as: item, body: {text: "{{ item.name }}"}}
//
// Elements are border, padding, stack, text, spacer, for and if. Numeric
// attributes are integers or expressions. Text is split on {{ }} into
// literal and expression parts.
package treefile

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kungfusheep/glint"
)

type document struct {
	State map[string]any `yaml:"state"`
	Root  *element       `yaml:"root"`
}

type element struct {
	Name    string       `yaml:"name"`
	Border  *borderSpec  `yaml:"border"`
	Padding *paddingSpec `yaml:"padding"`
	Stack   *stackSpec   `yaml:"stack"`
	Text    *textSpec    `yaml:"text"`
	For     *forSpec     `yaml:"for"`
	If      *ifSpec      `yaml:"if"`
	Spacer  *spacerSpec  `yaml:"spacer"`

	line int
}

func (e *element) UnmarshalYAML(value *yaml.Node) error {
	type plain element
	if err := value.Decode((*plain)(e)); err != nil {
		return err
	}
	e.line = value.Line
	return nil
}

type sizingSpec struct {
	MinWidth  *yaml.Node `yaml:"min_width"`
	MinHeight *yaml.Node `yaml:"min_height"`
	Width     *yaml.Node `yaml:"width"`
	Height    *yaml.Node `yaml:"height"`
}

type borderSpec struct {
	sizingSpec `yaml:",inline"`
	Style      string   `yaml:"style"`
	Sides      []string `yaml:"sides"`
	Color      string   `yaml:"color"`
	Child      *element `yaml:"child"`
}

type paddingSpec struct {
	sizingSpec `yaml:",inline"`
	All        *yaml.Node `yaml:"all"`
	Top        *yaml.Node `yaml:"top"`
	Right      *yaml.Node `yaml:"right"`
	Bottom     *yaml.Node `yaml:"bottom"`
	Left       *yaml.Node `yaml:"left"`
	Child      *element   `yaml:"child"`
}

type stackSpec struct {
	sizingSpec `yaml:",inline"`
	Axis       string     `yaml:"axis"`
	Gap        *yaml.Node `yaml:"gap"`
	Children   []*element `yaml:"children"`
}

type spacerSpec struct {
	sizingSpec `yaml:",inline"`
	Fill       bool `yaml:"fill"`
}

type textSpec struct {
	Content string `yaml:"content"`
	Color   string `yaml:"color"`
	Bold    bool   `yaml:"bold"`
}

// UnmarshalYAML accepts either a bare string or a mapping.
func (t *textSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Content = value.Value
		return nil
	}
	type plain textSpec
	return value.Decode((*plain)(t))
}

type forSpec struct {
	Each  *yaml.Node `yaml:"each"`
	As    string     `yaml:"as"`
	Index string     `yaml:"index"`
	Axis  string     `yaml:"axis"`
	Gap   *yaml.Node `yaml:"gap"`
	Body  *element   `yaml:"body"`
}

type ifSpec struct {
	Cond *yaml.Node `yaml:"cond"`
	Then *element   `yaml:"then"`
	Else *element   `yaml:"else"`
}

// Template is a compiled tree file.
type Template struct {
	root  *tnode
	state *glint.Map[any]
	log   logr.Logger
}

// Option configures loading.
type Option func(*compiler)

// WithDefaultBorder sets the border characters used when a border names no
// style.
func WithDefaultBorder(chars glint.BorderStyle) Option {
	return func(c *compiler) {
		c.defaultBorder = chars
	}
}

// WithLogger sets the logger used while building.
func WithLogger(log logr.Logger) Option {
	return func(c *compiler) {
		c.log = log
	}
}

// WithCompiler shares an expression cache between templates.
func WithCompiler(exprs *glint.Compiler) Option {
	return func(c *compiler) {
		if exprs != nil {
			c.exprs = exprs
		}
	}
}

// Load reads and compiles the tree file at path.
func Load(path string, opts ...Option) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read tree file")
	}
	t, err := Parse(data, opts...)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return t, nil
}

// Parse compiles a tree file held in memory.
func Parse(data []byte, opts ...Option) (*Template, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse tree file")
	}
	if doc.Root == nil {
		return nil, errors.New("tree file has no root element")
	}

	c := &compiler{exprs: glint.NewCompiler(), defaultBorder: glint.BorderSingle, log: logr.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	root, err := c.element(doc.Root)
	if err != nil {
		return nil, err
	}
	c.log.V(1).Info("compiled tree file", "expressions", c.exprs.Len())
	return &Template{root: root, state: glint.MapOf(doc.State), log: c.log}, nil
}

// State returns the state declared in the file. It may be modified before
// building.
func (t *Template) State() *glint.Map[any] {
	return t.state
}

// BorderStyleByName returns the border characters for a style name.
func BorderStyleByName(name string) (glint.BorderStyle, error) {
	switch strings.ToLower(name) {
	case "single", "normal":
		return glint.BorderSingle, nil
	case "rounded":
		return glint.BorderRounded, nil
	case "double":
		return glint.BorderDouble, nil
	case "ascii":
		return glint.BorderASCII, nil
	case "thick":
		return glint.BorderFromLipgloss(lipgloss.ThickBorder()), nil
	case "hidden":
		return glint.BorderFromLipgloss(lipgloss.HiddenBorder()), nil
	default:
		return glint.BorderStyle{}, errors.Errorf("unknown border style %q", name)
	}
}
