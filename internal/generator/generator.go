// Package generator renders an inferred TypeInfo as a single TypeScript-style
// type description and records the line of every emitted property.
package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/jsontext"
	"github.com/mcncl/jsonlens/internal/models"
)

const (
	DefaultRootName = "RootInterface"
	DefaultIndent   = 2

	failedHeader = "// failed to generate interface"
)

var identifierRegex = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)

// Generator renders type descriptions.
type Generator struct {
	rootName string
	indent   int
}

// NewGenerator creates a Generator that names the root RootInterface and
// indents by two spaces.
func NewGenerator() *Generator {
	return &Generator{rootName: DefaultRootName, indent: DefaultIndent}
}

// NewGeneratorWithConfig takes the root name and indent from cfg.
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	g := NewGenerator()
	if cfg == nil {
		return g
	}
	g.rootName = cfg.RootName()
	if cfg.Indent >= 0 {
		g.indent = cfg.Indent
	}
	return g
}

// Generate renders info with the given root name and indent.
func Generate(info *models.TypeInfo, rootName string, indent int) models.Projection {
	g := &Generator{rootName: rootName, indent: indent}
	if g.rootName == "" {
		g.rootName = DefaultRootName
	}
	if g.indent < 0 {
		g.indent = 0
	}
	return g.Generate(info)
}

// Generate renders info. An object root becomes "interface Root {...}",
// anything else "type Root = T;". A malformed TypeInfo yields a diagnostic
// projection instead of a panic.
func (g *Generator) Generate(info *models.TypeInfo) (p models.Projection) {
	defer recoverProjection(&p)

	r := &renderer{indent: g.indent, line: 1, props: make([]models.PropertyPosition, 0)}
	if info.Kind == models.Object {
		r.write("interface " + g.rootName + " ")
		r.typeOf(info, 0)
	} else {
		r.write("type " + g.rootName + " = ")
		r.typeOf(info, 0)
		r.write(";")
	}
	return models.Projection{Description: r.b.String(), Properties: r.props}
}

// Project infers the type of value and renders it using cfg (defaults when nil).
// Failures never escape: they come back as a projection whose description is
// a comment and whose Err is set.
func Project(value models.JSONValue, cfg *config.Config) (p models.Projection) {
	defer recoverProjection(&p)

	if cfg == nil {
		cfg = config.NewConfig()
	}
	info, err := analyzer.NewAnalyzerWithConfig(cfg).Analyze(value)
	if err != nil {
		return failed(err)
	}
	return NewGeneratorWithConfig(cfg).Generate(info)
}

func recoverProjection(p *models.Projection) {
	if r := recover(); r != nil {
		*p = failed(errors.NewProjectionError(fmt.Sprintf("%v", r), nil))
	}
}

func failed(err error) models.Projection {
	return models.Projection{
		Description: failedHeader + "\n// " + err.Error(),
		Properties:  []models.PropertyPosition{},
		Err:         err,
	}
}

type renderer struct {
	b      strings.Builder
	indent int
	line   int
	props  []models.PropertyPosition
}

func (r *renderer) write(s string) {
	r.b.WriteString(s)
	r.line += strings.Count(s, "\n")
}

// typeOf writes t as it appears at nesting depth. Object members go one level
// deeper; array element types stay at the depth of the array.
func (r *renderer) typeOf(t *models.TypeInfo, depth int) {
	switch t.Kind {
	case models.Object:
		if len(t.Fields) == 0 {
			r.write("{}")
			return
		}
		r.write("{\n")
		inner := strings.Repeat(" ", r.indent*(depth+1))
		for _, f := range t.Fields {
			r.write(inner + propertyName(f.Key) + ": ")
			r.props = append(r.props, models.PropertyPosition{Pointer: f.Pointer, Line: r.line})
			r.typeOf(f.Type, depth+1)
			r.write(";\n")
		}
		r.write(strings.Repeat(" ", r.indent*depth) + "}")
	case models.Array:
		switch len(t.Elements) {
		case 0:
			r.write("any[]")
		case 1:
			r.typeOf(t.Elements[0].Type, depth)
			r.write("[]")
		default:
			r.write("(")
			for i, e := range t.Elements {
				if i > 0 {
					r.write(" | ")
				}
				r.typeOf(e.Type, depth)
			}
			r.write(")[]")
		}
	default:
		r.write(t.Kind.String())
	}
}

func propertyName(key string) string {
	if identifierRegex.MatchString(key) {
		return key
	}
	return jsontext.Quote(key)
}
