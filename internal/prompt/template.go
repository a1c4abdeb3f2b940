// Package prompt holds the fixed chat prompts sent to the model and renders
// them into role-tagged messages.
package prompt

import (
	"fmt"
	"strings"
	"text/template"
	"text/template/parse"
)

// Role tags who a message speaks for.
type Role string

const (
	RoleSystem Role = "system"
	RoleHuman  Role = "human"
)

// Delimiter fences user-controlled content inside the human message.
const Delimiter = "####"

// Message is one role-tagged chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Spec is one side of a prompt pair. Placeholders use text/template syntax
// against a map of field values, e.g. {{.request}}.
type Spec struct {
	Role Role
	Text string
}

// MissingFieldError is returned when a template references a field that is
// not present in the values passed to Render.
type MissingFieldError struct {
	Template string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("prompt %q: missing field %q", e.Template, e.Field)
}

// Template is a system instruction paired with a human message carrying a
// single dynamic field.
type Template struct {
	Name       string
	InputField string
	System     Spec
	Human      Spec

	system *template.Template
	human  *template.Template
	fields []string
}

// New parses both sides of a template. The human side wraps the input field
// in the delimiter.
func New(name, inputField, systemText string) (*Template, error) {
	t := &Template{
		Name:       name,
		InputField: inputField,
		System:     Spec{Role: RoleSystem, Text: systemText},
		Human:      Spec{Role: RoleHuman, Text: Delimiter + "{{." + inputField + "}}" + Delimiter},
	}

	var err error
	if t.system, err = parseTemplate(name+"/system", t.System.Text); err != nil {
		return nil, err
	}
	if t.human, err = parseTemplate(name+"/human", t.Human.Text); err != nil {
		return nil, err
	}
	t.fields = referencedFields(t.system, t.human)
	return t, nil
}

// MustNew is New for the package-level templates.
func MustNew(name, inputField, systemText string) *Template {
	t, err := New(name, inputField, systemText)
	if err != nil {
		panic(err)
	}
	return t
}

// Fields lists every top-level field the template reads, system side first.
func (t *Template) Fields() []string {
	return append([]string(nil), t.fields...)
}

func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing prompt %s: %w", name, err)
	}
	return tmpl, nil
}

// Render produces the system and human messages, in that order.
func (t *Template) Render(values map[string]string) ([]Message, error) {
	for _, f := range t.fields {
		if _, ok := values[f]; !ok {
			return nil, &MissingFieldError{Template: t.Name, Field: f}
		}
	}

	system, err := execute(t.system, values)
	if err != nil {
		return nil, fmt.Errorf("rendering %s system prompt: %w", t.Name, err)
	}
	human, err := execute(t.human, values)
	if err != nil {
		return nil, fmt.Errorf("rendering %s human prompt: %w", t.Name, err)
	}

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleHuman, Content: human},
	}, nil
}

func execute(tmpl *template.Template, values map[string]string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, values); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// referencedFields walks parsed templates and returns the distinct first
// identifiers of every field reference, in order of appearance.
func referencedFields(tmpls ...*template.Template) []string {
	var fields []string
	seen := map[string]bool{}

	var walk func(n parse.Node)
	walk = func(n parse.Node) {
		switch n := n.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, c := range n.Nodes {
				walk(c)
			}
		case *parse.ActionNode:
			walk(n.Pipe)
		case *parse.PipeNode:
			if n == nil {
				return
			}
			for _, c := range n.Cmds {
				walk(c)
			}
		case *parse.CommandNode:
			for _, a := range n.Args {
				walk(a)
			}
		case *parse.IfNode:
			walk(n.Pipe)
			walk(n.List)
			walk(n.ElseList)
		case *parse.RangeNode:
			// Dot is rebound inside the body.
			walk(n.Pipe)
			walk(n.ElseList)
		case *parse.WithNode:
			walk(n.Pipe)
			walk(n.ElseList)
		case *parse.FieldNode:
			if len(n.Ident) > 0 && !seen[n.Ident[0]] {
				seen[n.Ident[0]] = true
				fields = append(fields, n.Ident[0])
			}
		}
	}

	for _, tmpl := range tmpls {
		if tmpl.Tree != nil {
			walk(tmpl.Tree.Root)
		}
	}
	return fields
}
