// Package schema holds the declarative completion model: per-command
// definitions of subcommands, options and typed arguments, loaded from
// bundled and user-supplied YAML/JSON documents and merged into an
// immutable, name-keyed database.
package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ArgKind enumerates the typed-argument variants.
type ArgKind string

const (
	ArgFile            ArgKind = "file"
	ArgDirectory       ArgKind = "directory"
	ArgChoice          ArgKind = "choice"
	ArgCommand         ArgKind = "command"
	ArgCommandWithArgs ArgKind = "command_with_args"
	ArgEnvironment     ArgKind = "environment"
	ArgString          ArgKind = "string"

	// Extended kinds backed by the system metadata generators.
	ArgUser      ArgKind = "user"
	ArgGroup     ArgKind = "group"
	ArgSignal    ArgKind = "signal"
	ArgInterface ArgKind = "interface"
)

// ArgumentType describes what a positional argument or option value
// accepts. Extensions applies to ArgFile, Values to ArgChoice.
type ArgumentType struct {
	Kind       ArgKind  `yaml:"kind" json:"kind"`
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Values     []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// UnmarshalYAML accepts either the full mapping form or a bare scalar
// shorthand ("arg_type: directory").
func (a *ArgumentType) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		a.Kind = ArgKind(value.Value)
		return nil
	}

	type plain ArgumentType
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*a = ArgumentType(p)
	return nil
}

// Argument is one positional argument of a command or subcommand.
type Argument struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	ArgType     *ArgumentType `yaml:"arg_type,omitempty" json:"arg_type,omitempty"`
}

// Option is a flag with an optional short and optional long form. At least
// one form must be present.
type Option struct {
	Short       string `yaml:"short,omitempty" json:"short,omitempty"`
	Long        string `yaml:"long,omitempty" json:"long,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Forms returns the option's non-empty forms.
func (o Option) Forms() []string {
	var forms []string
	if o.Short != "" {
		forms = append(forms, o.Short)
	}
	if o.Long != "" {
		forms = append(forms, o.Long)
	}
	return forms
}

// SubCommand is a recursively nested subcommand.
type SubCommand struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Options     []Option     `yaml:"options,omitempty" json:"options,omitempty"`
	Arguments   []Argument   `yaml:"arguments,omitempty" json:"arguments,omitempty"`
	Subcommands []SubCommand `yaml:"subcommands,omitempty" json:"subcommands,omitempty"`
}

// CommandSchema is one command's completion definition; one document per
// file.
type CommandSchema struct {
	Command       string       `yaml:"command" json:"command"`
	Description   string       `yaml:"description,omitempty" json:"description,omitempty"`
	GlobalOptions []Option     `yaml:"global_options,omitempty" json:"global_options,omitempty"`
	Subcommands   []SubCommand `yaml:"subcommands,omitempty" json:"subcommands,omitempty"`
	Arguments     []Argument   `yaml:"arguments,omitempty" json:"arguments,omitempty"`
}

// Level is the slice of the schema visible at one subcommand depth.
type Level struct {
	Subcommands []SubCommand
	Options     []Option
	Arguments   []Argument
}

// At walks path through the nested subcommands. An empty path yields the
// top level. The second return is false when a path element is not a
// declared subcommand.
func (s *CommandSchema) At(path []string) (Level, bool) {
	level := Level{
		Subcommands: s.Subcommands,
		Options:     s.GlobalOptions,
		Arguments:   s.Arguments,
	}
	for _, name := range path {
		var next *SubCommand
		for i := range level.Subcommands {
			if level.Subcommands[i].Name == name {
				next = &level.Subcommands[i]
				break
			}
		}
		if next == nil {
			return Level{}, false
		}
		level = Level{
			Subcommands: next.Subcommands,
			Options:     next.Options,
			Arguments:   next.Arguments,
		}
	}
	return level, true
}

// SubcommandNames lists the subcommand names at path.
func (s *CommandSchema) SubcommandNames(path []string) []string {
	level, ok := s.At(path)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(level.Subcommands))
	for _, sub := range level.Subcommands {
		names = append(names, sub.Name)
	}
	return names
}

// parseDocument decodes one schema document. YAML is a superset of JSON,
// so .json files go through the same decoder.
func parseDocument(data []byte) (*CommandSchema, error) {
	var s CommandSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}
	return &s, nil
}
