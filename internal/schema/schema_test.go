package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentYAML(t *testing.T) {
	doc := []byte(`
command: git
description: Version control
global_options:
  - long: --version
subcommands:
  - name: commit
    options:
      - short: -m
        long: --message
        description: Commit message
  - name: checkout
    arguments:
      - name: branch
`)
	s, err := parseDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "git", s.Command)
	require.Len(t, s.Subcommands, 2)
	assert.Equal(t, "commit", s.Subcommands[0].Name)
	require.Len(t, s.Subcommands[0].Options, 1)
	assert.Equal(t, "-m", s.Subcommands[0].Options[0].Short)
	assert.Equal(t, "--message", s.Subcommands[0].Options[0].Long)
}

func TestParseDocumentJSON(t *testing.T) {
	doc := []byte(`{"command": "tool", "subcommands": [{"name": "start"}]}`)
	s, err := parseDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "tool", s.Command)
	require.Len(t, s.Subcommands, 1)
	assert.Equal(t, "start", s.Subcommands[0].Name)
}

func TestArgumentTypeScalarShorthand(t *testing.T) {
	doc := []byte(`
command: cd
arguments:
  - name: directory
    arg_type: directory
`)
	s, err := parseDocument(doc)
	require.NoError(t, err)
	require.Len(t, s.Arguments, 1)
	require.NotNil(t, s.Arguments[0].ArgType)
	assert.Equal(t, ArgDirectory, s.Arguments[0].ArgType.Kind)
}

func TestArgumentTypeMappingForm(t *testing.T) {
	doc := []byte(`
command: view
arguments:
  - name: manifest
    arg_type:
      kind: file
      extensions: [".yaml", ".yml"]
  - name: mode
    arg_type:
      kind: choice
      values: [fast, slow]
`)
	s, err := parseDocument(doc)
	require.NoError(t, err)
	require.Len(t, s.Arguments, 2)
	assert.Equal(t, ArgFile, s.Arguments[0].ArgType.Kind)
	assert.Equal(t, []string{".yaml", ".yml"}, s.Arguments[0].ArgType.Extensions)
	assert.Equal(t, ArgChoice, s.Arguments[1].ArgType.Kind)
	assert.Equal(t, []string{"fast", "slow"}, s.Arguments[1].ArgType.Values)
}

func TestAtWalksSubcommands(t *testing.T) {
	s := &CommandSchema{
		Command: "git",
		Subcommands: []SubCommand{
			{
				Name: "remote",
				Subcommands: []SubCommand{
					{Name: "add"},
					{Name: "remove"},
				},
			},
		},
	}

	level, ok := s.At([]string{"remote"})
	require.True(t, ok)
	assert.Equal(t, []string{"add", "remove"}, s.SubcommandNames([]string{"remote"}))
	assert.Len(t, level.Subcommands, 2)

	_, ok = s.At([]string{"nope"})
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  CommandSchema
		wantErr bool
	}{
		{
			name:   "valid",
			schema: CommandSchema{Command: "git", GlobalOptions: []Option{{Short: "-v"}}},
		},
		{
			name:    "empty command name",
			schema:  CommandSchema{Command: ""},
			wantErr: true,
		},
		{
			name:    "whitespace in name",
			schema:  CommandSchema{Command: "git commit"},
			wantErr: true,
		},
		{
			name:    "option without forms",
			schema:  CommandSchema{Command: "x", GlobalOptions: []Option{{Description: "no forms"}}},
			wantErr: true,
		},
		{
			name:    "short form with double dash",
			schema:  CommandSchema{Command: "x", GlobalOptions: []Option{{Short: "--x"}}},
			wantErr: true,
		},
		{
			name:    "bare double dash long form",
			schema:  CommandSchema{Command: "x", GlobalOptions: []Option{{Long: "--"}}},
			wantErr: true,
		},
		{
			name:   "numeric short form",
			schema: CommandSchema{Command: "x", GlobalOptions: []Option{{Short: "-1"}}},
		},
		{
			name: "invalid nested subcommand option",
			schema: CommandSchema{Command: "x", Subcommands: []SubCommand{
				{Name: "sub", Options: []Option{{Long: "nodash"}}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
