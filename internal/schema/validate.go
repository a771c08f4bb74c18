package schema

import (
	"fmt"
	"strings"
)

// Validate checks a schema document structurally. A failing document is
// skipped by the loader; it never aborts the load.
func (s *CommandSchema) Validate() error {
	if err := validateName(s.Command); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	if err := validateOptions(s.GlobalOptions); err != nil {
		return fmt.Errorf("command %q: %w", s.Command, err)
	}
	for i := range s.Subcommands {
		if err := validateSubcommand(&s.Subcommands[i]); err != nil {
			return fmt.Errorf("command %q: %w", s.Command, err)
		}
	}
	return nil
}

func validateSubcommand(sub *SubCommand) error {
	if err := validateName(sub.Name); err != nil {
		return fmt.Errorf("subcommand: %w", err)
	}
	if err := validateOptions(sub.Options); err != nil {
		return fmt.Errorf("subcommand %q: %w", sub.Name, err)
	}
	for i := range sub.Subcommands {
		if err := validateSubcommand(&sub.Subcommands[i]); err != nil {
			return fmt.Errorf("subcommand %q: %w", sub.Name, err)
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("name %q must not contain whitespace", name)
	}
	return nil
}

func validateOptions(options []Option) error {
	for _, opt := range options {
		if opt.Short == "" && opt.Long == "" {
			return fmt.Errorf("option needs a short or long form")
		}
		if opt.Short != "" {
			if !strings.HasPrefix(opt.Short, "-") || len(opt.Short) < 2 {
				return fmt.Errorf("short form %q must start with a dash", opt.Short)
			}
			if strings.HasPrefix(opt.Short, "--") {
				return fmt.Errorf("short form %q must use a single dash", opt.Short)
			}
		}
		if opt.Long != "" {
			if !strings.HasPrefix(opt.Long, "--") {
				return fmt.Errorf("long form %q must start with two dashes", opt.Long)
			}
			if opt.Long == "--" {
				return fmt.Errorf("long form must have content after the dashes")
			}
		}
	}
	return nil
}
