package parser

// ContextKind is the syntactic role assigned to the token under the cursor.
type ContextKind int

const (
	KindUnknown ContextKind = iota
	// KindCommand means the cursor is on the first token of the line.
	KindCommand
	// KindSubcommand means the token may name a subcommand of the command.
	KindSubcommand
	// KindShortOption is a two-character single-dash flag such as "-m".
	KindShortOption
	// KindLongOption is any other dash-prefixed token, including combined
	// short flags like "-am" which are treated as one opaque name.
	KindLongOption
	// KindOptionValue means the previous token is an option that takes a
	// value.
	KindOptionValue
	// KindArgument is a positional argument or a redirect target.
	KindArgument
)

func (k ContextKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindSubcommand:
		return "subcommand"
	case KindShortOption:
		return "short-option"
	case KindLongOption:
		return "long-option"
	case KindOptionValue:
		return "option-value"
	case KindArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Context classifies the token under the cursor and carries the data the
// generators dispatch on.
type Context struct {
	Kind ContextKind

	// OptionName is set for KindOptionValue: the option awaiting a value.
	OptionName string

	// ArgIndex is set for KindArgument: the number of positional arguments
	// already specified before the one being edited.
	ArgIndex int

	// Redirect marks an argument that is the target of a redirect
	// operator. Redirect targets are never counted as positionals and
	// always complete as files.
	Redirect bool
}
