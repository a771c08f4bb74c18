// Package candidate defines the completion candidate model shared by the
// engine's generators and consumed by the caller's selection UI.
package candidate

// Category tags a candidate with the kind of thing it completes.
type Category string

const (
	CategoryCommand     Category = "command"
	CategorySubcommand  Category = "subcommand"
	CategoryOption      Category = "option"
	CategoryFile        Category = "file"
	CategoryDirectory   Category = "directory"
	CategoryExecutable  Category = "executable"
	CategoryEnvironment Category = "environment"
	CategoryUser        Category = "user"
	CategoryGroup       Category = "group"
	CategorySignal      Category = "signal"
	CategoryProcess     Category = "process"
	CategoryBranch      Category = "branch"
	CategoryRemote      Category = "remote"
	CategoryPackage     Category = "package"
	CategoryHost        Category = "host"
	CategoryInterface   Category = "interface"
	CategoryChoice      Category = "choice"
	CategoryHistory     Category = "history"
)

// Candidate is a single proposed completion. It is a value object and is
// never mutated after creation.
type Candidate struct {
	// Text is the replacement text for the token being completed.
	Text string
	// Description is optional help text shown next to the candidate.
	Description string
	// Category tags the source/kind of the candidate.
	Category Category
	// Priority breaks ties between candidates with equal rank. Lower
	// values sort first.
	Priority int
}

// defaultPriorities orders categories when multiple sources produce
// candidates for the same request.
var defaultPriorities = map[Category]int{
	CategorySubcommand:  10,
	CategoryOption:      10,
	CategoryChoice:      10,
	CategoryCommand:     20,
	CategoryExecutable:  20,
	CategoryBranch:      20,
	CategoryRemote:      20,
	CategoryProcess:     20,
	CategoryPackage:     20,
	CategoryHost:        20,
	CategoryInterface:   20,
	CategoryUser:        20,
	CategoryGroup:       20,
	CategorySignal:      20,
	CategoryEnvironment: 30,
	CategoryDirectory:   40,
	CategoryFile:        50,
	CategoryHistory:     60,
}

// New builds a candidate with the default priority for its category.
func New(text string, category Category) Candidate {
	return Candidate{
		Text:     text,
		Category: category,
		Priority: defaultPriorities[category],
	}
}

// WithDescription returns a copy of the candidate with a description set.
func (c Candidate) WithDescription(description string) Candidate {
	c.Description = description
	return c
}
