package domain

// CommandKind discriminates the variants of a CommandSpec.
type CommandKind string

// Available command kinds.
const (
	// CommandNone marks a pure grouping node (a "directory").
	// It is never executable.
	CommandNone CommandKind = "none"

	// CommandRaw is an inline shell command string.
	CommandRaw CommandKind = "raw"

	// CommandLocalFile is an executable run against a local script file.
	CommandLocalFile CommandKind = "local_file"
)

// IsValid returns true if the command kind is recognised.
func (k CommandKind) IsValid() bool {
	switch k {
	case CommandNone, CommandRaw, CommandLocalFile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k CommandKind) String() string {
	return string(k)
}

// CommandSpec is a tagged variant describing how a node executes.
// Exactly one shape is meaningful per Kind:
//
//   - CommandRaw: Raw holds the shell command text.
//   - CommandLocalFile: Executable, Args and SourcePath describe the spawn.
//   - CommandNone: all other fields are empty.
type CommandSpec struct {
	// Kind selects the variant.
	Kind CommandKind

	// Raw is the shell command text (CommandRaw only).
	Raw string

	// Executable is the program to spawn (CommandLocalFile only).
	Executable string

	// Args are the arguments passed to Executable (CommandLocalFile only).
	Args []string

	// SourcePath is the script file backing this command (CommandLocalFile only).
	// Its parent directory becomes the working directory at execution time.
	SourcePath string
}

// RawCommand builds a CommandRaw spec.
func RawCommand(text string) CommandSpec {
	return CommandSpec{Kind: CommandRaw, Raw: text}
}

// LocalFileCommand builds a CommandLocalFile spec.
func LocalFileCommand(executable string, args []string, sourcePath string) CommandSpec {
	return CommandSpec{
		Kind:       CommandLocalFile,
		Executable: executable,
		Args:       args,
		SourcePath: sourcePath,
	}
}

// NoCommand builds a CommandNone spec.
func NoCommand() CommandSpec {
	return CommandSpec{Kind: CommandNone}
}

// IsExecutable returns true for the raw and local-file variants.
func (c CommandSpec) IsExecutable() bool {
	return c.Kind == CommandRaw || c.Kind == CommandLocalFile
}

// Node is one entry in a category's tree.
// Nodes live in an arena keyed by ID; the tree structure is expressed
// through ordered child-id lists, never through owned copies.
type Node struct {
	// ID is the opaque identifier, unique within one loaded snapshot.
	// It is stable for the snapshot's lifetime and regenerated on reload.
	ID string

	// Name is the display name.
	Name string

	// Description is the human-readable explanation of what the node does.
	Description string

	// Tags are free-form labels (the "task list").
	Tags []string

	// MultiSelect marks the node as eligible for batched execution.
	MultiSelect bool

	// Children holds the ordered ids of child nodes. Empty means leaf.
	Children []string

	// Command describes how the node executes. CommandNone for grouping nodes.
	Command CommandSpec
}

// IsLeaf returns true if the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasChildren returns true if the node has at least one child.
func (n Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Executable returns true if the node carries a runnable command.
func (n Node) Executable() bool {
	return n.Command.IsExecutable()
}
