package cli

import "strings"

type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandAdd
	CommandShow
	CommandPlan
	CommandListPlan
	CommandSave
	CommandExit
)

var commandNames = map[string]CommandKind{
	"add":       CommandAdd,
	"show":      CommandShow,
	"plan":      CommandPlan,
	"list plan": CommandListPlan,
	"save":      CommandSave,
	"exit":      CommandExit,
}

type Command struct {
	Kind  CommandKind
	Input string
}

// ParseCommand matches the exact command words; anything else is unknown.
func ParseCommand(line string) Command {
	input := strings.TrimSpace(line)
	kind, ok := commandNames[input]
	if !ok {
		kind = CommandUnknown
	}
	return Command{Kind: kind, Input: input}
}
