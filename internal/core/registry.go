package core

// registry maps command names and aliases to their (wrapped) commands.
var registry = map[string]Command{}

// RegisterCommand adds a command under its name and every alias.
func RegisterCommand(cmd Command) {
	registry[cmd.Name()] = cmd
	for _, a := range cmd.Aliases() {
		registry[a] = cmd
	}
}

// GetCommand looks up a command by name or alias.
func GetCommand(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

// AllCommands returns every registered command once, even when it is
// reachable under several aliases.
func AllCommands() []Command {
	seen := map[string]bool{}
	list := make([]Command, 0)
	for _, cmd := range registry {
		if seen[cmd.Name()] {
			continue
		}
		list = append(list, cmd)
		seen[cmd.Name()] = true
	}
	return list
}
