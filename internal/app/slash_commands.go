package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/decoy/internal/logger"
)

// slashCommandDef defines a slash command and its help text.
type slashCommandDef struct {
	name        string
	description string
	run         func(m *Model) tea.Cmd
}

// getSlashCommands returns the registry of available slash commands.
// Using a function instead of a var avoids initialization cycles.
func getSlashCommands() []slashCommandDef {
	return []slashCommandDef{
		{name: "start", description: "Start a new session", run: (*Model).startSession},
		{name: "health", description: "Check backend health", run: (*Model).checkHealth},
		{name: "copy", description: "Copy extracted intel", run: (*Model).copyIntel},
		{name: "export", description: "Export the session to JSON", run: (*Model).exportSession},
		{name: "clear", description: "Clear transcript and intel", run: (*Model).clearSession},
		{name: "help", description: "Show key bindings and commands", run: (*Model).openHelp},
	}
}

// handleSlashCommand runs input if it names a local command. Unknown
// commands are reported as unhandled so they are sent as a message.
func (m *Model) handleSlashCommand(input string) (tea.Cmd, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(fields) != 1 {
		return nil, false
	}
	name := strings.ToLower(fields[0])

	for _, cmd := range getSlashCommands() {
		if cmd.name == name {
			logger.WithComponent("app").Debug("slash command", "command", name)
			return cmd.run(m), true
		}
	}

	logger.WithComponent("app").Debug("unknown slash command, sending as message", "command", name)
	return nil, false
}

func (m *Model) openHelp() tea.Cmd {
	m.showHelp = true
	return nil
}
