package command

import (
	"testing"

	"github.com/Darkatse/SimiluBot/internal/core"
)

func TestToggleableGroupsExcludeCore(t *testing.T) {
	core.RegisterCommand(&MusicCommand{})
	core.RegisterCommand(&MediaCommand{})
	core.RegisterCommand(&HelpCommand{})
	core.RegisterCommand(&CommandsToggleCommand{})

	groups := toggleableGroups()
	if len(groups) != 2 || groups[0] != "media" || groups[1] != "music" {
		t.Fatalf("toggleableGroups = %v, want [media music]", groups)
	}
}

func TestCommandsToggleDefinition(t *testing.T) {
	core.RegisterCommand(&MusicCommand{})
	core.RegisterCommand(&MediaCommand{})

	def := (&CommandsToggleCommand{}).SlashDefinition()
	if len(def.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(def.Options))
	}

	group, state := def.Options[0], def.Options[1]
	if group.Name != "group" || !group.Required || len(group.Choices) == 0 {
		t.Fatalf("group option = %+v", group)
	}
	for _, c := range group.Choices {
		if c.Value == "core" {
			t.Fatal("core group offered as a toggle choice")
		}
	}
	if state.Name != "state" || !state.Required || len(state.Choices) != 2 {
		t.Fatalf("state option = %+v", state)
	}
}
