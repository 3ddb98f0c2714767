package discord

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// guildCachePath returns where the per-guild slash command hashes live.
func guildCachePath(guildID string) string {
	return filepath.Join("data", "commands", guildID+".json")
}

// loadGuildCommandHashes loads the cached command hashes for a guild.
// A missing or unreadable cache just means every command looks changed.
func loadGuildCommandHashes(guildID string) map[string]string {
	hashes := make(map[string]string)
	if data, err := os.ReadFile(guildCachePath(guildID)); err == nil {
		_ = json.Unmarshal(data, &hashes)
	}
	return hashes
}

// saveGuildCommandHashes persists the command hashes for a guild.
func saveGuildCommandHashes(guildID string, hashes map[string]string) {
	path := guildCachePath(guildID)
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	if data, err := json.MarshalIndent(hashes, "", "  "); err == nil {
		_ = os.WriteFile(path, data, 0644)
	}
}
