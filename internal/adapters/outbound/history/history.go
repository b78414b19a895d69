package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/upkeepdev/upkeep/internal/domain"
)

const historyFile = ".upkeep/history/runs.json"

// maxEntries caps the stored history so the file stays small no matter how
// often upkeep runs.
const maxEntries = 200

// FileHistory implements domain.HistoryStore using a JSON file under the
// project's .upkeep directory.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(projectRoot string, entry domain.RunEntry) error {
	entries, err := h.Load(projectRoot)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	fp := filepath.Join(projectRoot, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(projectRoot string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectRoot, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}

	return entries, nil
}
