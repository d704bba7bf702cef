package roster

import (
	"os"

	json "github.com/goccy/go-json"

	"rostersync/internal/models"
	"rostersync/internal/providers"
	"rostersync/internal/roster/interfaces"
)

// FileManager persists roster snapshots to a single compressed JSON file.
// Writes go through a temp file and rename so a crash never leaves a
// half-written snapshot behind.
type FileManager struct {
	store      *models.RosterStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store *models.RosterStore, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := models.RosterSnapshot{
		Version:   models.RosterSnapshotVersion,
		Streamers: f.store.Snapshot(),
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	// Try current format (versioned envelope)
	var snapshot models.RosterSnapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err == nil && snapshot.Streamers != nil {
		f.store.Restore(snapshot.Streamers)
		return nil
	}

	// Try legacy format (bare streamer array)
	f.logger.Warnf(providers.TypeApp, "Inconsistent roster snapshot found, try to migrate from old data format")
	var streamers []models.Streamer
	if err := json.Unmarshal(decompressedData, &streamers); err != nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return err
	}
	f.logger.Warnf(providers.TypeApp, "Migration from legacy format successful")
	f.store.Restore(streamers)

	return nil
}
