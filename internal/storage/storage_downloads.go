// /internal/storage/storage_downloads.go
package storage

import "time"

// DownloadRecord tracks one download-convert-upload job.
type DownloadRecord struct {
	SourceURL string    `json:"source_url"`
	FileName  string    `json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	Bitrate   int       `json:"bitrate"`
	UploadURL string    `json:"upload_url"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"` // "completed", "failed"
	Datetime  time.Time `json:"datetime"`
}

// AppendDownload records a finished job for a guild, trimming the history to
// the given cap (oldest entries drop first). A cap of zero keeps everything.
func (s *Storage) AppendDownload(guildID string, dl DownloadRecord, maxTracked int) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Downloads = append(record.Downloads, dl)
	if maxTracked > 0 && len(record.Downloads) > maxTracked {
		record.Downloads = record.Downloads[len(record.Downloads)-maxTracked:]
	}
	s.ds.Put(guildID, record)
	return nil
}

func (s *Storage) FetchDownloads(guildID string) ([]DownloadRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.Downloads, nil
}
