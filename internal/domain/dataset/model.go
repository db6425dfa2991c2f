package dataset

import (
	"context"
	"io"
	"time"
)

// Job mirrors the newest matching file of a remote folder into a local directory.
type Job struct {
	Name        string
	FolderID    string
	Match       string
	Destination string
}

// RemoteFile is the metadata of one file in a remote folder.
type RemoteFile struct {
	ID          string
	Name        string
	CreatedTime time.Time
}

// Source lists and downloads files from a remote folder store.
type Source interface {
	// List returns the non-trashed files of folderID whose names contain match.
	List(ctx context.Context, folderID, match string) ([]RemoteFile, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// Latest returns the most recently created file. Creation time, not name,
// orders files so a date rollover in file names cannot pick an older drop.
// Ties keep the later listed file.
func Latest(files []RemoteFile) (RemoteFile, bool) {
	if len(files) == 0 {
		return RemoteFile{}, false
	}
	latest := files[0]
	for _, f := range files[1:] {
		if !f.CreatedTime.Before(latest.CreatedTime) {
			latest = f
		}
	}
	return latest, true
}
