package domain

import "time"

// Resource is an uploaded file's record. Department is copied from the
// uploader when the record is created and never changes.
type Resource struct {
	ID           string
	StoredName   string // blob key, unrelated to OriginalName
	OriginalName string
	Locator      string
	ContentType  string
	Size         int64
	Checksum     string // hex sha256
	Department   Department
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Owner is filled on reads.
	Owner Owner
}

// Owner is the uploader as shown next to a file.
type Owner struct {
	FullName   string
	Identifier string
}
