// Package contents implements the content block domain: immutable text
// blocks extracted from a project's source files, the assembled evidentiary
// context derived from them, and the extraction trigger that produces them.
package contents

import (
	"time"

	"github.com/google/uuid"
)

// ContentBlock is an immutable block of text extracted from a source file.
// Blocks are written only by the extraction step and never mutated; the
// classification engine and outline builder consume them as input.
type ContentBlock struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"project_id"`
	Content       string    `json:"content"`
	SourceFile    string    `json:"source_file"`
	SourceType    string    `json:"source_type"`
	SourcePage    *int      `json:"source_page"`
	SourceSection *string   `json:"source_section"`
	ContentType   string    `json:"content_type"`
	WordCount     int       `json:"word_count"`
	ExtractedAt   time.Time `json:"extracted_at"`
}

// ExtractResult reports the outcome of an extraction run.
type ExtractResult struct {
	FilesProcessed int `json:"files_processed"`
	BlocksCreated  int `json:"blocks_created"`
}

// ClearResult reports what a clear operation removed.
type ClearResult struct {
	BlocksDeleted          int `json:"blocks_deleted"`
	ClassificationsDeleted int `json:"classifications_deleted"`
}
