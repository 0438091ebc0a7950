package model

import "time"

// SheetMusic mirrors the 'sheet_music' table. Every descriptive field other
// than Title is optional and passes through unvalidated, so nullable columns
// map to pointer types. UserID is the owning user and is nulled by the
// database when that user is deleted.
type SheetMusic struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title"`
	Composer        *string   `json:"composer"`
	ComposerDates   *string   `json:"composer_dates"`
	Opus            *string   `json:"opus"`
	Arranger        *string   `json:"arranger"`
	Instrumentation *string   `json:"instrumentation"`
	Key             *string   `json:"key"`
	Tempo           *string   `json:"tempo"`
	Difficulty      *string   `json:"difficulty"`
	Duration        *float64  `json:"duration"`
	Publisher       *string   `json:"publisher"`
	YearPublished   *int      `json:"year_published"`
	Location        *string   `json:"location"`
	Notes           *string   `json:"notes"`
	UserID          *uint64   `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SheetMusicFields carries the client-supplied columns of a record for
// create and update operations. The full set is written on update, matching
// the PUT-replaces-everything behavior of the API.
type SheetMusicFields struct {
	Title           string   `json:"title"`
	Composer        *string  `json:"composer"`
	ComposerDates   *string  `json:"composer_dates"`
	Opus            *string  `json:"opus"`
	Arranger        *string  `json:"arranger"`
	Instrumentation *string  `json:"instrumentation"`
	Key             *string  `json:"key"`
	Tempo           *string  `json:"tempo"`
	Difficulty      *string  `json:"difficulty"`
	Duration        *float64 `json:"duration"`
	Publisher       *string  `json:"publisher"`
	YearPublished   *int     `json:"year_published"`
	Location        *string  `json:"location"`
	Notes           *string  `json:"notes"`
}
