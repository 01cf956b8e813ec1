package model

import "slices"

type UploadType string

const (
	UploadTypeReference   UploadType = "reference"
	UploadTypeImage2Video UploadType = "image2video"
)

var UploadTypes = []UploadType{UploadTypeReference, UploadTypeImage2Video}

func (t UploadType) Valid() bool {
	return slices.Contains(UploadTypes, t)
}

type Style string

const (
	StyleRealistic  Style = "realistic"
	StyleCinematic  Style = "cinematic"
	StyleAnime      Style = "anime"
	StyleHorror     Style = "horror"
	StyleCartoon    Style = "cartoon"
	StyleDigitalArt Style = "digital art"
)

var Styles = []Style{StyleRealistic, StyleCinematic, StyleAnime, StyleHorror, StyleCartoon, StyleDigitalArt}

func (s Style) Valid() bool {
	return slices.Contains(Styles, s)
}

// Durations are in seconds
var Durations = []int{3, 5, 10, 20}

func ValidDuration(d int) bool {
	return slices.Contains(Durations, d)
}

// JobStatus is written once at creation, nothing transitions it afterwards
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

const (
	MinVariations = 1
	MaxVariations = 8
)
