package model

import "time"

// The API shapes below replace the store's _id with a plain string id.
// Nothing else should build these by hand, use the To* functions.

type UploadDTO struct {
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	URL         string     `json:"url"`
	Type        UploadType `json:"type"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// UploadResponse is the short shape answered right after an upload
type UploadResponse struct {
	ID       string     `json:"id"`
	URL      string     `json:"url"`
	Filename string     `json:"filename"`
	Size     int64      `json:"size"`
	Type     UploadType `json:"type"`
}

type VideoRequestDTO struct {
	ID                string     `json:"id"`
	Prompt            string     `json:"prompt"`
	Duration          int        `json:"duration"`
	Style             Style      `json:"style"`
	AspectRatio       string     `json:"aspect_ratio"`
	Variations        int        `json:"variations"`
	ReferenceImageIDs []string   `json:"reference_image_ids"`
	ImageToVideoIDs   []string   `json:"image_to_video_ids"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}

type VideoJobDTO struct {
	ID                string     `json:"id"`
	RequestID         string     `json:"request_id,omitempty"`
	Prompt            string     `json:"prompt"`
	Status            JobStatus  `json:"status"`
	Duration          int        `json:"duration"`
	Style             Style      `json:"style"`
	AspectRatio       string     `json:"aspect_ratio"`
	ReferenceImageIDs []string   `json:"reference_image_ids"`
	ImageToVideoIDs   []string   `json:"image_to_video_ids"`
	VariationIndex    int        `json:"variation_index"`
	VideoURL          *string    `json:"video_url"`
	Error             *string    `json:"error"`
	Saved             bool       `json:"saved"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func ToUploadDTO(u Upload) UploadDTO {
	return UploadDTO{
		ID:          u.ID.Hex(),
		Filename:    u.Filename,
		URL:         u.URL,
		Type:        u.Type,
		Size:        u.Size,
		ContentType: u.ContentType,
		CreatedAt:   timePtr(u.CreatedAt),
	}
}

func ToUploadResponse(u Upload) UploadResponse {
	return UploadResponse{
		ID:       u.ID.Hex(),
		URL:      u.URL,
		Filename: u.Filename,
		Size:     u.Size,
		Type:     u.Type,
	}
}

func ToVideoRequestDTO(r VideoRequest) VideoRequestDTO {
	return VideoRequestDTO{
		ID:                r.ID.Hex(),
		Prompt:            r.Prompt,
		Duration:          r.Duration,
		Style:             r.Style,
		AspectRatio:       r.AspectRatio,
		Variations:        r.Variations,
		ReferenceImageIDs: nonNil(r.ReferenceImageIDs),
		ImageToVideoIDs:   nonNil(r.ImageToVideoIDs),
		CreatedAt:         timePtr(r.CreatedAt),
	}
}

func ToVideoJobDTO(j VideoJob) VideoJobDTO {
	dto := VideoJobDTO{
		ID:                j.ID.Hex(),
		Prompt:            j.Prompt,
		Status:            j.Status,
		Duration:          j.Duration,
		Style:             j.Style,
		AspectRatio:       j.AspectRatio,
		ReferenceImageIDs: nonNil(j.ReferenceImageIDs),
		ImageToVideoIDs:   nonNil(j.ImageToVideoIDs),
		VariationIndex:    j.VariationIndex,
		VideoURL:          j.VideoURL,
		Error:             j.Error,
		Saved:             j.Saved,
		CreatedAt:         timePtr(j.CreatedAt),
		UpdatedAt:         timePtr(j.UpdatedAt),
	}

	if !j.RequestID.IsZero() {
		dto.RequestID = j.RequestID.Hex()
	}

	return dto
}

// ToDTOs maps a whole listing with one of the functions above
func ToDTOs[T, D any](items []T, fn func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}

	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}

// Documents written without timestamps decode to the zero time
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
