package filerecord

// EditRequest is a partial update; absent fields stay unchanged.
type EditRequest struct {
	Name      *string   `json:"name"`
	SubjectID *string   `json:"subject_id"`
	Category  *string   `json:"category"`
	Notes     *string   `json:"notes"`
	Tags      *[]string `json:"tags"`
}
