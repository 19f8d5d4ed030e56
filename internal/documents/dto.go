package documents

import "time"

// DocumentResponse is the wire representation of a document.
type DocumentResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	Category   string    `json:"category"`
	UnitID     string    `json:"unit_id,omitempty"`
	AISummary  string    `json:"ai_summary,omitempty"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		FileName:   d.FileName,
		FileURL:    d.FileURL,
		Category:   d.Category,
		UnitID:     d.UnitID,
		AISummary:  d.AISummary,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}

func toResponses(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toResponse(d))
	}
	return out
}

// DocumentRef identifies a document inline in extract requests.
type DocumentRef struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

type extractTextRequest struct {
	Document DocumentRef `json:"document"`
}

type extractTextResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}

type checkAccessRequest struct {
	DocumentID string `json:"documentId"`
	FileURL    string `json:"fileUrl"`
}

type urlCheck struct {
	Accessible bool   `json:"accessible"`
	Status     int    `json:"status"`
	Error      string `json:"error"`
}

type storageCheck struct {
	Accessible bool   `json:"accessible"`
	Error      string `json:"error"`
}

type checkAccessResponse struct {
	Success  bool `json:"success"`
	Document struct {
		ID       string `json:"id"`
		FileName string `json:"fileName"`
		FileURL  string `json:"fileUrl"`
		Category string `json:"category"`
	} `json:"document"`
	Checks struct {
		PublicURL urlCheck     `json:"publicUrl"`
		Storage   storageCheck `json:"storage"`
	} `json:"checks"`
	Recommendations []string `json:"recommendations"`
}
