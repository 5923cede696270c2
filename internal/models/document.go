package models

import "time"

// Document представляет загруженный документ (резюме, сопроводительное письмо).
// Байты лежат на диске под сгенерированным StoredName, в базе — только метаданные.
// Владелец, как и у Interview, определяется через родительский Application.
type Document struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	StoredName    string    `json:"-"`
	OriginalName  string    `json:"original_name"`
	ContentType   string    `json:"content_type"`
	SizeBytes     int64     `json:"size_bytes"`
	UploadedAt    time.Time `json:"uploaded_at"`

	OwnerID int64 `json:"-"`
}
