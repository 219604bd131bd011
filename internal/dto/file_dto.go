package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListFilesRequest struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
	Status string `query:"status" validate:"omitempty,oneof=uploading processing completed error"`
	Type   string `query:"type" validate:"omitempty,max=255"`
}

type FilesPageResponse struct {
	Files      []FileResponse `json:"files"`
	Pagination Pagination     `json:"pagination"`
}

type FileDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
}
