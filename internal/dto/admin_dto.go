package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminListUsersRequest struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
	Role   string `query:"role" validate:"omitempty,oneof=user admin"`
	Search string `query:"search" validate:"omitempty,max=255"`
}

type AdminUserListItem struct {
	UserResponse
	Counts ProfileCounts `json:"counts"`
}

type AdminUsersPageResponse struct {
	Users      []AdminUserListItem `json:"users"`
	Pagination Pagination          `json:"pagination"`
}

type AdminUserDetailResponse struct {
	UserResponse
	Counts   ProfileCounts     `json:"counts"`
	Files    []FileResponse    `json:"files"`
	Messages []MessageResponse `json:"messages"`
	Surveys  []SurveyResponse  `json:"surveys"`
}

type AdminUpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type AdminListFilesRequest struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
	Status string `query:"status" validate:"omitempty,oneof=uploading processing completed error"`
	Type   string `query:"type" validate:"omitempty,max=255"`
	UserId string `query:"userId" validate:"omitempty,uuid"`
}

type AdminFileListItem struct {
	FileResponse
	Owner AdminUserRef `json:"user"`
}

type AdminUserRef struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type AdminFilesPageResponse struct {
	Files      []AdminFileListItem `json:"files"`
	Pagination Pagination          `json:"pagination"`
}

type AdminStatsResponse struct {
	Overview       AdminOverview                  `json:"overview"`
	UsersByRole    map[string]int64               `json:"usersByRole"`
	FilesByStatus  map[string]AdminFileStatusStat `json:"filesByStatus"`
	MessagesByRole map[string]int64               `json:"messagesByRole"`
	Recent         AdminRecent                    `json:"recent"`
}

type AdminOverview struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalFiles    int64 `json:"totalFiles"`
	TotalMessages int64 `json:"totalMessages"`
	ActiveUsers   int64 `json:"activeUsers"`
}

type AdminFileStatusStat struct {
	Count     int64 `json:"count"`
	TotalSize int64 `json:"totalSize"`
}

type AdminRecent struct {
	Users []UserResponse      `json:"users"`
	Files []AdminFileListItem `json:"files"`
}

type AdminListSurveysRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

type AdminSurveyListItem struct {
	SurveyResponse
	Owner AdminUserRef `json:"user"`
}

type AdminSurveysPageResponse struct {
	Surveys       []AdminSurveyListItem `json:"surveys"`
	Pagination    Pagination            `json:"pagination"`
	AverageRating float64               `json:"averageRating"`
}

type AdminLogListItem struct {
	Id        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Module    string                 `json:"module,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type AdminListLogsRequest struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
	Level  string `query:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
}

// Shared timestamp formatting cutoff for "active users".
const ActiveUserWindow = 7 * 24 * time.Hour
