package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"humanlenk-be/internal/constant"
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/pkg/logger"
	"humanlenk-be/internal/repository/specification"
	"humanlenk-be/internal/repository/unitofwork"
	"humanlenk-be/pkg/events"
	"humanlenk-be/pkg/storage"

	"github.com/google/uuid"
)

const (
	MaxUploadSize     = 10 * 1024 * 1024 // 10MB
	downloadURLExpiry = time.Hour
)

// allowedMimeTypes maps the accepted upload MIME types to their canonical
// file extension.
var allowedMimeTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"text/plain": ".txt",
}

type IFileService interface {
	Upload(ctx context.Context, userId uuid.UUID, fileHeader *multipart.FileHeader) (*dto.FileResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListFilesRequest) (*dto.FilesPageResponse, error)
	Get(ctx context.Context, userId, fileId uuid.UUID) (*dto.FileResponse, error)
	Download(ctx context.Context, userId, fileId uuid.UUID) (*dto.FileDownloadResponse, error)
	Delete(ctx context.Context, userId, fileId uuid.UUID) error
}

type fileService struct {
	uowFactory unitofwork.RepositoryFactory
	store      storage.ObjectStore // nil when object storage is not configured
	publisher  IPublisherService
	logger     logger.ILogger
	baseURL    string
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.ObjectStore,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	baseURL string,
) IFileService {
	return &fileService{
		uowFactory: uowFactory,
		store:      store,
		publisher:  publisher,
		logger:     sysLogger,
		baseURL:    baseURL,
	}
}

func (s *fileService) Upload(ctx context.Context, userId uuid.UUID, fileHeader *multipart.FileHeader) (*dto.FileResponse, error) {
	if fileHeader.Size > MaxUploadSize {
		return nil, apperror.BadRequest("File too large. Maximum size is 10MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedMimeTypes[contentType]
	if !ok {
		return nil, apperror.BadRequest("Invalid file type. Only PDF, DOC, DOCX, and TXT files are allowed")
	}
	if origExt := strings.ToLower(filepath.Ext(fileHeader.Filename)); origExt != "" {
		ext = origExt
	}

	if s.store == nil {
		return nil, apperror.Unavailable("File storage is currently unavailable")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	fileId := uuid.New()
	storageKey := fmt.Sprintf("%s/%s%s", userId, fileId, ext)

	if err := s.store.Put(ctx, storageKey, src, fileHeader.Size, contentType); err != nil {
		s.logger.Error("FileService", "Object storage upload failed", map[string]interface{}{
			"user_id": userId.String(),
			"key":     storageKey,
			"error":   err.Error(),
		})
		return nil, apperror.Unavailable("File storage is currently unavailable")
	}

	file := &entity.File{
		Id:         fileId,
		UserId:     userId,
		Name:       fileHeader.Filename,
		Type:       contentType,
		Size:       fileHeader.Size,
		URL:        fmt.Sprintf("%s/api/files/%s/download", s.baseURL, fileId),
		StorageKey: storageKey,
		Status:     constant.FileStatusCompleted,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FileRepository().Create(ctx, file); err != nil {
		// orphaned object, best effort cleanup
		if delErr := s.store.Delete(ctx, storageKey); delErr != nil {
			s.logger.Warn("FileService", "Failed to clean up orphaned object", map[string]interface{}{
				"key":   storageKey,
				"error": delErr.Error(),
			})
		}
		return nil, err
	}

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeFileUploaded,
			Data: map[string]interface{}{
				"user_id": userId.String(),
				"file_id": file.Id.String(),
				"name":    file.Name,
				"size":    file.Size,
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("FileService", "Failed to publish FILE_UPLOADED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	res := toFileResponse(file)
	return &res, nil
}

func (s *fileService) List(ctx context.Context, userId uuid.UUID, req *dto.ListFilesRequest) (*dto.FilesPageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagesPageSize
	}

	scope := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if req.Status != "" {
		scope = append(scope, specification.ByFileStatus{Status: req.Status})
	}
	if req.Type != "" {
		scope = append(scope, specification.ByFileType{Type: req.Type})
	}

	total, err := uow.FileRepository().Count(ctx, scope...)
	if err != nil {
		return nil, err
	}

	files, err := uow.FileRepository().FindAll(ctx, append(scope,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FileResponse, 0, len(files))
	for _, file := range files {
		items = append(items, toFileResponse(file))
	}

	return &dto.FilesPageResponse{
		Files:      items,
		Pagination: dto.NewPagination(total, limit, req.Offset),
	}, nil
}

func (s *fileService) Get(ctx context.Context, userId, fileId uuid.UUID) (*dto.FileResponse, error) {
	file, err := s.findOwnedFile(ctx, userId, fileId)
	if err != nil {
		return nil, err
	}
	res := toFileResponse(file)
	return &res, nil
}

func (s *fileService) Download(ctx context.Context, userId, fileId uuid.UUID) (*dto.FileDownloadResponse, error) {
	file, err := s.findOwnedFile(ctx, userId, fileId)
	if err != nil {
		return nil, err
	}

	if s.store == nil {
		return nil, apperror.Unavailable("File storage is currently unavailable")
	}

	url, err := s.store.PresignGet(ctx, file.StorageKey, downloadURLExpiry)
	if err != nil {
		s.logger.Error("FileService", "Presign failed", map[string]interface{}{
			"file_id": fileId.String(),
			"error":   err.Error(),
		})
		return nil, apperror.Unavailable("File storage is currently unavailable")
	}

	return &dto.FileDownloadResponse{
		DownloadURL: url,
		ExpiresIn:   int(downloadURLExpiry.Seconds()),
	}, nil
}

func (s *fileService) Delete(ctx context.Context, userId, fileId uuid.UUID) error {
	file, err := s.findOwnedFile(ctx, userId, fileId)
	if err != nil {
		return err
	}

	if s.store != nil && file.StorageKey != "" {
		if err := s.store.Delete(ctx, file.StorageKey); err != nil {
			// keep going, the record is the source of truth
			s.logger.Warn("FileService", "Failed to delete stored object", map[string]interface{}{
				"key":   file.StorageKey,
				"error": err.Error(),
			})
		}
	}

	// referencing messages get file_id nulled by the FK
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FileRepository().Delete(ctx, file.Id)
}

func (s *fileService) findOwnedFile(ctx context.Context, userId, fileId uuid.UUID) (*entity.File, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: fileId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.NotFound("File not found")
	}
	return file, nil
}

func toFileResponse(file *entity.File) dto.FileResponse {
	return dto.FileResponse{
		Id:        file.Id,
		Name:      file.Name,
		Type:      file.Type,
		Size:      file.Size,
		URL:       file.URL,
		Status:    file.Status,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}
}
