package service

import (
	"context"
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
	gocache "github.com/patrickmn/go-cache"
)

const (
	adminStatsCacheKey = "admin_stats"
	adminStatsCacheTTL = 5 * time.Minute

	adminDetailSampleSize = 10
	adminRecentSampleSize = 5
)

type IAdminService interface {
	ListUsers(ctx context.Context, actorId uuid.UUID, req *dto.AdminListUsersRequest) (*dto.AdminUsersPageResponse, error)
	GetUser(ctx context.Context, actorId, userId uuid.UUID) (*dto.AdminUserDetailResponse, error)
	UpdateUserRole(ctx context.Context, actorId, userId uuid.UUID, req *dto.AdminUpdateRoleRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actorId, userId uuid.UUID) error
	ListFiles(ctx context.Context, actorId uuid.UUID, req *dto.AdminListFilesRequest) (*dto.AdminFilesPageResponse, error)
	DeleteFile(ctx context.Context, actorId, fileId uuid.UUID) error
	Stats(ctx context.Context, actorId uuid.UUID) (*dto.AdminStatsResponse, error)
	ListSurveys(ctx context.Context, actorId uuid.UUID, req *dto.AdminListSurveysRequest) (*dto.AdminSurveysPageResponse, error)
	Logs(ctx context.Context, actorId uuid.UUID, req *dto.AdminListLogsRequest) ([]dto.AdminLogListItem, error)
	LogById(ctx context.Context, actorId uuid.UUID, logId string) (*dto.AdminLogListItem, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	store      storage.ObjectStore
	publisher  IPublisherService
	statsCache *gocache.Cache
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
	store storage.ObjectStore,
	publisher IPublisherService,
) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     sysLogger,
		store:      store,
		publisher:  publisher,
		statsCache: gocache.New(adminStatsCacheTTL, 10*time.Minute),
	}
}

// audit writes the access trail every admin endpoint leaves behind.
func (s *adminService) audit(actorId uuid.UUID, action string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["actor_id"] = actorId.String()
	s.logger.Info("AdminService", action, details)
}

func (s *adminService) ListUsers(ctx context.Context, actorId uuid.UUID, req *dto.AdminListUsersRequest) (*dto.AdminUsersPageResponse, error) {
	s.audit(actorId, "Admin listed users", nil)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagesPageSize
	}

	var scope []specification.Specification
	if req.Role != "" {
		scope = append(scope, specification.ByRole{Role: req.Role})
	}
	if req.Search != "" {
		scope = append(scope, specification.SearchNameOrEmail{Query: req.Search})
	}

	total, err := uow.UserRepository().Count(ctx, scope...)
	if err != nil {
		return nil, err
	}

	users, err := uow.UserRepository().FindAll(ctx, append(scope,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdminUserListItem, 0, len(users))
	for _, user := range users {
		counts, err := s.countForUser(ctx, uow, user.Id)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.AdminUserListItem{
			UserResponse: toUserResponse(user),
			Counts:       counts,
		})
	}

	return &dto.AdminUsersPageResponse{
		Users:      items,
		Pagination: dto.NewPagination(total, limit, req.Offset),
	}, nil
}

func (s *adminService) GetUser(ctx context.Context, actorId, userId uuid.UUID) (*dto.AdminUserDetailResponse, error) {
	s.audit(actorId, "Admin viewed user", map[string]interface{}{"user_id": userId.String()})

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	counts, err := s.countForUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	owned := specification.OwnedBy{UserID: userId}
	newestFirst := specification.OrderBy{Field: "created_at", Desc: true}
	sample := specification.Pagination{Limit: adminDetailSampleSize}

	files, err := uow.FileRepository().FindAll(ctx, owned, newestFirst, sample)
	if err != nil {
		return nil, err
	}
	messages, err := uow.MessageRepository().FindAll(ctx, owned, newestFirst, sample)
	if err != nil {
		return nil, err
	}
	surveys, err := uow.SurveyRepository().FindAll(ctx, owned, newestFirst)
	if err != nil {
		return nil, err
	}

	detail := &dto.AdminUserDetailResponse{
		UserResponse: toUserResponse(user),
		Counts:       counts,
	}
	for _, file := range files {
		detail.Files = append(detail.Files, toFileResponse(file))
	}
	for _, message := range messages {
		detail.Messages = append(detail.Messages, toMessageResponse(message))
	}
	for _, survey := range surveys {
		detail.Surveys = append(detail.Surveys, toSurveyResponse(survey))
	}

	return detail, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, actorId, userId uuid.UUID, req *dto.AdminUpdateRoleRequest) (*dto.UserResponse, error) {
	if actorId == userId && req.Role != constant.UserRoleAdmin {
		return nil, apperror.BadRequest("Cannot demote yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	user.Role = req.Role
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit(actorId, "Admin changed user role", map[string]interface{}{
		"user_id": userId.String(),
		"role":    req.Role,
	})
	s.publishUserChange(ctx, actorId, userId, "role_changed")
	s.statsCache.Delete(adminStatsCacheKey)

	res := toUserResponse(user)
	return &res, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorId, userId uuid.UUID) error {
	if actorId == userId {
		return apperror.BadRequest("Cannot delete yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	// stored objects go first, rows cascade with the user
	if s.store != nil {
		files, err := uow.FileRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
		if err == nil {
			for _, file := range files {
				if file.StorageKey == "" {
					continue
				}
				if delErr := s.store.Delete(ctx, file.StorageKey); delErr != nil {
					s.logger.Warn("AdminService", "Failed to delete stored object", map[string]interface{}{
						"key":   file.StorageKey,
						"error": delErr.Error(),
					})
				}
			}
		}
	}

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}

	s.audit(actorId, "Admin deleted user", map[string]interface{}{"user_id": userId.String()})
	s.publishUserChange(ctx, actorId, userId, "deleted")
	s.statsCache.Delete(adminStatsCacheKey)
	return nil
}

func (s *adminService) ListFiles(ctx context.Context, actorId uuid.UUID, req *dto.AdminListFilesRequest) (*dto.AdminFilesPageResponse, error) {
	s.audit(actorId, "Admin listed files", nil)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagesPageSize
	}

	var scope []specification.Specification
	if req.Status != "" {
		scope = append(scope, specification.ByFileStatus{Status: req.Status})
	}
	if req.Type != "" {
		scope = append(scope, specification.ByFileType{Type: req.Type})
	}
	if req.UserId != "" {
		ownerId, err := uuid.Parse(req.UserId)
		if err != nil {
			return nil, apperror.BadRequest("Invalid userId filter")
		}
		scope = append(scope, specification.OwnedBy{UserID: ownerId})
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

	items, err := s.attachOwners(ctx, uow, files)
	if err != nil {
		return nil, err
	}

	return &dto.AdminFilesPageResponse{
		Files:      items,
		Pagination: dto.NewPagination(total, limit, req.Offset),
	}, nil
}

func (s *adminService) DeleteFile(ctx context.Context, actorId, fileId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	file, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: fileId})
	if err != nil {
		return err
	}
	if file == nil {
		return apperror.NotFound("File not found")
	}

	if s.store != nil && file.StorageKey != "" {
		if delErr := s.store.Delete(ctx, file.StorageKey); delErr != nil {
			s.logger.Warn("AdminService", "Failed to delete stored object", map[string]interface{}{
				"key":   file.StorageKey,
				"error": delErr.Error(),
			})
		}
	}

	if err := uow.FileRepository().Delete(ctx, file.Id); err != nil {
		return err
	}

	s.audit(actorId, "Admin deleted file", map[string]interface{}{
		"file_id": fileId.String(),
		"user_id": file.UserId.String(),
	})
	s.statsCache.Delete(adminStatsCacheKey)
	return nil
}

func (s *adminService) Stats(ctx context.Context, actorId uuid.UUID) (*dto.AdminStatsResponse, error) {
	s.audit(actorId, "Admin viewed stats", nil)

	if cached, found := s.statsCache.Get(adminStatsCacheKey); found {
		return cached.(*dto.AdminStatsResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalFiles, err := uow.FileRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalMessages, err := uow.MessageRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := uow.UserRepository().Count(ctx,
		specification.UpdatedSince{Cutoff: time.Now().Add(-dto.ActiveUserWindow)},
	)
	if err != nil {
		return nil, err
	}

	usersByRole, err := uow.UserRepository().CountGroupByRole(ctx)
	if err != nil {
		return nil, err
	}
	messagesByRole, err := uow.MessageRepository().CountGroupByRole(ctx)
	if err != nil {
		return nil, err
	}
	fileStats, err := uow.FileRepository().StatsGroupByStatus(ctx)
	if err != nil {
		return nil, err
	}
	filesByStatus := make(map[string]dto.AdminFileStatusStat, len(fileStats))
	for _, stat := range fileStats {
		filesByStatus[stat.Status] = dto.AdminFileStatusStat{
			Count:     stat.Count,
			TotalSize: stat.TotalSize,
		}
	}

	newestFirst := specification.OrderBy{Field: "created_at", Desc: true}
	sample := specification.Pagination{Limit: adminRecentSampleSize}

	recentUsers, err := uow.UserRepository().FindAll(ctx, newestFirst, sample)
	if err != nil {
		return nil, err
	}
	recentFiles, err := uow.FileRepository().FindAll(ctx, newestFirst, sample)
	if err != nil {
		return nil, err
	}
	recentFileItems, err := s.attachOwners(ctx, uow, recentFiles)
	if err != nil {
		return nil, err
	}

	stats := &dto.AdminStatsResponse{
		Overview: dto.AdminOverview{
			TotalUsers:    totalUsers,
			TotalFiles:    totalFiles,
			TotalMessages: totalMessages,
			ActiveUsers:   activeUsers,
		},
		UsersByRole:    usersByRole,
		FilesByStatus:  filesByStatus,
		MessagesByRole: messagesByRole,
	}
	for _, user := range recentUsers {
		stats.Recent.Users = append(stats.Recent.Users, toUserResponse(user))
	}
	stats.Recent.Files = recentFileItems

	s.statsCache.Set(adminStatsCacheKey, stats, gocache.DefaultExpiration)
	return stats, nil
}

func (s *adminService) ListSurveys(ctx context.Context, actorId uuid.UUID, req *dto.AdminListSurveysRequest) (*dto.AdminSurveysPageResponse, error) {
	s.audit(actorId, "Admin listed surveys", nil)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagesPageSize
	}

	total, err := uow.SurveyRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	surveys, err := uow.SurveyRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)
	if err != nil {
		return nil, err
	}

	average, err := uow.SurveyRepository().AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[uuid.UUID]*entity.User)
	items := make([]dto.AdminSurveyListItem, 0, len(surveys))
	for _, survey := range surveys {
		owner, err := s.lookupOwner(ctx, uow, owners, survey.UserId)
		if err != nil {
			return nil, err
		}
		item := dto.AdminSurveyListItem{SurveyResponse: toSurveyResponse(survey)}
		if owner != nil {
			item.Owner = dto.AdminUserRef{Id: owner.Id, Email: owner.Email, Name: owner.Name}
		}
		items = append(items, item)
	}

	return &dto.AdminSurveysPageResponse{
		Surveys:       items,
		Pagination:    dto.NewPagination(total, limit, req.Offset),
		AverageRating: average,
	}, nil
}

func (s *adminService) Logs(ctx context.Context, actorId uuid.UUID, req *dto.AdminListLogsRequest) ([]dto.AdminLogListItem, error) {
	s.audit(actorId, "Admin viewed logs", nil)

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}

	entries, err := s.logger.GetLogs(req.Level, limit, req.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdminLogListItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AdminLogListItem{
			Id:        entry.Id,
			Timestamp: entry.Timestamp,
			Level:     entry.Level,
			Message:   entry.Message,
			Module:    entry.Module,
			Details:   entry.Details,
		})
	}
	return items, nil
}

func (s *adminService) LogById(ctx context.Context, actorId uuid.UUID, logId string) (*dto.AdminLogListItem, error) {
	s.audit(actorId, "Admin viewed log entry", map[string]interface{}{"log_id": logId})

	entry, err := s.logger.GetLogById(logId)
	if err != nil || entry == nil {
		return nil, apperror.NotFound("Log entry not found")
	}

	return &dto.AdminLogListItem{
		Id:        entry.Id,
		Timestamp: entry.Timestamp,
		Level:     entry.Level,
		Message:   entry.Message,
		Module:    entry.Module,
		Details:   entry.Details,
	}, nil
}

func (s *adminService) countForUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (dto.ProfileCounts, error) {
	owned := specification.OwnedBy{UserID: userId}

	files, err := uow.FileRepository().Count(ctx, owned)
	if err != nil {
		return dto.ProfileCounts{}, err
	}
	messages, err := uow.MessageRepository().Count(ctx, owned)
	if err != nil {
		return dto.ProfileCounts{}, err
	}
	surveys, err := uow.SurveyRepository().Count(ctx, owned)
	if err != nil {
		return dto.ProfileCounts{}, err
	}

	return dto.ProfileCounts{Files: files, Messages: messages, Surveys: surveys}, nil
}

func (s *adminService) attachOwners(ctx context.Context, uow unitofwork.UnitOfWork, files []*entity.File) ([]dto.AdminFileListItem, error) {
	owners := make(map[uuid.UUID]*entity.User)
	items := make([]dto.AdminFileListItem, 0, len(files))
	for _, file := range files {
		owner, err := s.lookupOwner(ctx, uow, owners, file.UserId)
		if err != nil {
			return nil, err
		}
		item := dto.AdminFileListItem{FileResponse: toFileResponse(file)}
		if owner != nil {
			item.Owner = dto.AdminUserRef{Id: owner.Id, Email: owner.Email, Name: owner.Name}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *adminService) lookupOwner(ctx context.Context, uow unitofwork.UnitOfWork, cache map[uuid.UUID]*entity.User, userId uuid.UUID) (*entity.User, error) {
	if owner, ok := cache[userId]; ok {
		return owner, nil
	}
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	cache[userId] = owner
	return owner, nil
}

func (s *adminService) publishUserChange(ctx context.Context, actorId, userId uuid.UUID, change string) {
	if s.publisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.TypeAdminUserChange,
		Data: map[string]interface{}{
			"actor_id": actorId.String(),
			"user_id":  userId.String(),
			"change":   change,
		},
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("AdminService", "Failed to publish admin event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
