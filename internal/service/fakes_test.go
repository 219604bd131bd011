package service

import (
	"context"
	"sort"
	"time"

	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/pkg/logger"
	"humanlenk-be/internal/repository/contract"
	"humanlenk-be/internal/repository/specification"
	"humanlenk-be/internal/repository/unitofwork"
	"humanlenk-be/pkg/events"

	"github.com/google/uuid"
)

// The fakes below hold rows in memory and interpret the specification
// structs the services actually use, so service logic can be exercised
// without a database.

type listQuery struct {
	limit   int
	offset  int
	orderBy string
	desc    bool
}

func splitQuery(specs []specification.Specification) ([]specification.Specification, listQuery) {
	q := listQuery{limit: -1}
	var filters []specification.Specification
	for _, s := range specs {
		switch v := s.(type) {
		case specification.OrderBy:
			q.orderBy = v.Field
			q.desc = v.Desc
		case specification.Pagination:
			q.limit = v.Limit
			q.offset = v.Offset
		default:
			filters = append(filters, s)
		}
	}
	return filters, q
}

func paginate[T any](items []T, q listQuery) []T {
	if q.offset > 0 {
		if q.offset >= len(items) {
			return nil
		}
		items = items[q.offset:]
	}
	if q.limit >= 0 && q.limit < len(items) {
		items = items[:q.limit]
	}
	return items
}

// --- users ---

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) matches(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			if u.Id != v.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != v.Email {
				return false
			}
		case specification.ByRole:
			if u.Role != v.Role {
				return false
			}
		case specification.UpdatedSince:
			if u.UpdatedAt.Before(v.Cutoff) {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			r.users[i] = user
		}
	}
	return nil
}

func (r *fakeUserRepo) Touch(ctx context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.Id == id {
			u.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.users[:0]
	for _, u := range r.users {
		if u.Id != id {
			kept = append(kept, u)
		}
	}
	r.users = kept
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if r.matches(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	filters, q := splitQuery(specs)
	var out []*entity.User
	for _, u := range r.users {
		if r.matches(u, filters) {
			out = append(out, u)
		}
	}
	if q.orderBy == "created_at" {
		sort.Slice(out, func(i, j int) bool {
			if q.desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return paginate(out, q), nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	filters, _ := splitQuery(specs)
	var n int64
	for _, u := range r.users {
		if r.matches(u, filters) {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) CountGroupByRole(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, u := range r.users {
		out[u.Role]++
	}
	return out, nil
}

// --- chat sessions ---

type fakeChatSessionRepo struct {
	sessions []*entity.ChatSession
}

func (r *fakeChatSessionRepo) matches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.OwnedBy:
			if s.UserId != v.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeChatSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeChatSessionRepo) Touch(ctx context.Context, id uuid.UUID) error {
	for _, s := range r.sessions {
		if s.Id == id {
			s.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *fakeChatSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.sessions[:0]
	for _, s := range r.sessions {
		if s.Id != id {
			kept = append(kept, s)
		}
	}
	r.sessions = kept
	return nil
}

func (r *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, s := range r.sessions {
		if r.matches(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeChatSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	filters, q := splitQuery(specs)
	var out []*entity.ChatSession
	for _, s := range r.sessions {
		if r.matches(s, filters) {
			out = append(out, s)
		}
	}
	if q.orderBy == "updated_at" {
		sort.Slice(out, func(i, j int) bool {
			if q.desc {
				return out[i].UpdatedAt.After(out[j].UpdatedAt)
			}
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		})
	}
	return paginate(out, q), nil
}

func (r *fakeChatSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	filters, _ := splitQuery(specs)
	var n int64
	for _, s := range r.sessions {
		if r.matches(s, filters) {
			n++
		}
	}
	return n, nil
}

// --- messages ---

type fakeMessageRepo struct {
	messages []*entity.Message
}

func (r *fakeMessageRepo) matches(m *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if m.Id != v.ID {
				return false
			}
		case specification.OwnedBy:
			if m.UserId != v.UserID {
				return false
			}
		case specification.ByChatSessionID:
			if m.ChatSessionId != v.ChatSessionID {
				return false
			}
		case specification.ByMessageRole:
			if m.Role != v.Role {
				return false
			}
		}
	}
	return true
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.Id != id {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	var deleted int64
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.UserId == userId {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	for _, m := range r.messages {
		if r.matches(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	filters, q := splitQuery(specs)
	var out []*entity.Message
	for _, m := range r.messages {
		if r.matches(m, filters) {
			out = append(out, m)
		}
	}
	if q.orderBy == "created_at" {
		sort.Slice(out, func(i, j int) bool {
			if q.desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return paginate(out, q), nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	filters, _ := splitQuery(specs)
	var n int64
	for _, m := range r.messages {
		if r.matches(m, filters) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) CountGroupByRole(ctx context.Context, specs ...specification.Specification) (map[string]int64, error) {
	filters, _ := splitQuery(specs)
	out := make(map[string]int64)
	for _, m := range r.messages {
		if r.matches(m, filters) {
			out[m.Role]++
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FirstCreatedAt(ctx context.Context, specs ...specification.Specification) (*time.Time, error) {
	filters, _ := splitQuery(specs)
	var first *time.Time
	for _, m := range r.messages {
		if !r.matches(m, filters) {
			continue
		}
		createdAt := m.CreatedAt
		if first == nil || createdAt.Before(*first) {
			first = &createdAt
		}
	}
	return first, nil
}

// --- files ---

type fakeFileRepo struct {
	files []*entity.File
}

func (r *fakeFileRepo) matches(f *entity.File, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if f.Id != v.ID {
				return false
			}
		case specification.OwnedBy:
			if f.UserId != v.UserID {
				return false
			}
		case specification.ByFileStatus:
			if f.Status != v.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeFileRepo) Create(ctx context.Context, file *entity.File) error {
	r.files = append(r.files, file)
	return nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *entity.File) error {
	for i, f := range r.files {
		if f.Id == file.Id {
			r.files[i] = file
		}
	}
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.files[:0]
	for _, f := range r.files {
		if f.Id != id {
			kept = append(kept, f)
		}
	}
	r.files = kept
	return nil
}

func (r *fakeFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	for _, f := range r.files {
		if r.matches(f, specs) {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	filters, q := splitQuery(specs)
	var out []*entity.File
	for _, f := range r.files {
		if r.matches(f, filters) {
			out = append(out, f)
		}
	}
	return paginate(out, q), nil
}

func (r *fakeFileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	filters, _ := splitQuery(specs)
	var n int64
	for _, f := range r.files {
		if r.matches(f, filters) {
			n++
		}
	}
	return n, nil
}

func (r *fakeFileRepo) StatsGroupByStatus(ctx context.Context) ([]contract.FileStatusStat, error) {
	byStatus := make(map[string]*contract.FileStatusStat)
	for _, f := range r.files {
		stat, ok := byStatus[f.Status]
		if !ok {
			stat = &contract.FileStatusStat{Status: f.Status}
			byStatus[f.Status] = stat
		}
		stat.Count++
		stat.TotalSize += f.Size
	}
	var out []contract.FileStatusStat
	for _, stat := range byStatus {
		out = append(out, *stat)
	}
	return out, nil
}

// --- surveys ---

type fakeSurveyRepo struct {
	surveys []*entity.Survey
}

func (r *fakeSurveyRepo) matches(s *entity.Survey, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.OwnedBy:
			if s.UserId != v.UserID {
				return false
			}
		case specification.CreatedSince:
			if s.CreatedAt.Before(v.Cutoff) {
				return false
			}
		}
	}
	return true
}

func (r *fakeSurveyRepo) Create(ctx context.Context, survey *entity.Survey) error {
	r.surveys = append(r.surveys, survey)
	return nil
}

func (r *fakeSurveyRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Survey, error) {
	for _, s := range r.surveys {
		if r.matches(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSurveyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Survey, error) {
	filters, q := splitQuery(specs)
	var out []*entity.Survey
	for _, s := range r.surveys {
		if r.matches(s, filters) {
			out = append(out, s)
		}
	}
	if q.orderBy == "created_at" {
		sort.Slice(out, func(i, j int) bool {
			if q.desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return paginate(out, q), nil
}

func (r *fakeSurveyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	filters, _ := splitQuery(specs)
	var n int64
	for _, s := range r.surveys {
		if r.matches(s, filters) {
			n++
		}
	}
	return n, nil
}

func (r *fakeSurveyRepo) AverageRating(ctx context.Context) (float64, error) {
	if len(r.surveys) == 0 {
		return 0, nil
	}
	var sum int
	for _, s := range r.surveys {
		sum += s.Rating
	}
	return float64(sum) / float64(len(r.surveys)), nil
}

func (r *fakeSurveyRepo) CountGroupByRating(ctx context.Context) (map[int]int64, error) {
	out := make(map[int]int64)
	for _, s := range r.surveys {
		out[s.Rating]++
	}
	return out, nil
}

// --- unit of work ---

type fakeUow struct {
	users    *fakeUserRepo
	sessions *fakeChatSessionRepo
	messages *fakeMessageRepo
	files    *fakeFileRepo
	surveys  *fakeSurveyRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:    &fakeUserRepo{},
		sessions: &fakeChatSessionRepo{},
		messages: &fakeMessageRepo{},
		files:    &fakeFileRepo{},
		surveys:  &fakeSurveyRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository               { return u.users }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return u.sessions }
func (u *fakeUow) MessageRepository() contract.MessageRepository         { return u.messages }
func (u *fakeUow) FileRepository() contract.FileRepository               { return u.files }
func (u *fakeUow) SurveyRepository() contract.SurveyRepository           { return u.surveys }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// --- logger / publisher ---

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return []logger.LogEntry{}, nil
}
func (noopLogger) GetLogById(id string) (*logger.LogEntry, error) {
	return nil, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}
