package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"humanlenk-be/internal/constant"
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	objects map[string][]byte
	putErr  error
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if _, ok := s.objects[key]; !ok {
		return "", errors.New("no such object")
	}
	return "https://storage.example.com/" + key + "?signed=1", nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

const testBaseURL = "http://localhost:3001"

func makeFileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadStoresObjectAndRecord(t *testing.T) {
	uow := newFakeUow()
	store := newFakeStore()
	publisher := &recordingPublisher{}
	svc := NewFileService(&fakeFactory{uow: uow}, store, publisher, noopLogger{}, testBaseURL)
	userId := uuid.New()

	header := makeFileHeader(t, "notes.txt", "text/plain", "hello there")

	resp, err := svc.Upload(context.Background(), userId, header)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", resp.Name)
	assert.Equal(t, "text/plain", resp.Type)
	assert.Equal(t, int64(len("hello there")), resp.Size)
	assert.Equal(t, constant.FileStatusCompleted, resp.Status)
	assert.Equal(t, testBaseURL+"/api/files/"+resp.Id.String()+"/download", resp.URL)

	require.Len(t, uow.files.files, 1)
	stored := uow.files.files[0]
	assert.Equal(t, userId.String()+"/"+stored.Id.String()+".txt", stored.StorageKey)
	assert.Equal(t, []byte("hello there"), store.objects[stored.StorageKey])

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.TypeFileUploaded, publisher.published[0].EventType())
}

func TestUploadRejectsOversize(t *testing.T) {
	uow := newFakeUow()
	svc := NewFileService(&fakeFactory{uow: uow}, newFakeStore(), nil, noopLogger{}, testBaseURL)

	header := &multipart.FileHeader{
		Filename: "big.pdf",
		Size:     MaxUploadSize + 1,
		Header:   textproto.MIMEHeader{"Content-Type": {"application/pdf"}},
	}

	_, err := svc.Upload(context.Background(), uuid.New(), header)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "File too large. Maximum size is 10MB", appErr.Message)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	uow := newFakeUow()
	svc := NewFileService(&fakeFactory{uow: uow}, newFakeStore(), nil, noopLogger{}, testBaseURL)

	header := &multipart.FileHeader{
		Filename: "evil.exe",
		Size:     128,
		Header:   textproto.MIMEHeader{"Content-Type": {"application/octet-stream"}},
	}

	_, err := svc.Upload(context.Background(), uuid.New(), header)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Invalid file type. Only PDF, DOC, DOCX, and TXT files are allowed", appErr.Message)
	assert.Empty(t, uow.files.files)
}

func TestUploadWithoutStore(t *testing.T) {
	uow := newFakeUow()
	svc := NewFileService(&fakeFactory{uow: uow}, nil, nil, noopLogger{}, testBaseURL)

	header := &multipart.FileHeader{
		Filename: "notes.txt",
		Size:     16,
		Header:   textproto.MIMEHeader{"Content-Type": {"text/plain"}},
	}

	_, err := svc.Upload(context.Background(), uuid.New(), header)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.Code)
	assert.Equal(t, "File storage is currently unavailable", appErr.Message)
}

func TestUploadStoreFailure(t *testing.T) {
	uow := newFakeUow()
	store := newFakeStore()
	store.putErr = errors.New("connection refused")
	svc := NewFileService(&fakeFactory{uow: uow}, store, nil, noopLogger{}, testBaseURL)

	header := makeFileHeader(t, "notes.txt", "text/plain", "hello")

	_, err := svc.Upload(context.Background(), uuid.New(), header)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.Code)
	assert.Empty(t, uow.files.files, "no record without a stored object")
}

func TestListFilesFilters(t *testing.T) {
	uow := newFakeUow()
	svc := NewFileService(&fakeFactory{uow: uow}, newFakeStore(), nil, noopLogger{}, testBaseURL)
	userId := uuid.New()

	uow.files.files = append(uow.files.files,
		&entity.File{Id: uuid.New(), UserId: userId, Name: "a.pdf", Type: "application/pdf", Status: constant.FileStatusCompleted},
		&entity.File{Id: uuid.New(), UserId: userId, Name: "b.txt", Type: "text/plain", Status: constant.FileStatusError},
		&entity.File{Id: uuid.New(), UserId: uuid.New(), Name: "foreign.pdf", Type: "application/pdf", Status: constant.FileStatusCompleted},
	)

	page, err := svc.List(context.Background(), userId, &dto.ListFilesRequest{Status: constant.FileStatusCompleted})
	require.NoError(t, err)
	require.Len(t, page.Files, 1)
	assert.Equal(t, "a.pdf", page.Files[0].Name)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestDownloadPresignsURL(t *testing.T) {
	uow := newFakeUow()
	store := newFakeStore()
	svc := NewFileService(&fakeFactory{uow: uow}, store, nil, noopLogger{}, testBaseURL)
	userId := uuid.New()

	key := userId.String() + "/doc.pdf"
	store.objects[key] = []byte("%PDF")
	file := &entity.File{
		Id: uuid.New(), UserId: userId, Name: "doc.pdf",
		Type: "application/pdf", StorageKey: key, Status: constant.FileStatusCompleted,
	}
	uow.files.files = append(uow.files.files, file)

	resp, err := svc.Download(context.Background(), userId, file.Id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.DownloadURL, "https://storage.example.com/"))
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestDownloadForeignFile(t *testing.T) {
	uow := newFakeUow()
	svc := NewFileService(&fakeFactory{uow: uow}, newFakeStore(), nil, noopLogger{}, testBaseURL)

	file := &entity.File{Id: uuid.New(), UserId: uuid.New(), Status: constant.FileStatusCompleted}
	uow.files.files = append(uow.files.files, file)

	_, err := svc.Download(context.Background(), uuid.New(), file.Id)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "File not found", appErr.Message)
}

func TestDeleteFileRemovesObjectAndRecord(t *testing.T) {
	uow := newFakeUow()
	store := newFakeStore()
	svc := NewFileService(&fakeFactory{uow: uow}, store, nil, noopLogger{}, testBaseURL)
	userId := uuid.New()

	key := userId.String() + "/doc.pdf"
	store.objects[key] = []byte("%PDF")
	file := &entity.File{Id: uuid.New(), UserId: userId, StorageKey: key, Status: constant.FileStatusCompleted}
	uow.files.files = append(uow.files.files, file)

	require.NoError(t, svc.Delete(context.Background(), userId, file.Id))
	assert.Empty(t, uow.files.files)
	assert.Contains(t, store.deleted, key)
}
