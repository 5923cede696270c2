package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateDocument(ctx context.Context, doc models.Document) (int64, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ReadDocument(ctx context.Context, id int64) (*models.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *RepoMock) RemoveDocument(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListDocumentsByApplication(ctx context.Context, applicationID, ownerID int64) ([]*models.Document, error) {
	args := m.Called(ctx, applicationID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Document), args.Error(1)
}

type AppsMock struct{ mock.Mock }

func (m *AppsMock) ReadApplication(ctx context.Context, id int64) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

type FilesMock struct{ mock.Mock }

func (m *FilesMock) Save(ownerID, applicationID int64, storedName string, r io.Reader) (int64, error) {
	args := m.Called(ownerID, applicationID, storedName, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FilesMock) Open(ownerID, applicationID int64, storedName string) (io.ReadCloser, error) {
	args := m.Called(ownerID, applicationID, storedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *FilesMock) Remove(ownerID, applicationID int64, storedName string) error {
	return m.Called(ownerID, applicationID, storedName).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const (
	aliceID int64 = 1
	bobID   int64 = 2
)

func aliceApplication() *models.Application {
	return &models.Application{ID: 42, UserID: aliceID}
}

func aliceDocument() *models.Document {
	return &models.Document{
		ID:            5,
		ApplicationID: 42,
		StoredName:    "deadbeef.pdf",
		OriginalName:  "resume.pdf",
		ContentType:   "application/pdf",
		SizeBytes:     1024,
		OwnerID:       aliceID,
	}
}

func TestDocumentService_Upload(t *testing.T) {
	content := strings.NewReader("fake pdf bytes")

	t.Run("success upload", func(t *testing.T) {
		repo := new(RepoMock)
		apps := new(AppsMock)
		files := new(FilesMock)
		apps.On("ReadApplication", mock.Anything, int64(42)).Return(aliceApplication(), nil).Once()
		files.On("Save", aliceID, int64(42), mock.MatchedBy(func(name string) bool {
			// Имя на диске сгенерировано, расширение оригинала сохранено.
			return name != "resume.pdf" && strings.HasSuffix(name, ".pdf")
		}), mock.Anything).Return(int64(14), nil).Once()
		repo.On("CreateDocument", mock.Anything, mock.MatchedBy(func(d models.Document) bool {
			return d.ApplicationID == 42 &&
				d.OriginalName == "resume.pdf" &&
				d.SizeBytes == 14
		})).Return(int64(5), nil).Once()
		service := NewDocumentService(repo, apps, files, newNoopLogger())

		id, err := service.Upload(context.Background(), 42, aliceID, "resume.pdf", "application/pdf", content)

		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
		repo.AssertExpectations(t)
		apps.AssertExpectations(t)
		files.AssertExpectations(t)
	})

	t.Run("foreign application yields forbidden", func(t *testing.T) {
		repo := new(RepoMock)
		apps := new(AppsMock)
		files := new(FilesMock)
		apps.On("ReadApplication", mock.Anything, int64(42)).Return(aliceApplication(), nil).Once()
		service := NewDocumentService(repo, apps, files, newNoopLogger())

		_, err := service.Upload(context.Background(), 42, bobID, "resume.pdf", "application/pdf", content)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("metadata failure removes orphan file", func(t *testing.T) {
		repo := new(RepoMock)
		apps := new(AppsMock)
		files := new(FilesMock)
		apps.On("ReadApplication", mock.Anything, int64(42)).Return(aliceApplication(), nil).Once()
		files.On("Save", aliceID, int64(42), mock.Anything, mock.Anything).Return(int64(14), nil).Once()
		repo.On("CreateDocument", mock.Anything, mock.Anything).Return(int64(0), assert.AnError).Once()
		files.On("Remove", aliceID, int64(42), mock.Anything).Return(nil).Once()
		service := NewDocumentService(repo, apps, files, newNoopLogger())

		_, err := service.Upload(context.Background(), 42, aliceID, "resume.pdf", "application/pdf", content)

		require.Error(t, err)
		files.AssertExpectations(t)
	})
}

func TestDocumentService_Download(t *testing.T) {
	t.Run("owner downloads own document", func(t *testing.T) {
		repo := new(RepoMock)
		apps := new(AppsMock)
		files := new(FilesMock)
		repo.On("ReadDocument", mock.Anything, int64(5)).Return(aliceDocument(), nil).Once()
		files.On("Open", aliceID, int64(42), "deadbeef.pdf").
			Return(io.NopCloser(strings.NewReader("fake pdf bytes")), nil).Once()
		service := NewDocumentService(repo, apps, files, newNoopLogger())

		doc, content, err := service.Download(context.Background(), 5, aliceID)

		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "resume.pdf", doc.OriginalName)
		data, err := io.ReadAll(content)
		require.NoError(t, err)
		assert.Equal(t, "fake pdf bytes", string(data))
		require.NoError(t, content.Close())
	})

	t.Run("foreign document yields forbidden without touching disk", func(t *testing.T) {
		repo := new(RepoMock)
		apps := new(AppsMock)
		files := new(FilesMock)
		repo.On("ReadDocument", mock.Anything, int64(5)).Return(aliceDocument(), nil).Once()
		service := NewDocumentService(repo, apps, files, newNoopLogger())

		_, _, err := service.Download(context.Background(), 5, bobID)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		files.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing document yields not found", func(t *testing.T) {
		repo := new(RepoMock)
		apps := new(AppsMock)
		files := new(FilesMock)
		repo.On("ReadDocument", mock.Anything, int64(5)).Return(nil, apperr.ErrNotFound).Once()
		service := NewDocumentService(repo, apps, files, newNoopLogger())

		_, _, err := service.Download(context.Background(), 5, aliceID)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestDocumentService_Remove(t *testing.T) {
	repo := new(RepoMock)
	apps := new(AppsMock)
	files := new(FilesMock)
	repo.On("ReadDocument", mock.Anything, int64(5)).Return(aliceDocument(), nil).Once()
	repo.On("RemoveDocument", mock.Anything, int64(5)).Return(int64(1), nil).Once()
	files.On("Remove", aliceID, int64(42), "deadbeef.pdf").Return(nil).Once()
	service := NewDocumentService(repo, apps, files, newNoopLogger())

	count, err := service.Remove(context.Background(), 5, aliceID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	repo.AssertExpectations(t)
	files.AssertExpectations(t)
}

func TestDocumentService_List(t *testing.T) {
	repo := new(RepoMock)
	apps := new(AppsMock)
	files := new(FilesMock)
	apps.On("ReadApplication", mock.Anything, int64(42)).Return(aliceApplication(), nil).Once()
	repo.On("ListDocumentsByApplication", mock.Anything, int64(42), aliceID).
		Return([]*models.Document{aliceDocument()}, nil).Once()
	service := NewDocumentService(repo, apps, files, newNoopLogger())

	res, err := service.List(context.Background(), 42, aliceID)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "resume.pdf", res[0].OriginalName)
	repo.AssertExpectations(t)
	apps.AssertExpectations(t)
}
