package repository

import (
	"context"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockVideoRepository struct {
	mock.Mock
}

func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{}
}

func (m *MockVideoRepository) Save(ctx context.Context, video *domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{}
}

func (m *MockCatalogRepository) FindExistingIDs(ctx context.Context, ids []uuid.UUID) (domain.IDSet, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(domain.IDSet), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	videoRepo      *MockVideoRepository
	categoryRepo   *MockCatalogRepository
	genreRepo      *MockCatalogRepository
	castMemberRepo *MockCatalogRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		videoRepo:      &MockVideoRepository{},
		categoryRepo:   &MockCatalogRepository{},
		genreRepo:      &MockCatalogRepository{},
		castMemberRepo: &MockCatalogRepository{},
	}
}

func (m *MockUnitOfWork) VideoRepo() port.VideoRepository {
	return m.videoRepo
}

func (m *MockUnitOfWork) CategoryRepo() port.CatalogRepository {
	return m.categoryRepo
}

func (m *MockUnitOfWork) GenreRepo() port.CatalogRepository {
	return m.genreRepo
}

func (m *MockUnitOfWork) CastMemberRepo() port.CatalogRepository {
	return m.castMemberRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetVideoRepoMock() *MockVideoRepository {
	return m.videoRepo
}

func (m *MockUnitOfWork) GetCategoryRepoMock() *MockCatalogRepository {
	return m.categoryRepo
}

func (m *MockUnitOfWork) GetGenreRepoMock() *MockCatalogRepository {
	return m.genreRepo
}

func (m *MockUnitOfWork) GetCastMemberRepoMock() *MockCatalogRepository {
	return m.castMemberRepo
}
