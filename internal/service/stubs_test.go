package service

import (
	"context"
	"errors"
	"testing"

	"careline/internal/models"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
	}
}

type commRepoStub struct {
	createFn          func(context.Context, *models.Communication) error
	getByIDFn         func(context.Context, uint) (*models.Communication, error)
	getBetweenUsersFn func(context.Context, uint, uint) (*models.Communication, error)
	listForUserFn     func(context.Context, uint, int, int) ([]models.Communication, error)
	updateStatusFn    func(context.Context, uint, models.CommunicationStatus) error
	deleteFn          func(context.Context, uint) error
}

func (s *commRepoStub) Create(ctx context.Context, comm *models.Communication) error {
	return s.createFn(ctx, comm)
}
func (s *commRepoStub) GetByID(ctx context.Context, id uint) (*models.Communication, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commRepoStub) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Communication, error) {
	return s.getBetweenUsersFn(ctx, userID1, userID2)
}
func (s *commRepoStub) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Communication, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}
func (s *commRepoStub) UpdateStatus(ctx context.Context, id uint, status models.CommunicationStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *commRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommRepo() *commRepoStub {
	return &commRepoStub{
		createFn: func(context.Context, *models.Communication) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Communication, error) {
			return &models.Communication{ID: id}, nil
		},
		getBetweenUsersFn: func(context.Context, uint, uint) (*models.Communication, error) { return nil, nil },
		listForUserFn:     func(context.Context, uint, int, int) ([]models.Communication, error) { return nil, nil },
		updateStatusFn:    func(context.Context, uint, models.CommunicationStatus) error { return nil },
		deleteFn:          func(context.Context, uint) error { return nil },
	}
}

type messageRepoStub struct {
	createFn              func(context.Context, *models.Message) error
	getByIDFn             func(context.Context, uint) (*models.Message, error)
	listForUserFn         func(context.Context, uint, int, int) ([]models.Message, error)
	listByCommunicationFn func(context.Context, uint, int, int) ([]models.Message, error)
	updateFn              func(context.Context, *models.Message) error
	deleteFn              func(context.Context, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) ListByCommunication(ctx context.Context, communicationID uint, limit, offset int) ([]models.Message, error) {
	return s.listByCommunicationFn(ctx, communicationID, limit, offset)
}
func (s *messageRepoStub) Update(ctx context.Context, msg *models.Message) error {
	return s.updateFn(ctx, msg)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(context.Context, *models.Message) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id}, nil
		},
		listForUserFn:         func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		listByCommunicationFn: func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		updateFn:              func(context.Context, *models.Message) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
	}
}

type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	listFn    func(context.Context, int, int) ([]models.Post, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFn:   func(context.Context, int, int) ([]models.Post, error) { return nil, nil },
		updateFn: func(context.Context, *models.Post) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(context.Context, uint, int, int) ([]models.Comment, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Comment) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}
