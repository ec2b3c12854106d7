package review

import (
	"context"
	"testing"

	reviewRepo "jenga/database/repository/review"
	"jenga/models"
	"jenga/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) CreateWithAggregation(ctx context.Context, review *models.Review) (*models.CreatedReview, error) {
	args := m.Called(ctx, review)
	if r := args.Get(0); r != nil {
		return r.(*models.CreatedReview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepo) ListByService(ctx context.Context, serviceID string, page models.PageOptions) ([]models.Review, bool, error) {
	args := m.Called(ctx, serviceID, page)
	var reviews []models.Review
	if r := args.Get(0); r != nil {
		reviews = r.([]models.Review)
	}
	return reviews, args.Bool(1), args.Error(2)
}

func (m *mockReviewRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestCreateReviewSuccess(t *testing.T) {
	repo := new(mockReviewRepo)
	svc := &DefaultReviewService{Repo: repo}

	repo.On("CreateWithAggregation", mock.Anything, mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) {
			review := args.Get(1).(*models.Review)
			assert.NotEmpty(t, review.ID)
			assert.Equal(t, "bk-1", review.BookingID)
			assert.Equal(t, "client-1", review.ClientID)
			assert.Equal(t, 5, review.Rating)
			assert.Equal(t, "Great work", review.Comment)
		}).
		Return(&models.CreatedReview{
			Review:        models.Review{ID: "rv-1", BookingID: "bk-1", ServiceID: "svc-1", Rating: 5},
			RatingAverage: 4.5,
		}, nil)

	created, err := svc.Create(context.Background(), "client-1", "Amina", models.ReviewInput{
		BookingID: "bk-1",
		Rating:    5,
		Comment:   "  Great work  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, 4.5, created.RatingAverage)
	repo.AssertExpectations(t)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	repo := new(mockReviewRepo)
	svc := &DefaultReviewService{Repo: repo}

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), "client-1", "Amina", models.ReviewInput{
			BookingID: "bk-1",
			Rating:    rating,
		})
		assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	}
	repo.AssertNotCalled(t, "CreateWithAggregation", mock.Anything, mock.Anything)
}

func TestCreateReviewSentinelMapping(t *testing.T) {
	cases := []struct {
		sentinel error
		kind     utils.ErrorKind
	}{
		{reviewRepo.ErrBookingNotFound, utils.KindNotFound},
		{reviewRepo.ErrNotBookingClient, utils.KindAuthorization},
		{reviewRepo.ErrBookingNotCompleted, utils.KindValidation},
		{reviewRepo.ErrDuplicateReview, utils.KindConflict},
		{reviewRepo.ErrServiceNotFound, utils.KindNotFound},
	}

	for _, tc := range cases {
		repo := new(mockReviewRepo)
		svc := &DefaultReviewService{Repo: repo}
		repo.On("CreateWithAggregation", mock.Anything, mock.Anything).Return(nil, tc.sentinel)

		_, err := svc.Create(context.Background(), "client-1", "Amina", models.ReviewInput{
			BookingID: "bk-1",
			Rating:    4,
		})
		assert.Equalf(t, tc.kind, utils.KindOf(err), "sentinel %v", tc.sentinel)
	}
}

func TestGetForServicePagination(t *testing.T) {
	repo := new(mockReviewRepo)
	svc := &DefaultReviewService{Repo: repo}

	page := models.PageOptions{Limit: models.DefaultPageLimit}
	repo.On("ListByService", mock.Anything, "svc-1", page).
		Return([]models.Review{{ID: "rv-1"}, {ID: "rv-2"}}, true, nil)

	reviews, p, err := svc.GetForService(context.Background(), "svc-1", models.PageOptions{})

	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.True(t, p.HasMore)
	assert.Equal(t, "rv-2", p.NextPageStartAfter)
}

func TestGetForServiceValidation(t *testing.T) {
	svc := &DefaultReviewService{Repo: new(mockReviewRepo)}

	_, _, err := svc.GetForService(context.Background(), "", models.PageOptions{})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, _, err = svc.GetForService(context.Background(), "svc-1", models.PageOptions{Limit: 200})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
