package rating

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/rating"
)

type ratingService struct {
	votes    domain.RatingRepository
	contents domain.ContentRepository
	guard    rating.Guard
}

// NewService creates a RatingService.
func NewService(votes domain.RatingRepository, contents domain.ContentRepository) domain.RatingService {
	return &ratingService{votes: votes, contents: contents}
}

// Get returns the content's aggregate with userID's own vote.
func (s *ratingService) Get(ctx context.Context, contentID, userID uint) (rating.Aggregate, error) {
	if _, err := s.contents.GetByID(ctx, contentID); err != nil {
		return rating.Aggregate{}, err
	}
	return snapshot(ctx, s.votes, contentID, userID)
}

// Submit records or changes userID's vote. The returned aggregate only
// reflects the vote once the transaction holding it has committed.
func (s *ratingService) Submit(ctx context.Context, contentID, userID uint, stars int) (rating.Aggregate, error) {
	if !rating.Valid(stars) {
		return rating.Aggregate{}, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("stars must be between %d and %d", rating.MinStars, rating.MaxStars), nil)
	}
	return s.mutate(ctx, contentID, userID, func(sess *rating.Session) error {
		return sess.Submit(ctx, stars)
	})
}

// Retract removes userID's vote. Retracting without a vote returns the
// unchanged aggregate.
func (s *ratingService) Retract(ctx context.Context, contentID, userID uint) (rating.Aggregate, error) {
	return s.mutate(ctx, contentID, userID, func(sess *rating.Session) error {
		return sess.Retract(ctx)
	})
}

// mutate serializes changes per (content, user), loads a fresh snapshot inside
// a transaction and lets a rating.Session drive the write.
func (s *ratingService) mutate(ctx context.Context, contentID, userID uint, op func(*rating.Session) error) (rating.Aggregate, error) {
	if _, err := s.contents.GetByID(ctx, contentID); err != nil {
		return rating.Aggregate{}, err
	}

	release, err := s.guard.Acquire(guardKey(contentID, userID))
	if err != nil {
		return rating.Aggregate{}, busyError(err)
	}
	defer release()

	var result rating.Aggregate
	err = s.votes.Transaction(ctx, func(tx domain.RatingRepository) error {
		snap, err := snapshot(ctx, tx, contentID, userID)
		if err != nil {
			return err
		}
		sess := rating.NewSession(strconv.FormatUint(uint64(contentID), 10), &voteStore{repo: tx, contentID: contentID, userID: userID}, snap)
		if err := op(sess); err != nil {
			return err
		}
		result = sess.Aggregate()
		return nil
	})
	if err != nil {
		return rating.Aggregate{}, busyError(err)
	}
	return result, nil
}

func snapshot(ctx context.Context, repo domain.RatingRepository, contentID, userID uint) (rating.Aggregate, error) {
	hist, err := repo.Histogram(ctx, contentID)
	if err != nil {
		return rating.Aggregate{}, err
	}
	vote, err := repo.UserVote(ctx, contentID, userID)
	if err != nil {
		return rating.Aggregate{}, err
	}
	return rating.FromSnapshot(hist, vote), nil
}

func guardKey(contentID, userID uint) string {
	return strconv.FormatUint(uint64(contentID), 10) + ":" + strconv.FormatUint(uint64(userID), 10)
}

func busyError(err error) error {
	if errors.Is(err, rating.ErrBusy) {
		return domain.NewAppError(domain.CodeConflict, "a rating change for this content is already in progress", err)
	}
	return err
}

// voteStore is the rating.Remote for one user's vote, writing through a
// transactional repository.
type voteStore struct {
	repo      domain.RatingRepository
	contentID uint
	userID    uint
}

func (v *voteStore) Submit(ctx context.Context, _ string, stars int) error {
	return v.repo.Upsert(ctx, v.contentID, v.userID, stars)
}

func (v *voteStore) Retract(ctx context.Context, _ string) error {
	return v.repo.Delete(ctx, v.contentID, v.userID)
}
