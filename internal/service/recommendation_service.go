package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RecommendationService completes an attempt: it freezes the counters
// into a percentage score and matches the applicant to the most
// selective course they still qualify for.
type RecommendationService interface {
	Complete(attemptUUID uuid.UUID) (*dto.CompleteExamResponse, error)
}

type recommendationService struct {
	db *gorm.DB
}

func NewRecommendationService(db *gorm.DB) RecommendationService {
	return &recommendationService{db: db}
}

// MatchCourse picks the course with the highest MinScore not exceeding
// score. Equal thresholds are broken by course code ascending so the
// recommendation is deterministic across runs. Returns nil when no
// course qualifies.
func MatchCourse(score float64, courses []model.Course) *model.Course {
	sorted := make([]model.Course, len(courses))
	copy(sorted, courses)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].MinScore != sorted[j].MinScore {
			return sorted[i].MinScore > sorted[j].MinScore
		}
		return sorted[i].Code < sorted[j].Code
	})
	for i := range sorted {
		if sorted[i].MinScore <= score {
			return &sorted[i]
		}
	}
	return nil
}

// RecommendationScore converts raw correctness counts to a percentage
// rounded to two decimals. Zero questions scores zero.
func RecommendationScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100
}

// Complete transitions the attempt to completed exactly once. The
// status flip is a compare-and-swap inside the same transaction as the
// score computation and the profile update, so a concurrent second call
// fails with ErrExamNotInProgress instead of double-applying side
// effects.
func (s *recommendationService) Complete(attemptUUID uuid.UUID) (*dto.CompleteExamResponse, error) {
	var resp dto.CompleteExamResponse

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var attempt model.ApplicantExam
		if err := lockForUpdate(tx).Where("uuid = ?", attemptUUID).First(&attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("attempt %s: %w", attemptUUID, apperr.ErrNotFound)
			}
			return err
		}
		if err := attempt.Status.CanComplete(); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&model.ApplicantExam{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
			Updates(map[string]interface{}{
				"status":       model.AttemptCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrExamNotInProgress
		}

		score := RecommendationScore(attempt.CorrectAnswers, attempt.TotalQuestions)

		var courses []model.Course
		if err := tx.Find(&courses).Error; err != nil {
			return err
		}
		matched := MatchCourse(score, courses)

		updates := map[string]interface{}{
			"score":                score,
			"recommendation_score": score,
			"accuracy":             score,
		}
		var courseDTO *dto.CourseDTO
		if matched != nil {
			updates["recommended_course_id"] = matched.ID
			courseDTO = &dto.CourseDTO{
				UUID:     matched.UUID,
				Code:     matched.Code,
				Name:     matched.Name,
				MinScore: matched.MinScore,
			}
		}
		if err := tx.Model(&model.ApplicantExam{}).Where("id = ?", attempt.ID).Updates(updates).Error; err != nil {
			return err
		}

		// The profile's course_applied follows the latest completed
		// exam; earlier assignments survive only on their attempts.
		if matched != nil {
			if err := tx.Model(&model.ApplicantProfile{}).
				Where("id = ?", attempt.ApplicantID).
				Update("course_applied_id", matched.ID).Error; err != nil {
				return err
			}
		}

		resp = dto.CompleteExamResponse{
			UUID:                attempt.UUID,
			Status:              string(model.AttemptCompleted),
			TotalQuestions:      attempt.TotalQuestions,
			AttemptedQuestions:  attempt.AttemptedQuestions,
			CorrectAnswers:      attempt.CorrectAnswers,
			RecommendationScore: score,
			Accuracy:            score,
			RecommendedCourse:   courseDTO,
			CompletedAt:         now,
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("attempt", attemptUUID.String()).Msg("Complete rejected")
		return nil, err
	}

	log.Info().
		Str("attempt", attemptUUID.String()).
		Float64("score", resp.RecommendationScore).
		Msg("Attempt completed")
	return &resp, nil
}
