package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/murojaahbot/pkg/models"
)

// Recommend asks the backend for a schedule recommendation
func (c *Client) Recommend(ctx context.Context, sess Session, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	if req.Kesibukan == "" {
		return nil, errors.New("kesibukan tidak boleh kosong")
	}

	var result models.RecommendationResult
	if err := c.do(ctx, http.MethodPost, "/rekomendasi", &sess, nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecommendationHistory lists the most recent recommendations, newest first
func (c *Client) RecommendationHistory(ctx context.Context, sess Session, limit int) ([]models.Recommendation, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var data struct {
		Riwayat []models.Recommendation `json:"riwayat_rekomendasi"`
	}
	if err := c.do(ctx, http.MethodGet, "/rekomendasi", &sess, query, nil, &data); err != nil {
		return nil, err
	}
	return data.Riwayat, nil
}

// Activities lists the activity names the recommender knows about
func (c *Client) Activities(ctx context.Context, sess Session) ([]string, error) {
	var list []string
	if err := c.do(ctx, http.MethodGet, "/rekomendasi/kesibukan", &sess, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SavePersonalSchedule stores the user's current review habit, which the
// recommender needs before it can answer.
func (c *Client) SavePersonalSchedule(ctx context.Context, sess Session, schedule models.PersonalSchedule) error {
	if schedule.UserID == 0 {
		schedule.UserID = sess.UserID
	}
	if err := schedule.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/jadwal-personal", &sess, nil, schedule, nil)
}
