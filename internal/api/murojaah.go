package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/murojaahbot/internal/progress"
	"github.com/example/murojaahbot/pkg/models"
)

// DateLayout is the date format the backend expects for tanggal
const DateLayout = "2006-01-02"

// DailyLog fetches the log of one date. A date without sessions yields an
// empty log rather than an error.
func (c *Client) DailyLog(ctx context.Context, sess Session, date time.Time) (*models.DailyLog, error) {
	tanggal := date.Format(DateLayout)
	query := url.Values{"tanggal": {tanggal}}

	var daily models.DailyLog
	if err := c.do(ctx, http.MethodGet, "/log-harian", &sess, query, nil, &daily); err != nil {
		return nil, err
	}
	if daily.Tanggal == "" {
		daily.Tanggal = tanggal
	}
	return &daily, nil
}

// Statistics fetches the user's aggregate review statistics
func (c *Client) Statistics(ctx context.Context, sess Session) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.do(ctx, http.MethodGet, "/log-harian/statistik", &sess, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateSession adds a session to the log of req.Tanggal after checking the
// time slot and the target range.
func (c *Client) CreateSession(ctx context.Context, sess Session, req models.CreateSessionRequest) (*models.DetailLog, error) {
	if !req.WaktuMurojaah.Valid() {
		return nil, fmt.Errorf("waktu murojaah %q tidak dikenal", req.WaktuMurojaah)
	}
	if _, err := time.Parse(DateLayout, req.Tanggal); err != nil {
		return nil, fmt.Errorf("invalid tanggal %q: %w", req.Tanggal, err)
	}
	if err := progress.ValidateRange(req.Target()); err != nil {
		return nil, err
	}
	req.Catatan = strings.TrimSpace(req.Catatan)

	var detail models.DetailLog
	if err := c.do(ctx, http.MethodPost, "/log-harian/detail", &sess, nil, req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateSession records completion progress for an existing session. The
// completed position is checked against the session's stored target.
func (c *Client) UpdateSession(ctx context.Context, sess Session, current models.DetailLog, req models.UpdateSessionRequest) (*models.DetailLog, error) {
	if err := progress.ValidateCompleted(current.Target(), req.CompletedEnd()); err != nil {
		return nil, err
	}

	var detail models.DetailLog
	path := fmt.Sprintf("/log-harian/detail/%d", current.ID)
	if err := c.do(ctx, http.MethodPut, path, &sess, nil, req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// DeleteSession removes a session from its daily log
func (c *Client) DeleteSession(ctx context.Context, sess Session, id int64) error {
	path := fmt.Sprintf("/log-harian/detail/%d", id)
	return c.do(ctx, http.MethodDelete, path, &sess, nil, nil, nil)
}

// ApplyRecommendation creates a session in today's log from a past recommendation
func (c *Client) ApplyRecommendation(ctx context.Context, sess Session, req models.ApplyRecommendationRequest) (*models.DetailLog, error) {
	if err := progress.ValidateRange(req.Target()); err != nil {
		return nil, err
	}

	var detail models.DetailLog
	if err := c.do(ctx, http.MethodPost, "/log-harian/detail/dari-rekomendasi", &sess, nil, req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
