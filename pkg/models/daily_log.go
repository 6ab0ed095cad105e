package models

import "github.com/example/murojaahbot/internal/progress"

// DetailLog is one murojaah session inside a daily log
type DetailLog struct {
	ID                  int64           `json:"id"`
	WaktuMurojaah       TimeSlot        `json:"waktu_murojaah"`
	TargetStartJuz      int             `json:"target_start_juz"`
	TargetStartHalaman  int             `json:"target_start_halaman"`
	TargetEndJuz        int             `json:"target_end_juz"`
	TargetEndHalaman    int             `json:"target_end_halaman"`
	TotalTargetHalaman  int             `json:"total_target_halaman"`
	SelesaiEndJuz       int             `json:"selesai_end_juz"`
	SelesaiEndHalaman   int             `json:"selesai_end_halaman"`
	TotalSelesaiHalaman int             `json:"total_selesai_halaman"`
	Status              progress.Status `json:"status"`
	Catatan             string          `json:"catatan"`
	UpdatedAt           string          `json:"updated_at,omitempty"`
}

// Target returns the session's target range
func (d DetailLog) Target() progress.Range {
	return progress.NewRange(d.TargetStartJuz, d.TargetStartHalaman, d.TargetEndJuz, d.TargetEndHalaman)
}

// CompletedEnd returns the reported completed position, progress.None if not started
func (d DetailLog) CompletedEnd() progress.Position {
	return progress.Position{Juz: d.SelesaiEndJuz, Page: d.SelesaiEndHalaman}
}

// Entry adapts the session for progress.DailyTotals
func (d DetailLog) Entry() progress.Entry {
	return progress.Entry{Target: d.Target(), CompletedEnd: d.CompletedEnd()}
}

// Evaluate recomputes totals and status locally from the ranges
func (d DetailLog) Evaluate() progress.Progress {
	return progress.Evaluate(d.Target(), d.CompletedEnd())
}

// DailyLog is the set of sessions logged for one date
type DailyLog struct {
	ID                  int64       `json:"id"`
	Tanggal             string      `json:"tanggal"`
	TotalTargetHalaman  int         `json:"total_target_halaman"`
	TotalSelesaiHalaman int         `json:"total_selesai_halaman"`
	DetailLogs          []DetailLog `json:"detail_logs"`
}

// Totals recomputes the day's page sums from its sessions
func (l DailyLog) Totals() progress.Totals {
	entries := make([]progress.Entry, len(l.DetailLogs))
	for i, d := range l.DetailLogs {
		entries[i] = d.Entry()
	}
	return progress.DailyTotals(entries)
}

// Find returns the session with the given id
func (l DailyLog) Find(id int64) (DetailLog, bool) {
	for _, d := range l.DetailLogs {
		if d.ID == id {
			return d, true
		}
	}
	return DetailLog{}, false
}

// AllDone reports whether the log has sessions and every one of them is done
func (l DailyLog) AllDone() bool {
	if len(l.DetailLogs) == 0 {
		return false
	}
	for _, d := range l.DetailLogs {
		if d.Evaluate().Status != progress.Done {
			return false
		}
	}
	return true
}

// CreateSessionRequest is the body of POST /log-harian/detail
type CreateSessionRequest struct {
	Tanggal            string   `json:"tanggal"`
	WaktuMurojaah      TimeSlot `json:"waktu_murojaah"`
	TargetStartJuz     int      `json:"target_start_juz"`
	TargetStartHalaman int      `json:"target_start_halaman"`
	TargetEndJuz       int      `json:"target_end_juz"`
	TargetEndHalaman   int      `json:"target_end_halaman"`
	Catatan            string   `json:"catatan"`
}

// Target returns the requested target range
func (r CreateSessionRequest) Target() progress.Range {
	return progress.NewRange(r.TargetStartJuz, r.TargetStartHalaman, r.TargetEndJuz, r.TargetEndHalaman)
}

// UpdateSessionRequest is the body of PUT /log-harian/detail/{id}
type UpdateSessionRequest struct {
	SelesaiEndJuz     int    `json:"selesai_end_juz"`
	SelesaiEndHalaman int    `json:"selesai_end_halaman"`
	Catatan           string `json:"catatan"`
}

// CompletedEnd returns the reported completed position
func (r UpdateSessionRequest) CompletedEnd() progress.Position {
	return progress.Position{Juz: r.SelesaiEndJuz, Page: r.SelesaiEndHalaman}
}

// ApplyRecommendationRequest is the body of POST /log-harian/detail/dari-rekomendasi
type ApplyRecommendationRequest struct {
	RekomendasiID      int64  `json:"rekomendasi_id"`
	TargetStartJuz     int    `json:"target_start_juz"`
	TargetStartHalaman int    `json:"target_start_halaman"`
	TargetEndJuz       int    `json:"target_end_juz"`
	TargetEndHalaman   int    `json:"target_end_halaman"`
	Catatan            string `json:"catatan"`
}

// Target returns the requested target range
func (r ApplyRecommendationRequest) Target() progress.Range {
	return progress.NewRange(r.TargetStartJuz, r.TargetStartHalaman, r.TargetEndJuz, r.TargetEndHalaman)
}
