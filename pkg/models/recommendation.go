package models

import (
	"errors"
	"strings"
)

// Recommendation is an entry of the recommendation history
type Recommendation struct {
	ID                        int64   `json:"id"`
	State                     string  `json:"state"`
	MahasantriID              int64   `json:"mahasantri_id,omitempty"`
	MentorID                  int64   `json:"mentor_id,omitempty"`
	RekomendasiJadwal         string  `json:"rekomendasi_jadwal"`
	TipeRekomendasi           string  `json:"tipe_rekomendasi"`
	EstimasiQValue            float64 `json:"estimasi_q_value,omitempty"`
	PersentaseEfektifHistoris float64 `json:"persentase_efektif_historis,omitempty"`
}

// RecommendationResult is returned by POST /rekomendasi
type RecommendationResult struct {
	TipeRekomendasi           string  `json:"tipe_rekomendasi"`
	RekomendasiJadwal         string  `json:"rekomendasi_jadwal"`
	PersentaseEfektifHistoris float64 `json:"persentase_efektif_historis"`
	EstimasiQValue            float64 `json:"estimasi_q_value"`
}

// RecommendationRequest is the body of POST /rekomendasi
type RecommendationRequest struct {
	Kesibukan       string `json:"kesibukan"`
	KategoriHafalan string `json:"kategori_hafalan"`
}

// NewRecommendationRequest buckets the memorized juz count. An activity from
// listed is sent with the backend's own spelling; free text is lower-cased.
func NewRecommendationRequest(kesibukan string, listed []string, jumlahHafalan int) RecommendationRequest {
	return RecommendationRequest{
		Kesibukan:       normalizeKesibukan(kesibukan, listed),
		KategoriHafalan: KategoriHafalan(jumlahHafalan),
	}
}

func normalizeKesibukan(kesibukan string, listed []string) string {
	kesibukan = strings.TrimSpace(kesibukan)
	for _, l := range listed {
		if strings.EqualFold(kesibukan, strings.TrimSpace(l)) {
			return l
		}
	}
	return strings.ToLower(kesibukan)
}

// KategoriHafalan buckets the number of memorized juz. Out of range counts
// fall back to the first bucket.
func KategoriHafalan(jumlahHafalan int) string {
	switch {
	case jumlahHafalan >= 11 && jumlahHafalan <= 20:
		return "11-20 Juz"
	case jumlahHafalan >= 21 && jumlahHafalan <= 30:
		return "21-30 Juz"
	}
	return "1-10 Juz"
}

// PersonalSchedule is the body of POST /jadwal-personal
type PersonalSchedule struct {
	TotalHafalan      int    `json:"total_hafalan"`
	Jadwal            string `json:"jadwal"`
	Kesibukan         string `json:"kesibukan"`
	EfektifitasJadwal int    `json:"efektifitas_jadwal"`
	UserID            int64  `json:"user_id"`
}

// NewPersonalSchedule lower-cases the free text fields and strips the first
// apostrophe from the schedule name, matching what the backend stores.
func NewPersonalSchedule(userID int64, totalHafalan int, jadwal, kesibukan string, efektifitas int) PersonalSchedule {
	return PersonalSchedule{
		TotalHafalan:      totalHafalan,
		Jadwal:            strings.Replace(strings.ToLower(strings.TrimSpace(jadwal)), "'", "", 1),
		Kesibukan:         strings.ToLower(strings.TrimSpace(kesibukan)),
		EfektifitasJadwal: efektifitas,
		UserID:            userID,
	}
}

// Validate applies the same checks as the schedule form
func (p PersonalSchedule) Validate() error {
	switch {
	case p.TotalHafalan < 1 || p.TotalHafalan > 30:
		return errors.New("hafalan harus antara 1-30 juz")
	case p.Jadwal == "":
		return errors.New("jadwal tidak boleh kosong")
	case p.Kesibukan == "":
		return errors.New("kesibukan tidak boleh kosong")
	case p.EfektifitasJadwal < 1 || p.EfektifitasJadwal > 5:
		return errors.New("efektivitas jadwal harus antara 1-5")
	}
	return nil
}
