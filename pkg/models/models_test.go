package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/murojaahbot/internal/progress"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		input string
		want  TimeSlot
	}{
		{"bada shubuh", SlotBadaShubuh},
		{"Ba'da Shubuh", SlotBadaShubuh},
		{"badaisya", SlotBadaIsya},
		{"bada_maghrib", SlotBadaMaghrib},
		{"PAGI-HARI", SlotPagiHari},
		{"9", SlotMalamHari},
	}

	for _, tt := range tests {
		got, err := ParseTimeSlot(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "tengah malam", "10"} {
		_, err := ParseTimeSlot(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeSlotLabels(t *testing.T) {
	require.Len(t, TimeSlots, 9)
	for _, s := range TimeSlots {
		assert.True(t, s.Valid())
		assert.NotEqual(t, string(s), s.Label())
	}
	assert.Equal(t, "Ba'da Dzuhur", SlotBadaDzuhur.Label())
	assert.False(t, TimeSlot("subuh").Valid())
}

func TestKategoriHafalan(t *testing.T) {
	tests := []struct {
		juz  int
		want string
	}{
		{0, "1-10 Juz"},
		{1, "1-10 Juz"},
		{10, "1-10 Juz"},
		{11, "11-20 Juz"},
		{20, "11-20 Juz"},
		{21, "21-30 Juz"},
		{30, "21-30 Juz"},
		{31, "1-10 Juz"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KategoriHafalan(tt.juz), "juz %d", tt.juz)
	}
}

func TestNewPersonalSchedule(t *testing.T) {
	p := NewPersonalSchedule(7, 12, " Ba'da Isya ", "Kuliah", 4)
	assert.Equal(t, "bada isya", p.Jadwal)
	assert.Equal(t, "kuliah", p.Kesibukan)
	assert.NoError(t, p.Validate())

	p.EfektifitasJadwal = 6
	assert.Error(t, p.Validate())

	p = NewPersonalSchedule(7, 0, "pagi", "kerja", 3)
	assert.Error(t, p.Validate())
}

func TestDailyLogDecode(t *testing.T) {
	raw := `{
		"id": 3,
		"tanggal": "2026-10-19",
		"total_target_halaman": 31,
		"total_selesai_halaman": 24,
		"detail_logs": [
			{"id": 10, "waktu_murojaah": "bada shubuh", "target_start_juz": 1, "target_start_halaman": 1,
			 "target_end_juz": 1, "target_end_halaman": 20, "selesai_end_juz": 1, "selesai_end_halaman": 20,
			 "status": "Selesai", "catatan": ""},
			{"id": 11, "waktu_murojaah": "bada isya", "target_start_juz": 1, "target_start_halaman": 15,
			 "target_end_juz": 2, "target_end_halaman": 5, "selesai_end_juz": 1, "selesai_end_halaman": 18,
			 "status": "Berjalan", "catatan": "lanjut besok"}
		]
	}`

	var log DailyLog
	require.NoError(t, json.Unmarshal([]byte(raw), &log))
	require.Len(t, log.DetailLogs, 2)

	assert.Equal(t, progress.Done, log.DetailLogs[0].Status)
	assert.Equal(t, progress.InProgress, log.DetailLogs[1].Status)
	assert.Equal(t, progress.Totals{TargetSum: 31, CompletedSum: 24}, log.Totals())
	assert.False(t, log.AllDone())

	d, ok := log.Find(11)
	require.True(t, ok)
	assert.Equal(t, progress.NewRange(1, 15, 2, 5), d.Target())
	assert.Equal(t, 4, d.Evaluate().CompletedPages)

	_, ok = log.Find(99)
	assert.False(t, ok)
}

func TestDailyLogDecodeUnknownStatus(t *testing.T) {
	raw := `{"tanggal": "2026-10-19", "detail_logs": [
		{"id": 12, "waktu_murojaah": "sore hari", "target_start_juz": 3, "target_start_halaman": 1,
		 "target_end_juz": 3, "target_end_halaman": 10, "selesai_end_juz": 3, "selesai_end_halaman": 10,
		 "status": "Tuntas"}
	]}`

	var log DailyLog
	require.NoError(t, json.Unmarshal([]byte(raw), &log))
	require.Len(t, log.DetailLogs, 1)
	assert.Equal(t, progress.NotStarted, log.DetailLogs[0].Status)
	assert.Equal(t, progress.Done, log.DetailLogs[0].Evaluate().Status)
	assert.True(t, log.AllDone())
}

func TestNewRecommendationRequest(t *testing.T) {
	listed := []string{"Kuliah", "Kerja Shift"}

	assert.Equal(t, RecommendationRequest{Kesibukan: "Kerja Shift", KategoriHafalan: "1-10 Juz"},
		NewRecommendationRequest(" kerja shift ", listed, 4))
	assert.Equal(t, RecommendationRequest{Kesibukan: "berdagang", KategoriHafalan: "11-20 Juz"},
		NewRecommendationRequest("Berdagang", listed, 15))
	assert.Equal(t, "kuliah", NewRecommendationRequest("Kuliah", nil, 1).Kesibukan)
}

func TestDetailLogEncodeStatus(t *testing.T) {
	d := DetailLog{ID: 1, Status: progress.InProgress}
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"status":"Berjalan"`)
}

func TestUserInitials(t *testing.T) {
	assert.Equal(t, "AF", User{Nama: "ahmad fauzi ramadhan"}.Initials())
	assert.Equal(t, "S", User{Nama: "Salma"}.Initials())
	assert.Equal(t, "", User{}.Initials())
}
