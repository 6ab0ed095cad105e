package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/murojaahbot/internal/api"
	"github.com/example/murojaahbot/internal/progress"
	"github.com/example/murojaahbot/pkg/models"
)

func sampleLogs() []models.DailyLog {
	return []models.DailyLog{
		{
			Tanggal: "2024-03-01",
			DetailLogs: []models.DetailLog{
				{
					ID: 1, WaktuMurojaah: models.SlotBadaShubuh,
					TargetStartJuz: 1, TargetStartHalaman: 1, TargetEndJuz: 1, TargetEndHalaman: 10,
					SelesaiEndJuz: 1, SelesaiEndHalaman: 10, Catatan: "lancar",
				},
				{
					ID: 2, WaktuMurojaah: models.SlotBadaIsya,
					TargetStartJuz: 2, TargetStartHalaman: 1, TargetEndJuz: 2, TargetEndHalaman: 20,
					SelesaiEndJuz: 2, SelesaiEndHalaman: 10,
				},
			},
		},
		{Tanggal: "2024-03-02"},
		{
			Tanggal: "2024-03-03",
			DetailLogs: []models.DetailLog{
				{
					ID: 3, WaktuMurojaah: models.SlotPagiHari,
					TargetStartJuz: 3, TargetStartHalaman: 1, TargetEndJuz: 3, TargetEndHalaman: 6,
				},
			},
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	result, err := WriteXLSX(&buf, "Murojaah", sampleLogs())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Days)
	assert.Equal(t, 3, result.Sessions)
	assert.Equal(t, progress.Totals{TargetSum: 36, CompletedSum: 20}, result.Totals)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Murojaah")
	require.NoError(t, err)
	// header, 2 sessions, total, 1 session, total, grand total
	require.Len(t, rows, 7)
	assert.Equal(t, header[0], rows[0][0])
	assert.Equal(t, []string{"2024-03-01", "Ba'da Shubuh", "Juz 1 hal. 1", "Juz 1 hal. 10", "Juz 1 hal. 10", "10", "10", "Selesai", "100", "lancar"}, rows[1])
	assert.Equal(t, "Berjalan", rows[2][7])
	assert.Equal(t, "Total", rows[3][1])
	assert.Equal(t, "30", rows[3][5])
	assert.Equal(t, "20", rows[3][6])
	assert.Equal(t, "-", rows[4][4])
	assert.Equal(t, "Belum Selesai", rows[4][7])
	assert.Equal(t, "Jumlah", rows[6][1])
	assert.Equal(t, "36", rows[6][5])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	result, err := WriteCSV(&buf, sampleLogs())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Sessions)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, header, records[0])
	assert.Equal(t, "66.67", records[3][8])
	assert.Equal(t, "55.56", records[6][8])
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	result, err := WriteCSV(&buf, []models.DailyLog{{Tanggal: "2024-03-01"}})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Days)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExportByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out", "log.csv")
	_, err := Export(ExportConfig{FilePath: csvPath}, sampleLogs())
	require.NoError(t, err)
	assert.FileExists(t, csvPath)

	xlsxPath := filepath.Join(dir, "log.xlsx")
	_, err = Export(ExportConfig{FilePath: xlsxPath, SheetName: "Log"}, sampleLogs())
	require.NoError(t, err)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Log", f.GetSheetName(0))
}

type fakeSource struct {
	calls []string
	fail  string
}

func (s *fakeSource) DailyLog(_ context.Context, _ api.Session, date time.Time) (*models.DailyLog, error) {
	tanggal := date.Format(api.DateLayout)
	s.calls = append(s.calls, tanggal)
	if tanggal == s.fail {
		return nil, errors.New("boom")
	}
	return &models.DailyLog{Tanggal: tanggal}, nil
}

func TestFetchRange(t *testing.T) {
	from := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	sess := api.Session{Token: "t"}

	src := &fakeSource{}
	logs, err := FetchRange(context.Background(), src, sess, from, to, 31)
	require.NoError(t, err)
	assert.Len(t, logs, 4)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, src.calls)

	_, err = FetchRange(context.Background(), &fakeSource{}, sess, to, from, 31)
	assert.Error(t, err)

	_, err = FetchRange(context.Background(), &fakeSource{}, sess, from, to, 3)
	assert.ErrorIs(t, err, ErrRangeTooLong)

	_, err = FetchRange(context.Background(), &fakeSource{fail: "2024-03-01"}, sess, from, to, 31)
	assert.Error(t, err)
}
