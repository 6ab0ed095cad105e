package bot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/example/murojaahbot/internal/progress"
	"github.com/example/murojaahbot/pkg/models"
)

var tierIcons = map[progress.Tier]string{
	progress.TierEmpty:    "⚪",
	progress.TierLow:      "🔴",
	progress.TierMedium:   "🟡",
	progress.TierHigh:     "🔵",
	progress.TierComplete: "🟢",
}

// formatPercent keeps one decimal and drops a trailing .0
func formatPercent(p float64) string {
	return strconv.FormatFloat(math.Round(p*10)/10, 'f', -1, 64) + "%"
}

func formatProgress(p progress.Progress) string {
	return fmt.Sprintf("%s %s %s\n%s %d/%d halaman",
		tierIcons[progress.TierOf(p.Percent)], p.Status, formatPercent(p.Percent),
		progress.Bar(p.Percent), p.CompletedPages, p.TargetPages)
}

// formatDailyLog renders a day with totals recomputed from its sessions
func formatDailyLog(daily *models.DailyLog) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 Log Murojaah %s\n", daily.Tanggal)

	if len(daily.DetailLogs) == 0 {
		sb.WriteString("\nBelum ada sesi murojaah. Tambahkan dengan /add.")
		return sb.String()
	}

	totals := daily.Totals()
	fmt.Fprintf(&sb, "Total: %d/%d halaman (%s)\n%s\n",
		totals.CompletedSum, totals.TargetSum, formatPercent(totals.Percent()), progress.Bar(totals.Percent()))

	for _, d := range daily.DetailLogs {
		p := d.Evaluate()
		fmt.Fprintf(&sb, "\n#%d %s\n", d.ID, d.WaktuMurojaah.Label())
		fmt.Fprintf(&sb, "   Target: %s (%d hal.)\n", d.Target(), p.TargetPages)
		fmt.Fprintf(&sb, "   Selesai: %s (%d hal.)\n", d.CompletedEnd(), p.CompletedPages)
		fmt.Fprintf(&sb, "   Status: %s %s %s\n", tierIcons[progress.TierOf(p.Percent)], p.Status, formatPercent(p.Percent))
		if d.Catatan != "" {
			fmt.Fprintf(&sb, "   Catatan: %s\n", d.Catatan)
		}
	}

	sb.WriteString("\nCatat progres dengan /done id juz hal")
	return sb.String()
}

func formatProfile(u models.User) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 %s (%s)\n", u.Nama, u.Initials())
	fmt.Fprintf(&sb, "Email: %s\n", u.Email)
	if u.NIM != "" {
		fmt.Fprintf(&sb, "NIM: %s\n", u.NIM)
	}
	if u.Jurusan != "" {
		fmt.Fprintf(&sb, "Jurusan: %s\n", u.Jurusan)
	}
	if u.Gender != "" {
		fmt.Fprintf(&sb, "Gender: %s\n", u.Gender)
	}
	fmt.Fprintf(&sb, "Tipe: %s\n", u.UserType)

	filled := "belum diisi (/jadwal)"
	if u.IsDataMurojaahFilled {
		filled = "sudah diisi"
	}
	fmt.Fprintf(&sb, "Jadwal personal: %s", filled)
	return sb.String()
}

func formatStatistics(s *models.Statistics) string {
	var sb strings.Builder
	sb.WriteString("📊 Statistik Murojaah\n\n")
	fmt.Fprintf(&sb, "Total halaman selesai: %d\n", s.TotalSelesaiHalaman)
	fmt.Fprintf(&sb, "Hari aktif: %d\n", s.TotalHariAktif)
	fmt.Fprintf(&sb, "Rata-rata per hari: %.1f halaman\n", s.RataRataHalamanPerHari)

	if s.SesiPalingProduktif != "" {
		fmt.Fprintf(&sb, "Sesi paling produktif: %s\n", models.TimeSlot(s.SesiPalingProduktif).Label())
	}
	if s.HariPalingProduktif.Tanggal != "" {
		fmt.Fprintf(&sb, "Hari paling produktif: %s (%d halaman)\n",
			s.HariPalingProduktif.Tanggal, s.HariPalingProduktif.TotalSelesaiHalaman)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatRecommendation(r *models.RecommendationResult) string {
	var sb strings.Builder
	sb.WriteString("💡 Rekomendasi Jadwal\n\n")
	fmt.Fprintf(&sb, "Waktu: %s\n", models.TimeSlot(r.RekomendasiJadwal).Label())
	if r.TipeRekomendasi != "" {
		fmt.Fprintf(&sb, "Tipe: %s\n", r.TipeRekomendasi)
	}
	fmt.Fprintf(&sb, "Efektivitas historis: %s\n", formatPercent(r.PersentaseEfektifHistoris))
	fmt.Fprintf(&sb, "Estimasi Q-value: %.2f", r.EstimasiQValue)
	return sb.String()
}

func formatHistory(history []models.Recommendation) string {
	if len(history) == 0 {
		return "Belum ada riwayat rekomendasi. Minta dengan /rekomendasi."
	}

	var sb strings.Builder
	sb.WriteString("🕘 Riwayat Rekomendasi\n")
	for _, r := range history {
		fmt.Fprintf(&sb, "\n#%d %s", r.ID, models.TimeSlot(r.RekomendasiJadwal).Label())
		if r.TipeRekomendasi != "" {
			fmt.Fprintf(&sb, " (%s)", r.TipeRekomendasi)
		}
		if r.State != "" {
			fmt.Fprintf(&sb, "\n   Kesibukan: %s", r.State)
		}
	}
	sb.WriteString("\n\nTerapkan dengan /terapkan id juz_awal hal_awal juz_akhir hal_akhir")
	return sb.String()
}

// formatReminder is the daily nudge sent by the scheduler
func formatReminder(profile models.User, daily *models.DailyLog) string {
	name := profile.Nama
	if name == "" {
		name = "sahabat"
	}
	text := fmt.Sprintf("⏰ Assalamu'alaikum, %s! Jangan lupa murojaah hari ini.\n\n", name)

	if len(daily.DetailLogs) == 0 {
		return text + "Belum ada sesi hari ini. Tambahkan dengan /add."
	}

	totals := daily.Totals()
	return text + fmt.Sprintf("Progres hari ini: %d/%d halaman (%s)\n%s\n\nLihat detail dengan /log.",
		totals.CompletedSum, totals.TargetSum, formatPercent(totals.Percent()), progress.Bar(totals.Percent()))
}

func formatReminderSettings(enabled bool, hour int) string {
	if !enabled {
		return "Pengingat harian nonaktif."
	}
	return fmt.Sprintf("Pengingat harian aktif setiap pukul %02d:00.", hour)
}

// slotHelp lists the time slots with the number accepted by /add
func slotHelp() string {
	parts := make([]string, len(models.TimeSlots))
	for i, slot := range models.TimeSlots {
		parts[i] = fmt.Sprintf("%d=%s", i+1, slot.Label())
	}
	return strings.Join(parts, ", ")
}
