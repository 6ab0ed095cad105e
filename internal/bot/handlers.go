package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/example/murojaahbot/internal/api"
	"github.com/example/murojaahbot/internal/database"
	"github.com/example/murojaahbot/internal/excel"
	"github.com/example/murojaahbot/internal/progress"
	"github.com/example/murojaahbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Constants for callback data. The /done buttons carry the session id
// after a colon, e.g. "confirm_done:8".
const (
	callbackLogToday    = "log_today"
	callbackStats       = "show_stats"
	callbackHistory     = "show_history"
	callbackHelp        = "help"
	callbackConfirmDone = "confirm_done"
	callbackCancelDone  = "cancel_done"
)

// handleCommand dispatches a bot command and reports any error to the chat
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	var err error
	switch message.Command() {
	case "start":
		err = b.handleStart(ctx, message)
	case "help":
		err = b.handleHelp(message)
	case "register":
		err = b.handleRegister(ctx, message)
	case "login":
		err = b.handleLogin(ctx, message)
	case "logout":
		err = b.handleLogout(ctx, message)
	case "reset":
		err = b.handleReset(ctx, message)
	case "me":
		err = b.handleMe(ctx, message)
	case "log":
		err = b.handleLog(ctx, message)
	case "add":
		err = b.handleAdd(ctx, message)
	case "done":
		err = b.handleDone(ctx, message)
	case "delete":
		err = b.handleDelete(ctx, message)
	case "stats":
		err = b.handleStats(ctx, message)
	case "kesibukan":
		err = b.handleActivities(ctx, message)
	case "jadwal":
		err = b.handleSchedule(ctx, message)
	case "rekomendasi":
		err = b.handleRecommend(ctx, message)
	case "riwayat":
		err = b.handleHistory(ctx, message)
	case "terapkan":
		err = b.handleApply(ctx, message)
	case "export":
		err = b.handleExport(ctx, message)
	case "preview":
		err = b.handlePreview(message)
	case "remind":
		err = b.handleRemind(ctx, message)
	case "admin_stats":
		if message.From == nil || !b.isAdmin(message.From.ID) {
			err = userError("Perintah ini hanya untuk admin.")
		} else {
			err = b.handleAdminStats(ctx, message)
		}
	default:
		err = userError("Perintah tidak dikenal. Ketik /help untuk melihat daftar perintah.")
	}

	if err != nil {
		b.replyError(ctx, message.Chat.ID, err)
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	text := "👋 Assalamu'alaikum! Selamat datang di Murojaah Tracker.\n\n" +
		"Bot ini membantu mencatat murojaah harian:\n" +
		"1. Login dengan akun Anda (/login)\n" +
		"2. Tambahkan target sesi (/add)\n" +
		"3. Catat sampai mana murojaah selesai (/done)\n\n" +
		"Ketik /help untuk daftar lengkap perintah."

	acc, err := b.accounts.Get(ctx, message.Chat.ID)
	switch {
	case err == nil && acc.LoggedIn():
		text = fmt.Sprintf("👋 Assalamu'alaikum, %s!\n\nPilih menu di bawah atau ketik /help.", acc.Profile.Nama)
	case err != nil && !errors.Is(err, database.ErrNotFound):
		log.Printf("Error loading account of chat %d: %v", message.Chat.ID, err)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	return b.sendMessage(msg)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	text := "📖 Daftar perintah\n\n" +
		"🔐 Akun:\n" +
		"/register nama|email|password - Daftar akun baru\n" +
		"/login email password - Masuk\n" +
		"/logout - Keluar\n" +
		"/reset email password_baru - Ganti password\n" +
		"/me - Lihat profil\n\n" +

		"📝 Log harian:\n" +
		"/log [YYYY-MM-DD] - Lihat log (default hari ini)\n" +
		"/add [YYYY-MM-DD] waktu juz_awal hal_awal juz_akhir hal_akhir [catatan] - Tambah sesi (default log terakhir dibuka)\n" +
		"/done id juz hal [catatan] - Catat posisi selesai\n" +
		"/delete id - Hapus sesi\n" +
		"/preview juz_awal hal_awal juz_akhir hal_akhir [juz_selesai hal_selesai] - Hitung progres\n" +
		"/stats - Statistik murojaah\n" +
		"/export YYYY-MM-DD YYYY-MM-DD - Unduh log dalam Excel\n\n" +

		"💡 Rekomendasi:\n" +
		"/jadwal total_juz|jadwal|kesibukan|efektifitas - Isi jadwal personal\n" +
		"/kesibukan - Daftar kesibukan\n" +
		"/rekomendasi kesibukan jumlah_juz - Minta rekomendasi jadwal\n" +
		"/riwayat - Riwayat rekomendasi\n" +
		"/terapkan id juz_awal hal_awal juz_akhir hal_akhir [catatan] - Terapkan rekomendasi\n\n" +

		"⏰ Pengingat:\n" +
		"/remind on|off|jam - Atur pengingat harian\n\n" +

		"Waktu murojaah: " + slotHelp()

	return b.sendText(message.Chat.ID, text)
}

func (b *Bot) handleRegister(ctx context.Context, message *tgbotapi.Message) error {
	parts := splitPipe(message.CommandArguments())
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return userError("Format: /register nama|email|password")
	}

	if err := b.backend.Register(ctx, parts[0], parts[1], parts[2]); err != nil {
		return err
	}
	return b.sendText(message.Chat.ID, "✅ Registrasi berhasil. Silakan /login "+parts[1]+" password")
}

func (b *Bot) handleLogin(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 2 {
		return userError("Format: /login email password")
	}

	result, err := b.backend.Login(ctx, fields[0], fields[1])
	if err != nil {
		return err
	}

	acc := &models.Account{
		ChatID:          message.Chat.ID,
		Token:           result.Token,
		Profile:         result.User,
		ReminderEnabled: true,
		ReminderHour:    b.config.DefaultReminderHour,
	}
	if message.From != nil {
		acc.Username = message.From.UserName
	}
	if err := b.accounts.SaveLogin(ctx, acc); err != nil {
		return fmt.Errorf("failed to save login: %w", err)
	}
	log.Printf("Chat %d logged in as user %d", acc.ChatID, acc.UserID)

	text := fmt.Sprintf("✅ Assalamu'alaikum, %s! Login berhasil.", result.User.Nama)
	if !result.User.IsDataMurojaahFilled {
		text += "\n\nJadwal personal Anda belum diisi. Isi dengan /jadwal agar bisa mendapat rekomendasi."
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	return b.sendMessage(msg)
}

func (b *Bot) handleLogout(ctx context.Context, message *tgbotapi.Message) error {
	if err := b.accounts.ClearToken(ctx, message.Chat.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errNeedLogin
		}
		return err
	}
	b.mu.Lock()
	delete(b.states, message.Chat.ID)
	b.mu.Unlock()
	return b.sendText(message.Chat.ID, "👋 Anda telah logout.")
}

func (b *Bot) handleReset(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 2 {
		return userError("Format: /reset email password_baru")
	}

	if err := b.backend.ForgotPassword(ctx, fields[0], fields[1]); err != nil {
		return err
	}
	return b.sendText(message.Chat.ID, "✅ Password berhasil diubah. Silakan /login dengan password baru.")
}

func (b *Bot) handleMe(ctx context.Context, message *tgbotapi.Message) error {
	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	user, err := b.backend.Me(ctx, sess)
	if err != nil {
		return err
	}
	if err := b.accounts.UpdateProfile(ctx, message.Chat.ID, *user); err != nil {
		log.Printf("Error caching profile of chat %d: %v", message.Chat.ID, err)
	}
	return b.sendText(message.Chat.ID, formatProfile(*user))
}

func (b *Bot) handleLog(ctx context.Context, message *tgbotapi.Message) error {
	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	date := b.today()
	if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
		if date, err = b.parseDate(arg); err != nil {
			return err
		}
	}

	daily, err := b.backend.DailyLog(ctx, sess, date)
	if err != nil {
		return err
	}
	b.rememberLog(message.Chat.ID, daily)
	return b.sendText(message.Chat.ID, formatDailyLog(daily))
}

// handleAdd adds a session to the given date, or else to the log the chat
// viewed last
func (b *Bot) handleAdd(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())

	date := b.workingDate(message.Chat.ID)
	if len(fields) > 0 && looksLikeDate(fields[0]) {
		var err error
		if date, err = b.parseDate(fields[0]); err != nil {
			return err
		}
		fields = fields[1:]
	}
	if len(fields) < 5 {
		return userError("Format: /add [YYYY-MM-DD] waktu juz_awal hal_awal juz_akhir hal_akhir [catatan]\n\nWaktu murojaah: " + slotHelp())
	}

	slot, err := models.ParseTimeSlot(fields[0])
	if err != nil {
		return userError("Waktu murojaah tidak dikenal. Pilihan: " + slotHelp())
	}
	nums, err := parseInts(fields[1:5])
	if err != nil {
		return err
	}

	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	req := models.CreateSessionRequest{
		Tanggal:            date.Format(api.DateLayout),
		WaktuMurojaah:      slot,
		TargetStartJuz:     nums[0],
		TargetStartHalaman: nums[1],
		TargetEndJuz:       nums[2],
		TargetEndHalaman:   nums[3],
		Catatan:            strings.Join(fields[5:], " "),
	}
	if err := progress.ValidateRange(req.Target()); err != nil {
		return err
	}
	detail, err := b.backend.CreateSession(ctx, sess, req)
	if err != nil {
		return err
	}
	b.forgetLog(message.Chat.ID)

	text := fmt.Sprintf("✅ Sesi %s ditambahkan ke %s (ID %d)\nTarget: %s (%d halaman)",
		slot.Label(), req.Tanggal, detail.ID, req.Target(), req.Target().PageCount())
	return b.sendText(message.Chat.ID, text)
}

// handleDone previews the new status and waits for confirmation before
// updating the session
func (b *Bot) handleDone(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) < 3 {
		return userError("Format: /done id juz hal [catatan]")
	}
	nums, err := parseInts(fields[:3])
	if err != nil {
		return err
	}
	id := int64(nums[0])

	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	current, ok := b.cachedSession(message.Chat.ID, id)
	if !ok {
		daily, err := b.backend.DailyLog(ctx, sess, b.workingDate(message.Chat.ID))
		if err != nil {
			return err
		}
		b.rememberLog(message.Chat.ID, daily)
		if current, ok = daily.Find(id); !ok {
			return userError(fmt.Sprintf("Sesi %d tidak ditemukan. Buka log tanggalnya dulu dengan /log.", id))
		}
	}

	req := models.UpdateSessionRequest{
		SelesaiEndJuz:     nums[1],
		SelesaiEndHalaman: nums[2],
		Catatan:           current.Catatan,
	}
	if len(fields) > 3 {
		req.Catatan = strings.Join(fields[3:], " ")
	}
	if err := progress.ValidateCompleted(current.Target(), req.CompletedEnd()); err != nil {
		return err
	}

	b.setPending(message.Chat.ID, &pendingUpdate{current: current, req: req})

	predicted := progress.Evaluate(current.Target(), req.CompletedEnd())
	text := fmt.Sprintf("Sesi %d (%s)\nTarget: %s\nSelesai sampai: %s\n\n%s\n\nSimpan perubahan?",
		id, current.WaktuMurojaah.Label(), current.Target(), req.CompletedEnd(), formatProgress(predicted))
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{
		{Text: "✅ Simpan", CallbackData: doneCallback(callbackConfirmDone, id)},
		{Text: "❌ Batal", CallbackData: doneCallback(callbackCancelDone, id)},
	}})
	return b.sendMessage(msg)
}

// confirmDone sends the update prepared by handleDone for session id
func (b *Bot) confirmDone(ctx context.Context, chatID, id int64) error {
	pending, err := b.takePending(chatID, id)
	if err != nil {
		return err
	}

	_, sess, err := b.session(ctx, chatID)
	if err != nil {
		return err
	}

	updated, err := b.backend.UpdateSession(ctx, sess, pending.current, pending.req)
	if err != nil {
		return err
	}
	b.forgetLog(chatID)

	if updated.ID == 0 {
		updated.ID = pending.current.ID
	}
	if updated.TargetStartJuz == 0 {
		updated.TargetStartJuz = pending.current.TargetStartJuz
		updated.TargetStartHalaman = pending.current.TargetStartHalaman
		updated.TargetEndJuz = pending.current.TargetEndJuz
		updated.TargetEndHalaman = pending.current.TargetEndHalaman
	}
	text := fmt.Sprintf("✅ Sesi %d diperbarui\n\n%s", updated.ID, formatProgress(updated.Evaluate()))
	return b.sendText(chatID, text)
}

func (b *Bot) handleDelete(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 1 {
		return userError("Format: /delete id")
	}
	nums, err := parseInts(fields)
	if err != nil {
		return err
	}

	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}
	if err := b.backend.DeleteSession(ctx, sess, int64(nums[0])); err != nil {
		return err
	}
	b.forgetLog(message.Chat.ID)
	return b.sendText(message.Chat.ID, fmt.Sprintf("🗑 Sesi %d dihapus.", nums[0]))
}

func (b *Bot) handleStats(ctx context.Context, message *tgbotapi.Message) error {
	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	stats, err := b.backend.Statistics(ctx, sess)
	if err != nil {
		return err
	}
	return b.sendText(message.Chat.ID, formatStatistics(stats))
}

func (b *Bot) handleActivities(ctx context.Context, message *tgbotapi.Message) error {
	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	activities, err := b.backend.Activities(ctx, sess)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		return b.sendText(message.Chat.ID, "Belum ada data kesibukan.")
	}
	return b.sendText(message.Chat.ID, "📋 Kesibukan yang dikenal:\n• "+strings.Join(activities, "\n• "))
}

func (b *Bot) handleSchedule(ctx context.Context, message *tgbotapi.Message) error {
	parts := splitPipe(message.CommandArguments())
	if len(parts) != 4 {
		return userError("Format: /jadwal total_juz|jadwal|kesibukan|efektifitas\nContoh: /jadwal 5|ba'da shubuh|kuliah|4")
	}
	total, err := strconv.Atoi(parts[0])
	if err != nil {
		return userError("Total hafalan harus berupa angka.")
	}
	efektifitas, err := strconv.Atoi(parts[3])
	if err != nil {
		return userError("Efektivitas jadwal harus berupa angka 1-5.")
	}

	acc, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	schedule := models.NewPersonalSchedule(acc.UserID, total, parts[1], parts[2], efektifitas)
	if err := schedule.Validate(); err != nil {
		return userError(err.Error())
	}
	if err := b.backend.SavePersonalSchedule(ctx, sess, schedule); err != nil {
		return err
	}

	profile := acc.Profile
	profile.IsDataMurojaahFilled = true
	if err := b.accounts.UpdateProfile(ctx, acc.ChatID, profile); err != nil {
		log.Printf("Error caching profile of chat %d: %v", acc.ChatID, err)
	}
	return b.sendText(message.Chat.ID, "✅ Jadwal personal disimpan. Sekarang Anda bisa meminta /rekomendasi.")
}

func (b *Bot) handleRecommend(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) < 2 {
		return userError("Format: /rekomendasi kesibukan jumlah_juz\nLihat pilihan kesibukan dengan /kesibukan.")
	}
	jumlah, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return userError("Jumlah juz hafalan harus berupa angka.")
	}
	kesibukan := strings.Join(fields[:len(fields)-1], " ")

	acc, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	if !acc.Profile.IsDataMurojaahFilled {
		user, err := b.backend.Me(ctx, sess)
		if err != nil {
			return err
		}
		if err := b.accounts.UpdateProfile(ctx, acc.ChatID, *user); err != nil {
			log.Printf("Error caching profile of chat %d: %v", acc.ChatID, err)
		}
		if !user.IsDataMurojaahFilled {
			return userError("Isi jadwal personal terlebih dahulu dengan /jadwal.")
		}
	}

	listed, err := b.backend.Activities(ctx, sess)
	if err != nil {
		log.Printf("Error fetching activity list for chat %d: %v", acc.ChatID, err)
	}

	result, err := b.backend.Recommend(ctx, sess, models.NewRecommendationRequest(kesibukan, listed, jumlah))
	if err != nil {
		return err
	}
	return b.sendText(message.Chat.ID, formatRecommendation(result))
}

func (b *Bot) handleHistory(ctx context.Context, message *tgbotapi.Message) error {
	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	history, err := b.backend.RecommendationHistory(ctx, sess, b.config.HistoryLimit)
	if err != nil {
		return err
	}
	return b.sendText(message.Chat.ID, formatHistory(history))
}

func (b *Bot) handleApply(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) < 5 {
		return userError("Format: /terapkan id juz_awal hal_awal juz_akhir hal_akhir [catatan]")
	}
	nums, err := parseInts(fields[:5])
	if err != nil {
		return err
	}

	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	req := models.ApplyRecommendationRequest{
		RekomendasiID:      int64(nums[0]),
		TargetStartJuz:     nums[1],
		TargetStartHalaman: nums[2],
		TargetEndJuz:       nums[3],
		TargetEndHalaman:   nums[4],
		Catatan:            strings.Join(fields[5:], " "),
	}
	if err := progress.ValidateRange(req.Target()); err != nil {
		return err
	}
	detail, err := b.backend.ApplyRecommendation(ctx, sess, req)
	if err != nil {
		return err
	}
	b.forgetLog(message.Chat.ID)

	text := fmt.Sprintf("✅ Rekomendasi %d diterapkan ke log hari ini (sesi %d, %s)\nTarget: %s (%d halaman)",
		req.RekomendasiID, detail.ID, detail.WaktuMurojaah.Label(), req.Target(), req.Target().PageCount())
	return b.sendText(message.Chat.ID, text)
}

func (b *Bot) handleExport(ctx context.Context, message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 2 {
		return userError("Format: /export YYYY-MM-DD YYYY-MM-DD")
	}
	from, err := b.parseDate(fields[0])
	if err != nil {
		return err
	}
	to, err := b.parseDate(fields[1])
	if err != nil {
		return err
	}
	if to.Before(from) {
		return userError("Tanggal akhir harus setelah tanggal awal.")
	}

	_, sess, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	logs, err := excel.FetchRange(ctx, b.backend, sess, from, to, b.config.ExportMaxDays)
	if errors.Is(err, excel.ErrRangeTooLong) {
		return userError(fmt.Sprintf("Rentang export maksimal %d hari.", b.config.ExportMaxDays))
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	result, err := excel.WriteXLSX(&buf, excel.DefaultExportConfig().SheetName, logs)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("murojaah_%s_%s.xlsx", fields[0], fields[1]),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("📊 %d hari aktif, %d sesi, %d/%d halaman (%s)",
		result.Days, result.Sessions, result.Totals.CompletedSum, result.Totals.TargetSum, formatPercent(result.Totals.Percent()))
	return b.sendMessage(doc)
}

// handlePreview computes a session's progress locally without a login
func (b *Bot) handlePreview(message *tgbotapi.Message) error {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 4 && len(fields) != 6 {
		return userError("Format: /preview juz_awal hal_awal juz_akhir hal_akhir [juz_selesai hal_selesai]")
	}
	nums, err := parseInts(fields)
	if err != nil {
		return err
	}

	target := progress.NewRange(nums[0], nums[1], nums[2], nums[3])
	if err := progress.ValidateRange(target); err != nil {
		return err
	}
	completed := progress.None
	if len(nums) == 6 {
		completed = progress.Position{Juz: nums[4], Page: nums[5]}
		if err := progress.ValidateCompleted(target, completed); err != nil {
			return err
		}
	}

	text := fmt.Sprintf("🧮 Target: %s\nSelesai sampai: %s\n\n%s",
		target, completed, formatProgress(progress.Evaluate(target, completed)))
	return b.sendText(message.Chat.ID, text)
}

func (b *Bot) handleRemind(ctx context.Context, message *tgbotapi.Message) error {
	arg := strings.ToLower(strings.TrimSpace(message.CommandArguments()))

	acc, _, err := b.session(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	enabled, hour := acc.ReminderEnabled, acc.ReminderHour
	switch arg {
	case "":
		return b.sendText(message.Chat.ID, formatReminderSettings(enabled, hour))
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		h, err := strconv.Atoi(strings.TrimSuffix(arg, ":00"))
		if err != nil || h < 0 || h > 23 {
			return userError("Format: /remind on|off|jam (0-23)")
		}
		enabled, hour = true, h
	}

	if err := b.accounts.SetReminder(ctx, acc.ChatID, enabled, hour); err != nil {
		return err
	}
	return b.sendText(message.Chat.ID, "✅ "+formatReminderSettings(enabled, hour))
}

func (b *Bot) handleAdminStats(ctx context.Context, message *tgbotapi.Message) error {
	total, loggedIn, err := b.accounts.Count(ctx)
	if err != nil {
		return err
	}

	text := "System Statistics\n\n" +
		fmt.Sprintf("Total chats: %d\n", total) +
		fmt.Sprintf("Logged in: %d\n", loggedIn) +
		fmt.Sprintf("Server time: %s\n", b.today().Format("2006-01-02 15:04:05 MST"))
	return b.sendText(message.Chat.ID, text)
}

// handleCallbackQuery handles callback queries from buttons
func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	message := &tgbotapi.Message{
		From: callback.From,
		Chat: callback.Message.Chat,
	}

	action, id := splitCallback(callback.Data)

	var err error
	switch action {
	case callbackLogToday:
		err = b.handleLog(ctx, message)
	case callbackStats:
		err = b.handleStats(ctx, message)
	case callbackHistory:
		err = b.handleHistory(ctx, message)
	case callbackHelp:
		err = b.handleHelp(message)
	case callbackConfirmDone:
		err = b.confirmDone(ctx, chatID, id)
	case callbackCancelDone:
		if _, err = b.takePending(chatID, id); err == nil {
			err = b.sendText(chatID, "Dibatalkan.")
		}
	default:
		log.Printf("Unknown callback data %q from chat %d", callback.Data, chatID)
	}

	if err != nil {
		b.replyError(ctx, chatID, err)
	}
}

func doneCallback(action string, id int64) string {
	return action + ":" + strconv.FormatInt(id, 10)
}

// splitCallback separates the action from the session id of callback data
func splitCallback(data string) (string, int64) {
	action, rest, found := strings.Cut(data, ":")
	if !found {
		return data, 0
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return data, 0
	}
	return action, id
}

// looksLikeDate tells a leading YYYY-MM-DD argument from a time slot
func looksLikeDate(s string) bool {
	return len(s) == len(api.DateLayout) && strings.Count(s, "-") == 2
}

func (b *Bot) parseDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(api.DateLayout, s, b.config.Location)
	if err != nil {
		return time.Time{}, userError(fmt.Sprintf("Tanggal %q tidak valid, gunakan format YYYY-MM-DD.", s))
	}
	return date, nil
}

func parseInts(fields []string) ([]int, error) {
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, userError(fmt.Sprintf("%q bukan angka.", f))
		}
		nums[i] = n
	}
	return nums, nil
}

func splitPipe(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
