package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/murojaahbot/internal/api"
	"github.com/example/murojaahbot/internal/database"
	"github.com/example/murojaahbot/internal/progress"
	"github.com/example/murojaahbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// messenger is the part of tgbotapi.BotAPI the bot sends through
type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// backend is the murojaah API as used by the bot
type backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Register(ctx context.Context, nama, email, password string) error
	ForgotPassword(ctx context.Context, email, newPassword string) error
	Me(ctx context.Context, sess api.Session) (*models.User, error)
	DailyLog(ctx context.Context, sess api.Session, date time.Time) (*models.DailyLog, error)
	Statistics(ctx context.Context, sess api.Session) (*models.Statistics, error)
	CreateSession(ctx context.Context, sess api.Session, req models.CreateSessionRequest) (*models.DetailLog, error)
	UpdateSession(ctx context.Context, sess api.Session, current models.DetailLog, req models.UpdateSessionRequest) (*models.DetailLog, error)
	DeleteSession(ctx context.Context, sess api.Session, id int64) error
	ApplyRecommendation(ctx context.Context, sess api.Session, req models.ApplyRecommendationRequest) (*models.DetailLog, error)
	Recommend(ctx context.Context, sess api.Session, req models.RecommendationRequest) (*models.RecommendationResult, error)
	RecommendationHistory(ctx context.Context, sess api.Session, limit int) ([]models.Recommendation, error)
	Activities(ctx context.Context, sess api.Session) ([]string, error)
	SavePersonalSchedule(ctx context.Context, sess api.Session, schedule models.PersonalSchedule) error
}

// accountStore keeps the login of every chat
type accountStore interface {
	Get(ctx context.Context, chatID int64) (*models.Account, error)
	SaveLogin(ctx context.Context, acc *models.Account) error
	UpdateProfile(ctx context.Context, chatID int64, user models.User) error
	ClearToken(ctx context.Context, chatID int64) error
	SetReminder(ctx context.Context, chatID int64, enabled bool, hour int) error
	Count(ctx context.Context) (total, loggedIn int, err error)
}

// chatState is what the bot remembers about a conversation between updates
type chatState struct {
	lastLog *models.DailyLog
	// date of the log viewed last, kept after lastLog is dropped
	logDate string
	pending *pendingUpdate
}

// pendingUpdate is a /done waiting for the user's confirmation
type pendingUpdate struct {
	current models.DetailLog
	req     models.UpdateSessionRequest
}

// Bot represents the Telegram bot application
type Bot struct {
	api      messenger
	backend  backend
	accounts accountStore
	config   *BotConfig
	now      func() time.Time

	mu     sync.Mutex
	states map[int64]*chatState
}

// New creates a new bot instance
func New(api messenger, backend backend, accounts accountStore, config *BotConfig) *Bot {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &Bot{
		api:      api,
		backend:  backend,
		accounts: accounts,
		config:   config,
		now:      time.Now,
		states:   make(map[int64]*chatState),
	}
}

// Run handles updates until ctx is canceled or the channel is closed
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate handles one incoming update from Telegram
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, b.config.RequestTimeout)
	defer cancel()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.sendText(update.Message.Chat.ID, "Perintah tidak dikenal. Ketik /help untuk melihat daftar perintah.")
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

// SendReminder implements the scheduler.Notifier interface. Nothing is sent
// when every session of today is already done.
func (b *Bot) SendReminder(ctx context.Context, acc models.Account) error {
	if api.TokenExpired(acc.Token, b.now()) {
		b.logout(ctx, acc.ChatID)
		return fmt.Errorf("token of chat %d expired", acc.ChatID)
	}

	sess := api.Session{Token: acc.Token, UserID: acc.UserID}
	daily, err := b.backend.DailyLog(ctx, sess, b.today())
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			b.logout(ctx, acc.ChatID)
		}
		return fmt.Errorf("failed to fetch today's log: %w", err)
	}
	if daily.AllDone() {
		return nil
	}

	b.rememberLog(acc.ChatID, daily)
	return b.sendText(acc.ChatID, formatReminder(acc.Profile, daily))
}

// isAdmin checks if a user is an admin
func (b *Bot) isAdmin(userID int64) bool {
	return b.config.AdminUserIDs[userID]
}

func (b *Bot) today() time.Time {
	return b.now().In(b.config.Location)
}

// userError is a problem with the user's input; its text is shown as is
type userError string

func (e userError) Error() string {
	return string(e)
}

var (
	errNeedLogin      = userError("Silakan /login terlebih dahulu.")
	errSessionExpired = userError("Sesi login sudah berakhir. Silakan /login lagi.")
	errNothingPending = userError("Tidak ada perubahan yang menunggu konfirmasi.")
	errStalePending   = userError("Konfirmasi ini sudah tidak berlaku. Gunakan tombol pada pratinjau terakhir.")
)

// session loads the credential of a chat. An expired or unreadable token is
// dropped so the user is asked to log in again.
func (b *Bot) session(ctx context.Context, chatID int64) (*models.Account, api.Session, error) {
	acc, err := b.accounts.Get(ctx, chatID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, api.Session{}, errNeedLogin
	}
	if err != nil {
		return nil, api.Session{}, err
	}
	if !acc.LoggedIn() {
		return nil, api.Session{}, errNeedLogin
	}

	if api.TokenExpired(acc.Token, b.now()) {
		b.logout(ctx, chatID)
		return nil, api.Session{}, errSessionExpired
	}
	return acc, api.Session{Token: acc.Token, UserID: acc.UserID}, nil
}

func (b *Bot) logout(ctx context.Context, chatID int64) {
	if err := b.accounts.ClearToken(ctx, chatID); err != nil && !errors.Is(err, database.ErrNotFound) {
		log.Printf("Error clearing token of chat %d: %v", chatID, err)
	}
	b.mu.Lock()
	delete(b.states, chatID)
	b.mu.Unlock()
}

// state returns the chat's state, creating it. Callers hold b.mu.
func (b *Bot) state(chatID int64) *chatState {
	st, ok := b.states[chatID]
	if !ok {
		st = &chatState{}
		b.states[chatID] = st
	}
	return st
}

func (b *Bot) rememberLog(chatID int64, daily *models.DailyLog) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := b.state(chatID)
	st.lastLog = daily
	st.logDate = daily.Tanggal
}

// workingDate is the date of the log the chat viewed last, or today
func (b *Bot) workingDate(chatID int64) time.Time {
	b.mu.Lock()
	var tanggal string
	if st, ok := b.states[chatID]; ok {
		tanggal = st.logDate
	}
	b.mu.Unlock()

	if date, err := time.ParseInLocation(api.DateLayout, tanggal, b.config.Location); err == nil {
		return date
	}
	return b.today()
}

// forgetLog drops the cached log after the sessions of a chat changed
func (b *Bot) forgetLog(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st, ok := b.states[chatID]; ok {
		st.lastLog = nil
	}
}

func (b *Bot) setPending(chatID int64, p *pendingUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state(chatID).pending = p
}

// takePending returns and clears the chat's pending update for session id.
// A pending update of another session is left in place.
func (b *Bot) takePending(chatID, id int64) (*pendingUpdate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.states[chatID]
	if !ok || st.pending == nil {
		return nil, errNothingPending
	}
	if st.pending.current.ID != id {
		return nil, errStalePending
	}
	p := st.pending
	st.pending = nil
	return p, nil
}

// cachedSession finds a session in the log the chat viewed last
func (b *Bot) cachedSession(chatID, id int64) (models.DetailLog, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.states[chatID]
	if !ok || state.lastLog == nil {
		return models.DetailLog{}, false
	}
	return state.lastLog.Find(id)
}

// replyError logs err and tells the user what went wrong
func (b *Bot) replyError(ctx context.Context, chatID int64, err error) {
	var (
		uerr   userError
		verr   *progress.ValidationError
		apiErr *api.Error
		text   string
	)

	switch {
	case errors.As(err, &uerr):
		text = uerr.Error()
	case errors.As(err, &verr):
		text = "⚠️ " + verr.Message()
	case errors.Is(err, api.ErrUnauthorized):
		b.logout(ctx, chatID)
		text = errSessionExpired.Error()
	case errors.As(err, &apiErr):
		log.Printf("API error for chat %d: %v", chatID, err)
		text = "❌ Gagal: " + apiMessage(apiErr)
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("Timeout handling chat %d: %v", chatID, err)
		text = "⏳ Server tidak merespons, coba lagi nanti."
	default:
		log.Printf("Error handling chat %d: %v", chatID, err)
		text = "❌ Terjadi kesalahan, coba lagi nanti."
	}

	b.sendText(chatID, text)
}

func apiMessage(err *api.Error) string {
	if strings.TrimSpace(err.Message) != "" {
		return err.Message
	}
	return fmt.Sprintf("status %d", err.StatusCode)
}

func (b *Bot) sendMessage(msg tgbotapi.Chattable) error {
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
		return err
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	return b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

// MainMenuButtons returns the buttons for the main menu
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "📖 Log Hari Ini", CallbackData: callbackLogToday},
			{Text: "📊 Statistik", CallbackData: callbackStats},
		},
		{
			{Text: "💡 Riwayat Rekomendasi", CallbackData: callbackHistory},
			{Text: "❓ Bantuan", CallbackData: callbackHelp},
		},
	}
}
