package bot

import (
	"context"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fuelwatch/fuel-price-bot/internal/config"
	"github.com/fuelwatch/fuel-price-bot/internal/countries"
	"github.com/fuelwatch/fuel-price-bot/internal/db"
	"github.com/fuelwatch/fuel-price-bot/internal/notify"
	"github.com/fuelwatch/fuel-price-bot/internal/render"
	"github.com/fuelwatch/fuel-price-bot/internal/scheduler"
	"github.com/fuelwatch/fuel-price-bot/internal/sources"
	"github.com/fuelwatch/fuel-price-bot/internal/utils"
)

const maxLiters = 1000

type App struct {
	cfg config.Config
	db  *db.DB

	bot *tgbotapi.BotAPI

	src   *sources.Manager
	store *sources.Store
	sched *scheduler.Scheduler
	sound notify.Sounder

	loc *time.Location
}

func New(cfg config.Config) (*App, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "bot.db"))
	if err != nil {
		return nil, err
	}

	b, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	b.Debug = cfg.Debug

	app := &App{
		cfg:   cfg,
		db:    database,
		bot:   b,
		src:   sources.NewManager(countries.All, limitsFromConfig(cfg.Limits), database),
		store: sources.NewStore(),
		sound: notify.NewTelegramSounder(b, database, cfg.ChatID, cfg.SoundFile),
		loc:   utils.Location(cfg.TimeZone),
	}

	// Daily refresh at local midnight, with a short grace delay so the
	// source pages have rolled over to the new day.
	app.sched, err = scheduler.New(app.loc, "0 0 * * *", 15*time.Second, app.postScheduled)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) Close() {
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = a.db.Close()
}

func (a *App) Run() error {
	log.Printf("Bot authorized as @%s", a.bot.Self.UserName)

	a.sched.Start()

	// Initial load so the channel has prices right after startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		a.refreshAndPost(ctx, 1)
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := a.bot.GetUpdatesChan(u)
	for upd := range updates {
		a.handleUpdate(upd)
	}
	return nil
}

func (a *App) postScheduled(ctx context.Context) {
	a.refreshAndPost(ctx, 1)
}

// refreshAndPost runs one full cycle: fetch everything, commit the
// snapshot (unless no source was reached at all), post the rendered
// message, then fire the sound. Message and sound fail independently.
func (a *App) refreshAndPost(ctx context.Context, liters float64) {
	snap, reached := a.src.RefreshAll(ctx)
	if reached {
		a.store.Swap(snap)
	} else {
		log.Printf("[bot] refresh reached no sources, keeping previous snapshot")
	}

	text := render.BuildMessage(a.store.Load(), liters)
	sent, err := a.bot.Send(tgbotapi.NewMessage(a.cfg.ChatID, text))
	if err != nil {
		log.Printf("[bot] send prices: %v", err)
	} else {
		_ = a.db.UpdateLastPost(ctx, sent.MessageID, time.Now())
	}

	a.playSound(ctx)
}

func (a *App) playSound(ctx context.Context) {
	if !a.sound.Connected() {
		return
	}
	if err := a.sound.Play(ctx); err != nil {
		log.Printf("[bot] play sound: %v", err)
	}
}

func (a *App) handleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil || !upd.Message.IsCommand() {
		return
	}
	msg := *upd.Message

	switch msg.Command() {
	case "price":
		a.cmdPrice(msg)
	case "update":
		a.cmdUpdate(msg)
	case "status":
		a.cmdStatus(msg)
	}
}

// allowed enforces the designated-channel restriction shared by all
// commands.
func (a *App) allowed(msg tgbotapi.Message) bool {
	if msg.Chat != nil && msg.Chat.ID == a.cfg.ChatID {
		return true
	}
	if msg.Chat != nil {
		a.reply(msg.Chat.ID, "❌ Эта команда доступна только в настроенном канале!")
	}
	return false
}

func (a *App) cmdPrice(msg tgbotapi.Message) {
	if !a.allowed(msg) {
		return
	}

	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		a.reply(msg.Chat.ID, "Укажите количество литров, например: /price 10")
		return
	}
	liters, err := strconv.ParseFloat(strings.ReplaceAll(arg, ",", "."), 64)
	if err != nil {
		a.reply(msg.Chat.ID, "Количество литров должно быть числом, например: /price 10")
		return
	}
	if reject, ok := validateLiters(liters); !ok {
		a.reply(msg.Chat.ID, reject)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	a.refreshAndPost(ctx, liters)
}

func (a *App) cmdUpdate(msg tgbotapi.Message) {
	if !a.allowed(msg) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	a.refreshAndPost(ctx, 1)
}

func (a *App) cmdStatus(msg tgbotapi.Message) {
	if !a.allowed(msg) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := a.db.ListCountryHealth(ctx)
	if err != nil {
		log.Printf("[bot] list country health: %v", err)
		a.reply(msg.Chat.ID, "Не удалось получить состояние источников.")
		return
	}
	if len(health) == 0 {
		a.reply(msg.Chat.ID, "Ещё не было ни одного обновления.")
		return
	}

	var b strings.Builder
	b.WriteString("🧰 Состояние источников\n")
	for _, h := range health {
		c, ok := countries.ByID(h.CountryID)
		if !ok {
			continue
		}
		b.WriteString("\n" + c.Flag + " " + c.Name + ": ")
		if h.FetchedAt.IsZero() {
			b.WriteString("нет данных")
			continue
		}
		b.WriteString(h.FetchedAt.In(a.loc).Format("2006-01-02 15:04"))
		if h.LastError != "" {
			b.WriteString(" — ошибка: " + h.LastError)
		} else {
			b.WriteString(" — ок")
		}
	}
	a.reply(msg.Chat.ID, b.String())
}

func (a *App) reply(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.DisableWebPagePreview = true
	if _, err := a.bot.Send(m); err != nil {
		log.Printf("[bot] send reply: %v", err)
	}
}

// validateLiters rejects out-of-bounds quantities before any network work
// happens. Returns the user-visible rejection text on failure.
func validateLiters(liters float64) (string, bool) {
	if liters <= 0 {
		return "Количество литров должно быть больше 0!", false
	}
	if liters > maxLiters {
		return "Слишком большое количество литров! Максимум 1000л.", false
	}
	return "", true
}

func limitsFromConfig(l config.Limits) sources.Limits {
	out := sources.DefaultLimits()
	if l.EURMin != 0 {
		out.EURMin = l.EURMin
	}
	if l.EURMax != 0 {
		out.EURMax = l.EURMax
	}
	if l.EstimateMin != 0 {
		out.EstimateMin = l.EstimateMin
	}
	if l.EstimateMax != 0 {
		out.EstimateMax = l.EstimateMax
	}
	if l.NativeCap != 0 {
		out.NativeCap = l.NativeCap
	}
	for code, rate := range l.EURRates {
		out.EURRates[code] = rate
	}
	return out
}
