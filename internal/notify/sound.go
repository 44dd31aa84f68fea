package notify

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fuelwatch/fuel-price-bot/internal/db"
)

// Sounder is the audio side-channel: a fixed notification clip pushed to
// the chat after an update. Always best-effort; a failure here must never
// affect the price message itself.
type Sounder interface {
	Connected() bool
	Play(ctx context.Context) error
}

// TelegramSounder sends the configured clip as an audio message. The
// file_id Telegram assigns on first upload is cached in the db so later
// plays reuse it instead of re-uploading.
type TelegramSounder struct {
	bot    *tgbotapi.BotAPI
	db     *db.DB
	chatID int64
	file   string

	playing atomic.Bool
}

func NewTelegramSounder(bot *tgbotapi.BotAPI, database *db.DB, chatID int64, file string) *TelegramSounder {
	return &TelegramSounder{bot: bot, db: database, chatID: chatID, file: file}
}

func (s *TelegramSounder) Connected() bool {
	if s.bot == nil || s.file == "" {
		return false
	}
	if _, err := os.Stat(s.file); err == nil {
		return true
	}
	// A previously uploaded clip keeps working after the local file is gone.
	return s.cachedFileID(context.Background()) != ""
}

func (s *TelegramSounder) Play(ctx context.Context) error {
	// Skip, don't queue, when a play is already in flight.
	if !s.playing.CompareAndSwap(false, true) {
		return nil
	}
	defer s.playing.Store(false)

	if id := s.cachedFileID(ctx); id != "" {
		if _, err := s.bot.Send(tgbotapi.NewAudio(s.chatID, tgbotapi.FileID(id))); err == nil {
			return nil
		}
		// Stale file_id; fall through to a fresh upload.
	}

	if _, err := os.Stat(s.file); err != nil {
		return fmt.Errorf("sound file %s: %w", s.file, err)
	}
	sent, err := s.bot.Send(tgbotapi.NewAudio(s.chatID, tgbotapi.FilePath(s.file)))
	if err != nil {
		return err
	}
	if s.db != nil && sent.Audio != nil {
		_ = s.db.SetGlobalSetting(ctx, "sound_file_id", sent.Audio.FileID)
	}
	return nil
}

func (s *TelegramSounder) cachedFileID(ctx context.Context) string {
	if s.db == nil {
		return ""
	}
	id, _, err := s.db.GetGlobalSetting(ctx, "sound_file_id")
	if err != nil {
		return ""
	}
	return id
}
