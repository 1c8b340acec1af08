package config

import (
	"log"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	BotToken        string `env:"BOT_TOKEN,required"`
	SupportBotToken string `env:"SUPPORT_BOT_TOKEN"`
	DatabaseURL     string `env:"DATABASE_URL,required"`

	ModeratorIDs   []int64 `env:"MODERATOR_IDS" envSeparator:","`
	SupportAdminID int64   `env:"SUPPORT_ADMIN_ID"`

	ReferralReward float64 `env:"REFERRAL_REWARD" envDefault:"0.3"`
	MinWithdrawal  float64 `env:"MIN_WITHDRAWAL" envDefault:"1"`
	CommissionPct  float64 `env:"COMMISSION_PCT" envDefault:"5"`

	// Реквизиты для оплаты, показываются покупателю в карточке сделки.
	TonAddress     string `env:"TON_ADDRESS,required"`
	USDTTRCAddress string `env:"USDT_TRC_ADDRESS"`
	USDTTONAddress string `env:"USDT_TON_ADDRESS"`

	GiftReceiver    string `env:"GIFT_RECEIVER"`
	SupportUsername string `env:"SUPPORT_USERNAME"`

	// Группа модераторов: проверка оплат, споры, выводы.
	ModeratorChatID int64 `env:"MODERATOR_CHAT_ID,required"`

	// Группа воркеров: уведомления о новых сделках и пушах.
	WorkersChatID int64 `env:"WORKERS_CHAT_ID"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func MustLoad() Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
