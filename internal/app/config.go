package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
	"github.com/vladislavdragonenkov/manabuy/internal/manapool"
)

// Config — настройки запуска. Учётные данные приходят только из
// окружения (или .env), никогда из аргументов командной строки.
type Config struct {
	BaseURL     string
	Email       string
	Token       string
	ProfilePath string
	DBDSN       string
	HTTPTimeout time.Duration
}

// DefaultConfig возвращает базовые настройки.
func DefaultConfig() Config {
	return Config{
		BaseURL:     manapool.DefaultBaseURL,
		ProfilePath: "config.json",
		HTTPTimeout: 60 * time.Second,
	}
}

// ReadConfig собирает конфигурацию из окружения, подхватив .env, если
// он есть рядом. Отсутствие .env — не ошибка.
func ReadConfig() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := os.Getenv("MANAPOOL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MANAPOOL_EMAIL"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("MANAPOOL_API_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("MANABUY_PROFILE"); v != "" {
		cfg.ProfilePath = v
	}
	if v := os.Getenv("MANABUY_DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("MANABUY_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	return cfg
}

// BuyerProfile — адреса и предпочтения покупателя из config.json.
type BuyerProfile struct {
	Email           string          `json:"api_email"`
	ShippingAddress domain.Address  `json:"shipping_address"`
	BillingAddress  domain.Address  `json:"billing_address"`
	CardPreferences preferencesJSON `json:"card_preferences"`
}

type preferencesJSON struct {
	Conditions []string `json:"conditions"`
	Languages  []string `json:"languages"`
	Finishes   []string `json:"finishes"`
}

// LoadProfile читает профиль покупателя. Без профиля покупка
// невозможна: адрес доставки обязателен для резервации.
func LoadProfile(path string) (BuyerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BuyerProfile{}, fmt.Errorf("%w: buyer profile %s: %v", domain.ErrInvalidInput, path, err)
	}

	var profile BuyerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return BuyerProfile{}, fmt.Errorf("%w: parse buyer profile %s: %v", domain.ErrInvalidInput, path, err)
	}
	if profile.ShippingAddress.Line1 == "" {
		return BuyerProfile{}, fmt.Errorf("%w: buyer profile %s has no shipping address", domain.ErrInvalidInput, path)
	}
	if profile.BillingAddress.Line1 == "" {
		profile.BillingAddress = profile.ShippingAddress
	}
	return profile, nil
}

// PreferenceSet переводит профиль в доменные предпочтения; пустые
// секции заполняются консервативными значениями по умолчанию.
func (p BuyerProfile) PreferenceSet() domain.PreferenceSet {
	prefs := domain.DefaultPreferences()
	if len(p.CardPreferences.Conditions) > 0 {
		prefs.Conditions = prefs.Conditions[:0]
		for _, c := range p.CardPreferences.Conditions {
			prefs.Conditions = append(prefs.Conditions, domain.Condition(c))
		}
	}
	if len(p.CardPreferences.Languages) > 0 {
		prefs.Languages = prefs.Languages[:0]
		for _, l := range p.CardPreferences.Languages {
			prefs.Languages = append(prefs.Languages, domain.Language(l))
		}
	}
	if len(p.CardPreferences.Finishes) > 0 {
		prefs.Finishes = prefs.Finishes[:0]
		for _, f := range p.CardPreferences.Finishes {
			prefs.Finishes = append(prefs.Finishes, domain.Finish(f))
		}
	}
	return prefs
}
