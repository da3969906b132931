package cmd

import (
	"time"
)

// Config carries every environment-driven setting of the application.
// Values arrive as raw strings from the environment; the typed accessors
// apply defaults for optional knobs.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MarketplaceBaseURL string
	MarketplaceAPIKey  string

	CarrierBaseURL        string
	CarrierCustomerNumber string
	CarrierContractID     string
	CarrierPaidByCustomer string
	CarrierAPIUser        string
	CarrierAPIPassword    string

	SenderName         string
	SenderCompany      string
	SenderContactPhone string
	SenderAddress      string
	SenderCity         string
	SenderProvince     string
	SenderPostalCode   string

	LabelDir         string
	PipelineSchedule string

	SettleDelay           string
	MaxValidationAttempts string
	MaxLabelAttempts      string
	LabelRetryDelay       string
}

// SettleDelayDuration returns the acceptance settle delay, defaulting to a
// minute when unset or unparseable.
func (c Config) SettleDelayDuration() time.Duration {
	return parseDuration(c.SettleDelay, time.Minute)
}

// LabelRetryDelayDuration returns the delay between label attempts,
// defaulting to ten seconds.
func (c Config) LabelRetryDelayDuration() time.Duration {
	return parseDuration(c.LabelRetryDelay, 10*time.Second)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
