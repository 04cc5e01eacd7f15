package config

import (
	"github.com/spf13/viper"

	"github.com/Veraticus/edubridge/internal/sheets"
)

// LoadSheetsConfig builds the publisher configuration. Values from viper
// (config file or EDUBRIDGE_SHEETS_* through AutomaticEnv) win; anything left
// empty is filled from the environment, then defaults apply.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	setString(v, "sheets.client_id", &cfg.ClientID)
	setString(v, "sheets.client_secret", &cfg.ClientSecret)
	setString(v, "sheets.refresh_token", &cfg.RefreshToken)
	setString(v, "sheets.spreadsheet_id", &cfg.SpreadsheetID)
	setString(v, "sheets.spreadsheet_name", &cfg.SpreadsheetName)
	setString(v, "sheets.sheet_title", &cfg.SheetTitle)
	setString(v, "sheets.timezone", &cfg.TimeZone)
	if p := v.GetString("sheets.service_account_path"); p != "" {
		cfg.ServiceAccountPath = ExpandPath(p)
	}

	cfg.LoadFromEnv()
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setString(v *viper.Viper, key string, dst *string) {
	if s := v.GetString(key); s != "" {
		*dst = s
	}
}
