// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/txt2pdf/pkg/types"
)

// Configuration keys. Environment variables use the TXT2PDF_ prefix with
// dots replaced by underscores, e.g. TXT2PDF_LAYOUT_FONT_SIZE.
const (
	keySourcePath      = "source_path"
	keyDestinationPath = "destination_path"
	keyPageSize        = "layout.page_size"
	keyOrientation     = "layout.orientation"
	keyMargin          = "layout.margin"
	keyFontFamily      = "layout.font_family"
	keyFontFile        = "layout.font_file"
	keyFontSize        = "layout.font_size"
	keyLineSpacing     = "layout.line_spacing"
	keyLedgerPath      = "ledger.path"
)

// configureViper installs layout defaults and TXT2PDF_ environment lookup.
func configureViper(v *viper.Viper) {
	setDefaults(v)
	v.SetEnvPrefix("TXT2PDF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPageSize, types.DefaultPageSize)
	v.SetDefault(keyOrientation, types.DefaultOrientation)
	v.SetDefault(keyMargin, types.DefaultMargin)
	v.SetDefault(keyFontFamily, types.DefaultFontFamily)
	v.SetDefault(keyFontSize, types.DefaultFontSize)
	v.SetDefault(keyLineSpacing, types.DefaultLineSpacing)
}

// converterConfig assembles the run configuration from v. Validation is left
// to the caller so that it happens once, before any file is processed.
func converterConfig(v *viper.Viper) types.ConverterConfig {
	return types.ConverterConfig{
		SourcePath:      v.GetString(keySourcePath),
		DestinationPath: v.GetString(keyDestinationPath),
		Layout: types.LayoutConfig{
			PageSize:    v.GetString(keyPageSize),
			Orientation: v.GetString(keyOrientation),
			Margin:      v.GetFloat64(keyMargin),
			FontFamily:  v.GetString(keyFontFamily),
			FontFile:    v.GetString(keyFontFile),
			FontSize:    v.GetFloat64(keyFontSize),
			LineSpacing: v.GetFloat64(keyLineSpacing),
		},
		Ledger: types.LedgerConfig{
			Path: v.GetString(keyLedgerPath),
		},
	}
}
