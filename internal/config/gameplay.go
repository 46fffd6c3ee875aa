package config

import (
	"fmt"
	"regexp"

	"github.com/udisondev/chronicle/internal/ledger"
)

// Battle holds simulator settings.
type Battle struct {
	// TurnLimit caps actor turns below each stage limit. 0 = stage limit only.
	TurnLimit int `yaml:"turn_limit"`
	// Workers bounds parallel runs. 0 = one per job.
	Workers int `yaml:"workers"`
}

// DefaultBattle returns Battle with no extra cap and 4 workers.
func DefaultBattle() Battle {
	return Battle{Workers: 4}
}

// Currency is a ledger currency as written in config.
type Currency struct {
	Ticker        string `yaml:"ticker"`
	DecimalPlaces int32  `yaml:"decimal_places"`
}

// Ledger converts to the ledger type.
func (c Currency) Ledger() ledger.Currency {
	return ledger.Currency{Ticker: c.Ticker, DecimalPlaces: c.DecimalPlaces}
}

// Enhancement holds item enhancement settings.
type Enhancement struct {
	// Beneficiary receives every enhancement fee.
	Beneficiary string   `yaml:"beneficiary"`
	Currency    Currency `yaml:"currency"`
	// RequireClearedStage is the stage an avatar must clear before enhancing.
	RequireClearedStage int32 `yaml:"require_cleared_stage"`
}

// DefaultBeneficiary is the blacksmith system account.
const DefaultBeneficiary = "0x0000000000000000000000000000000000000b5b"

// DefaultEnhancement returns Enhancement paid in gold to the blacksmith.
func DefaultEnhancement() Enhancement {
	return Enhancement{
		Beneficiary:         DefaultBeneficiary,
		Currency:            Currency{Ticker: ledger.Gold.Ticker, DecimalPlaces: ledger.Gold.DecimalPlaces},
		RequireClearedStage: 1,
	}
}

// BeneficiaryAddress parses Beneficiary.
func (e Enhancement) BeneficiaryAddress() (ledger.Address, error) {
	a, err := ledger.ParseAddress(e.Beneficiary)
	if err != nil {
		return a, fmt.Errorf("enhancement.beneficiary: %w", err)
	}
	return a, nil
}

// Avatar holds avatar creation rules.
type Avatar struct {
	NamePattern string `yaml:"name_pattern"`
}

// DefaultNamePattern allows 2 to 16 ASCII letters, digits and underscores.
const DefaultNamePattern = `^[0-9a-zA-Z_]{2,16}$`

// DefaultAvatar returns Avatar with DefaultNamePattern.
func DefaultAvatar() Avatar {
	return Avatar{NamePattern: DefaultNamePattern}
}

// NameRegexp compiles NamePattern.
func (a Avatar) NameRegexp() (*regexp.Regexp, error) {
	re, err := regexp.Compile(a.NamePattern)
	if err != nil {
		return nil, fmt.Errorf("avatar.name_pattern: %w", err)
	}
	return re, nil
}
