package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingPooledSeating    = "pooled_seating"
	SettingMinPartySize     = "min_party_size"
	SettingMaxPartySize     = "max_party_size"
	SettingHoldTimeout      = "hold_timeout"
	SettingBusinessTimezone = "business_timezone"
)

const (
	defaultHoldTimeout = 30
	minHoldTimeout     = 5
	maxHoldTimeout     = 120
)

// DefaultSettings are used for any key missing from the settings table.
var DefaultSettings = map[string]string{
	SettingPooledSeating:    "no",
	SettingMinPartySize:     "1",
	SettingMaxPartySize:     "12",
	SettingHoldTimeout:      strconv.Itoa(defaultHoldTimeout),
	SettingBusinessTimezone: "UTC",
}

// Snapshot is the settings view handed to one evaluation. It is taken fresh per call.
type Snapshot struct {
	PooledSeating bool
	MinPartySize  int
	MaxPartySize  int
	HoldTimeout   time.Duration
	Location      *time.Location
}

func (s Snapshot) Policy() SeatingPolicy {
	if s.PooledSeating {
		return PooledSeating
	}
	return PerTableSeating
}

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSetting returns the stored value for key, or def when the key is absent.
func (s *SettingsService) GetSetting(key, def string) (string, error) {
	var setting models.Setting
	res := s.db.Where("setting_key = ?", key).Limit(1).Find(&setting)
	if res.Error != nil {
		return "", storageErr("get setting", res.Error)
	}
	if res.RowsAffected == 0 {
		return def, nil
	}
	return setting.SettingValue, nil
}

// All returns every known setting with defaults filled in.
func (s *SettingsService) All() (map[string]string, error) {
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, storageErr("list settings", err)
	}
	values := make(map[string]string, len(DefaultSettings))
	for k, v := range DefaultSettings {
		values[k] = v
	}
	for _, row := range rows {
		values[row.SettingKey] = row.SettingValue
	}
	return values, nil
}

func (s *SettingsService) Snapshot() (Snapshot, error) {
	values, err := s.All()
	if err != nil {
		return Snapshot{}, err
	}
	return parseSnapshot(values), nil
}

func parseSnapshot(values map[string]string) Snapshot {
	snap := Snapshot{
		PooledSeating: values[SettingPooledSeating] == "yes",
		MinPartySize:  atoiOr(values[SettingMinPartySize], 1),
		MaxPartySize:  atoiOr(values[SettingMaxPartySize], 12),
		HoldTimeout:   time.Duration(atoiOr(values[SettingHoldTimeout], defaultHoldTimeout)) * time.Minute,
		Location:      time.UTC,
	}
	if loc, err := time.LoadLocation(values[SettingBusinessTimezone]); err == nil {
		snap.Location = loc
	} else {
		utils.ErrorLogger.Printf("unknown business timezone %q, falling back to UTC", values[SettingBusinessTimezone])
	}
	return snap
}

func atoiOr(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return n
}

// UpdateSettings validates and stores the given keys, returning the full resulting set.
func (s *SettingsService) UpdateSettings(input map[string]string) (map[string]string, error) {
	current, err := s.All()
	if err != nil {
		return nil, err
	}

	var problems []string
	updates := make(map[string]string, len(input))
	for key, raw := range input {
		value := strings.TrimSpace(raw)
		switch key {
		case SettingPooledSeating:
			updates[key] = yesNo(value)
		case SettingMinPartySize, SettingMaxPartySize:
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				problems = append(problems, fmt.Sprintf("%s must be a positive number.", key))
				continue
			}
			updates[key] = strconv.Itoa(n)
		case SettingHoldTimeout:
			n, err := strconv.Atoi(value)
			if err != nil || n < minHoldTimeout || n > maxHoldTimeout {
				utils.InfoLogger.Printf("hold_timeout %q outside %d-%d minutes, using %d", value, minHoldTimeout, maxHoldTimeout, defaultHoldTimeout)
				n = defaultHoldTimeout
			}
			updates[key] = strconv.Itoa(n)
		case SettingBusinessTimezone:
			if _, err := time.LoadLocation(value); err != nil || value == "" {
				problems = append(problems, "business_timezone must be a valid IANA timezone.")
				continue
			}
			updates[key] = value
		default:
			problems = append(problems, fmt.Sprintf("unknown setting %q.", key))
		}
	}
	if len(problems) > 0 {
		return nil, newValidationError(problems...)
	}

	minSize := atoiOr(pick(updates, current, SettingMinPartySize), 1)
	maxSize := atoiOr(pick(updates, current, SettingMaxPartySize), 12)
	if minSize > maxSize {
		updates[SettingMinPartySize] = strconv.Itoa(maxSize)
		updates[SettingMaxPartySize] = strconv.Itoa(minSize)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range updates {
			row := models.Setting{SettingKey: key, SettingValue: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("update settings", err)
	}

	for k, v := range updates {
		current[k] = v
	}
	utils.InfoLogger.Printf("Settings updated: %d keys", len(updates))
	return current, nil
}

// EnsureDefaults inserts any default setting that is not stored yet.
func (s *SettingsService) EnsureDefaults() error {
	for key, value := range DefaultSettings {
		row := models.Setting{SettingKey: key, SettingValue: value}
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return storageErr("seed settings", err)
		}
	}
	return nil
}

func pick(updates, current map[string]string, key string) string {
	if v, ok := updates[key]; ok {
		return v
	}
	return current[key]
}

func yesNo(value string) string {
	switch strings.ToLower(value) {
	case "yes", "true", "1", "on":
		return "yes"
	}
	return "no"
}
