// Package store persists generated rosters. The engine treats it as a
// plain load/save collaborator: reads happen only before a run (continuity
// lookup), writes only after (final grid and per-agent state).
package store

import (
	"encoding/json"
	"errors"

	"github.com/tradeling/roster-api-go/pkg/database"
	"github.com/tradeling/roster-api-go/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps the schedules table.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// LoadSchedule returns the persisted result for (year, month), or nil when
// none exists.
func (s *Store) LoadSchedule(year, month int) (*models.RosterResult, error) {
	var rec database.ScheduleRecord
	err := s.DB.Where("year = ? AND month = ?", year, month).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result models.RosterResult
	if err := json.Unmarshal(rec.Payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveSchedule upserts the result for (year, month) in a single query.
func (s *Store) SaveSchedule(year, month int, result *models.RosterResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&database.ScheduleRecord{
		Year:    year,
		Month:   month,
		Payload: payload,
	}).Error
}
