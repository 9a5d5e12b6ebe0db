package game

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const DefaultJourneyDBPath = "journeys.db"
const journeyTableName = "journeys"

// Journey is one completed run, written once when the player acknowledges the goal.
type Journey struct {
	ID           int
	PlayerName   string
	Career       string
	LocationType string
	UrkuSteps    float64
	Disparity    float64
	Frames       int
	CreatedAt    time.Time
}

type JourneyService struct {
	db *sql.DB
}

func NewJourneyService(dbPath string) (*JourneyService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", dbPath, err)
	}
	// a single connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)

	service := &JourneyService{db: db}
	if err := service.createTable(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return service, nil
}

func (serviceImpl *JourneyService) createTable(ctx context.Context) error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + journeyTableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		career TEXT NOT NULL,
		location_type TEXT NOT NULL,
		urku_steps REAL NOT NULL,
		disparity REAL NOT NULL,
		frames INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := serviceImpl.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Journeys table ensured.")
	return nil
}

func (serviceImpl *JourneyService) SaveJourney(ctx context.Context, journey Journey) error {
	const insertSQL = `
	INSERT INTO ` + journeyTableName + ` (player_name, career, location_type, urku_steps, disparity, frames)
	VALUES (?, ?, ?, ?, ?, ?);`

	_, err := serviceImpl.db.ExecContext(ctx, insertSQL,
		journey.PlayerName,
		journey.Career,
		journey.LocationType,
		journey.UrkuSteps,
		journey.Disparity,
		journey.Frames,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journey for %s: %w", journey.PlayerName, err)
	}

	return nil
}

// GetFastestJourneys returns a page of journeys, fewest frames first.
func (serviceImpl *JourneyService) GetFastestJourneys(ctx context.Context, limit, offset int) ([]Journey, error) {
	const selectSQL = `
	SELECT id, player_name, career, location_type, urku_steps, disparity, frames, created_at
	FROM ` + journeyTableName + `
	ORDER BY frames ASC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.QueryContext(ctx, selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()

	var journeys []Journey

	for rows.Next() {
		var journey Journey
		var createdAt string
		err := rows.Scan(
			&journey.ID,
			&journey.PlayerName,
			&journey.Career,
			&journey.LocationType,
			&journey.UrkuSteps,
			&journey.Disparity,
			&journey.Frames,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if parsed, err := parseCreatedAt(createdAt); err == nil {
			journey.CreatedAt = parsed
		} else {
			log.Warn("Time parsing error for journey", "id", journey.ID, "name", journey.PlayerName, "raw", createdAt, "error", err)
		}
		journeys = append(journeys, journey)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return journeys, nil
}

func (serviceImpl *JourneyService) GetTotalJourneyCount(ctx context.Context) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + journeyTableName + `;`
	var count int
	if err := serviceImpl.db.QueryRowContext(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total journey count: %w", err)
	}
	return count, nil
}

func (serviceImpl *JourneyService) Close() error {
	return serviceImpl.db.Close()
}

// the driver hands DATETIME columns back as RFC3339, raw CURRENT_TIMESTAMP text is
// accepted too
func parseCreatedAt(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateTime, raw)
}
