package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("error while seeding database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS affected_areas (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			severity INTEGER NOT NULL,
			population INTEGER NOT NULL,
			delay_time INTEGER NOT NULL,
			urgency_score REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS supply_items (
			id TEXT PRIMARY KEY,
			item_name TEXT NOT NULL,
			weight INTEGER NOT NULL,
			utility INTEGER NOT NULL,
			quantity INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS volunteers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			skills TEXT NOT NULL,
			location TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'available',
			assigned_to TEXT
		);

		CREATE TABLE IF NOT EXISTS regions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			capacity INTEGER NOT NULL,
			demand_skills TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			message TEXT NOT NULL,
			source TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			urgency_score INTEGER NOT NULL,
			urgency_level TEXT NOT NULL,
			keywords_found TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS locations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			is_center INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS route_edges (
			from_loc TEXT NOT NULL,
			to_loc TEXT NOT NULL,
			distance REAL NOT NULL,
			directed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (from_loc, to_loc)
		);

		CREATE INDEX IF NOT EXISTS idx_messages_urgency ON messages(urgency_score);
		CREATE INDEX IF NOT EXISTS idx_volunteers_status ON volunteers(status);
  	`

	_, err := s.db.Exec(schema)
	return err
}

// seed loads the sample relief scenario: five affected areas, six
// volunteers, eight supply items, five regions, and the six-location
// transport network. INSERT OR IGNORE keeps restarts idempotent.
func (s *SQLiteDB) seed() error {
	seed := `
		INSERT OR IGNORE INTO affected_areas (id, name, severity, population, delay_time, created_at) VALUES
			('area_1', 'Downtown District', 8, 50000, 2, CURRENT_TIMESTAMP),
			('area_2', 'Riverside Community', 6, 25000, 4, CURRENT_TIMESTAMP),
			('area_3', 'Industrial Zone', 9, 15000, 1, CURRENT_TIMESTAMP),
			('area_4', 'Suburban Area', 4, 80000, 6, CURRENT_TIMESTAMP),
			('area_5', 'Mountain Village', 7, 5000, 8, CURRENT_TIMESTAMP);

		INSERT OR IGNORE INTO volunteers (id, name, skills, location, status) VALUES
			('vol_1', 'Alice Johnson', 'Medical, First Aid', 'Downtown', 'available'),
			('vol_2', 'Bob Smith', 'Search and Rescue, Engineering', 'Riverside', 'available'),
			('vol_3', 'Carol Davis', 'Communications, Logistics', 'Industrial', 'available'),
			('vol_4', 'David Wilson', 'Medical, Psychology', 'Suburban', 'available'),
			('vol_5', 'Eve Brown', 'Engineering, Technical', 'Mountain', 'available'),
			('vol_6', 'Frank Miller', 'Logistics, Transportation', 'Downtown', 'available');

		INSERT OR IGNORE INTO supply_items (id, item_name, weight, utility, quantity) VALUES
			('sup_1', 'Water Bottles', 2, 9, 100),
			('sup_2', 'Medical Kit', 5, 10, 20),
			('sup_3', 'Blankets', 3, 7, 50),
			('sup_4', 'Food Rations', 4, 8, 75),
			('sup_5', 'Flashlights', 1, 6, 40),
			('sup_6', 'Radio Equipment', 8, 9, 10),
			('sup_7', 'Tents', 15, 8, 15),
			('sup_8', 'Batteries', 1, 5, 200);

		INSERT OR IGNORE INTO regions (id, name, capacity, demand_skills) VALUES
			('region_1', 'Downtown Emergency Zone', 2, 'Medical, Logistics'),
			('region_2', 'Riverside Medical Area', 1, 'Medical, First Aid'),
			('region_3', 'Industrial Rescue Zone', 2, 'Search and Rescue, Engineering'),
			('region_4', 'Suburban Relief Center', 1, 'Logistics, Psychology'),
			('region_5', 'Mountain Village Outpost', 1, 'Engineering, Technical');

		INSERT OR IGNORE INTO locations (id, name, latitude, longitude, is_center) VALUES
			('A', 'Emergency Center A', 40.7128, -74.0060, 1),
			('B', 'Relief Hub B', 40.7614, -73.9776, 1),
			('C', 'Medical Base C', 40.6892, -74.0445, 1),
			('D', 'Supply Depot D', 40.7489, -73.9857, 1),
			('E', 'Command Post E', 40.7282, -74.0776, 1),
			('F', 'Distribution Point F', 40.7505, -73.9934, 0);

		INSERT OR IGNORE INTO route_edges (from_loc, to_loc, distance, directed) VALUES
			('A', 'B', 10, 0),
			('A', 'C', 15, 0),
			('B', 'C', 12, 0),
			('B', 'D', 8, 0),
			('C', 'D', 20, 0),
			('C', 'E', 18, 0),
			('D', 'E', 6, 0),
			('E', 'F', 14, 0),
			('F', 'A', 25, 0);
  	`

	_, err := s.db.Exec(seed)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
