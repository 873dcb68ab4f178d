package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/navya-devv/optirelief/internal/models"
)

func (s *SQLiteDB) AddArea(ctx context.Context, a *models.DisasterArea) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO affected_areas (id, name, severity, population, delay_time, urgency_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		a.ID, a.Name, a.Severity, a.Population, a.DelayTime, a.UrgencyScore)
	if err != nil {
		return fmt.Errorf("adding area %q: %w", a.ID, err)
	}
	return nil
}

func (s *SQLiteDB) ListAreas(ctx context.Context) ([]models.DisasterArea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, severity, population, delay_time, urgency_score
		 FROM affected_areas ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}
	defer rows.Close()

	areas := make([]models.DisasterArea, 0)
	for rows.Next() {
		var a models.DisasterArea
		if err := rows.Scan(&a.ID, &a.Name, &a.Severity, &a.Population, &a.DelayTime, &a.UrgencyScore); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (s *SQLiteDB) UpdateUrgencyScores(ctx context.Context, areas []models.DisasterArea) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range areas {
		if _, err := tx.ExecContext(ctx,
			`UPDATE affected_areas SET urgency_score = ? WHERE id = ?`, a.UrgencyScore, a.ID); err != nil {
			return fmt.Errorf("updating urgency score for %q: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteDB) AddSupplyItem(ctx context.Context, item *models.SupplyItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO supply_items (id, item_name, weight, utility, quantity) VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Weight, item.Utility, item.Quantity)
	if err != nil {
		return fmt.Errorf("adding supply item %q: %w", item.ID, err)
	}
	return nil
}

func (s *SQLiteDB) ListSupplyItems(ctx context.Context) ([]models.SupplyItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_name, weight, utility, quantity FROM supply_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing supply items: %w", err)
	}
	defer rows.Close()

	items := make([]models.SupplyItem, 0)
	for rows.Next() {
		var it models.SupplyItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Weight, &it.Utility, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteDB) ListVolunteers(ctx context.Context) ([]models.Volunteer, error) {
	return s.queryVolunteers(ctx,
		`SELECT id, name, skills, location, status, assigned_to FROM volunteers ORDER BY id`)
}

func (s *SQLiteDB) ListAvailableVolunteers(ctx context.Context) ([]models.Volunteer, error) {
	return s.queryVolunteers(ctx,
		`SELECT id, name, skills, location, status, assigned_to FROM volunteers
		 WHERE status = 'available' ORDER BY id`)
}

func (s *SQLiteDB) queryVolunteers(ctx context.Context, query string) ([]models.Volunteer, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing volunteers: %w", err)
	}
	defer rows.Close()

	volunteers := make([]models.Volunteer, 0)
	for rows.Next() {
		var v models.Volunteer
		var skills string
		var assignedTo sql.NullString
		if err := rows.Scan(&v.ID, &v.Name, &skills, &v.Location, &v.Status, &assignedTo); err != nil {
			return nil, err
		}
		v.Skills = splitTags(skills)
		v.AssignedTo = assignedTo.String
		volunteers = append(volunteers, v)
	}
	return volunteers, rows.Err()
}

// ClaimVolunteers is the optimistic check-and-set of the assignment step.
// Each UPDATE only fires while the volunteer is still available; a missing
// row means another run claimed them mid-search, and the whole transaction
// rolls back.
func (s *SQLiteDB) ClaimVolunteers(ctx context.Context, regionByVolunteer map[string]string) error {
	if len(regionByVolunteer) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for volunteerID, regionID := range regionByVolunteer {
		res, err := tx.ExecContext(ctx,
			`UPDATE volunteers SET status = 'assigned', assigned_to = ?
			 WHERE id = ? AND status = 'available'`,
			regionID, volunteerID)
		if err != nil {
			return fmt.Errorf("claiming volunteer %q: %w", volunteerID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("%w: %q", ErrConcurrentModification, volunteerID)
		}
	}
	return tx.Commit()
}

func (s *SQLiteDB) ListRegions(ctx context.Context) ([]models.Region, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, capacity, demand_skills FROM regions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	defer rows.Close()

	regions := make([]models.Region, 0)
	for rows.Next() {
		var r models.Region
		var demand string
		if err := rows.Scan(&r.ID, &r.Name, &r.Capacity, &demand); err != nil {
			return nil, err
		}
		r.DemandSkills = splitTags(demand)
		regions = append(regions, r)
	}
	return regions, rows.Err()
}

func (s *SQLiteDB) AddMessage(ctx context.Context, msg *models.Message) error {
	keywords, err := json.Marshal(msg.KeywordsFound)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (id, message, source, timestamp, urgency_score, urgency_level, keywords_found)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Text, msg.Source, msg.Timestamp, msg.UrgencyScore, string(msg.UrgencyLevel), string(keywords))
	if err != nil {
		return fmt.Errorf("adding message %q: %w", msg.ID, err)
	}
	return nil
}

func (s *SQLiteDB) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, message, source, timestamp, urgency_score, urgency_level, keywords_found
		 FROM messages ORDER BY urgency_score DESC, timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		var level, keywords string
		if err := rows.Scan(&m.ID, &m.Text, &m.Source, &m.Timestamp, &m.UrgencyScore, &level, &keywords); err != nil {
			return nil, err
		}
		m.UrgencyLevel = models.UrgencyLevel(level)
		if err := json.Unmarshal([]byte(keywords), &m.KeywordsFound); err != nil {
			return nil, fmt.Errorf("decoding keywords for %q: %w", m.ID, err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLiteDB) ListLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, latitude, longitude, is_center FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	locations := make([]models.Location, 0)
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Coordinates.Latitude, &loc.Coordinates.Longitude, &loc.Center); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (s *SQLiteDB) ListEdges(ctx context.Context) ([]models.RouteEdge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_loc, to_loc, distance, directed FROM route_edges ORDER BY from_loc, to_loc`)
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}
	defer rows.Close()

	edges := make([]models.RouteEdge, 0)
	for rows.Next() {
		var e models.RouteEdge
		if err := rows.Scan(&e.From, &e.To, &e.Distance, &e.Directed); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// splitTags decodes the stored comma-separated tag format ("Medical,
// First Aid") into trimmed tags.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
