package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"trashmap/apperrors"
	"trashmap/models"
)

type TrashService struct {
	db *sql.DB
}

func NewTrashService(db *sql.DB) *TrashService {
	return &TrashService{db: db}
}

// CreateEntry persists a new entry, assigning its id and timestamp. The
// returned entry is exactly what was stored.
func (s *TrashService) CreateEntry(ctx context.Context, in *models.CreateEntryInput) (*models.TrashEntry, error) {
	entry := &models.TrashEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		TrashType: in.TrashType,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		PhotoURL:  in.PhotoURL,
		UserName:  in.UserName,
	}

	result, err := s.db.ExecContext(ctx, `INSERT
	  INTO trash_entries (id, timestamp, trash_type, latitude, longitude, photo_url, user_name)
	  VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.TrashType, entry.Latitude, entry.Longitude,
		nullable(entry.PhotoURL), nullable(entry.UserName))
	if err := validateResult("insertEntry", result, err, true); err != nil {
		return nil, err
	}

	log.Infof("Saved entry %s (%s) at %f,%f", entry.ID, entry.TrashType, entry.Latitude, entry.Longitude)
	return entry, nil
}

// GetEntries returns entries matching the filter, newest first. Date bounds
// are inclusive; empty filter fields are skipped.
func (s *TrashService) GetEntries(ctx context.Context, filter *models.EntryFilter) ([]models.TrashEntry, error) {
	query := `SELECT id, timestamp, trash_type, latitude, longitude, photo_url, user_name
	  FROM trash_entries WHERE 1=1`
	args := make([]any, 0, 3)

	if filter != nil {
		if filter.StartDate != "" {
			query += ` AND timestamp >= ?`
			args = append(args, filter.StartDate)
		}
		if filter.EndDate != "" {
			query += ` AND timestamp <= ?`
			args = append(args, filter.EndDate)
		}
		if filter.TrashType != "" {
			query += ` AND trash_type = ?`
			args = append(args, filter.TrashType)
		}
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Errorf("Query for entries failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TrashEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			log.Errorf("Failed to scan entry row: %v", err)
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetEntryByID fetches one entry, apperrors.ErrNotFound if it is absent.
func (s *TrashService) GetEntryByID(ctx context.Context, id string) (*models.TrashEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, timestamp, trash_type, latitude, longitude, photo_url, user_name
	  FROM trash_entries WHERE id = ?`, id)
	if err != nil {
		log.Errorf("Query for entry %s failed: %v", id, err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperrors.ErrNotFound
	}
	return scanEntry(rows)
}

// GetPointsInViewport returns the entry points inside the viewport for map
// aggregation.
func (s *TrashService) GetPointsInViewport(ctx context.Context, vp *models.ViewPort) ([]models.MapPoint, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, trash_type, latitude, longitude
	  FROM trash_entries
	  WHERE latitude > ? AND latitude <= ?
	    AND longitude > ? AND longitude <= ?`,
		vp.LatMin, vp.LatMax, vp.LonMin, vp.LonMax)
	if err != nil {
		log.Errorf("Query for viewport points failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	points := make([]models.MapPoint, 0)
	for rows.Next() {
		p := models.MapPoint{Count: 1}
		if err := rows.Scan(&p.EntryID, &p.TrashType, &p.Latitude, &p.Longitude); err != nil {
			log.Errorf("Failed to scan point row: %v", err)
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func scanEntry(rows *sql.Rows) (*models.TrashEntry, error) {
	e := &models.TrashEntry{}
	var photoURL, userName sql.NullString
	if err := rows.Scan(&e.ID, &e.Timestamp, &e.TrashType, &e.Latitude, &e.Longitude, &photoURL, &userName); err != nil {
		return nil, err
	}
	e.PhotoURL = photoURL.String
	e.UserName = userName.String
	return e, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func validateResult(op string, r sql.Result, e error, checkRowsAffected bool) error {
	if e != nil {
		log.Errorf("%s: query failed: %v", op, e)
		return e
	}
	rows, err := r.RowsAffected()
	if err != nil {
		log.Errorf("%s: failed to get status of db op: %v", op, err)
		return err
	}
	if checkRowsAffected && rows != 1 {
		log.Warnf("%s: expected to affect 1 row, affected %d", op, rows)
	}
	return nil
}
