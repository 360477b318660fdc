package models

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	interrors "github.com/corkboard-app/corkboard/internal/errors"
)

// Card is a single note on the canvas. Text is the front face, BackText the
// optional flip side, Tags the user labels. X/Y and Color are owned by the
// rendering layer; the search core never reads them.
type Card struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	BackText  string    `json:"back_text,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = "id, text, back_text, tags, x, y, color, created_at, updated_at"

func (r *CardRepository) Create(text, backText string, tags []string, x, y float64, color string) (*Card, error) {
	result, err := r.db.Exec(
		"INSERT INTO cards (text, back_text, tags, x, y, color) VALUES (?, ?, ?, ?, ?, ?)",
		text, backText, encodeTags(tags), x, y, color,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert id: %w", err)
	}

	return r.GetByID(int(id))
}

func (r *CardRepository) GetByID(id int) (*Card, error) {
	row := r.db.QueryRow("SELECT "+cardColumns+" FROM cards WHERE id = ?", id)

	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interrors.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

func (r *CardRepository) List(limit, offset int) ([]*Card, error) {
	query := "SELECT " + cardColumns + " FROM cards ORDER BY created_at DESC"
	args := []interface{}{}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}

	return r.queryCards(query, args...)
}

// ListAll returns every card in one consistent snapshot. Search passes
// evaluate against this snapshot, never against individual re-reads.
func (r *CardRepository) ListAll() ([]*Card, error) {
	return r.queryCards("SELECT " + cardColumns + " FROM cards ORDER BY id")
}

func (r *CardRepository) Update(card *Card) error {
	_, err := r.db.Exec(
		"UPDATE cards SET text = ?, back_text = ?, tags = ?, color = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		card.Text, card.BackText, encodeTags(card.Tags), card.Color, card.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	// Refresh the card from database to get updated timestamp
	updated, err := r.GetByID(card.ID)
	if err != nil {
		return err
	}
	*card = *updated
	return nil
}

func (r *CardRepository) UpdateTags(id int, tags []string) error {
	result, err := r.db.Exec(
		"UPDATE cards SET tags = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		encodeTags(tags), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return interrors.ErrCardNotFound
	}

	return nil
}

// Move repositions a card on the canvas without touching its content.
func (r *CardRepository) Move(id int, x, y float64) error {
	result, err := r.db.Exec(
		"UPDATE cards SET x = ?, y = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		x, y, id,
	)
	if err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return interrors.ErrCardNotFound
	}

	return nil
}

func (r *CardRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM cards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return interrors.ErrCardNotFound
	}

	return nil
}

// GetAllTags returns every tag in use with its usage count.
func (r *CardRepository) GetAllTags() (map[string]int, error) {
	rows, err := r.db.Query("SELECT tags FROM cards")
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		for _, tag := range decodeTags(raw) {
			counts[tag]++
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

func (r *CardRepository) queryCards(query string, args ...interface{}) ([]*Card, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []*Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cards, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(row rowScanner) (*Card, error) {
	var card Card
	var rawTags string
	err := row.Scan(&card.ID, &card.Text, &card.BackText, &rawTags,
		&card.X, &card.Y, &card.Color, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}
	card.Tags = decodeTags(rawTags)
	return &card, nil
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeTags(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}
