package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amoreira/letterpress/internal/db"
	"github.com/amoreira/letterpress/internal/model"
	"github.com/amoreira/letterpress/internal/util/compression"
)

const postColumns = `id, title, slug, excerpt, topics, status, doc, word_count, reading_time, created_at, updated_at, published_at`

// DBPrimaryStore implements PrimaryStore on the relational store. Document
// payloads are zstd-compressed before hitting the posts table.
type DBPrimaryStore struct {
	db         db.DB
	compressor compression.Compressor
}

func NewDBPrimaryStore(database db.DB) *DBPrimaryStore {
	return &DBPrimaryStore{
		db:         database,
		compressor: compression.ZstdCompressor{},
	}
}

// NewPost returns a fresh draft with an empty document. Untitled drafts get
// a slug derived from the id so the slug stays unique.
func (s *DBPrimaryStore) NewPost(slug string) *model.Post {
	now := time.Now().UTC()
	id := uuid.New().String()

	if slug == "" {
		slug = "untitled-" + id[:8]
	}

	return &model.Post{
		ID:        model.PostID(id),
		Slug:      slug,
		Status:    model.StatusDraft,
		Topics:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *DBPrimaryStore) Create(post *model.Post) error {
	topics, doc, err := s.encode(post)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Slug, post.Excerpt, topics, post.Status,
		doc, post.WordCount, post.ReadingTime, post.CreatedAt, post.UpdatedAt, post.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

func (s *DBPrimaryStore) Update(post *model.Post) error {
	topics, doc, err := s.encode(post)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(
		`UPDATE posts SET title = ?, slug = ?, excerpt = ?, topics = ?, status = ?, doc = ?,
			word_count = ?, reading_time = ?, updated_at = ?, published_at = ? WHERE id = ?`,
		post.Title, post.Slug, post.Excerpt, topics, post.Status, doc,
		post.WordCount, post.ReadingTime, post.UpdatedAt, post.PublishedAt, post.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *DBPrimaryStore) Delete(id model.PostID) error {
	if _, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}

func (s *DBPrimaryStore) GetByID(id model.PostID) (*model.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return s.scanPost(row)
}

func (s *DBPrimaryStore) GetBySlug(slug string) (*model.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return s.scanPost(row)
}

func (s *DBPrimaryStore) ListAll() ([]model.Post, error) {
	return s.list(`SELECT ` + postColumns + ` FROM posts ORDER BY updated_at DESC`)
}

func (s *DBPrimaryStore) ListPublished() ([]model.Post, error) {
	return s.list(`SELECT `+postColumns+` FROM posts WHERE status = ? ORDER BY created_at DESC`, string(model.StatusPublished))
}

func (s *DBPrimaryStore) list(query string, args ...interface{}) ([]model.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		post, err := s.scanPostRows(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (s *DBPrimaryStore) encode(post *model.Post) (topics string, doc []byte, err error) {
	t := post.Topics
	if t == nil {
		t = []string{}
	}
	topicsJSON, err := json.Marshal(t)
	if err != nil {
		return "", nil, fmt.Errorf("error encoding topics: %w", err)
	}

	if len(post.Document) > 0 {
		doc, err = s.compressor.Compress(post.Document)
		if err != nil {
			return "", nil, fmt.Errorf("error compressing document: %w", err)
		}
	}
	return string(topicsJSON), doc, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *DBPrimaryStore) scanPost(row *sql.Row) (*model.Post, error) {
	post, err := scanInto(row, s.compressor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return post, err
}

func (s *DBPrimaryStore) scanPostRows(rows *sql.Rows) (*model.Post, error) {
	return scanInto(rows, s.compressor)
}

func scanInto(row rowScanner, compressor compression.Compressor) (*model.Post, error) {
	var post model.Post
	var topics string
	var doc []byte
	var publishedAt sql.NullTime

	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &topics, &post.Status,
		&doc, &post.WordCount, &post.ReadingTime, &post.CreatedAt, &post.UpdatedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(topics), &post.Topics); err != nil {
		post.Topics = []string{}
	}

	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}

	if len(doc) > 0 {
		decompressed, err := compressor.Decompress(doc)
		if err != nil {
			return nil, fmt.Errorf("error decompressing document: %w", err)
		}
		post.Document = decompressed
	}

	return &post, nil
}
