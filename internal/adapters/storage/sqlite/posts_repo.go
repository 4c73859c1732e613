package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"zoomieband/internal/domain/community"
)

type PostsRepo struct {
	db *sql.DB
}

func NewPostsRepo(db *sql.DB) *PostsRepo {
	return &PostsRepo{db: db}
}

func (r *PostsRepo) Create(ctx context.Context, p community.Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO community_posts (
			id, pet_name, activity_title,
			distance, duration, pace, location, image_name,
			kudos, comments, liked, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.PetName,
		p.ActivityTitle,
		p.Distance,
		p.Duration,
		p.Pace,
		p.Location,
		p.ImageName,
		p.Kudos,
		p.Comments,
		p.Liked,
		formatTime(p.CreatedAt),
	)
	return err
}

// Update solo toca los contadores.
func (r *PostsRepo) Update(ctx context.Context, p community.Post) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE community_posts
		SET kudos = ?, comments = ?, liked = ?
		WHERE id = ?
	`, p.Kudos, p.Comments, p.Liked, p.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return community.ErrNotFound
	}
	return nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (community.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return community.Post{}, community.ErrNotFound
	}

	p, err := scanPost(r.db.QueryRowContext(ctx, selectPosts+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return community.Post{}, community.ErrNotFound
	}
	return p, err
}

func (r *PostsRepo) List(ctx context.Context) ([]community.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPosts+` ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const selectPosts = `
	SELECT
		id, pet_name, activity_title,
		distance, duration, pace, location, image_name,
		kudos, comments, liked, created_at
	FROM community_posts`

func scanPost(s rowScanner) (community.Post, error) {
	var (
		p         community.Post
		createdAt string
	)
	if err := s.Scan(
		&p.ID,
		&p.PetName,
		&p.ActivityTitle,
		&p.Distance,
		&p.Duration,
		&p.Pace,
		&p.Location,
		&p.ImageName,
		&p.Kudos,
		&p.Comments,
		&p.Liked,
		&createdAt,
	); err != nil {
		return community.Post{}, err
	}

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return community.Post{}, fmt.Errorf("parse created_at: %w", err)
	}
	return p, nil
}
