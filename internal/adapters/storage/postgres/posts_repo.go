package postgres

import (
	"context"
	"database/sql"
	"errors"
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
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
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
		p.CreatedAt,
	)
	return err
}

// Update solo toca los contadores; el contenido del post es inmutable.
func (r *PostsRepo) Update(ctx context.Context, p community.Post) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE community_posts
		SET kudos = $2, comments = $3, liked = $4
		WHERE id = $1
	`, p.ID, p.Kudos, p.Comments, p.Liked)
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

	row := r.db.QueryRowContext(ctx, selectPosts+` WHERE id::text = $1`, id)
	p, err := scanPost(row)
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
	var p community.Post
	err := s.Scan(
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
		&p.CreatedAt,
	)
	return p, err
}
