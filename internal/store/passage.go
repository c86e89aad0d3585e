package store

import (
	"context"
	"errors"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// PassageStore reads and writes HR document passages in the pgvector index.
type PassageStore struct {
	db *pgxpool.Pool
}

func NewPassageStore(db *pgxpool.Pool) *PassageStore {
	return &PassageStore{db: db}
}

func (s *PassageStore) Create(ctx context.Context, p *domain.Passage) error {
	var embedding *pgvector.Vector
	if len(p.Embedding) > 0 {
		v := pgvector.NewVector(p.Embedding)
		embedding = &v
	}

	if p.FileType == "" {
		p.FileType = "text"
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO hr_passages (source_file, file_type, location, content, embedding)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.SourceFile, p.FileType, p.Location, p.Content, embedding,
	).Scan(&p.ID, &p.CreatedAt)
}

func (s *PassageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Passage, error) {
	p := &domain.Passage{}
	err := s.db.QueryRow(ctx,
		`SELECT id, source_file, file_type, location, content, created_at
		 FROM hr_passages WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.SourceFile, &p.FileType, &p.Location, &p.Content, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PassageStore) Search(ctx context.Context, embedding []float32, opts domain.SearchOpts) ([]domain.PassageWithScore, error) {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}

	vec := pgvector.NewVector(embedding)
	rows, err := s.db.Query(ctx,
		`SELECT id, source_file, file_type, location, content, created_at,
		        1 - (embedding <=> $1) AS score
		 FROM hr_passages
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, opts.TopK,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.PassageWithScore
	for rows.Next() {
		var p domain.PassageWithScore
		if err := rows.Scan(&p.ID, &p.SourceFile, &p.FileType, &p.Location, &p.Content, &p.CreatedAt, &p.Score); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func (s *PassageStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM hr_passages`).Scan(&count)
	return count, err
}

func (s *PassageStore) DeleteBySourceFile(ctx context.Context, sourceFile string) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM hr_passages WHERE source_file = $1`,
		sourceFile,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
