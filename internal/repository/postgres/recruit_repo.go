package postgres

import (
	"context"
	"errors"

	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type recruitRepo struct {
	db *pgxpool.Pool
}

func NewRecruitRepository(db *pgxpool.Pool) domain.RecruitRepository {
	return &recruitRepo{db: db}
}

const recruitColumns = `r.id, r.user_id, r.title, r.content, r.recruit_type, r.progress_type,
       r.positions, r.tech_stacks, r.member_count, r.duration, r.contact_method, r.contact_link,
       r.status, r.created_at, r.updated_at,
       u.id, u.username, u.name, u.bio, u.profile_image_url`

func scanRecruit(row pgx.Row) (*domain.Recruit, error) {
	var rec domain.Recruit
	var author domain.UserSummary
	var positions, techStacks []string
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Title, &rec.Content, &rec.RecruitType, &rec.ProgressType,
		pq.Array(&positions), pq.Array(&techStacks), &rec.MemberCount, &rec.Duration,
		&rec.ContactMethod, &rec.ContactLink, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		&author.ID, &author.Username, &author.Name, &author.Bio, &author.ProfileImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	rec.Positions = positions
	rec.TechStacks = techStacks
	rec.Author = &author
	return &rec, nil
}

func (r *recruitRepo) Create(ctx context.Context, recruit *domain.Recruit) error {
	query := `INSERT INTO recruits
              (user_id, title, content, recruit_type, progress_type, positions, tech_stacks,
               member_count, duration, contact_method, contact_link, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		recruit.UserID, recruit.Title, recruit.Content, recruit.RecruitType, recruit.ProgressType,
		pq.Array(recruit.Positions), pq.Array(recruit.TechStacks),
		recruit.MemberCount, recruit.Duration, recruit.ContactMethod, recruit.ContactLink,
		recruit.Status,
	).Scan(&recruit.ID, &recruit.CreatedAt, &recruit.UpdatedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *recruitRepo) GetByID(ctx context.Context, id int64) (*domain.Recruit, error) {
	query := `SELECT ` + recruitColumns + `
              FROM recruits r
              JOIN users u ON u.id = r.user_id
              WHERE r.id = $1 AND r.deleted_at IS NULL`
	return scanRecruit(r.db.QueryRow(ctx, query, id))
}

func (r *recruitRepo) List(ctx context.Context) ([]domain.Recruit, error) {
	query := `SELECT ` + recruitColumns + `
              FROM recruits r
              JOIN users u ON u.id = r.user_id
              WHERE r.deleted_at IS NULL AND u.deleted_at IS NULL
              ORDER BY r.created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	recruits := make([]domain.Recruit, 0)
	for rows.Next() {
		rec, err := scanRecruit(rows)
		if err != nil {
			return nil, err
		}
		recruits = append(recruits, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return recruits, nil
}

func (r *recruitRepo) Update(ctx context.Context, recruit *domain.Recruit) error {
	query := `UPDATE recruits
              SET title = $2, content = $3, recruit_type = $4, progress_type = $5,
                  positions = $6, tech_stacks = $7, member_count = $8, duration = $9,
                  contact_method = $10, contact_link = $11, updated_at = now()
              WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.Exec(ctx, query,
		recruit.ID, recruit.Title, recruit.Content, recruit.RecruitType, recruit.ProgressType,
		pq.Array(recruit.Positions), pq.Array(recruit.TechStacks),
		recruit.MemberCount, recruit.Duration, recruit.ContactMethod, recruit.ContactLink)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *recruitRepo) UpdateStatus(ctx context.Context, id int64, status domain.RecruitStatus) error {
	query := `UPDATE recruits SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.db.Exec(ctx, query, id, status); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *recruitRepo) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE recruits SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *recruitRepo) IsBookmarked(ctx context.Context, userID, recruitID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM recruit_bookmarks WHERE user_id = $1 AND recruit_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, recruitID).Scan(&exists); err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (r *recruitRepo) AddBookmark(ctx context.Context, userID, recruitID int64) error {
	query := `INSERT INTO recruit_bookmarks (user_id, recruit_id, created_at) VALUES ($1, $2, now())`
	_, err := r.db.Exec(ctx, query, userID, recruitID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Concurrent toggle, the bookmark already landed
			return nil
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *recruitRepo) RemoveBookmark(ctx context.Context, userID, recruitID int64) error {
	query := `DELETE FROM recruit_bookmarks WHERE user_id = $1 AND recruit_id = $2`
	if _, err := r.db.Exec(ctx, query, userID, recruitID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *recruitRepo) ListBookmarkedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	query := `SELECT recruit_id FROM recruit_bookmarks WHERE user_id = $1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.Internal(err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return ids, nil
}
