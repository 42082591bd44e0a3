package postgres

import (
	"context"
	"errors"

	"devso-backend/internal/domain"
	"devso-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, password, name, bio, profile_image_url, portfolio, phone, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Name, &u.Bio,
		&u.ProfileImageURL, &u.Portfolio, &u.Phone, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *userRepo) GetProfileByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}

	profile := &domain.UserProfile{
		User:           *user,
		Careers:        []domain.Career{},
		Educations:     []domain.Education{},
		Activities:     []domain.Activity{},
		Certifications: []domain.Certification{},
		Skills:         []domain.Skill{},
	}

	if err := r.loadCareers(ctx, user.ID, profile); err != nil {
		return nil, err
	}
	if err := r.loadEducations(ctx, user.ID, profile); err != nil {
		return nil, err
	}
	if err := r.loadActivities(ctx, user.ID, profile); err != nil {
		return nil, err
	}
	if err := r.loadCertifications(ctx, user.ID, profile); err != nil {
		return nil, err
	}
	if err := r.loadSkills(ctx, user.ID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *userRepo) loadCareers(ctx context.Context, userID int64, p *domain.UserProfile) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, company, position, start_date, end_date, description
         FROM careers WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.Career
		if err := rows.Scan(&c.ID, &c.Company, &c.Position, &c.StartDate, &c.EndDate, &c.Description); err != nil {
			return apperror.Internal(err)
		}
		p.Careers = append(p.Careers, c)
	}
	return rows.Err()
}

func (r *userRepo) loadEducations(ctx context.Context, userID int64, p *domain.UserProfile) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, school, major, degree, start_date, end_date
         FROM educations WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Major, &e.Degree, &e.StartDate, &e.EndDate); err != nil {
			return apperror.Internal(err)
		}
		p.Educations = append(p.Educations, e)
	}
	return rows.Err()
}

func (r *userRepo) loadActivities(ctx context.Context, userID int64, p *domain.UserProfile) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, start_date, end_date
         FROM activities WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.StartDate, &a.EndDate); err != nil {
			return apperror.Internal(err)
		}
		p.Activities = append(p.Activities, a)
	}
	return rows.Err()
}

func (r *userRepo) loadCertifications(ctx context.Context, userID int64, p *domain.UserProfile) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, issuer, issued_at
         FROM certifications WHERE user_id = $1 ORDER BY issued_at DESC`, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.Certification
		if err := rows.Scan(&c.ID, &c.Name, &c.Issuer, &c.IssuedAt); err != nil {
			return apperror.Internal(err)
		}
		p.Certifications = append(p.Certifications, c)
	}
	return rows.Err()
}

func (r *userRepo) loadSkills(ctx context.Context, userID int64, p *domain.UserProfile) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM skills WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return apperror.Internal(err)
		}
		p.Skills = append(p.Skills, s)
	}
	return rows.Err()
}

// UpdateProfile writes base fields and replaces any provided child
// collection inside one transaction, so a partial update is never visible.
func (r *userRepo) UpdateProfile(ctx context.Context, userID int64, req *domain.ProfileUpdateRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE users
              SET name = $2, bio = $3, profile_image_url = $4, portfolio = $5,
                  phone = $6, email = $7, updated_at = now()
              WHERE id = $1`
	_, err = tx.Exec(ctx, query, userID,
		req.Name, req.Bio, req.ProfileImageURL, req.Portfolio, req.Phone, req.Email)
	if err != nil {
		return apperror.Internal(err)
	}

	// Nil slice = keep existing rows; non-nil = replace wholesale.
	if req.Careers != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM careers WHERE user_id = $1`, userID); err != nil {
			return apperror.Internal(err)
		}
		for _, c := range req.Careers {
			_, err := tx.Exec(ctx,
				`INSERT INTO careers (user_id, company, position, start_date, end_date, description)
                 VALUES ($1, $2, $3, $4, $5, $6)`,
				userID, c.Company, c.Position, c.StartDate, c.EndDate, c.Description)
			if err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if req.Educations != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM educations WHERE user_id = $1`, userID); err != nil {
			return apperror.Internal(err)
		}
		for _, e := range req.Educations {
			_, err := tx.Exec(ctx,
				`INSERT INTO educations (user_id, school, major, degree, start_date, end_date)
                 VALUES ($1, $2, $3, $4, $5, $6)`,
				userID, e.School, e.Major, e.Degree, e.StartDate, e.EndDate)
			if err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if req.Activities != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE user_id = $1`, userID); err != nil {
			return apperror.Internal(err)
		}
		for _, a := range req.Activities {
			_, err := tx.Exec(ctx,
				`INSERT INTO activities (user_id, title, description, start_date, end_date)
                 VALUES ($1, $2, $3, $4, $5)`,
				userID, a.Title, a.Description, a.StartDate, a.EndDate)
			if err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if req.Certifications != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM certifications WHERE user_id = $1`, userID); err != nil {
			return apperror.Internal(err)
		}
		for _, c := range req.Certifications {
			_, err := tx.Exec(ctx,
				`INSERT INTO certifications (user_id, name, issuer, issued_at)
                 VALUES ($1, $2, $3, $4)`,
				userID, c.Name, c.Issuer, c.IssuedAt)
			if err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if req.Skills != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE user_id = $1`, userID); err != nil {
			return apperror.Internal(err)
		}
		for _, s := range req.Skills {
			_, err := tx.Exec(ctx,
				`INSERT INTO skills (user_id, name) VALUES ($1, $2)`, userID, s.Name)
			if err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = now() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, userID, passwordHash); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) Search(ctx context.Context, query string, excludeUserID int64) ([]domain.UserSummary, error) {
	sql := `SELECT id, username, name, bio, profile_image_url
            FROM users
            WHERE deleted_at IS NULL
              AND id <> $2
              AND (username ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
            ORDER BY username
            LIMIT 50`
	rows, err := r.db.Query(ctx, sql, query, excludeUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	users := make([]domain.UserSummary, 0)
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Bio, &u.ProfileImageURL); err != nil {
			return nil, apperror.Internal(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
