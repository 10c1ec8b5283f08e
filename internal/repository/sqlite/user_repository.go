package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	age INTEGER NOT NULL DEFAULT 0,
	gender TEXT NOT NULL DEFAULT '',
	about TEXT NOT NULL DEFAULT '',
	skills TEXT NOT NULL DEFAULT '[]',
	profile_pic TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	skills, err := marshalSkills(user.Skills)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (first_name, last_name, email, password_hash, age, gender, about, skills, profile_pic, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.Gender,
		user.About,
		skills,
		user.ProfilePic,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("email already registered: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

const userColumns = `id, first_name, last_name, email, password_hash, age, gender, about, skills, profile_pic, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()

	skills, err := marshalSkills(user.Skills)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
UPDATE users
SET first_name=?, last_name=?, email=?, age=?, gender=?, about=?, skills=?, profile_pic=?, updated_at=?
WHERE id=?`,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Age,
		user.Gender,
		user.About,
		skills,
		user.ProfilePic,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("email already registered: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE users
SET password_hash=?, updated_at=?
WHERE id=?`,
		passwordHash,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

func (r *UserRepository) ListExcluding(ctx context.Context, excludeIDs []int64, offset, limit int) ([]domain.User, error) {
	var (
		where string
		args  []interface{}
	)
	if len(excludeIDs) > 0 {
		placeholders := make([]string, len(excludeIDs))
		for i, id := range excludeIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		where = fmt.Sprintf("WHERE id NOT IN (%s)", strings.Join(placeholders, ","))
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT `+userColumns+`
FROM users
%s
ORDER BY id ASC
LIMIT ? OFFSET ?`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user   domain.User
		skills string
	)
	if err := scanner.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.Gender,
		&user.About,
		&skills,
		&user.ProfilePic,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if skills != "" {
		if err := json.Unmarshal([]byte(skills), &user.Skills); err != nil {
			return nil, fmt.Errorf("decode user skills: %w", err)
		}
	}
	return &user, nil
}

func marshalSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encode user skills: %w", err)
	}
	return string(raw), nil
}
