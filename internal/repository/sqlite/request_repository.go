package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

const createRequestsTable = `
CREATE TABLE IF NOT EXISTS connection_requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_user_id INTEGER NOT NULL REFERENCES users(id),
	to_user_id INTEGER NOT NULL REFERENCES users(id),
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	CHECK (from_user_id <> to_user_id)
);
`

// One record per unordered user pair, whichever direction it was sent in.
// The index is what makes concurrent opposite-direction sends lose cleanly.
const createRequestsPairIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_connection_requests_pair
ON connection_requests (min(from_user_id, to_user_id), max(from_user_id, to_user_id));
`

type RequestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRequestsTable); err != nil {
		return fmt.Errorf("create connection_requests table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createRequestsPairIndex); err != nil {
		return fmt.Errorf("create connection_requests pair index: %w", err)
	}
	return nil
}

func (r *RequestRepository) Create(ctx context.Context, request *domain.ConnectionRequest) (int64, error) {
	now := time.Now().UTC()
	request.CreatedAt = now
	request.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO connection_requests (from_user_id, to_user_id, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		request.FromUserID,
		request.ToUserID,
		string(request.Status),
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("connection request already exists: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert connection request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("connection request last insert id: %w", err)
	}
	request.ID = id
	return id, nil
}

const requestColumns = `id, from_user_id, to_user_id, status, created_at, updated_at`

func (r *RequestRepository) Get(ctx context.Context, id int64) (*domain.ConnectionRequest, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+requestColumns+`
FROM connection_requests
WHERE id = ?`,
		id,
	)
	return scanRequest(row)
}

func (r *RequestRepository) Review(ctx context.Context, id, recipientID int64, status domain.RequestStatus) (*domain.ConnectionRequest, error) {
	// Single conditional update: the recipient and current-status checks ride
	// in the WHERE clause so two concurrent reviews can never both succeed.
	res, err := r.db.ExecContext(ctx, `
UPDATE connection_requests
SET status=?, updated_at=?
WHERE id=? AND to_user_id=? AND status=?`,
		string(status),
		time.Now().UTC(),
		id,
		recipientID,
		string(domain.RequestStatusInterested),
	)
	if err != nil {
		return nil, fmt.Errorf("review connection request: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("review rows affected: %w", err)
	}
	if aff == 0 {
		return nil, fmt.Errorf("connection request: %w", repository.ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *RequestRepository) ListReceived(ctx context.Context, toUserID int64, status domain.RequestStatus) ([]domain.ConnectionRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+requestColumns+`
FROM connection_requests
WHERE to_user_id = ? AND status = ?
ORDER BY id ASC`,
		toUserID,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("query received requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *RequestRepository) ListForUser(ctx context.Context, userID int64, status domain.RequestStatus) ([]domain.ConnectionRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+requestColumns+`
FROM connection_requests
WHERE (from_user_id = ? OR to_user_id = ?) AND status = ?
ORDER BY id ASC`,
		userID,
		userID,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("query requests for user: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *RequestRepository) CounterpartIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT to_user_id FROM connection_requests WHERE from_user_id = ?
UNION
SELECT from_user_id FROM connection_requests WHERE to_user_id = ?`,
		userID,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query counterpart ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan counterpart id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func collectRequests(rows *sql.Rows) ([]domain.ConnectionRequest, error) {
	var requests []domain.ConnectionRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}
	return requests, rows.Err()
}

func scanRequest(scanner interface {
	Scan(dest ...any) error
}) (*domain.ConnectionRequest, error) {
	var (
		request domain.ConnectionRequest
		status  string
	)
	if err := scanner.Scan(
		&request.ID,
		&request.FromUserID,
		&request.ToUserID,
		&status,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("connection request: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan connection request: %w", err)
	}
	request.Status = domain.RequestStatus(status)
	return &request, nil
}
