package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT user_id, email, password, first_name, last_name, phone, address, role, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT user_id, email, password, first_name, last_name, phone, address, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (email, password, first_name, last_name, phone, address, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			password = $2,
			first_name = $3,
			last_name = $4,
			phone = $5,
			address = $6,
			updated_at = $7
		WHERE user_id = $8
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(getUserByIDQuery, id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(getUserByEmailQuery, email)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		u.Email,
		u.Password,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.Address,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}

	u.ID = id
	return u, nil
}

func (r *PostgresRepository) Update(id int, upd User) (User, error) {
	result, err := r.db.Exec(
		updateUserQuery,
		upd.Email,
		upd.Password,
		upd.FirstName,
		upd.LastName,
		upd.Phone,
		upd.Address,
		upd.UpdatedAt,
		id,
	)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func scanUser(scanner rowScanner) (User, error) {
	u := User{}
	var createdAt sql.NullString
	var updatedAt sql.NullString

	if err := scanner.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Address,
		&u.Role,
		&createdAt,
		&updatedAt,
	); err != nil {
		return User{}, err
	}

	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.String
	}

	return u, nil
}
