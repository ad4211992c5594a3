package user

// userColumns is the projection every query returns, in scanUser order.
const userColumns = `uuid, email, password_hash, role, created_at, updated_at`

const (
	SelectUserByID    = `SELECT ` + userColumns + ` FROM users WHERE uuid = $1`
	SelectUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	InsertUser        = `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING ` + userColumns
)
