package database

import (
	"context"
	"database/sql"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
  id INT PRIMARY KEY AUTO_INCREMENT,
  username VARCHAR(100) NOT NULL UNIQUE,
  email VARCHAR(255) NOT NULL UNIQUE,
  password VARCHAR(255) NOT NULL,
  full_name VARCHAR(255),
  role ENUM('user', 'admin') DEFAULT 'user',
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

const createSheetMusicTable = `
CREATE TABLE IF NOT EXISTS sheet_music (
  id INT PRIMARY KEY AUTO_INCREMENT,
  title VARCHAR(255) NOT NULL,
  composer VARCHAR(255),
  composer_dates VARCHAR(50),
  opus VARCHAR(100),
  arranger VARCHAR(255),
  instrumentation VARCHAR(255),
  ` + "`key`" + ` VARCHAR(50),
  tempo VARCHAR(100),
  difficulty VARCHAR(50),
  duration DECIMAL(5,2),
  publisher VARCHAR(255),
  year_published INT,
  location VARCHAR(500),
  notes TEXT,
  user_id INT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
)`

// EnsureSchema creates the users and sheet_music tables when absent. Users
// must exist first because sheet_music references it. Nothing is altered on
// an existing installation.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range []string{createUsersTable, createSheetMusicTable} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}
