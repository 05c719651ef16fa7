package migrations

import (
	"database/sql"
	"github.com/lopezator/migrator"
)

func Up(db *sql.DB) error {
	m, err := migrator.New(
		migrator.Migrations(
			&migrator.MigrationNoTx{
				Name: "Create sessions table",
				Func: createSessionsTable,
			},
			&migrator.MigrationNoTx{
				Name: "Create sessions expiration index",
				Func: createSessionsExpirationIndex,
			},
		),
	)
	if err != nil {
		return err
	}

	return m.Migrate(db)
}

func createSessionsTable(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE sessions
(
    key           varchar(64)  PRIMARY KEY,
    access_token  text         NOT NULL,
    user_id       bigint       NOT NULL,
    full_name     varchar(255) NOT NULL DEFAULT '',
    email_address varchar(255) NOT NULL DEFAULT '',
    phone_number  varchar(20)  NOT NULL DEFAULT '',
    home_address  text         NOT NULL DEFAULT '',
    role          varchar(32)  NOT NULL,
    expires_at    timestamptz  NOT NULL,
    created_at    timestamptz  NOT NULL DEFAULT now()
)
	`)

	return err
}

func createSessionsExpirationIndex(db *sql.DB) error {
	_, err := db.Exec("CREATE INDEX sessions_expires_at_idx ON sessions (expires_at)")

	return err
}
