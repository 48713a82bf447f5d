package persistent

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	_ "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func PgOpen(ctx context.Context, pgDsn string) *bun.DB {
	sqldb, err := sql.Open("pg", pgDsn)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open pg database.")
	}
	err = sqldb.Ping()
	if err != nil {
		logrus.WithError(err).Fatalln("Could not ping pg database.")
	}

	bdb := bun.NewDB(sqldb, pgdialect.New())
	if os.Getenv("DB_VERBOSE") == "true" {
		bdb.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return bdb
}

// Running integration tests requires a real pg instance, but starting a db
// for every test takes too long, so one db is started once (see TestMain)
// and its datasource is shared through the environment.

func PgOpenTest(ctx context.Context) *bun.DB {
	return PgOpen(ctx, TestEnvDsn())
}

func TestEnvDsn() string {
	return os.Getenv("PGDB_DSN")
}

func SetTestEnvDsn(dsn string) {
	os.Setenv("PGDB_DSN", dsn)
}

func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*User)(nil),
		(*Company)(nil),
		(*Activity)(nil),
		(*Like)(nil),
		(*Comment)(nil),
	}
	for _, model := range models {
		_, err := db.NewCreateTable().IfNotExists().Model(model).Exec(ctx)
		if err != nil {
			return fmt.Errorf("create table %v: %w", reflect.TypeOf(model), err)
		}
	}
	return nil
}

// EnsureCompany inserts the singleton company row if it does not exist yet.
func EnsureCompany(ctx context.Context, db *bun.DB, name string, logoUrl string) error {
	company := &Company{
		Id:      companyId,
		Name:    name,
		LogoUrl: logoUrl,
	}
	_, err := db.NewInsert().
		Model(company).
		On(`CONFLICT (id) DO NOTHING`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}
