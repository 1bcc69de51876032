package service

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/somnus/internal/db"
	"github.com/alexanderramin/somnus/internal/report"
	"github.com/alexanderramin/somnus/internal/repository"
	"github.com/alexanderramin/somnus/internal/testutil"
)

type testServices struct {
	db      *sql.DB
	logs    *repository.SQLSleepLogRepo
	profile ProfileService
	diary   DiaryService
	report  ReportService
}

func setupServices(t *testing.T, opts ...ReportOption) testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	users := repository.NewUserRepo(database, db.SQLite)
	logs := repository.NewSleepLogRepo(database, db.SQLite)
	profile := NewProfileService(users)
	gen := report.NewGenerator(report.DefaultLayout(), report.WithPDFOptions(report.PDFOptions{Uncompressed: true}))
	return testServices{
		db:      database,
		logs:    logs,
		profile: profile,
		diary:   NewDiaryService(profile, logs, db.NewUnitOfWork(database), db.SQLite),
		report:  NewReportService(profile, logs, gen, opts...),
	}
}
