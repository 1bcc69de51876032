package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/somnus/internal/db"
	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/repository"
)

type diaryService struct {
	profiles ProfileService
	logs     repository.SleepLogRepo
	uow      db.UnitOfWork
	dialect  db.Dialect
	observer UseCaseObserver
}

func NewDiaryService(
	profiles ProfileService,
	logs repository.SleepLogRepo,
	uow db.UnitOfWork,
	dialect db.Dialect,
	observers ...UseCaseObserver,
) DiaryService {
	return &diaryService{
		profiles: profiles,
		logs:     logs,
		uow:      uow,
		dialect:  dialect,
		observer: firstObserver(observers),
	}
}

func (s *diaryService) SaveDay(ctx context.Context, username string, l *domain.SleepLog) (err error) {
	fields := map[string]any{"date": l.DateKey()}
	defer observe(ctx, s.observer, "save-day", time.Now(), fields, &err)

	u, err := s.profiles.EnsureUser(ctx, username)
	if err != nil {
		return err
	}
	l.UserID = u.ID
	if err = l.Validate(); err != nil {
		return err
	}
	l.ToiletCount = l.CountToilets()
	fields["segments"] = len(l.Segments)
	fields["events"] = len(l.Events)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSleepLogRepo(tx, s.dialect).Save(ctx, l)
	})
}

func (s *diaryService) ImportDays(ctx context.Context, username string, logs []*domain.SleepLog) (n int, err error) {
	fields := map[string]any{"days": len(logs)}
	defer observe(ctx, s.observer, "import-days", time.Now(), fields, &err)

	u, err := s.profiles.EnsureUser(ctx, username)
	if err != nil {
		return 0, err
	}
	for _, l := range logs {
		l.UserID = u.ID
		if err = l.Validate(); err != nil {
			return 0, fmt.Errorf("%s: %w", l.DateKey(), err)
		}
		l.ToiletCount = l.CountToilets()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSleepLogRepo(tx, s.dialect)
		for _, l := range logs {
			if err := repo.Save(ctx, l); err != nil {
				return fmt.Errorf("saving %s: %w", l.DateKey(), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(logs), nil
}

func (s *diaryService) GetDay(ctx context.Context, username string, date time.Time) (*domain.SleepLog, error) {
	u, err := s.profiles.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.logs.GetByDate(ctx, u.ID, date)
}

func (s *diaryService) DeleteDay(ctx context.Context, username string, date time.Time) (err error) {
	defer observe(ctx, s.observer, "delete-day", time.Now(), map[string]any{"date": date.Format(domain.DateLayout)}, &err)

	u, err := s.profiles.Get(ctx, username)
	if err != nil {
		return err
	}
	return s.logs.Delete(ctx, u.ID, date)
}

func (s *diaryService) MonthSummary(ctx context.Context, username string, month domain.Month) ([]DaySummary, error) {
	days := make([]DaySummary, month.Days())
	for i := range days {
		days[i].Date = month.First().AddDate(0, 0, i)
	}

	u, err := s.profiles.Get(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return days, nil
		}
		return nil, err
	}
	logs, err := s.logs.ListRange(ctx, u.ID, month.First(), month.Last())
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		res := normalizeLog(l)
		d := &days[dayIndex(l)]
		d.Logged = true
		d.TotalSleep = res.TotalSleep
		d.Sleepiness = l.Sleepiness
		d.ToiletCount = l.ToiletCount
		d.Events = eventKinds(l)
		d.Memo = l.Memo
		d.Skipped = len(res.Skips)
	}
	return days, nil
}
