package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"time"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/trezcool/agendai/core/datetime"
	"github.com/trezcool/agendai/core/due"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
	"github.com/trezcool/agendai/core/week"
	"github.com/trezcool/agendai/storage/database/migrations"
)

var (
	gooseRunFunc = goose.RunFS // mockable

	errHelp = errors.New("help provided")
	errNoDB = errors.New("no postgres database configured (in-memory store)")
)

type commandLine struct {
	db          *sqlx.DB // nil with the in-memory store
	homeworkSvc *homework.Service
	scheduleSvc *schedule.Service
	out         io.Writer
	now         func() time.Time
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]                      - run a goose command (up, down, status, ...)")
	fmt.Println("  due -at TIMESTAMP [-now TIMESTAMP]          - classify a due date")
	fmt.Println("  week -date DATE [-today DATE]               - week offset of a date")
	fmt.Println("  homework -user UUID [-all] [-now TIMESTAMP] - list a student's homework")
	fmt.Println("  schedule -user UUID [-week N] [-now TIMESTAMP] - print a student's week")
	fmt.Println("  remind -user UUID -email EMAIL [-now TIMESTAMP] - email urgent homework")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	dueCmd := flag.NewFlagSet("due", flag.ContinueOnError)
	dueAt := dueCmd.String("at", "", "The due date (ISO-8601).")
	dueNow := dueCmd.String("now", "", "The reference time (ISO-8601). Defaults to now.")

	weekCmd := flag.NewFlagSet("week", flag.ContinueOnError)
	weekDate := weekCmd.String("date", "", "The date to locate (YYYY-MM-DD).")
	weekToday := weekCmd.String("today", "", "The reference date (YYYY-MM-DD). Defaults to today.")

	homeworkCmd := flag.NewFlagSet("homework", flag.ContinueOnError)
	homeworkUser := homeworkCmd.String("user", "", "The student's id.")
	homeworkAll := homeworkCmd.Bool("all", false, "Include completed homework.")
	homeworkNow := homeworkCmd.String("now", "", "The reference time (ISO-8601). Defaults to now.")

	scheduleCmd := flag.NewFlagSet("schedule", flag.ContinueOnError)
	scheduleUser := scheduleCmd.String("user", "", "The student's id.")
	scheduleWeek := scheduleCmd.Int("week", 0, "The week offset from the current week.")
	scheduleNow := scheduleCmd.String("now", "", "The reference time (ISO-8601). Defaults to now.")

	remindCmd := flag.NewFlagSet("remind", flag.ContinueOnError)
	remindUser := remindCmd.String("user", "", "The student's id.")
	remindEmail := remindCmd.String("email", "", "The address to send the reminder to.")
	remindNow := remindCmd.String("now", "", "The reference time (ISO-8601). Defaults to now.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "due":
		if err := parseFlags(dueCmd, args[2:]); err != nil {
			return err
		}
		if *dueAt == "" {
			dueCmd.Usage()
			return errHelp
		}
		now, err := cli.parseNow(*dueNow)
		if err != nil {
			return err
		}
		return cli.due(*dueAt, now)

	case "week":
		if err := parseFlags(weekCmd, args[2:]); err != nil {
			return err
		}
		if *weekDate == "" {
			weekCmd.Usage()
			return errHelp
		}
		today := datetime.Midnight(cli.now())
		if *weekToday != "" {
			t, err := datetime.ParseDate(*weekToday)
			if err != nil {
				return pkgerrors.Wrap(err, "parsing -today")
			}
			today = t
		}
		return cli.week(*weekDate, today)

	case "homework":
		if err := parseFlags(homeworkCmd, args[2:]); err != nil {
			return err
		}
		if *homeworkUser == "" {
			homeworkCmd.Usage()
			return errHelp
		}
		now, err := cli.parseNow(*homeworkNow)
		if err != nil {
			return err
		}
		return cli.listHomework(*homeworkUser, *homeworkAll, now)

	case "schedule":
		if err := parseFlags(scheduleCmd, args[2:]); err != nil {
			return err
		}
		if *scheduleUser == "" {
			scheduleCmd.Usage()
			return errHelp
		}
		now, err := cli.parseNow(*scheduleNow)
		if err != nil {
			return err
		}
		return cli.printSchedule(*scheduleUser, *scheduleWeek, now)

	case "remind":
		if err := parseFlags(remindCmd, args[2:]); err != nil {
			return err
		}
		if *remindUser == "" || *remindEmail == "" {
			remindCmd.Usage()
			return errHelp
		}
		now, err := cli.parseNow(*remindNow)
		if err != nil {
			return err
		}
		return cli.remind(*remindUser, *remindEmail, now)

	default:
		cli.printUsage()
		return errHelp
	}
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) parseNow(raw string) (time.Time, error) {
	if raw == "" {
		return cli.now(), nil
	}
	t, err := datetime.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(err, "parsing -now")
	}
	return t, nil
}

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDB
	}
	return gooseRunFunc(args[0], cli.db.DB, migrations.FS, migrations.Dir, args[1:]...)
}

func (cli *commandLine) due(rawDueAt string, now time.Time) error {
	dueAt, err := datetime.ParseTimestamp(rawDueAt, now.Location())
	if err != nil {
		return pkgerrors.Wrap(err, "parsing -at")
	}
	st := due.Classify(dueAt, now)
	_, _ = fmt.Fprintf(cli.out, "%s (%s, %d days)\n", tierColor(st.Tier).Sprint(st.Label), st.Tier, st.DaysUntil)
	return nil
}

func (cli *commandLine) week(rawDate string, today time.Time) error {
	date, err := datetime.ParseDate(rawDate)
	if err != nil {
		return pkgerrors.Wrap(err, "parsing -date")
	}
	offset := week.OffsetOf(date, today)
	_, _ = fmt.Fprintf(cli.out, "%+d: %s\n", offset, week.ForOffset(today, offset).Label())
	return nil
}

func (cli *commandLine) listHomework(userID string, all bool, now time.Time) error {
	filter := homework.QueryFilter{Status: homework.StatusPending}
	if all {
		filter.Status = homework.StatusAll
	}
	tasks, err := cli.homeworkSvc.List(context.Background(), userID, filter, now, nil)
	if err != nil {
		return err
	}
	printTasks(cli.out, tasks)
	return nil
}

func (cli *commandLine) printSchedule(userID string, offset int, now time.Time) error {
	w, err := cli.scheduleSvc.Week(context.Background(), userID, offset, now, nil)
	if err != nil {
		return err
	}
	printWeek(cli.out, w)
	return nil
}

func (cli *commandLine) remind(userID, email string, now time.Time) error {
	to, err := mail.ParseAddress(email)
	if err != nil {
		return pkgerrors.Wrap(err, "parsing -email")
	}
	n, err := cli.homeworkSvc.SendReminders(context.Background(), userID, *to, now, nil)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "%d urgent homework sent to %s\n", n, to.Address)
	return nil
}
