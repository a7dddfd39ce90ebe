package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/autokeeper/internal/client/client"
	"github.com/dmitrijs2005/autokeeper/internal/client/models"
)

func (a *App) Reminders(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}
	filter := models.ReminderFilterActive
	if len(args) > 1 {
		filter = models.ParseReminderFilter(args[1])
	}

	rs, p, err := a.api.ListReminders(ctx, vehicleID, filter, 0, 0)
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		fmt.Fprintln(a.out, "No reminders")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tDONE")
	for _, r := range rs {
		due := "-"
		switch {
		case r.Type == models.ReminderByDate && r.DueDate != nil:
			due = r.DueDate.Format(dateLayout)
		case r.Type == models.ReminderByMileage && r.DueMileage != nil:
			due = fmt.Sprintf("%d km", *r.DueMileage)
		}
		done := "no"
		if r.IsCompleted {
			done = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, due, done)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printPagination(p)
	return nil
}

func (a *App) AddReminder(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}

	var in client.ReminderInput
	if in.Title, err = requiredText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Type, err = requiredText(a.reader, "Type (date or mileage)", a.out); err != nil {
		return err
	}
	switch models.ReminderType(in.Type) {
	case models.ReminderByDate:
		due, err := requiredText(a.reader, "Due date (YYYY-MM-DD)", a.out)
		if err != nil {
			return err
		}
		in.DueDate = &due
	case models.ReminderByMileage:
		due, err := requiredInt(a.reader, "Due mileage", a.out)
		if err != nil {
			return err
		}
		in.DueMileage = &due
	}
	if in.Notes, err = optionalText(a.reader, "Notes", a.out); err != nil {
		return err
	}

	r, err := a.api.CreateReminder(ctx, vehicleID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reminder added: %s\n", r.ID)
	return nil
}

func (a *App) Complete(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}
	id, err := a.arg(args, 1, "Reminder id")
	if err != nil {
		return err
	}

	r, err := a.api.CompleteReminder(ctx, vehicleID, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reminder %q marked as completed\n", r.Title)
	return nil
}
