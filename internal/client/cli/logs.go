package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/autokeeper/internal/client/client"
	"github.com/dmitrijs2005/autokeeper/internal/client/models"
	"github.com/dmitrijs2005/autokeeper/internal/filex"
)

const dateLayout = "2006-01-02"

func (a *App) printPagination(p *models.Pagination) {
	if p != nil && p.TotalPages > 1 {
		fmt.Fprintf(a.out, "page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	}
}

func (a *App) Fuel(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}
	logs, p, err := a.api.ListFuelLogs(ctx, vehicleID, 0, 0)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No fuel logs")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tMILEAGE\tAMOUNT\tCOST")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n", l.ID, l.Date.Format(dateLayout), l.Mileage, l.FuelAmount, l.TotalCost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printPagination(p)
	return nil
}

func (a *App) AddFuel(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}

	var in client.FuelLogInput
	if in.Date, err = optionalText(a.reader, "Date (YYYY-MM-DD, empty for today)", a.out); err != nil {
		return err
	}
	if in.Mileage, err = requiredInt(a.reader, "Mileage", a.out); err != nil {
		return err
	}
	if in.FuelAmount, err = requiredFloat(a.reader, "Fuel amount", a.out); err != nil {
		return err
	}
	if in.TotalCost, err = requiredFloat(a.reader, "Total cost", a.out); err != nil {
		return err
	}
	if in.Notes, err = optionalText(a.reader, "Notes", a.out); err != nil {
		return err
	}

	l, err := a.api.CreateFuelLog(ctx, vehicleID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Fuel log added: %s\n", l.ID)
	return nil
}

func (a *App) Services(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}
	logs, p, err := a.api.ListServiceLogs(ctx, vehicleID, 0, 0)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No service logs")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tMILEAGE\tTYPE\tCOST\tRECEIPT")
	for _, l := range logs {
		receipt := "no"
		if l.ReceiptKey != nil {
			receipt = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.2f\t%s\n", l.ID, l.Date.Format(dateLayout), l.Mileage, l.ServiceType, l.TotalCost, receipt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printPagination(p)
	return nil
}

func (a *App) AddService(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}

	var in client.ServiceLogInput
	if in.Date, err = optionalText(a.reader, "Date (YYYY-MM-DD, empty for today)", a.out); err != nil {
		return err
	}
	if in.Mileage, err = requiredInt(a.reader, "Mileage", a.out); err != nil {
		return err
	}
	if in.ServiceType, err = requiredText(a.reader, "Service type", a.out); err != nil {
		return err
	}
	if in.Description, err = optionalText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if in.Mechanic, err = optionalText(a.reader, "Mechanic", a.out); err != nil {
		return err
	}
	if in.TotalCost, err = optionalFloat(a.reader, "Total cost", a.out); err != nil {
		return err
	}
	if in.Notes, err = optionalText(a.reader, "Notes", a.out); err != nil {
		return err
	}

	l, err := a.api.CreateServiceLog(ctx, vehicleID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Service log added: %s\n", l.ID)
	return nil
}

// Receipt uploads a file when a path is given, otherwise prints a
// temporary download link for the stored receipt.
func (a *App) Receipt(ctx context.Context, args []string) error {
	vehicleID, err := a.arg(args, 0, "Vehicle id")
	if err != nil {
		return err
	}
	logID, err := a.arg(args, 1, "Service log id")
	if err != nil {
		return err
	}

	if len(args) < 3 {
		u, err := a.api.ReceiptDownloadURL(ctx, vehicleID, logID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Download (valid until %s):\n%s\n", u.ExpiresAt.Local().Format("15:04"), u.URL)
		return nil
	}

	f, size, contentType, err := filex.OpenUpload(args[2])
	if err != nil {
		return err
	}
	defer f.Close()

	u, err := a.api.ReceiptUploadURL(ctx, vehicleID, logID)
	if err != nil {
		return err
	}
	if err := a.api.UploadReceipt(ctx, u.URL, f, size, contentType); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Receipt uploaded: %s\n", u.Key)
	return nil
}
