package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/autokeeper/internal/client/client"
)

func (a *App) Vehicles(ctx context.Context, _ []string) error {
	vs, err := a.api.ListVehicles(ctx)
	if err != nil {
		return err
	}
	if len(vs) == 0 {
		fmt.Fprintln(a.out, "No vehicles yet (use 'addvehicle')")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMAKE\tMODEL\tYEAR\tMILEAGE")
	for _, v := range vs {
		mileage := "-"
		if v.Mileage != nil {
			mileage = fmt.Sprint(*v.Mileage)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", v.ID, v.Name, v.Make, v.VehicleModel, v.Year, mileage)
	}
	return tw.Flush()
}

func (a *App) AddVehicle(ctx context.Context, _ []string) error {
	var (
		in  client.VehicleInput
		err error
	)
	if in.Name, err = requiredText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if in.Make, err = requiredText(a.reader, "Make", a.out); err != nil {
		return err
	}
	if in.VehicleModel, err = requiredText(a.reader, "Model", a.out); err != nil {
		return err
	}
	if in.Year, err = requiredInt(a.reader, "Year", a.out); err != nil {
		return err
	}
	if in.Mileage, err = optionalInt(a.reader, "Mileage", a.out); err != nil {
		return err
	}

	v, err := a.api.CreateVehicle(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vehicle added: %s\n", v.ID)
	return nil
}
