package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/addrkeeper/internal/shared"
)

func (a *App) Addresses(ctx context.Context) error {
	list, err := a.api.ListAddresses(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No addresses saved")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tADDRESS\tCITY\tPINCODE\tSTATE")
	for _, ad := range list {
		fmt.Fprintf(tw, "%s\t%s, %s\t%s\t%s\t%s\n",
			ad.ID, ad.FlatBuildingName, ad.Locality, ad.City, ad.Pincode, ad.State.StateName)
	}
	return tw.Flush()
}

func (a *App) AddAddress(ctx context.Context) error {
	v, err := a.prompt("Flat / building name", "Locality", "City", "Pincode", "State id (see 'states')")
	if err != nil {
		return err
	}

	res, err := a.api.SaveAddress(ctx, shared.SaveAddressRequest{
		FlatBuildingName: v[0],
		Locality:         v[1],
		City:             v[2],
		Pincode:          v[3],
		StateUUID:        v[4],
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (id %s)\n", res.Status, res.ID)
	return nil
}

func (a *App) DeleteAddress(ctx context.Context, id string) error {
	res, err := a.api.DeleteAddress(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, res.Status)
	return nil
}

func (a *App) States(ctx context.Context) error {
	list, err := a.api.ListStates(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATE")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.StateName)
	}
	return tw.Flush()
}
