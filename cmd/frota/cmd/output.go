package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ssargent/frota/pkg/catalog"
	"github.com/ssargent/frota/pkg/storage"
	"github.com/ssargent/frota/pkg/vehicle"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// vehicleJSON is the JSON form of a record
type vehicleJSON struct {
	Plate string `json:"plate"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Date  string `json:"date"`
}

func toJSON(r vehicle.Record) vehicleJSON {
	return vehicleJSON{Plate: r.Plate(), Make: r.Make(), Model: r.Model(), Date: r.Date()}
}

func checkFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("unknown output format %q (use table or json)", format)
	}
	return nil
}

// outputVehicle displays a single record
func outputVehicle(w io.Writer, format string, r vehicle.Record) error {
	if format == formatJSON {
		return outputJSON(w, toJSON(r))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Plate:\t%s\n", r.Plate())
	fmt.Fprintf(tw, "Make:\t%s\n", r.Make())
	fmt.Fprintf(tw, "Model:\t%s\n", r.Model())
	fmt.Fprintf(tw, "Date:\t%s\n", r.Date())
	return tw.Flush()
}

// outputCatalog displays every record of cat
func outputCatalog(w io.Writer, format string, cat *catalog.Catalog) error {
	if format == formatJSON {
		vehicles := make([]vehicleJSON, 0, cat.Len())
		for r := range cat.All() {
			vehicles = append(vehicles, toJSON(r))
		}
		return outputJSON(w, vehicles)
	}

	if cat.Len() == 0 {
		_, err := fmt.Fprintln(w, "No vehicles found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATE\tMAKE\tMODEL\tDATE")
	for r := range cat.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Plate(), r.Make(), r.Model(), r.Date())
	}
	return tw.Flush()
}

// outputEntries displays journal entries
func outputEntries(w io.Writer, format string, entries []storage.Entry) error {
	if format == formatJSON {
		type entryJSON struct {
			ID string `json:"id"`
			storage.Entry
		}
		out := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryJSON{ID: e.ID.String(), Entry: e})
		}
		return outputJSON(w, out)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No journal entries")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOP\tPLATE\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.At.Local().Format(time.DateTime), e.Op, e.Plate, e.Detail)
	}
	return tw.Flush()
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
