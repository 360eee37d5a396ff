// Package report renders records and report rows as aligned plain-text
// tables for the command line.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gartstein/transport/internal/pkg/money"
	"github.com/gartstein/transport/internal/transport/models"
)

const timeLayout = "2006-01-02 15:04"

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

func CompanyRevenues(w io.Writer, rows []models.CompanyRevenue) error {
	return table(w, "ID\tCOMPANY\tREVENUE", func(tw *tabwriter.Writer) {
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Company.ID, r.Company.Name, r.Revenue)
		}
	})
}

func DriverTransports(w io.Writer, rows []models.DriverTransportCount) error {
	return table(w, "ID\tDRIVER\tCOMPANY\tTRANSPORTS", func(tw *tabwriter.Writer) {
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", r.Driver.ID, r.Driver.FullName(), r.Driver.Company.Name, r.Transports)
		}
	})
}

func DriverRevenues(w io.Writer, rows []models.DriverRevenue) error {
	return table(w, "ID\tDRIVER\tCOMPANY\tREVENUE", func(tw *tabwriter.Writer) {
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Driver.ID, r.Driver.FullName(), r.Driver.Company.Name, r.Revenue)
		}
	})
}

func Companies(w io.Writer, companies []models.Company) error {
	return table(w, "ID\tNAME\tADDRESS", func(tw *tabwriter.Writer) {
		for _, c := range companies {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Address)
		}
	})
}

func Employees(w io.Writer, employees []models.Employee) error {
	return table(w, "ID\tNAME\tQUALIFICATION\tSALARY\tCOMPANY", func(tw *tabwriter.Writer) {
		for _, e := range employees {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.FullName(), e.Qualification, e.Salary, e.Company.Name)
		}
	})
}

func Transports(w io.Writer, transports []models.Transport) error {
	return table(w, "ID\tFROM\tTO\tDEPARTURE\tDRIVER\tPRICE\tPAID", func(tw *tabwriter.Writer) {
		for _, t := range transports {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.FromLocation, t.ToLocation, t.DepartureAt.UTC().Format(timeLayout),
				t.Driver.FullName(), t.Price, yesNo(t.Paid))
		}
	})
}

// Totals prints the transport count and the revenue over all of them.
func Totals(w io.Writer, count int64, revenue money.Amount) error {
	_, err := fmt.Fprintf(w, "Transports: %d\nRevenue:    %s\n", count, revenue)
	return err
}

// PeriodRevenue prints the paid revenue of one company within a period.
func PeriodRevenue(w io.Writer, company *models.Company, from, to time.Time, revenue money.Amount) error {
	_, err := fmt.Fprintf(w, "%s (%d), paid %s .. %s: %s\n",
		company.Name, company.ID, from.UTC().Format(timeLayout), to.UTC().Format(timeLayout), revenue)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
