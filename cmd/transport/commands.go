package main

import (
	"fmt"
	"time"

	"github.com/gartstein/transport/internal/transport/models"
	"github.com/gartstein/transport/internal/transport/report"
	"github.com/spf13/cobra"
)

func reportCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "report",
		Short: "Revenue and driver reports",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "companies",
			Short: "Companies by revenue over all their transports",
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := a.companies.Revenues(cmd.Context())
				if err != nil {
					return err
				}
				return report.CompanyRevenues(cmd.OutOrStdout(), rows)
			},
		},
		&cobra.Command{
			Use:   "drivers",
			Short: "Drivers by number of transports",
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := a.transports.DriverTransportStats(cmd.Context())
				if err != nil {
					return err
				}
				return report.DriverTransports(cmd.OutOrStdout(), rows)
			},
		},
		&cobra.Command{
			Use:   "driver-revenue",
			Short: "Drivers by revenue over their paid transports",
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := a.transports.DriverRevenue(cmd.Context())
				if err != nil {
					return err
				}
				return report.DriverRevenues(cmd.OutOrStdout(), rows)
			},
		},
		&cobra.Command{
			Use:   "total",
			Short: "Number of transports and their total price",
			RunE: func(cmd *cobra.Command, _ []string) error {
				count, err := a.transports.Count(cmd.Context())
				if err != nil {
					return err
				}
				total, err := a.transports.TotalRevenue(cmd.Context())
				if err != nil {
					return err
				}
				return report.Totals(cmd.OutOrStdout(), count, total)
			},
		},
		periodCmd(a),
	)
	return c
}

func periodCmd(a *app) *cobra.Command {
	var (
		companyID int64
		from, to  time.Time
	)

	cmd := &cobra.Command{
		Use:   "period",
		Short: "Paid revenue of one company for transports departing in [from, to]",
		RunE: func(cmd *cobra.Command, _ []string) error {
			period := &models.RevenuePeriod{CompanyID: companyID, From: from, To: to}
			company, err := a.companies.Get(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			revenue, err := a.transports.RevenueForPeriod(cmd.Context(), period)
			if err != nil {
				return err
			}
			return report.PeriodRevenue(cmd.OutOrStdout(), company, period.From, period.To, revenue)
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "company id")
	cmd.Flags().Var(timeValue{&from}, "from", "start, RFC 3339 or YYYY-MM-DD (inclusive)")
	cmd.Flags().Var(timeValue{&to}, "to", "end, RFC 3339 or YYYY-MM-DD (inclusive)")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func listCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
	}
	c.AddCommand(listCompaniesCmd(a), listEmployeesCmd(a), listTransportsCmd(a))
	return c
}

func listCompaniesCmd(a *app) *cobra.Command {
	var byName bool

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := a.companies.List
			if byName {
				list = a.companies.ListByName
			}
			companies, err := list(cmd.Context())
			if err != nil {
				return err
			}
			return report.Companies(cmd.OutOrStdout(), companies)
		},
	}

	cmd.Flags().BoolVar(&byName, "by-name", false, "order by name instead of id")
	return cmd
}

func listEmployeesCmd(a *app) *cobra.Command {
	var (
		order         string
		qualification models.Qualification
	)

	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				employees []models.Employee
				err       error
			)
			switch {
			case qualification != "":
				employees, err = a.employees.FindByQualification(cmd.Context(), qualification)
			case order == "qualification":
				employees, err = a.employees.ListByQualificationThenSalary(cmd.Context())
			case order == "salary":
				employees, err = a.employees.ListBySalary(cmd.Context())
			case order == "id":
				employees, err = a.employees.List(cmd.Context())
			default:
				return fmt.Errorf("unknown order %q", order)
			}
			if err != nil {
				return err
			}
			return report.Employees(cmd.OutOrStdout(), employees)
		},
	}

	cmd.Flags().StringVar(&order, "order", "id", "id, qualification or salary")
	cmd.Flags().Var(qualificationValue{&qualification}, "qualification", "only employees with this qualification")
	return cmd
}

func listTransportsCmd(a *app) *cobra.Command {
	var (
		dest          string
		byDestination bool
	)

	cmd := &cobra.Command{
		Use:   "transports",
		Short: "List transports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				transports []models.Transport
				err        error
			)
			switch {
			case cmd.Flags().Changed("to"):
				transports, err = a.transports.FindByToLocation(cmd.Context(), dest)
			case byDestination:
				transports, err = a.transports.ListByToLocation(cmd.Context())
			default:
				transports, err = a.transports.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return report.Transports(cmd.OutOrStdout(), transports)
		},
	}

	cmd.Flags().StringVar(&dest, "to", "", "only transports to this destination")
	cmd.Flags().BoolVar(&byDestination, "by-destination", false, "order by destination, origin and departure")
	return cmd
}
