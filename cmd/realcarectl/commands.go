package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/pkg/money"
)

func addFileFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "file", "f", "", `request file (YAML or JSON, "-" for stdin)`)
	_ = cmd.MarkFlagRequired("file")
}

func newAssessCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score the feasibility of one purchase",
		Example: `  realcarectl assess -f purchase.yaml
  realcarectl assess -f purchase.json -o text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.AssessFeasibilityRequest
			if err := readRequest(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			resp, err := a.services.Assess.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.output == "text" {
				return printAssessment(cmd.OutOrStdout(), resp)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	addFileFlag(cmd, &file)
	return cmd
}

func newDSRCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "dsr",
		Short: "Evaluate the debt service ratio of a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.CalculateDSRRequest
			if err := readRequest(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			resp, err := a.services.DSR.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.output == "text" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "DSR %.2f%% (limit %.0f%%, %s), within limit: %t\nMonthly payment %s, headroom %s\n",
					resp.DSRPct, resp.LimitPct, resp.LimitRule, resp.IsWithinLimit,
					money.Won(resp.MonthlyPayment), money.Won(resp.MaxAdditionalLoan))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	addFileFlag(cmd, &file)
	return cmd
}

func newTaxesCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "taxes",
		Short: "Estimate acquisition, transfer and holding taxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.CalculateTaxesRequest
			if err := readRequest(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			resp, err := a.services.Taxes.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.output == "text" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(),
					"Acquisition tax %s\nTransfer tax    %s (%s)\nHolding tax     %s per year\n",
					money.Won(resp.Acquisition.Total),
					money.Won(resp.Transfer.Total), resp.Transfer.Bracket,
					money.Won(resp.Holding.Total))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	addFileFlag(cmd, &file)
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var (
		file  string
		batch bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare buying now with buying after a wait",
		Long: `Compare buying now with buying after a wait.

With --batch the file holds {tenant_id, items: [...]} and the comparisons are
evaluated concurrently; results keep the order of the items.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if batch {
				var req dto.BatchCompareScenariosRequest
				if err := readRequest(file, cmd.InOrStdin(), &req); err != nil {
					return err
				}
				resp, err := a.services.BatchCompare.Execute(cmd.Context(), req)
				if err != nil {
					return err
				}
				if a.output == "text" {
					for i, r := range resp.Results {
						if err := printComparison(cmd.OutOrStdout(), fmt.Sprintf("#%d ", i+1), r); err != nil {
							return err
						}
					}
					return nil
				}
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			var req dto.CompareScenariosRequest
			if err := readRequest(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			resp, err := a.services.Compare.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.output == "text" {
				return printComparison(cmd.OutOrStdout(), "", resp)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	addFileFlag(cmd, &file)
	cmd.Flags().BoolVar(&batch, "batch", false, "treat the file as a batch of comparisons")
	return cmd
}

func newScheduleCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print a month-by-month repayment schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.RepaymentScheduleRequest
			if err := readRequest(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			resp, err := a.services.Schedule.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.output != "text" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			w := cmd.OutOrStdout()
			for _, e := range resp.Entries {
				if _, err := fmt.Fprintf(w, "%3d  %s  %14s  %14s  %16s\n",
					e.Period, e.DueDate.Format("2006-01-02"),
					money.Won(e.Principal), money.Won(e.Interest), money.Won(e.RemainingBalance)); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(w, "Total paid %s, interest %s\n", money.Won(resp.TotalPaid), money.Won(resp.TotalInterest))
			return err
		},
	}
	addFileFlag(cmd, &file)
	return cmd
}

func newRegionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Inspect the regulation table",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get CODE",
		Short: "Show the regulation profile for a region code",
		Long:  "Show the regulation profile for a region code. Unknown codes show the default profile.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.services.GetRegion.Execute(cmd.Context(), dto.GetRegionRequest{Code: args[0]})
			if err != nil {
				return err
			}
			if a.output == "text" {
				return printRegion(cmd.OutOrStdout(), resp)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "List every region in the regulation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.services.ListRegions.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if a.output != "text" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Regulation table %s\n", resp.Version); err != nil {
				return err
			}
			for _, r := range resp.Regions {
				if err := printRegion(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return cmd
}

func printAssessment(w io.Writer, r dto.RealityScoreResponse) error {
	if _, err := fmt.Fprintln(w, r.Summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Breakdown: LTV %d, DSR %d, gap %d, PTI %d\n",
		r.Breakdown.LTV, r.Breakdown.DSR, r.Breakdown.Gap, r.Breakdown.PTI); err != nil {
		return err
	}
	for _, risk := range r.Risks {
		if _, err := fmt.Fprintf(w, "[%s] %s: %s\n", risk.Severity, risk.Title, risk.Message); err != nil {
			return err
		}
	}
	return nil
}

func printComparison(w io.Writer, prefix string, r dto.ScenarioResponse) error {
	_, err := fmt.Fprintf(w, "%s%s: now %d/100 (%s), in %d year(s) %d/100 (%s). %s\n",
		prefix, r.Recommendation,
		r.Now.Score, r.Now.Grade, r.WaitYears, r.Later.Score, r.Later.Grade, r.Message)
	return err
}

func printRegion(w io.Writer, r dto.RegionResponse) error {
	var zones []string
	if r.IsSpeculative {
		zones = append(zones, "speculative")
	}
	if r.IsAdjusted {
		zones = append(zones, "adjusted")
	}
	if len(zones) == 0 {
		zones = append(zones, "non-regulated")
	}
	_, err := fmt.Fprintf(w, "%-8s %-28s %-22s LTV %g/%g/%g  holding x%g\n",
		r.Code, r.NameEn, strings.Join(zones, "+"),
		r.LTVFirstHomePct, r.LTVOwned1Pct, r.LTVOwned2PlusPct, r.HoldingMultiplier)
	return err
}
