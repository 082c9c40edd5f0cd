package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/curvelib/pricing"
)

var (
	priceInput     string
	priceName      string
	priceCurveDate string
	priceCashflows string
	priceShiftBP   float64
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Discount a cashflow schedule and report PV and DV01",
	RunE: func(cmd *cobra.Command, args []string) error {
		if priceCashflows == "" {
			return errors.New("--cashflows is required")
		}

		crv, _, err := buildConfiguredCurve(cmd.Context(), priceInput, priceName, priceCurveDate)
		if err != nil {
			return err
		}

		cashflows, err := readCashflowFile(priceCashflows)
		if err != nil {
			return err
		}

		asOf := crv.CurveDate()
		base, err := pricing.PresentValue(crv, asOf, cashflows)
		if err != nil {
			return err
		}

		shift := priceShiftBP * 1e-4
		up, err := pricing.PresentValue(crv.Bump(shift), asOf, cashflows)
		if err != nil {
			return err
		}
		down, err := pricing.PresentValue(crv.Bump(-shift), asOf, cashflows)
		if err != nil {
			return err
		}
		dv01, err := pricing.DV01(crv, asOf, cashflows)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s %16.6f\n", "PV", base)
		fmt.Fprintf(out, "%-22s %16.6f\n", fmt.Sprintf("PV %+.1fbp", priceShiftBP), up)
		fmt.Fprintf(out, "%-22s %16.6f\n", fmt.Sprintf("PV %+.1fbp", -priceShiftBP), down)
		fmt.Fprintf(out, "%-22s %16.6f\n", "DV01", dv01)
		return nil
	},
}

func init() {
	priceCmd.Flags().StringVar(&priceInput, "input", "", "Quote set JSON file (takes precedence over --name)")
	priceCmd.Flags().StringVar(&priceName, "name", "", "Stored curve name")
	priceCmd.Flags().StringVar(&priceCurveDate, "curve-date", "", "Stored curve date (YYYY-MM-DD)")
	priceCmd.Flags().StringVar(&priceCashflows, "cashflows", "", "Cashflow schedule JSON file")
	priceCmd.Flags().Float64Var(&priceShiftBP, "shift", 1.0, "Parallel shift for the scenario rows, in basis points")
}

// cashflowFile is the on-disk JSON schema accepted by --cashflows.
type cashflowFile struct {
	Cashflows []struct {
		Date      string  `json:"date"`
		Coupon    float64 `json:"coupon"`
		Principal float64 `json:"principal"`
	} `json:"cashflows"`
}

func readCashflowFile(path string) ([]pricing.Cashflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cashflow file: %w", err)
	}

	var in cashflowFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse cashflow file %s: %w", path, err)
	}

	cashflows := make([]pricing.Cashflow, 0, len(in.Cashflows))
	for i, cf := range in.Cashflows {
		date, err := time.Parse(dateLayout, cf.Date)
		if err != nil {
			return nil, fmt.Errorf("cashflow %d: parse date: %w", i, err)
		}
		cashflows = append(cashflows, pricing.Cashflow{
			Date:      date,
			Coupon:    cf.Coupon,
			Principal: cf.Principal,
		})
	}
	return cashflows, nil
}
