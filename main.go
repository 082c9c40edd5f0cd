package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/curve"
	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/interp"
	"github.com/meenmo/curvelib/marketdata"
	"github.com/meenmo/curvelib/pricing"
)

func main() {
	curveDate := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	quotes := marketdata.QuoteSet{
		Name:      "EUR-ZERO",
		CurveDate: curveDate,
		Quotes: []marketdata.Quote{
			{Pillar: "3M", Rate: decimal.NewFromFloat(3.8975)},
			{Pillar: "6M", Rate: decimal.NewFromFloat(3.8125)},
			{Pillar: "1Y", Rate: decimal.NewFromFloat(3.5150)},
			{Pillar: "2Y", Rate: decimal.NewFromFloat(3.0875)},
			{Pillar: "3Y", Rate: decimal.NewFromFloat(2.9425)},
			{Pillar: "5Y", Rate: decimal.NewFromFloat(2.8850)},
			{Pillar: "7Y", Rate: decimal.NewFromFloat(2.9025)},
			{Pillar: "10Y", Rate: decimal.NewFromFloat(3.0150)},
			{Pillar: "15Y", Rate: decimal.NewFromFloat(3.1225)},
			{Pillar: "20Y", Rate: decimal.NewFromFloat(3.1475)},
		},
	}

	zeroCurve, err := quotes.BuildCurve(curve.Continuous, daycount.ActActISDA, interp.FlatForward, calendar.TARGET)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(quotes.Name, curveDate.Format("2006-01-02"))
	fmt.Println()
	fmt.Print(zeroCurve)
	fmt.Println()

	fmt.Printf("%-28s %12.6f%%\n", "5Y zero (continuous):", zeroCurve.ZeroRate(5.0, curve.Continuous)*100)
	fmt.Printf("%-28s %12.6f%%\n", "5Y instantaneous forward:", zeroCurve.InstantaneousForward(5.0)*100)

	fwd1Y2Y, err := zeroCurve.ForwardRate(
		curveDate.AddDate(1, 0, 0),
		curveDate.AddDate(2, 0, 0),
		daycount.ActActISDA,
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%-28s %12.6f%%\n", "1Yx2Y simple forward:", fwd1Y2Y*100)
	fmt.Println()

	// 2Y 4% annual coupon bond against the same curve.
	schedule := []pricing.Cashflow{
		{Date: curveDate.AddDate(1, 0, 0), Coupon: 4.0},
		{Date: curveDate.AddDate(2, 0, 0), Coupon: 4.0, Principal: 100.0},
	}

	pv, err := pricing.PresentValue(zeroCurve, curveDate, schedule)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	dv01, err := pricing.DV01(zeroCurve, curveDate, schedule)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("2Y 4% ANNUAL BOND")
	fmt.Printf("%-28s %13.6f\n", "Present value:", pv)
	fmt.Printf("%-28s %13.6f\n", "DV01:", dv01)
}
