package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/travigo/ridership/pkg/ridership"
	"golang.org/x/exp/maps"
)

type RouteSummary struct {
	Route  string
	Months int

	First ridership.Period
	Last  ridership.Period

	TotalRidership      float64
	MeanRidershipPerDay float64

	// Year over year change of the last month, nil when unavailable
	LatestChangeVs1YearsAgo *float64
}

// Summarise groups records by route. Records are expected in date order
// within a route, as the pipeline writes them.
func Summarise(records []*ridership.Record) []*RouteSummary {
	summaries := map[string]*RouteSummary{}

	for _, record := range records {
		summary, exists := summaries[record.Route]
		if !exists {
			summary = &RouteSummary{Route: record.Route, First: record.Date, Last: record.Date}
			summaries[record.Route] = summary
		}

		summary.Months++
		summary.TotalRidership += record.Ridership
		summary.MeanRidershipPerDay += record.RidershipPerDay

		if record.Date.Before(summary.First.Time) {
			summary.First = record.Date
		}
		if !record.Date.Before(summary.Last.Time) {
			summary.Last = record.Date
			summary.LatestChangeVs1YearsAgo = record.ChangeVs1YearsAgo
		}
	}

	routes := maps.Keys(summaries)
	slices.Sort(routes)

	result := make([]*RouteSummary, 0, len(routes))
	for _, route := range routes {
		summary := summaries[route]
		summary.MeanRidershipPerDay /= float64(summary.Months)
		result = append(result, summary)
	}

	return result
}

func Write(writer io.Writer, summaries []*RouteSummary) error {
	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ROUTE\tMONTHS\tFIRST\tLAST\tTOTAL RIDERSHIP\tMEAN PER DAY\tLATEST YOY")
	for _, summary := range summaries {
		change := "-"
		if summary.LatestChangeVs1YearsAgo != nil {
			change = strconv.FormatFloat(*summary.LatestChangeVs1YearsAgo*100, 'f', 1, 64) + "%"
		}

		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			summary.Route,
			summary.Months,
			summary.First,
			summary.Last,
			strconv.FormatFloat(summary.TotalRidership, 'f', 0, 64),
			strconv.FormatFloat(summary.MeanRidershipPerDay, 'f', 1, 64),
			change,
		)
	}

	return tw.Flush()
}
