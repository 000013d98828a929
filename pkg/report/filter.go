package report

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/ridership/pkg/ridership"
)

// Filter is a compiled boolean expression over record fields, named as in the
// processed CSV header. Empty year-over-year changes are nil.
type Filter struct {
	Expression string
	program    *vm.Program
}

func CompileFilter(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.Env(map[string]any{}), expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}

	return &Filter{Expression: expression, program: program}, nil
}

func (f *Filter) Match(record *ridership.Record) (bool, error) {
	output, err := expr.Run(f.program, recordEnvironment(record))
	if err != nil {
		return false, fmt.Errorf("evaluate filter for %s %s: %w", record.Route, record.Date, err)
	}

	return output.(bool), nil
}

func (f *Filter) Apply(records []*ridership.Record) ([]*ridership.Record, error) {
	var matched []*ridership.Record

	for _, record := range records {
		ok, err := f.Match(record)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, record)
		}
	}

	return matched, nil
}

func recordEnvironment(record *ridership.Record) map[string]any {
	environment := map[string]any{
		"route":             record.Route,
		"date":              record.Date.String(),
		"date_end":          record.DateEnd.String(),
		"year":              record.Date.Year(),
		"month":             int(record.Date.Month()),
		"ridership":         record.Ridership,
		"ridership_per_day": record.RidershipPerDay,
		"ridership_weekday": record.RidershipWeekday,
		"business_days":     record.BusinessDays,
		"num_days_in_month": record.NumDaysInMonth,
	}

	for years := 1; years <= ridership.LookbackYears; years++ {
		var value any
		if change := record.Change(years); change != nil {
			value = *change
		}
		environment[fmt.Sprintf("change_vs_%d_years_ago", years)] = value
	}

	for name, value := range record.Measures {
		if _, exists := environment[name]; !exists {
			environment[name] = value
		}
	}

	return environment
}
