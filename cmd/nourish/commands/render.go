package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"go.trai.ch/nourish/internal/app"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/engine/edit"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatYAML = "yaml"

	colorIris  = "#8B5CF6"
	colorSlate = "#667085"
	colorRed   = "#D93025"
	colorGreen = "#22A06B"
)

var errUnsupportedFormat = zerr.New("unsupported output format")

func validateFormat(format string) error {
	switch format {
	case formatText, formatYAML:
		return nil
	default:
		return zerr.With(zerr.Wrap(errUnsupportedFormat, "parse flags"), "format", format)
	}
}

// printer renders command results as styled text or as YAML documents.
type printer struct {
	w      io.Writer
	format string
	out    *termenv.Output
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{
		w:      w,
		format: format,
		out:    termenv.NewOutput(w, termenv.WithProfile(colorProfile(w))),
	}
}

func colorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if _, ok := w.(*os.File); !ok {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

func (p *printer) styled(text, hex string) string {
	return p.out.String(text).Foreground(p.out.Color(hex)).String()
}

func (p *printer) heading(text string) {
	_, _ = fmt.Fprintln(p.w, p.out.String(text).Bold().Foreground(p.out.Color(colorIris)).String())
}

func (p *printer) line(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// yaml writes v using its JSON field names.
func (p *printer) yaml(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return zerr.Wrap(err, "failed to encode result")
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.Wrap(err, "failed to encode result")
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, "failed to write yaml")
	}
	return enc.Close()
}

func qty(d decimal.Decimal) string {
	return domain.FormatQuantity(d)
}

func (p *printer) daily(s *domain.DailySummary) error {
	if p.format == formatYAML {
		return p.yaml(s)
	}

	p.heading("Daily summary " + s.Date)
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Calories\t%s / %s kcal\n", qty(s.TotalCalories), qty(s.TargetCalories))
	_, _ = fmt.Fprintf(tw, "Protein\t%s g\n", qty(s.TotalProtein))
	_, _ = fmt.Fprintf(tw, "Carbohydrates\t%s g\n", qty(s.TotalCarbs))
	_, _ = fmt.Fprintf(tw, "Fat\t%s g\n", qty(s.TotalFat))
	_, _ = fmt.Fprintf(tw, "Fiber\t%s g\n", qty(s.TotalFiber))
	_ = tw.Flush()

	if len(s.Meals) == 0 {
		p.line("%s", p.styled("No meals logged.", colorSlate))
		return nil
	}
	p.line("")
	tw = tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tMEAL\tTYPE\tKCAL")
	for _, m := range s.Meals {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.ID, m.Name, m.MealType, qty(m.Calories))
	}
	return tw.Flush()
}

func (p *printer) weekly(s *domain.WeeklySummary) error {
	if p.format == formatYAML {
		return p.yaml(s)
	}

	p.heading("Weekly summary " + s.StartDate + " to " + s.EndDate)
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Total\t%s kcal\n", qty(s.TotalCalories))
	_, _ = fmt.Fprintf(tw, "Average\t%s kcal/day\n", qty(s.AverageCalories))
	for _, d := range s.Days {
		_, _ = fmt.Fprintf(tw, "%s\t%s kcal\t%d meals\n", d.Date, qty(d.TotalCalories), len(d.Meals))
	}
	return tw.Flush()
}

type recentDay struct {
	Date    string               `json:"date"`
	Label   string               `json:"label"`
	Display string               `json:"display"`
	Summary *domain.DailySummary `json:"summary,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func (p *printer) recent(reports []app.DayReport) error {
	if p.format == formatYAML {
		days := make([]recentDay, len(reports))
		for i, r := range reports {
			days[i] = recentDay{Date: r.Date.String(), Label: r.Label, Display: r.Display, Summary: r.Summary}
			if r.Err != nil {
				days[i].Error = r.Err.Error()
			}
		}
		return p.yaml(days)
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, r := range reports {
		switch {
		case r.Err != nil:
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Display, r.Label, p.styled(r.Err.Error(), colorRed))
		case r.Summary != nil:
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s kcal\t%d meals\n", r.Display, r.Label, qty(r.Summary.TotalCalories), len(r.Summary.Meals))
		}
	}
	return tw.Flush()
}

type timestampView struct {
	Local    string          `json:"local"`
	UTC      string          `json:"utc"`
	Date     string          `json:"date"`
	Label    string          `json:"label"`
	MealType domain.MealType `json:"mealType"`
}

func (p *printer) timestamp(ts app.Timestamp) error {
	v := timestampView{
		Local:    ts.Local,
		UTC:      ts.UTC,
		Date:     ts.Date.String(),
		Label:    ts.Label,
		MealType: ts.MealType,
	}
	if p.format == formatYAML {
		return p.yaml(v)
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Local\t%s\n", v.Local)
	_, _ = fmt.Fprintf(tw, "UTC\t%s\n", v.UTC)
	_, _ = fmt.Fprintf(tw, "Date\t%s (%s)\n", v.Date, v.Label)
	_, _ = fmt.Fprintf(tw, "Meal\t%s\n", v.MealType)
	return tw.Flush()
}

func (p *printer) meal(m *domain.Meal, changes edit.ChangeSet) error {
	if p.format == formatYAML {
		return p.yaml(m)
	}

	p.line("%s %s", p.styled("✓", colorGreen), fmt.Sprintf("Saved meal %d (%s)", m.ID, m.Name))
	p.line("%s at %s", m.MealType, m.MealDate)
	if diff := changes.Diff(); diff != "" {
		p.line("%s", p.styled(diff, colorSlate))
	}
	return nil
}

type userView struct {
	*domain.User
	Age *int `json:"age,omitempty"`
}

func (p *printer) user(u *domain.User, age int, hasAge bool) error {
	if p.format == formatYAML {
		v := userView{User: u}
		if hasAge {
			v.Age = &age
		}
		return p.yaml(v)
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "User\t%s (#%d)\n", u.Username, u.ID)
	if hasAge {
		_, _ = fmt.Fprintf(tw, "Age\t%d\n", age)
	}
	if u.Email != "" {
		_, _ = fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	}
	if u.PrimaryNutritionGoal != "" {
		_, _ = fmt.Fprintf(tw, "Goal\t%s\n", u.PrimaryNutritionGoal)
	}
	return tw.Flush()
}
