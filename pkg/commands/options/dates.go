package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/timeutil"
)

const layoutISOShort = "1/2"

// DateOptions
type DateOptions struct {
	Start string
	End   string
	// Now is used to place short "1/2" dates; nil means time.Now.
	Now func() time.Time
}

const dateHelp = `Accepts "2024-03-05", an ISO week "2024-W12", a month "2024-03", or "3/5" for the next 5 March.`

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		"Start date. "+dateHelp)
	cmd.Flags().StringVar(&o.End, "end", "",
		"End date. "+dateHelp)
}

// GetStart resolves --start. ok is false when the flag was empty.
func (o *DateOptions) GetStart() (model.Day, model.DateType, bool, error) {
	return o.resolve(o.Start)
}

// GetEnd resolves --end. ok is false when the flag was empty.
func (o *DateOptions) GetEnd() (model.Day, model.DateType, bool, error) {
	return o.resolve(o.End)
}

func (o *DateOptions) resolve(s string) (model.Day, model.DateType, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Day{}, "", false, nil
	}
	if t, err := time.Parse(layoutISOShort, s); err == nil {
		now := time.Now
		if o.Now != nil {
			now = o.Now
		}
		today := timeutil.Midnight(now())
		d := timeutil.Date(today.Year(), t.Month(), t.Day())
		// 1/3 asked for on 12/5 means next January, not eleven months ago.
		if d.Before(today) {
			d = d.AddDate(1, 0, 0)
		}
		return model.NewDay(d), model.DateTypeDate, true, nil
	}
	d, typ, err := model.ResolveDateInput(s)
	if err != nil {
		return model.Day{}, "", false, fmt.Errorf("%q: %w", s, err)
	}
	return d, typ, true, nil
}
