package schemas

import (
	"fmt"
	"time"

	"financialamigo/src/utils"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Date represents a date in YYYY-MM-DD format
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: utils.TruncateToDate(t)}
}

// ToTime returns the underlying time.Time value
func (d Date) ToTime() time.Time {
	return d.Time
}

// UnmarshalJSON implements json.Unmarshaler interface
func (d *Date) UnmarshalJSON(data []byte) error {
	// Remove quotes from the JSON string
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	parsed, err := utils.ParseDate(str)
	if err != nil {
		return err
	}

	d.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, d.Format(utils.ShortDashDateLayout))), nil
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}
