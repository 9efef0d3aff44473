package handler

import (
	"time"

	"github.com/pgnest/backend/internal/domain/shared"
	"github.com/pgnest/backend/internal/domain/shared/valueobject"
	"github.com/pgnest/backend/internal/interfaces/http/dto"
)

// dateLayout is the wire format of calendar-date fields (bill_date,
// check_in_date). Dates carry no time-of-day component.
const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD wire date at UTC midnight
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.UTC)
}

// toMoney converts a request amount to INR Money
func toMoney(amount float64) valueobject.Money {
	return valueobject.NewMoneyINRFromFloat(amount)
}

// filterFromListRequest maps the common pagination query params onto the
// repository filter
func filterFromListRequest(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}
