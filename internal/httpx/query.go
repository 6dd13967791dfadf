package httpx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AngelCh415/campaign-analytics/internal/metrics"
	"github.com/AngelCh415/campaign-analytics/internal/models"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

type filterQuery struct {
	From      string   `validate:"omitempty,datetime=2006-01-02"`
	To        string   `validate:"omitempty,datetime=2006-01-02"`
	Channels  []string `validate:"max=32,dive,max=64"`
	Campaigns []string `validate:"max=32,dive,max=64"`
}

type pageQuery struct {
	Limit  int `validate:"gte=0,lte=1000"`
	Offset int `validate:"gte=0"`
}

// parseFilter reads from, to, channel and campaign. Channel and campaign accept
// comma separated lists and may repeat.
func parseFilter(v url.Values) (models.Filter, error) {
	q := filterQuery{
		From:      strings.TrimSpace(v.Get("from")),
		To:        strings.TrimSpace(v.Get("to")),
		Channels:  metrics.CSVSet(v["channel"]...),
		Campaigns: metrics.CSVSet(v["campaign"]...),
	}
	if err := validate.Struct(q); err != nil {
		return models.Filter{}, validationError(err)
	}
	f := models.Filter{Channels: q.Channels, Campaigns: q.Campaigns}
	var err error
	if f.From, err = parseDay("from", q.From); err != nil {
		return models.Filter{}, err
	}
	if f.To, err = parseDay("to", q.To); err != nil {
		return models.Filter{}, err
	}
	return f, nil
}

// parseDay returns the zero time for an empty value.
func parseDay(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrValidation, field, err)
	}
	return d, nil
}

func parsePage(v url.Values) (limit, offset int, err error) {
	var q pageQuery
	if q.Limit, err = atoiDef(v.Get("limit"), metrics.DefaultPageSize); err != nil {
		return 0, 0, fmt.Errorf("%w: limit must be an integer", ErrValidation)
	}
	if q.Offset, err = atoiDef(v.Get("offset"), 0); err != nil {
		return 0, 0, fmt.Errorf("%w: offset must be an integer", ErrValidation)
	}
	if err := validate.Struct(q); err != nil {
		return 0, 0, validationError(err)
	}
	return q.Limit, q.Offset, nil
}

func atoiDef(s string, d int) (int, error) {
	if s == "" {
		return d, nil
	}
	return strconv.Atoi(s)
}

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
