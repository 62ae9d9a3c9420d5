package steamworkshop

import (
	"strconv"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

const (
	// publishedFileIDPattern matches a decimal published file id in the
	// form Steam echoes it back, without leading zeros.
	publishedFileIDPattern = `^(0|[1-9][0-9]{0,19})$`

	// MaxDetailsBatch is the number of ids Steam accepts in one
	// GetPublishedFileDetails call.
	MaxDetailsBatch = 100

	// MaxSearchCount is the largest page QueryFiles returns.
	MaxSearchCount = 100

	// DefaultSearchCount is the page size used when SearchOptions.Count is 0.
	DefaultSearchCount = 10
)

// validateFileID checks a single published file id.
func validateFileID(path, id string) error {
	if err := validate.RequiredString(path, "query", id); err != nil {
		return err
	}
	if err := validate.Pattern(path, "query", id, publishedFileIDPattern); err != nil {
		return err
	}
	if _, err := swag.ConvertUint64(id); err != nil {
		return errors.InvalidType(path, "query", "uint64", id)
	}
	return nil
}

// validateFileIDs checks a batch for GetPublishedFileDetails.
func validateFileIDs(ids []string) error {
	var res []error

	if err := validate.MinItems("publishedfileids", "body", int64(len(ids)), 1); err != nil {
		res = append(res, err)
	}
	if err := validate.MaxItems("publishedfileids", "body", int64(len(ids)), MaxDetailsBatch); err != nil {
		res = append(res, err)
	}
	for i, id := range ids {
		if err := validateFileID("publishedfileids."+strconv.Itoa(i), id); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// Validate checks the options against what QueryFiles accepts.
// formats is usually strfmt.Default.
func (o *SearchOptions) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.MaximumInt("count", "query", int64(o.Count), MaxSearchCount, false); err != nil {
		res = append(res, err)
	}
	if err := validate.MaximumInt("days", "query", int64(o.Days), 7, false); err != nil {
		res = append(res, err)
	}
	queryType := o.queryType()
	if err := validate.MinimumInt("query_type", "query", int64(queryType), 0, false); err != nil {
		res = append(res, err)
	}
	if err := validate.MaximumInt("query_type", "query", int64(queryType), int64(maxQueryType), false); err != nil {
		res = append(res, err)
	}
	for i, tag := range o.RequiredTags {
		if err := validate.RequiredString("requiredtags."+strconv.Itoa(i), "query", tag); err != nil {
			res = append(res, err)
		}
	}
	for i, tag := range o.ExcludedTags {
		if err := validate.RequiredString("excludedtags."+strconv.Itoa(i), "query", tag); err != nil {
			res = append(res, err)
		}
	}
	if o.Days > 0 && !queryType.takesDays() {
		res = append(res, errors.New(errors.CompositeErrorCode, "days is only used by trend query types, got %s", queryType))
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// validateBaseURL checks the configured base URL is a request URI.
func validateBaseURL(baseURL string) error {
	if err := validate.FormatOf("baseURL", "client", "uri", baseURL, strfmt.Default); err != nil {
		return err
	}
	return nil
}

func badRequest(message string, cause error) *Error {
	return newError(CodeBadRequest, message, 400, cause)
}
