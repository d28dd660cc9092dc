package eway

import (
	"fmt"
	"strings"

	"github.com/kevin07696/eway-gateway/internal/domain/models"
)

// Local-failure Result constructors. Validation and transport failures come
// back through the same Result shape as gateway declines; nothing here ever
// turns into a panic or an error return across the facade boundary.

func dataErrorResult(message string, missing []string) *models.Result {
	return &models.Result{
		Status:          models.StatusDataError,
		ResponseCode:    models.CodeDataError,
		ResponseMessage: message,
		MissingFields:   missing,
	}
}

func missingFieldsResult(missing []string) *models.Result {
	return dataErrorResult(
		fmt.Sprintf("Missing Fields: %s", strings.Join(missing, ", ")),
		missing,
	)
}

func missingParametersResult(params []string) *models.Result {
	return dataErrorResult(
		fmt.Sprintf("Missing parameters: %s", strings.Join(params, ", ")),
		params,
	)
}

func invalidDatesResult(fields []string) *models.Result {
	return dataErrorResult(
		fmt.Sprintf("Invalid date format for: %s", strings.Join(fields, ", ")),
		fields,
	)
}

func invalidFrequencyResult(token string) *models.Result {
	return dataErrorResult(
		fmt.Sprintf("Invalid frequency: %s. Supports: weekly, fortnightly, monthly or yearly.", token),
		nil,
	)
}

func invalidStatusFilterResult(status string) *models.Result {
	return dataErrorResult(
		fmt.Sprintf("Invalid status filter: %s. Supports: Future, Pending, Successful or Failed.", status),
		nil,
	)
}

func gatewayErrorResult(payload map[string]string) *models.Result {
	return &models.Result{
		Status:          models.StatusGatewayError,
		ResponseCode:    models.CodeGatewayError,
		ResponseMessage: "There was an error connecting to eWay.",
		Payload:         payload,
	}
}

// settingsErrorResult covers configuration/credential resolution failures.
// The gateway was never contacted, but from the caller's perspective the
// operation could not be carried out, so it surfaces in the same class as
// transport failures.
func settingsErrorResult(err error) *models.Result {
	return &models.Result{
		Status:          models.StatusGatewayError,
		ResponseCode:    models.CodeGatewayError,
		ResponseMessage: err.Error(),
	}
}
