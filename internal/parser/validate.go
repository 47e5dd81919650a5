package parser

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"firewall-auditor/internal/model"
)

// normalizedRecord is a rule record after defaults, before typed
// construction. Tags enforce the enumerated sets and numeric bounds.
type normalizedRecord struct {
	ID          string `validate:"required"`
	Name        string
	Source      string `validate:"required"`
	Destination string `validate:"required"`
	Port        string `validate:"required"`
	Protocol    string `validate:"required,oneof=tcp udp icmp any"`
	Action      string `validate:"required,oneof=allow deny"`
	Priority    int    `validate:"min=0"`
	HitCount    int    `validate:"min=0"`
}

var recordValidator = validator.New()

// validateRecord maps validator failures onto the audit error taxonomy so
// the caller always learns the offending rule id and field.
func validateRecord(nr normalizedRecord) error {
	err := recordValidator.Struct(nr)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return &model.ValidationError{
			RuleID: nr.ID,
			Field:  strings.ToLower(fe.Field()),
			Reason: fmt.Sprintf("failed %s constraint (value %v)", fe.Tag(), fe.Value()),
		}
	}
	return &model.ValidationError{RuleID: nr.ID, Field: "record", Reason: err.Error()}
}
