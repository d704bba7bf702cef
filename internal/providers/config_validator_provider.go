package providers

import (
	"fmt"

	"github.com/gookit/validate"
	"rostersync/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the validate struct tags declared on the config types and
// collapses the result into a single error.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if v.Validate() {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", v.Errors.One())
}
