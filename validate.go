package web2pdf

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-web2pdf/internal/pdfgen"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// validate returns the shared validator with the custom tags registered.
func validate() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails on empty tags or nil funcs.
		_ = v.RegisterValidation("pagesize", func(fl validator.FieldLevel) bool {
			return pdfgen.IsPageSize(fl.Field().String())
		})
		_ = v.RegisterValidation("source_url", func(fl validator.FieldLevel) bool {
			return IsSourceURL(fl.Field().String())
		})
		validatorInst = v
	})
	return validatorInst
}

// IsSourceURL reports whether address is an absolute http or https URL
// whose host is a dotted name, localhost, or an IP address.
func IsSourceURL(address string) bool {
	u, err := url.Parse(strings.TrimSpace(address))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	switch {
	case host == "":
		return false
	case host == "localhost", net.ParseIP(host) != nil:
		return true
	}
	return strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}

// validateJob checks job. Address and page size failures also wrap their
// specific sentinel.
func validateJob(job *Job) error {
	if job == nil {
		return fmt.Errorf("%w: job is nil", ErrInvalidJob)
	}

	err := validate().Struct(job)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}

	for _, fe := range verrs {
		switch {
		case fe.StructField() == "URLs":
			return fmt.Errorf("%w: %w", ErrInvalidJob, ErrNoURLs)
		case fe.Tag() == "source_url":
			return fmt.Errorf("%w: %w: %q", ErrInvalidJob, ErrInvalidURL, fe.Value())
		case fe.Tag() == "pagesize":
			return fmt.Errorf("%w: %w: %q", ErrInvalidJob, ErrInvalidPageSize, fe.Value())
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidJob, describeValidation(err))
}

// describeValidation turns validator output into one readable line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Namespace() + " failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}
