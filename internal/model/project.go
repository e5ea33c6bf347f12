package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Project is one curated listing from the content snapshot.
type Project struct {
	Slug       string `json:"slug" yaml:"slug" validate:"required"`
	Title      string `json:"title" yaml:"title" validate:"required"`
	Summary    string `json:"summary" yaml:"summary,omitempty" validate:"required"`
	Image      string `json:"image" yaml:"image" validate:"required"`
	Platform   string `json:"platform" yaml:"platform" validate:"required"`
	LaunchDate string `json:"launchDate" yaml:"launch_date,omitempty"`
	EndDate    string `json:"endDate" yaml:"end_date,omitempty"`
	PrimaryURL string `json:"primaryUrl" yaml:"primary_url" validate:"required"`

	IsPreview     bool   `json:"isPreview,omitempty" yaml:"is_preview,omitempty"`
	IsPromo       bool   `json:"isPromo,omitempty" yaml:"is_promo,omitempty"`
	IsLatePledge  bool   `json:"isLatePledge,omitempty" yaml:"is_late_pledge,omitempty"`
	HasLatePledge bool   `json:"hasLatePledge,omitempty" yaml:"has_late_pledge,omitempty"`
	LatePledgeURL string `json:"latePledgeUrl,omitempty" yaml:"late_pledge_url,omitempty"`
	IsPreOrder    bool   `json:"isPreOrder,omitempty" yaml:"is_pre_order,omitempty"`
	HasPreOrder   bool   `json:"hasPreOrder,omitempty" yaml:"has_pre_order,omitempty"`
	PreOrderURL   string `json:"preOrderUrl,omitempty" yaml:"pre_order_url,omitempty"`

	Designer  string   `json:"designer,omitempty" yaml:"designer,omitempty"`
	Designers []string `json:"designers,omitempty" yaml:"designers,omitempty"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LatePledgeAvailable reports whether a late pledge is offered after the campaign.
func (p *Project) LatePledgeAvailable() bool {
	return p.IsLatePledge || p.HasLatePledge || strings.TrimSpace(p.LatePledgeURL) != ""
}

// PreOrderAvailable reports whether a pre-order is offered after the campaign.
func (p *Project) PreOrderAvailable() bool {
	return p.IsPreOrder || p.HasPreOrder || strings.TrimSpace(p.PreOrderURL) != ""
}

var isoDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			return name
		})
	})
	return validate
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid record")

// Validate checks required fields and the format of any dates present.
// Missing dates are allowed: such a project is shown as a preview.
func (p *Project) Validate() error {
	var errs []error
	if err := structValidator().Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%w: project %q: %s is required", ErrInvalid, p.Slug, fe.Field()))
			}
		} else {
			errs = append(errs, fmt.Errorf("%w: project %q: %v", ErrInvalid, p.Slug, err))
		}
	}
	if p.LaunchDate != "" && !isoDay.MatchString(p.LaunchDate) {
		errs = append(errs, fmt.Errorf("%w: project %q: launchDate %q is not YYYY-MM-DD", ErrInvalid, p.Slug, p.LaunchDate))
	}
	if p.EndDate != "" && !isoDay.MatchString(p.EndDate) {
		errs = append(errs, fmt.Errorf("%w: project %q: endDate %q is not YYYY-MM-DD", ErrInvalid, p.Slug, p.EndDate))
	}
	return errors.Join(errs...)
}

// DesignerNames returns designer names in input order. The designers list
// takes precedence over the legacy single designer field.
func (p *Project) DesignerNames() []string {
	var names []string
	src := p.Designers
	if len(src) == 0 && p.Designer != "" {
		src = []string{p.Designer}
	}
	for _, n := range src {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
