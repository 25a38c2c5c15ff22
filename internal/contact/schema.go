// Package contact validates and submits the contact, quote and newsletter forms.
package contact

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validation message keys. They are absolute translation keys.
const (
	KeyNameMin         = "forms.validation.nameMin"
	KeyNameMax         = "forms.validation.nameMax"
	KeyEmailInvalid    = "forms.validation.emailInvalid"
	KeySubjectMin      = "forms.validation.subjectMin"
	KeySubjectMax      = "forms.validation.subjectMax"
	KeyMessageMin      = "forms.validation.messageMin"
	KeyMessageMax      = "forms.validation.messageMax"
	KeyBudgetInvalid   = "forms.validation.budgetInvalid"
	KeyTimelineInvalid = "forms.validation.timelineInvalid"
	KeyInvalid         = "forms.validation.invalid"
)

// Budgets, Timelines and ServiceOptions enumerate the quote form choices.
var (
	Budgets        = []string{"under-5k", "5k-10k", "10k-25k", "25k-50k", "over-50k"}
	Timelines      = []string{"asap", "1-month", "2-3-months", "3-6-months", "flexible"}
	ServiceOptions = []string{"strategy", "design", "engineering", "growth"}
)

// Message is the contact form payload.
type Message struct {
	Name    string `form:"name" json:"name" validate:"min=2,max=100"`
	Email   string `form:"email" json:"email" validate:"email"`
	Phone   string `form:"phone" json:"phone,omitempty"`
	Subject string `form:"subject" json:"subject" validate:"min=5,max=200"`
	Message string `form:"message" json:"message" validate:"min=10,max=5000"`
}

// Newsletter is the newsletter signup payload.
type Newsletter struct {
	Email string `form:"email" json:"email" validate:"email"`
}

// QuoteRequest extends Message with project details.
type QuoteRequest struct {
	Message
	Company  string   `form:"company" json:"company,omitempty"`
	Budget   string   `form:"budget" json:"budget,omitempty" validate:"omitempty,oneof=under-5k 5k-10k 10k-25k 25k-50k over-50k"`
	Timeline string   `form:"timeline" json:"timeline,omitempty" validate:"omitempty,oneof=asap 1-month 2-3-months 3-6-months flexible"`
	Services []string `form:"services" json:"services,omitempty" validate:"omitempty,dive,oneof=strategy design engineering growth"`
}

// FieldErrors maps a form field name to a translation key.
type FieldErrors map[string]string

// Has reports whether field failed validation.
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Get returns the translation key for field.
func (f FieldErrors) Get(field string) string { return f[field] }

// fieldKeys maps field and failed rule to a message key.
var fieldKeys = map[string]map[string]string{
	"name":     {"min": KeyNameMin, "max": KeyNameMax},
	"email":    {"email": KeyEmailInvalid, "required": KeyEmailInvalid},
	"subject":  {"min": KeySubjectMin, "max": KeySubjectMax},
	"message":  {"min": KeyMessageMin, "max": KeyMessageMax},
	"budget":   {"oneof": KeyBudgetInvalid},
	"timeline": {"oneof": KeyTimelineInvalid},
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// check runs struct validation and converts failures to FieldErrors.
// The first failure per field wins.
func check(v any) FieldErrors {
	err := formValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": KeyInvalid}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		if out.Has(field) {
			continue
		}
		key := KeyInvalid
		if byTag, ok := fieldKeys[field]; ok {
			if k, ok := byTag[fe.Tag()]; ok {
				key = k
			}
		}
		out[field] = key
	}
	return out
}

// Validate returns nil when the message is valid.
func (m Message) Validate() FieldErrors { return check(m) }

func (n Newsletter) Validate() FieldErrors { return check(n) }

func (q QuoteRequest) Validate() FieldErrors { return check(q) }

// MessageFromForm reads a contact message from posted form values. Values are
// taken as submitted, without trimming.
func MessageFromForm(form url.Values) Message {
	return Message{
		Name:    form.Get("name"),
		Email:   form.Get("email"),
		Phone:   form.Get("phone"),
		Subject: form.Get("subject"),
		Message: form.Get("message"),
	}
}

func NewsletterFromForm(form url.Values) Newsletter {
	return Newsletter{Email: form.Get("email")}
}

func QuoteFromForm(form url.Values) QuoteRequest {
	var services []string
	for _, s := range form["services"] {
		if s != "" {
			services = append(services, s)
		}
	}
	return QuoteRequest{
		Message:  MessageFromForm(form),
		Company:  form.Get("company"),
		Budget:   form.Get("budget"),
		Timeline: form.Get("timeline"),
		Services: services,
	}
}
