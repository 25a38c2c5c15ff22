package handlers

import (
	"net/url"

	"finitefield.org/marketing-web/internal/contact"
	"finitefield.org/marketing-web/internal/i18n"
	"finitefield.org/marketing-web/internal/nav"
)

// Form kinds rendered by FormView.
const (
	FormContact = "contact"
	FormQuote   = "quote"
)

// Option is one choice in a select or checkbox group.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FormView is the view model for the contact and quote forms.
type FormView struct {
	Kind      string
	Action    string
	CSRFToken string
	Status    contact.Status
	// Errors maps field name to a translated message.
	Errors       map[string]string
	ErrorMessage string
	Values       map[string]string
	Budgets      []Option
	Timelines    []Option
	Services     []Option
}

// Success reports whether the last submission was delivered.
func (f FormView) Success() bool { return f.Status == contact.StatusSuccess }

// Failed reports whether the last delivery errored.
func (f FormView) Failed() bool { return f.Status == contact.StatusError }

// IsQuote reports whether the quote fields should render.
func (f FormView) IsQuote() bool { return f.Kind == FormQuote }

// FieldError returns the translated error for field, if any.
func (f FormView) FieldError(field string) string { return f.Errors[field] }

// Value returns the submitted value for field.
func (f FormView) Value(field string) string { return f.Values[field] }

var formFields = []string{"name", "email", "phone", "subject", "message", "company", "budget", "timeline"}

// BuildForm resolves a form for rendering. values are the submitted form
// values and are echoed back unless the submission succeeded.
func BuildForm(t i18n.Translator, kind, csrf string, state contact.State, values url.Values) FormView {
	if kind != FormQuote {
		kind = FormContact
	}
	status := state.Status
	if status == "" {
		status = contact.StatusIdle
	}
	out := FormView{
		Kind:      kind,
		Action:    nav.LocalizedPath(t.Lang(), "/"+kind),
		CSRFToken: csrf,
		Status:    status,
		Errors:    map[string]string{},
		Values:    map[string]string{},
	}
	for field, key := range state.Errors {
		out.Errors[field] = t.T(key)
	}
	if state.ErrorKey != "" {
		out.ErrorMessage = t.T(state.ErrorKey)
	}
	if status != contact.StatusSuccess {
		for _, field := range formFields {
			out.Values[field] = values.Get(field)
		}
	}
	if kind == FormQuote {
		selected := map[string]bool{}
		if status != contact.StatusSuccess {
			for _, s := range values["services"] {
				selected[s] = true
			}
		}
		out.Budgets = options(t, "forms.quote.budgetOptions.", contact.Budgets, map[string]bool{out.Values["budget"]: true})
		out.Timelines = options(t, "forms.quote.timelineOptions.", contact.Timelines, map[string]bool{out.Values["timeline"]: true})
		out.Services = options(t, "forms.quote.serviceOptions.", contact.ServiceOptions, selected)
	}
	return out
}

func options(t i18n.Translator, prefix string, values []string, selected map[string]bool) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: t.T(prefix + v), Selected: selected[v]})
	}
	return out
}

// NewsletterView is the view model for the footer signup form.
type NewsletterView struct {
	Action    string
	CSRFToken string
	Status    contact.Status
	Email     string
	Error     string
	Message   string
}

// BuildNewsletter resolves the signup form after a submission.
func BuildNewsletter(t i18n.Translator, csrf string, state contact.State, email string) NewsletterView {
	out := NewsletterView{
		Action:    nav.LocalizedPath(t.Lang(), "/newsletter"),
		CSRFToken: csrf,
		Status:    state.Status,
	}
	switch {
	case state.Status == contact.StatusSuccess:
		out.Message = t.T("common.newsletter.success")
	case state.Errors.Has("email"):
		out.Error = t.T(state.Errors.Get("email"))
		out.Email = email
	case state.ErrorKey != "":
		out.Error = t.T(state.ErrorKey)
		out.Email = email
	}
	return out
}
