package portfolio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/avelis/portfolio/views"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ContactForm is the contact page submission. The message length bound
// matches the maxlength declared on the form.
type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required,max=2000"`
}

// validationMessages turns validator errors into user-facing field messages,
// one per violated rule.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid form submission."}
	}
	var msgs []string
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+": This field is required.")
		case "email":
			msgs = append(msgs, field+": Invalid email address.")
		case "max":
			msgs = append(msgs, field+": Must be at most "+fe.Param()+" characters long.")
		default:
			msgs = append(msgs, field+": Invalid value.")
		}
	}
	return msgs
}

// handleSubmitContact validates the form, persists the message, then sends
// the operator notification. The message row is committed before the email
// attempt, so a mail failure never loses the submission.
func (a *App) handleSubmitContact(c echo.Context) error {
	var form ContactForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := validate.Struct(form); err != nil {
		for _, msg := range validationMessages(err) {
			addFlash(c, "error", msg)
		}
		return c.Redirect(http.StatusSeeOther, "/contact")
	}

	if _, err := a.Store.CreateMessage(views.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	}); err != nil {
		a.log.Error().Err(err).Msg("persist contact message")
		addFlash(c, "error", "Oops! Something went wrong. Please try again later.")
		return c.Redirect(http.StatusSeeOther, "/contact")
	}

	if err := a.Mailer.SendContactNotification(c.Request().Context(), form.Name, form.Email, form.Message); err != nil {
		a.log.Error().Err(err).Str("from", form.Email).Msg("contact notification failed")
		addFlash(c, "error", "Oops! Something went wrong. Please try again later.")
		return c.Redirect(http.StatusSeeOther, "/contact")
	}

	addFlash(c, "success", "Thank you! Your message has been sent successfully.")
	return c.Redirect(http.StatusSeeOther, "/contact")
}

type subscribeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleSubscribe records a newsletter signup and answers with a small JSON
// payload for the async footer form.
func (a *App) handleSubscribe(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if err := validate.Var(email, "required,email"); err != nil {
		return c.JSON(http.StatusOK, subscribeResponse{Status: "warning", Message: "Please enter a valid email address."})
	}

	result, err := a.Store.Subscribe(email)
	if err != nil {
		return err
	}
	switch result {
	case AlreadySubscribed:
		return c.JSON(http.StatusOK, subscribeResponse{Status: "warning", Message: "Email already subscribed!"})
	case Resubscribed:
		return c.JSON(http.StatusOK, subscribeResponse{Status: "success", Message: "Successfully resubscribed!"})
	default:
		return c.JSON(http.StatusOK, subscribeResponse{Status: "success", Message: "Successfully subscribed!"})
	}
}
