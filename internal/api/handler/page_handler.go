package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the minimal HTML shells for the portal. The gate
// middleware decides who reaches them.
type PageHandler struct{}

type pageData struct {
	Title    string
	Heading  string
	Body     string
	Identity any
}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) render(c echo.Context, data pageData) error {
	return c.Render(http.StatusOK, pageTemplateName, data)
}

// Home is only reached when the gate lets "/" through.
func (h *PageHandler) Home(c echo.Context) error {
	return h.render(c, pageData{Title: "Home", Heading: "School Records", Body: "Welcome."})
}

func (h *PageHandler) Dashboard(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	return h.render(c, pageData{
		Title:    "Dashboard",
		Heading:  "Dashboard",
		Body:     "Staff records overview.",
		Identity: session.Identity,
	})
}

func (h *PageHandler) Login(c echo.Context) error {
	return h.render(c, pageData{Title: "Sign in", Heading: "Sign in", Body: "Use your employee ID and password."})
}

func (h *PageHandler) Signup(c echo.Context) error {
	return h.render(c, pageData{Title: "Sign up", Heading: "Create an account", Body: "New accounts receive the default password."})
}

func (h *PageHandler) ResetPassword(c echo.Context) error {
	return h.render(c, pageData{Title: "Reset password", Heading: "Reset your password", Body: "Enter your employee ID to receive a reset link."})
}

func (h *PageHandler) Terms(c echo.Context) error {
	return h.render(c, pageData{Title: "Terms", Heading: "Terms of Use", Body: "Access is limited to authorised school staff."})
}

func (h *PageHandler) Privacy(c echo.Context) error {
	return h.render(c, pageData{Title: "Privacy", Heading: "Privacy Notice", Body: "Staff and student records are handled under the school's data policy."})
}
